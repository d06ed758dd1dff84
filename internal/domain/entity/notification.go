package entity

import "time"

// Tipos de notificación.
const (
	NotifInfo    = "info"
	NotifSuccess = "success"
	NotifWarning = "warning"
	NotifError   = "error"
)

// MaxNotifications es el tope de notificaciones retenidas (se descartan las más antiguas).
const MaxNotifications = 50

// AppNotification es una alerta dirigida a una sucursal o global.
// TargetBranch vacío significa global: solo visible para SUPER_ADMIN.
type AppNotification struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Type         string    `json:"type"` // info, success, warning, error
	CreatedAt    time.Time `json:"createdAt"`
	Read         bool      `json:"read"`
	TargetBranch string    `json:"targetBranch,omitempty"`
	ParcelID     string    `json:"parcelId,omitempty"`
	TrackingCode string    `json:"trackingCode,omitempty"`
}
