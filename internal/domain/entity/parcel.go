package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un paquete. Los valores son los textos en español
// que viajan por el API y se guardan en la base de datos.
const (
	StatusReceived    = "Recibido"
	StatusInTransit   = "En tránsito"
	StatusInWarehouse = "En almacén"
	StatusDelivered   = "Entregado"
)

// ParcelStatuses lista los estados válidos en su orden nominal de avance.
// Las transiciones son libres: cualquier estado puede saltar a cualquier otro.
var ParcelStatuses = []string{StatusReceived, StatusInTransit, StatusInWarehouse, StatusDelivered}

// IsValidStatus verifica que s sea uno de los cuatro estados conocidos.
func IsValidStatus(s string) bool {
	for _, v := range ParcelStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Métodos de pago aceptados.
const (
	PaymentCash        = "Efectivo"
	PaymentTransfer    = "Transferencia"
	PaymentMobileMoney = "Muni Money / Getesa Money"
)

// Estados de pago.
const (
	PaymentPaid    = "Pagado"
	PaymentPending = "Pendiente"
)

// StatusEvent es una entrada del historial de un paquete. El historial es
// append-only: su último elemento siempre coincide con Parcel.Status.
type StatusEvent struct {
	Status    string    `json:"status"`
	Date      time.Time `json:"date"`
	Note      string    `json:"note"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}

// Parcel representa un envío registrado en una sucursal de origen.
// Origin y Destination gobiernan la visibilidad bidireccional por sucursal.
type Parcel struct {
	ID              string          `json:"id"`
	TrackingCode    string          `json:"trackingCode"`
	SenderID        string          `json:"senderId"`
	ReceiverName    string          `json:"receiverName"`
	ReceiverPhone   string          `json:"receiverPhone"`
	ReceiverAddress string          `json:"receiverAddress"`
	Weight          float64         `json:"weight"` // kg, > 0
	Type            string          `json:"type"`
	Cost            decimal.Decimal `json:"cost"` // FCFA, >= 0
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"` // Pagado | Pendiente
	Origin          string          `json:"origin"`
	Destination     string          `json:"destination"`
	CreatedAt       time.Time       `json:"createdAt"`
	Branch          string          `json:"branch"` // sucursal donde se registró
	CreatedByID     string          `json:"createdById"`
	CreatedByName   string          `json:"createdByName"`
	History         []StatusEvent   `json:"history"`
}
