// Package usecase contiene los casos de uso de clientes, usuarios y notificaciones.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sm-global/express-api/internal/domain/entity"
	"github.com/sm-global/express-api/internal/domain/repository"
	"github.com/sm-global/express-api/internal/domain/visibility"
)

// NotificationUseCase administra el centro de notificaciones del caché local.
type NotificationUseCase struct {
	store repository.NotificationStore
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(store repository.NotificationStore) *NotificationUseCase {
	return &NotificationUseCase{store: store}
}

// Emit crea y antepone una notificación. targetBranch vacío = notificación
// global (visible solo para SUPER_ADMIN).
func (uc *NotificationUseCase) Emit(ctx context.Context, title, message, typ, targetBranch, parcelID, trackingCode string) error {
	n := &entity.AppNotification{
		ID:           uuid.New().String(),
		Title:        title,
		Message:      message,
		Type:         typ,
		CreatedAt:    time.Now(),
		TargetBranch: targetBranch,
		ParcelID:     parcelID,
		TrackingCode: trackingCode,
	}
	return uc.store.Push(ctx, n)
}

// List devuelve las notificaciones visibles para el actor, más reciente primero.
func (uc *NotificationUseCase) List(ctx context.Context, actor entity.Actor) ([]*entity.AppNotification, error) {
	all, err := uc.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return visibility.FilterNotifications(actor.Role, actor.Branch, all), nil
}

// MarkRead marca una notificación como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id string) error {
	return uc.store.MarkRead(ctx, id)
}

// MarkAllRead marca todas las notificaciones como leídas.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context) error {
	return uc.store.MarkAllRead(ctx)
}
