package repository

import (
	"context"

	"github.com/sm-global/express-api/internal/domain/entity"
)

// NotificationStore define el puerto de persistencia local para notificaciones.
// Push antepone la notificación y recorta la lista a entity.MaxNotifications.
type NotificationStore interface {
	List(ctx context.Context) ([]*entity.AppNotification, error)
	Replace(ctx context.Context, list []*entity.AppNotification) error
	Push(ctx context.Context, n *entity.AppNotification) error
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}
