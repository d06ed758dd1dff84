package localcache

import (
	"context"

	"github.com/sm-global/express-api/internal/domain/entity"
)

// NotificationCache es la vista de notificaciones del caché local.
type NotificationCache struct {
	co *core
}

func (n *NotificationCache) List(ctx context.Context) ([]*entity.AppNotification, error) {
	n.co.mu.Lock()
	defer n.co.mu.Unlock()
	return n.list(ctx)
}

func (n *NotificationCache) list(ctx context.Context) ([]*entity.AppNotification, error) {
	var notifs []*entity.AppNotification
	if err := n.co.getJSON(ctx, keyNotifications, &notifs); err != nil {
		return nil, err
	}
	return notifs, nil
}

func (n *NotificationCache) Replace(ctx context.Context, list []*entity.AppNotification) error {
	n.co.mu.Lock()
	defer n.co.mu.Unlock()
	return n.co.setJSON(ctx, keyNotifications, list)
}

// Push antepone la notificación y recorta la cola a entity.MaxNotifications.
func (n *NotificationCache) Push(ctx context.Context, notif *entity.AppNotification) error {
	n.co.mu.Lock()
	defer n.co.mu.Unlock()

	notifs, err := n.list(ctx)
	if err != nil {
		return err
	}
	notifs = append([]*entity.AppNotification{notif}, notifs...)
	if len(notifs) > entity.MaxNotifications {
		notifs = notifs[:entity.MaxNotifications]
	}
	return n.co.setJSON(ctx, keyNotifications, notifs)
}

func (n *NotificationCache) MarkRead(ctx context.Context, id string) error {
	n.co.mu.Lock()
	defer n.co.mu.Unlock()

	notifs, err := n.list(ctx)
	if err != nil {
		return err
	}
	for _, nt := range notifs {
		if nt.ID == id {
			nt.Read = true
			break
		}
	}
	return n.co.setJSON(ctx, keyNotifications, notifs)
}

func (n *NotificationCache) MarkAllRead(ctx context.Context) error {
	n.co.mu.Lock()
	defer n.co.mu.Unlock()

	notifs, err := n.list(ctx)
	if err != nil {
		return err
	}
	for _, nt := range notifs {
		nt.Read = true
	}
	return n.co.setJSON(ctx, keyNotifications, notifs)
}
