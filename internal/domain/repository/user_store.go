package repository

import (
	"context"

	"github.com/sm-global/express-api/internal/domain/entity"
)

// UserStore define el puerto de persistencia local para usuarios.
// La implementación es el caché local (réplica del Record Store, sin identidad propia).
type UserStore interface {
	List(ctx context.Context) ([]*entity.User, error)
	Replace(ctx context.Context, users []*entity.User) error
	Get(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Add(ctx context.Context, user *entity.User) error
	Remove(ctx context.Context, id string) error
}
