package repository

import (
	"context"

	"github.com/sm-global/express-api/internal/domain/entity"
)

// CustomerStore define el puerto de persistencia local para clientes (remitentes).
type CustomerStore interface {
	List(ctx context.Context) ([]*entity.Customer, error)
	Replace(ctx context.Context, customers []*entity.Customer) error
	Get(ctx context.Context, id string) (*entity.Customer, error)
	FindByDNI(ctx context.Context, dni string) (*entity.Customer, error)
	Save(ctx context.Context, customer *entity.Customer) error
	Remove(ctx context.Context, id string) error
}
