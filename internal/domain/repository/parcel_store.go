package repository

import (
	"context"

	"github.com/sm-global/express-api/internal/domain/entity"
)

// ParcelStore define el puerto de persistencia local para paquetes.
// Los paquetes nunca se eliminan en operación normal; solo se agregan y mutan
// vía actualización de estado (historial append-only).
type ParcelStore interface {
	List(ctx context.Context) ([]*entity.Parcel, error)
	Replace(ctx context.Context, parcels []*entity.Parcel) error
	Get(ctx context.Context, id string) (*entity.Parcel, error)
	FindByTrackingCode(ctx context.Context, code string) (*entity.Parcel, error)
	Add(ctx context.Context, parcel *entity.Parcel) error
	Update(ctx context.Context, parcel *entity.Parcel) error
}
