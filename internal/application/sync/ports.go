// Package sync reconcilia el caché local con el Record Store compartido:
// empuja el snapshot local y rehidrata las colecciones al arrancar.
package sync

import (
	"context"

	"github.com/sm-global/express-api/internal/domain/entity"
)

// Snapshot es el estado completo de las colecciones compartidas.
// Las notificaciones son locales a cada cliente y no viajan en el snapshot.
type Snapshot struct {
	Users     []*entity.User
	Customers []*entity.Customer
	Parcels   []*entity.Parcel
}

// RecordStore define el puerto hacia la copia compartida.
// Push debe ser atómico: o se replica el snapshot entero o nada.
type RecordStore interface {
	Pull(ctx context.Context) (*Snapshot, error)
	Push(ctx context.Context, snap *Snapshot) error
}
