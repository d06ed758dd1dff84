package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appsync "github.com/sm-global/express-api/internal/application/sync"
)

var _ appsync.RecordStore = (*RecordStore)(nil)

// RecordStore adapta el pool PostgreSQL al puerto de sincronización.
// Push escribe el snapshot completo en una sola transacción; Pull lee las
// colecciones completas.
type RecordStore struct {
	pool *pgxpool.Pool
}

// NewRecordStore construye el adaptador con el pool.
func NewRecordStore(pool *pgxpool.Pool) *RecordStore {
	return &RecordStore{pool: pool}
}

// Pull lee todas las colecciones compartidas.
func (s *RecordStore) Pull(ctx context.Context) (*appsync.Snapshot, error) {
	users, err := NewUserRepository(s.pool).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := NewCustomerRepository(s.pool).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	parcels, err := NewParcelRepository(s.pool).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &appsync.Snapshot{Users: users, Customers: customers, Parcels: parcels}, nil
}

// Push replica el snapshot local en una única transacción: o entra todo o no
// entra nada, y el siguiente ciclo reintenta.
func (s *RecordStore) Push(ctx context.Context, snap *appsync.Snapshot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := NewUserRepository(tx)
	customerRepo := NewCustomerRepository(tx)
	parcelRepo := NewParcelRepository(tx)

	for _, u := range snap.Users {
		if err := userRepo.Upsert(ctx, u); err != nil {
			return err
		}
	}
	for _, c := range snap.Customers {
		if err := customerRepo.Upsert(ctx, c); err != nil {
			return err
		}
	}
	for _, p := range snap.Parcels {
		if err := parcelRepo.Upsert(ctx, p); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
