package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitSchema crea las tablas del Record Store si no existen.
// La clave compuesta de tracking_history deduplica eventos al reenviar snapshots.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  role TEXT NOT NULL,
  password_hash TEXT NOT NULL DEFAULT '',
  branch TEXT NOT NULL
)`,
		`
CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  full_name TEXT NOT NULL,
  phone TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  dni TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT ''
)`,
		`
CREATE TABLE IF NOT EXISTS parcels (
  id TEXT PRIMARY KEY,
  tracking_code TEXT NOT NULL UNIQUE,
  sender_id TEXT NOT NULL,
  receiver_name TEXT NOT NULL,
  receiver_phone TEXT NOT NULL DEFAULT '',
  receiver_address TEXT NOT NULL DEFAULT '',
  weight DOUBLE PRECISION NOT NULL,
  type TEXT NOT NULL DEFAULT '',
  cost NUMERIC(12,2) NOT NULL DEFAULT 0,
  status TEXT NOT NULL,
  payment_method TEXT NOT NULL DEFAULT '',
  payment_status TEXT NOT NULL DEFAULT '',
  origin TEXT NOT NULL,
  destination TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL,
  branch TEXT NOT NULL,
  created_by_id TEXT NOT NULL DEFAULT '',
  created_by_name TEXT NOT NULL DEFAULT ''
)`,
		`CREATE INDEX IF NOT EXISTS idx_parcels_created_at ON parcels(created_at DESC)`,
		`
CREATE TABLE IF NOT EXISTS tracking_history (
  parcel_id TEXT NOT NULL REFERENCES parcels(id) ON DELETE CASCADE,
  status TEXT NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL,
  note TEXT NOT NULL DEFAULT '',
  updated_by TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (parcel_id, status, updated_at)
)`,
	}

	for _, q := range stmts {
		if _, err := pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
