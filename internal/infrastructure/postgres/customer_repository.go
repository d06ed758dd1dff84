package postgres

import (
	"context"
	"fmt"

	"github.com/sm-global/express-api/internal/domain/entity"
)

// CustomerRepo lee y escribe clientes del Record Store (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// ListAll devuelve todos los clientes.
func (r *CustomerRepo) ListAll(ctx context.Context) ([]*entity.Customer, error) {
	query := `
		SELECT id, full_name, phone, address, dni, email
		FROM customers ORDER BY full_name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.FullName, &c.Phone, &c.Address, &c.DNI, &c.Email); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Upsert inserta el cliente o reemplaza la fila existente con el mismo ID.
func (r *CustomerRepo) Upsert(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, full_name, phone, address, dni, email)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			dni = EXCLUDED.dni,
			email = EXCLUDED.email`
	_, err := r.q.Exec(ctx, query, c.ID, c.FullName, c.Phone, c.Address, c.DNI, c.Email)
	if err != nil {
		return fmt.Errorf("upsert customer %s: %w", c.ID, err)
	}
	return nil
}
