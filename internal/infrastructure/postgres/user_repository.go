package postgres

import (
	"context"
	"fmt"

	"github.com/sm-global/express-api/internal/domain"
	"github.com/sm-global/express-api/internal/domain/entity"
)

// UserRepo lee y escribe usuarios del Record Store (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// ListAll devuelve todos los usuarios (el pull rehidrata colecciones completas).
func (r *UserRepo) ListAll(ctx context.Context) ([]*entity.User, error) {
	query := `
		SELECT id, name, email, role, password_hash, branch
		FROM users ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash, &u.Branch); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Upsert inserta el usuario o reemplaza la fila existente con el mismo ID.
// El conflicto se resuelve por ID; un email ya tomado por OTRO ID dispara la
// constraint única y se reporta como duplicado tipado.
func (r *UserRepo) Upsert(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, role, password_hash, branch)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			password_hash = EXCLUDED.password_hash,
			branch = EXCLUDED.branch`
	_, err := r.q.Exec(ctx, query, u.ID, u.Name, u.Email, u.Role, u.PasswordHash, u.Branch)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("upsert user %s: email %s: %w", u.ID, u.Email, domain.ErrDuplicate)
		}
		return fmt.Errorf("upsert user %s: %w", u.ID, err)
	}
	return nil
}
