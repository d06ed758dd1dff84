package postgres

import (
	"context"
	"fmt"

	"github.com/sm-global/express-api/internal/domain/entity"
)

// ParcelRepo lee y escribe paquetes y su historial (usable con pool o tx).
type ParcelRepo struct {
	q Querier
}

// NewParcelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewParcelRepository(q Querier) *ParcelRepo {
	return &ParcelRepo{q: q}
}

// ListAll devuelve todos los paquetes con su historial, más reciente primero.
func (r *ParcelRepo) ListAll(ctx context.Context) ([]*entity.Parcel, error) {
	query := `
		SELECT id, tracking_code, sender_id, receiver_name, receiver_phone, receiver_address,
		       weight, type, cost, status, payment_method, payment_status,
		       origin, destination, created_at, branch, created_by_id, created_by_name
		FROM parcels ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list parcels: %w", err)
	}
	defer rows.Close()

	var list []*entity.Parcel
	byID := make(map[string]*entity.Parcel)
	for rows.Next() {
		var p entity.Parcel
		if err := rows.Scan(
			&p.ID, &p.TrackingCode, &p.SenderID, &p.ReceiverName, &p.ReceiverPhone, &p.ReceiverAddress,
			&p.Weight, &p.Type, &p.Cost, &p.Status, &p.PaymentMethod, &p.PaymentStatus,
			&p.Origin, &p.Destination, &p.CreatedAt, &p.Branch, &p.CreatedByID, &p.CreatedByName,
		); err != nil {
			return nil, fmt.Errorf("scan parcel: %w", err)
		}
		list = append(list, &p)
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachHistory(ctx, byID); err != nil {
		return nil, err
	}
	return list, nil
}

// attachHistory carga el historial de todos los paquetes en una sola consulta.
func (r *ParcelRepo) attachHistory(ctx context.Context, byID map[string]*entity.Parcel) error {
	if len(byID) == 0 {
		return nil
	}
	query := `
		SELECT parcel_id, status, updated_at, note, updated_by
		FROM tracking_history ORDER BY updated_at`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var parcelID string
		var ev entity.StatusEvent
		if err := rows.Scan(&parcelID, &ev.Status, &ev.Date, &ev.Note, &ev.UpdatedBy); err != nil {
			return fmt.Errorf("scan history: %w", err)
		}
		if p, ok := byID[parcelID]; ok {
			p.History = append(p.History, ev)
		}
	}
	return rows.Err()
}

// Upsert inserta el paquete o reemplaza la fila existente, y replica el historial.
// Los eventos repetidos caen en la clave compuesta y se ignoran.
func (r *ParcelRepo) Upsert(ctx context.Context, p *entity.Parcel) error {
	query := `
		INSERT INTO parcels (id, tracking_code, sender_id, receiver_name, receiver_phone, receiver_address,
		                     weight, type, cost, status, payment_method, payment_status,
		                     origin, destination, created_at, branch, created_by_id, created_by_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE SET
			tracking_code = EXCLUDED.tracking_code,
			sender_id = EXCLUDED.sender_id,
			receiver_name = EXCLUDED.receiver_name,
			receiver_phone = EXCLUDED.receiver_phone,
			receiver_address = EXCLUDED.receiver_address,
			weight = EXCLUDED.weight,
			type = EXCLUDED.type,
			cost = EXCLUDED.cost,
			status = EXCLUDED.status,
			payment_method = EXCLUDED.payment_method,
			payment_status = EXCLUDED.payment_status,
			origin = EXCLUDED.origin,
			destination = EXCLUDED.destination,
			created_at = EXCLUDED.created_at,
			branch = EXCLUDED.branch,
			created_by_id = EXCLUDED.created_by_id,
			created_by_name = EXCLUDED.created_by_name`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.TrackingCode, p.SenderID, p.ReceiverName, p.ReceiverPhone, p.ReceiverAddress,
		p.Weight, p.Type, p.Cost, p.Status, p.PaymentMethod, p.PaymentStatus,
		p.Origin, p.Destination, p.CreatedAt, p.Branch, p.CreatedByID, p.CreatedByName,
	)
	if err != nil {
		return fmt.Errorf("upsert parcel %s: %w", p.ID, err)
	}

	histQuery := `
		INSERT INTO tracking_history (parcel_id, status, updated_at, note, updated_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (parcel_id, status, updated_at) DO NOTHING`
	for _, ev := range p.History {
		if _, err := r.q.Exec(ctx, histQuery, p.ID, ev.Status, ev.Date, ev.Note, ev.UpdatedBy); err != nil {
			return fmt.Errorf("insert history %s: %w", p.ID, err)
		}
	}
	return nil
}
