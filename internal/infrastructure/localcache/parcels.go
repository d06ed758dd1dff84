package localcache

import (
	"context"

	"github.com/sm-global/express-api/internal/domain"
	"github.com/sm-global/express-api/internal/domain/entity"
)

// ParcelCache es la vista de paquetes del caché local.
type ParcelCache struct {
	co *core
}

func (p *ParcelCache) List(ctx context.Context) ([]*entity.Parcel, error) {
	p.co.mu.Lock()
	defer p.co.mu.Unlock()
	return p.list(ctx)
}

func (p *ParcelCache) list(ctx context.Context) ([]*entity.Parcel, error) {
	var parcels []*entity.Parcel
	if err := p.co.getJSON(ctx, keyParcels, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}

func (p *ParcelCache) Replace(ctx context.Context, parcels []*entity.Parcel) error {
	p.co.mu.Lock()
	defer p.co.mu.Unlock()
	return p.co.setJSON(ctx, keyParcels, parcels)
}

func (p *ParcelCache) Get(ctx context.Context, id string) (*entity.Parcel, error) {
	parcels, err := p.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, pc := range parcels {
		if pc.ID == id {
			return pc, nil
		}
	}
	return nil, nil
}

func (p *ParcelCache) FindByTrackingCode(ctx context.Context, code string) (*entity.Parcel, error) {
	parcels, err := p.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, pc := range parcels {
		if pc.TrackingCode == code {
			return pc, nil
		}
	}
	return nil, nil
}

// Add antepone el paquete nuevo; el listado queda en orden de llegada inversa,
// igual que lo muestra el panel.
func (p *ParcelCache) Add(ctx context.Context, parcel *entity.Parcel) error {
	p.co.mu.Lock()
	defer p.co.mu.Unlock()

	parcels, err := p.list(ctx)
	if err != nil {
		return err
	}
	parcels = append([]*entity.Parcel{parcel}, parcels...)
	return p.co.setJSON(ctx, keyParcels, parcels)
}

func (p *ParcelCache) Update(ctx context.Context, parcel *entity.Parcel) error {
	p.co.mu.Lock()
	defer p.co.mu.Unlock()

	parcels, err := p.list(ctx)
	if err != nil {
		return err
	}
	for i, pc := range parcels {
		if pc.ID == parcel.ID {
			parcels[i] = parcel
			return p.co.setJSON(ctx, keyParcels, parcels)
		}
	}
	return domain.ErrNotFound
}
