package localcache

import (
	"context"

	"github.com/sm-global/express-api/internal/domain"
	"github.com/sm-global/express-api/internal/domain/entity"
)

// CustomerCache es la vista de clientes del caché local.
type CustomerCache struct {
	co *core
}

func (c *CustomerCache) List(ctx context.Context) ([]*entity.Customer, error) {
	c.co.mu.Lock()
	defer c.co.mu.Unlock()
	return c.list(ctx)
}

func (c *CustomerCache) list(ctx context.Context) ([]*entity.Customer, error) {
	var customers []*entity.Customer
	if err := c.co.getJSON(ctx, keyCustomers, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *CustomerCache) Replace(ctx context.Context, customers []*entity.Customer) error {
	c.co.mu.Lock()
	defer c.co.mu.Unlock()
	return c.co.setJSON(ctx, keyCustomers, customers)
}

func (c *CustomerCache) Get(ctx context.Context, id string) (*entity.Customer, error) {
	customers, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, cu := range customers {
		if cu.ID == id {
			return cu, nil
		}
	}
	return nil, nil
}

func (c *CustomerCache) FindByDNI(ctx context.Context, dni string) (*entity.Customer, error) {
	customers, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, cu := range customers {
		if cu.DNI == dni {
			return cu, nil
		}
	}
	return nil, nil
}

// Save inserta el cliente o reemplaza el existente con el mismo ID.
func (c *CustomerCache) Save(ctx context.Context, customer *entity.Customer) error {
	c.co.mu.Lock()
	defer c.co.mu.Unlock()

	customers, err := c.list(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i, cu := range customers {
		if cu.ID == customer.ID {
			customers[i] = customer
			replaced = true
			break
		}
	}
	if !replaced {
		customers = append(customers, customer)
	}
	return c.co.setJSON(ctx, keyCustomers, customers)
}

func (c *CustomerCache) Remove(ctx context.Context, id string) error {
	c.co.mu.Lock()
	defer c.co.mu.Unlock()

	customers, err := c.list(ctx)
	if err != nil {
		return err
	}
	kept := customers[:0]
	found := false
	for _, cu := range customers {
		if cu.ID == id {
			found = true
			continue
		}
		kept = append(kept, cu)
	}
	if !found {
		return domain.ErrNotFound
	}
	return c.co.setJSON(ctx, keyCustomers, kept)
}
