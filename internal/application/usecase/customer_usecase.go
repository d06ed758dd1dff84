package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sm-global/express-api/internal/application/dto"
	"github.com/sm-global/express-api/internal/domain"
	"github.com/sm-global/express-api/internal/domain/entity"
	"github.com/sm-global/express-api/internal/domain/repository"
	"github.com/sm-global/express-api/internal/domain/visibility"
	"github.com/sm-global/express-api/pkg/logger"
)

// CustomerUseCase casos de uso de clientes (remitentes).
type CustomerUseCase struct {
	customers repository.CustomerStore
	notifs    *NotificationUseCase
	log       *logger.Logger
	trigger   func()
}

// NewCustomerUseCase construye el caso de uso. trigger puede ser nil.
func NewCustomerUseCase(customers repository.CustomerStore, notifs *NotificationUseCase, log *logger.Logger, trigger func()) *CustomerUseCase {
	if trigger == nil {
		trigger = func() {}
	}
	return &CustomerUseCase{customers: customers, notifs: notifs, log: log, trigger: trigger}
}

// List devuelve los clientes, opcionalmente filtrados por nombre, DNI o teléfono.
// El directorio de remitentes es compartido entre sucursales.
func (uc *CustomerUseCase) List(ctx context.Context, search string) ([]*entity.Customer, error) {
	all, err := uc.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return all, nil
	}
	needle := strings.ToLower(search)
	out := make([]*entity.Customer, 0, len(all))
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.FullName), needle) ||
			strings.Contains(strings.ToLower(c.DNI), needle) ||
			strings.Contains(c.Phone, search) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Get devuelve un cliente por id, o nil si no existe.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*entity.Customer, error) {
	return uc.customers.Get(ctx, id)
}

// Create registra un cliente y emite la notificación global correspondiente.
func (uc *CustomerUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CustomerRequest) (*entity.Customer, error) {
	if !visibility.CanManageCustomers(actor.Role) {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Phone) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.DNI != "" {
		existing, err := uc.customers.FindByDNI(ctx, in.DNI)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	c := &entity.Customer{
		ID:       uuid.New().String(),
		FullName: in.FullName,
		Phone:    in.Phone,
		Address:  in.Address,
		DNI:      in.DNI,
		Email:    in.Email,
	}
	if err := uc.customers.Save(ctx, c); err != nil {
		return nil, err
	}

	// Sin sucursal destino: la notificación es global.
	msg := fmt.Sprintf("Se ha registrado un nuevo cliente: %s en la sucursal %s.", c.FullName, actor.Branch)
	if err := uc.notifs.Emit(ctx, "Nuevo Cliente Registrado", msg, entity.NotifSuccess, "", "", ""); err != nil {
		uc.log.Warn().Err(err).Str("cliente", c.ID).Msg("no se pudo registrar la notificación")
	}

	uc.trigger()
	return c, nil
}

// Update modifica un cliente existente.
func (uc *CustomerUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.CustomerRequest) (*entity.Customer, error) {
	if !visibility.CanManageCustomers(actor.Role) {
		return nil, domain.ErrForbidden
	}
	c, err := uc.customers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	c.FullName = in.FullName
	c.Phone = in.Phone
	c.Address = in.Address
	c.DNI = in.DNI
	c.Email = in.Email
	if err := uc.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	uc.trigger()
	return c, nil
}

// Delete elimina un cliente del caché local. Los paquetes que lo referencien
// quedan con remitente huérfano, mostrado como "N/A".
func (uc *CustomerUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if !visibility.CanManageCustomers(actor.Role) {
		return domain.ErrForbidden
	}
	if err := uc.customers.Remove(ctx, id); err != nil {
		return err
	}
	uc.trigger()
	return nil
}
