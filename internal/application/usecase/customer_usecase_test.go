package usecase

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm-global/express-api/internal/application/dto"
	"github.com/sm-global/express-api/internal/domain"
	"github.com/sm-global/express-api/internal/domain/entity"
	"github.com/sm-global/express-api/internal/infrastructure/localcache"
	"github.com/sm-global/express-api/pkg/logger"
)

func newCustomerFixture(t *testing.T) (*CustomerUseCase, *localcache.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := localcache.New(mr.Addr())
	t.Cleanup(func() { _ = cache.Close() })
	notifs := NewNotificationUseCase(cache.Notifications)
	uc := NewCustomerUseCase(cache.Customers, notifs, logger.Nop(), nil)
	return uc, cache
}

var adminMalabo = entity.Actor{ID: "u-2", Name: "Admin Malabo", Role: entity.RoleAdmin, Branch: "Malabo"}

func TestCustomerCreate_EmiteNotificacionGlobal(t *testing.T) {
	uc, cache := newCustomerFixture(t)
	ctx := context.Background()

	c, err := uc.Create(ctx, adminMalabo, dto.CustomerRequest{
		FullName: "Juan Obiang", Phone: "+240 222 000 111", DNI: "1234567-A",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)

	notifs, err := cache.Notifications.List(ctx)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, "Nuevo Cliente Registrado", notifs[0].Title)
	assert.Equal(t, entity.NotifSuccess, notifs[0].Type)
	assert.Empty(t, notifs[0].TargetBranch, "sin sucursal destino la notificación es global")
	assert.Contains(t, notifs[0].Message, "Juan Obiang")
	assert.Contains(t, notifs[0].Message, "Malabo")
}

func TestCustomerCreate_OperadorDenegado(t *testing.T) {
	uc, _ := newCustomerFixture(t)
	operador := entity.Actor{Role: entity.RoleOperator, Branch: "Malabo"}

	_, err := uc.Create(context.Background(), operador, dto.CustomerRequest{FullName: "X", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCustomerCreate_DNIDuplicado(t *testing.T) {
	uc, _ := newCustomerFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, adminMalabo, dto.CustomerRequest{FullName: "A", Phone: "1", DNI: "X-1"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, adminMalabo, dto.CustomerRequest{FullName: "B", Phone: "2", DNI: "X-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCustomerUpdate_Inexistente(t *testing.T) {
	uc, _ := newCustomerFixture(t)
	_, err := uc.Update(context.Background(), adminMalabo, "no-existe", dto.CustomerRequest{FullName: "A", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerList_Busqueda(t *testing.T) {
	uc, _ := newCustomerFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, adminMalabo, dto.CustomerRequest{FullName: "Juan Obiang", Phone: "+240111", DNI: "1234567-A"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, adminMalabo, dto.CustomerRequest{FullName: "Maria Nchama", Phone: "+240222", DNI: "9876543-B"})
	require.NoError(t, err)

	found, err := uc.List(ctx, "maria")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Maria Nchama", found[0].FullName)

	found, err = uc.List(ctx, "9876543")
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = uc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestCustomerDelete_NoCascada(t *testing.T) {
	uc, cache := newCustomerFixture(t)
	ctx := context.Background()

	c, err := uc.Create(ctx, adminMalabo, dto.CustomerRequest{FullName: "Juan", Phone: "+240111"})
	require.NoError(t, err)

	// Un paquete que lo referencia como remitente sobrevive a la eliminación.
	require.NoError(t, cache.Parcels.Add(ctx, &entity.Parcel{ID: "p1", SenderID: c.ID}))
	require.NoError(t, uc.Delete(ctx, adminMalabo, c.ID))

	p, err := cache.Parcels.Get(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, c.ID, p.SenderID, "la referencia huérfana se tolera")

	err = uc.Delete(ctx, adminMalabo, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
