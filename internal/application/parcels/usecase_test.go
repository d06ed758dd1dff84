package parcels

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm-global/express-api/internal/application/dto"
	"github.com/sm-global/express-api/internal/application/usecase"
	"github.com/sm-global/express-api/internal/domain"
	"github.com/sm-global/express-api/internal/domain/entity"
	"github.com/sm-global/express-api/internal/infrastructure/localcache"
	"github.com/sm-global/express-api/pkg/logger"
)

type fakeSMS struct {
	mu   sync.Mutex
	sent []string
	done chan struct{}
}

func newFakeSMS() *fakeSMS {
	return &fakeSMS{done: make(chan struct{}, 8)}
}

func (f *fakeSMS) Send(ctx context.Context, to, message string) (string, error) {
	f.mu.Lock()
	f.sent = append(f.sent, message)
	f.mu.Unlock()
	f.done <- struct{}{}
	return "SM-test-sid", nil
}

func (f *fakeSMS) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

type fakeLLM struct {
	price int64
}

func (f *fakeLLM) SuggestPrice(ctx context.Context, weight float64, origin, destination, parcelType string) (int64, error) {
	return f.price, nil
}

func (f *fakeLLM) LogisticsReport(ctx context.Context, stats any) (string, error) {
	return "reporte", nil
}

type fixture struct {
	uc       *UseCase
	cache    *localcache.Store
	sms      *fakeSMS
	triggers int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := localcache.New(mr.Addr())
	t.Cleanup(func() { _ = cache.Close() })

	f := &fixture{cache: cache, sms: newFakeSMS()}
	notifs := usecase.NewNotificationUseCase(cache.Notifications)
	f.uc = NewUseCase(cache.Parcels, cache.Customers, notifs, f.sms, &fakeLLM{price: 7500}, logger.Nop(), func() { f.triggers++ })

	require.NoError(t, cache.Customers.Save(context.Background(), &entity.Customer{
		ID: "c1", FullName: "Juan Obiang", Phone: "+240 222 000 111",
	}))
	return f
}

var adminBata = entity.Actor{ID: "u-3", Name: "Admin Bata", Role: entity.RoleAdmin, Branch: "Bata"}

func validRequest() dto.CreateParcelRequest {
	return dto.CreateParcelRequest{
		SenderID:      "c1",
		ReceiverName:  "Carlos Mba",
		ReceiverPhone: "+240 222 999 888",
		Weight:        2.5,
		Type:          "Caja Mediana (2-10kg)",
		Cost:          decimal.NewFromInt(5000),
		PaymentMethod: entity.PaymentCash,
		PaymentStatus: entity.PaymentPending,
		Destination:   "Malabo",
	}
}

var trackingPattern = regexp.MustCompile(`^SM-\d{4}-\d{4}$`)

func TestCreate_RegistraEnSucursalDelActor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.uc.Create(ctx, adminBata, validRequest())
	require.NoError(t, err)

	assert.Regexp(t, trackingPattern, p.TrackingCode)
	assert.Equal(t, entity.StatusReceived, p.Status)
	assert.Equal(t, "Bata", p.Origin)
	assert.Equal(t, "Bata", p.Branch)
	assert.Equal(t, "Admin Bata", p.CreatedByName)
	require.Len(t, p.History, 1)
	assert.Equal(t, entity.StatusReceived, p.History[0].Status)
	assert.Contains(t, p.History[0].Note, "Registrado en sucursal Bata")
	assert.Equal(t, 1, f.triggers, "cada mutación adelanta un push")

	// La sucursal de destino recibe el aviso de envío entrante.
	notifs, err := f.cache.Notifications.List(ctx)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, "Nuevo Envío Entrante", notifs[0].Title)
	assert.Equal(t, "Malabo", notifs[0].TargetBranch)
	assert.Equal(t, entity.NotifInfo, notifs[0].Type)
	assert.Equal(t, p.TrackingCode, notifs[0].TrackingCode)
}

func TestCreate_OperadorDenegado(t *testing.T) {
	f := newFixture(t)
	operador := entity.Actor{ID: "u-4", Name: "Operador", Role: entity.RoleOperator, Branch: "Malabo"}

	_, err := f.uc.Create(context.Background(), operador, validRequest())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_RemitenteInexistente(t *testing.T) {
	f := newFixture(t)
	in := validRequest()
	in.SenderID = "no-existe"

	_, err := f.uc.Create(context.Background(), adminBata, in)
	assert.ErrorIs(t, err, domain.ErrSenderNotFound)
}

func TestCreate_ValidaCampos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := validRequest()
	in.Weight = 0
	_, err := f.uc.Create(ctx, adminBata, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validRequest()
	in.ReceiverName = "  "
	_, err = f.uc.Create(ctx, adminBata, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Un costo negativo contaminaría la recaudación.
	in = validRequest()
	in.Cost = decimal.NewFromInt(-500)
	_, err = f.uc.Create(ctx, adminBata, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_HistorialSoloCrece(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.uc.Create(ctx, adminBata, validRequest())
	require.NoError(t, err)

	updated, err := f.uc.UpdateStatus(ctx, adminBata, p.ID, entity.StatusInTransit)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInTransit, updated.Status)
	require.Len(t, updated.History, 2)
	last := updated.History[len(updated.History)-1]
	assert.Equal(t, updated.Status, last.Status, "el último evento siempre coincide con el estado")
	assert.Contains(t, last.Note, "Estado actualizado en Bata por Admin Bata")
}

func TestUpdateStatus_IdDesconocido(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.UpdateStatus(context.Background(), adminBata, "fantasma", entity.StatusDelivered)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.UpdateStatus(context.Background(), adminBata, "p1", "Perdido")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_EntregadoDosVecesNotificaDosVeces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.uc.Create(ctx, adminBata, validRequest())
	require.NoError(t, err)

	adminMalabo := entity.Actor{ID: "u-2", Name: "Admin Malabo", Role: entity.RoleAdmin, Branch: "Malabo"}
	_, err = f.uc.UpdateStatus(ctx, adminMalabo, p.ID, entity.StatusDelivered)
	require.NoError(t, err)
	updated, err := f.uc.UpdateStatus(ctx, adminMalabo, p.ID, entity.StatusDelivered)
	require.NoError(t, err)

	// Las transiciones son libres: repetir estado vuelve a anotar y notificar.
	require.Len(t, updated.History, 3)

	notifs, err := f.cache.Notifications.List(ctx)
	require.NoError(t, err)
	delivered := 0
	for _, n := range notifs {
		if n.Title == "Paquete Entregado" {
			delivered++
			assert.Equal(t, "Bata", n.TargetBranch, "la entrega se avisa a la sucursal de origen")
		}
	}
	assert.Equal(t, 2, delivered)
}

func TestUpdateStatus_AlmacenDisparaSMS(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.uc.Create(ctx, adminBata, validRequest())
	require.NoError(t, err)

	adminMalabo := entity.Actor{ID: "u-2", Name: "Admin Malabo", Role: entity.RoleAdmin, Branch: "Malabo"}
	_, err = f.uc.UpdateStatus(ctx, adminMalabo, p.ID, entity.StatusInWarehouse)
	require.NoError(t, err)

	select {
	case <-f.sms.done:
	case <-time.After(2 * time.Second):
		t.Fatal("el SMS de llegada nunca se disparó")
	}

	msgs := f.sms.messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Hola Carlos Mba")
	assert.Contains(t, msgs[0], p.TrackingCode)
	assert.Contains(t, msgs[0], "almacén de Malabo")

	notifs, err := f.cache.Notifications.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Paquete en Almacén", notifs[0].Title)
	assert.Equal(t, "Malabo", notifs[0].TargetBranch, "avisa a la sucursal que recibe en almacén")
}

func TestList_FiltroBidireccionalYBusqueda(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p1, err := f.uc.Create(ctx, adminBata, validRequest())
	require.NoError(t, err)

	otro := validRequest()
	otro.Destination = "Ebebiyín"
	otro.ReceiverName = "Maria Nchama"
	adminMalabo := entity.Actor{ID: "u-2", Name: "Admin Malabo", Role: entity.RoleAdmin, Branch: "Malabo"}
	_, err = f.uc.Create(ctx, adminMalabo, otro)
	require.NoError(t, err)

	// Malabo ve ambos: uno le llega y otro sale de allí.
	visible, err := f.uc.List(ctx, adminMalabo, "")
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	// Bata solo ve el suyo.
	visible, err = f.uc.List(ctx, adminBata, "")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, p1.ID, visible[0].ID)

	// Búsqueda por receptor.
	visible, err = f.uc.List(ctx, adminMalabo, "maria")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Maria Nchama", visible[0].ReceiverName)
}

func TestTrack_VistaPublicaSinDatosSensibles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.uc.Create(ctx, adminBata, validRequest())
	require.NoError(t, err)

	view, err := f.uc.Track(ctx, p.TrackingCode)
	require.NoError(t, err)
	assert.Equal(t, p.TrackingCode, view.TrackingCode)
	assert.Equal(t, "Bata", view.Origin)
	require.Len(t, view.History, 1)

	_, err = f.uc.Track(ctx, "SM-2026-0000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSuggestPrice_DelegaEnElModelo(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.SuggestPrice(context.Background(), dto.SuggestPriceRequest{
		Weight: 2.5, Origin: "Bata", Destination: "Malabo", Type: "Frágil",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7500), resp.Price)
	assert.Equal(t, "FCFA", resp.Currency)
}
