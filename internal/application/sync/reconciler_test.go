package sync

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sm-global/express-api/internal/domain/entity"
	"github.com/sm-global/express-api/internal/infrastructure/localcache"
	"github.com/sm-global/express-api/pkg/logger"
)

// fakeRecordStore captura los pushes y devuelve un snapshot fijo en pull.
// pushC, si no es nil, recibe una señal por cada push aceptado.
type fakeRecordStore struct {
	pullSnap *Snapshot
	pullErr  error
	pushErr  error
	pushed   []*Snapshot
	pushC    chan struct{}
}

func (f *fakeRecordStore) Pull(ctx context.Context) (*Snapshot, error) {
	if f.pullErr != nil {
		return nil, f.pullErr
	}
	if f.pullSnap == nil {
		return &Snapshot{}, nil
	}
	return f.pullSnap, nil
}

func (f *fakeRecordStore) Push(ctx context.Context, snap *Snapshot) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed = append(f.pushed, snap)
	if f.pushC != nil {
		select {
		case f.pushC <- struct{}{}:
		default:
		}
	}
	return nil
}

func newTestReconciler(t *testing.T, record RecordStore) (*Reconciler, *localcache.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := localcache.New(mr.Addr())
	t.Cleanup(func() { _ = cache.Close() })
	rec := NewReconciler(cache.Users, cache.Customers, cache.Parcels, record, logger.Nop())
	return rec, cache
}

func TestPull_ColeccionRemotaVaciaNoBorraLaLocal(t *testing.T) {
	record := &fakeRecordStore{pullSnap: &Snapshot{}}
	rec, cache := newTestReconciler(t, record)
	ctx := context.Background()

	local := []*entity.User{{ID: "u-9", Name: "Local", Email: "local@sm-global.com"}}
	require.NoError(t, cache.Users.Replace(ctx, local))

	require.NoError(t, rec.Pull(ctx))

	users, err := cache.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u-9", users[0].ID)
}

func TestPull_ColeccionRemotaConDatosReemplaza(t *testing.T) {
	record := &fakeRecordStore{pullSnap: &Snapshot{
		Users: []*entity.User{{ID: "r-1", Email: "remoto@sm-global.com"}},
	}}
	rec, cache := newTestReconciler(t, record)
	ctx := context.Background()

	require.NoError(t, cache.Users.Replace(ctx, []*entity.User{{ID: "u-9"}}))
	require.NoError(t, rec.Pull(ctx))

	users, err := cache.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "r-1", users[0].ID)
}

func TestPush_HasheaContrasenasSinTocarElCache(t *testing.T) {
	record := &fakeRecordStore{}
	rec, cache := newTestReconciler(t, record)
	ctx := context.Background()

	users := []*entity.User{
		{ID: "u-1", Email: "plano@sm-global.com", PasswordHash: "123"},
		{ID: "u-2", Email: "hasheado@sm-global.com", PasswordHash: "$2a$10$abcdefghijklmnopqrstuv"},
	}
	require.NoError(t, cache.Users.Replace(ctx, users))

	require.NoError(t, rec.Push(ctx))
	require.Len(t, record.pushed, 1)

	pushed := record.pushed[0].Users
	require.Len(t, pushed, 2)
	assert.True(t, strings.HasPrefix(pushed[0].PasswordHash, "$2"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(pushed[0].PasswordHash), []byte("123")))
	assert.Equal(t, "$2a$10$abcdefghijklmnopqrstuv", pushed[1].PasswordHash, "un hash existente pasa sin tocar")

	// El caché conserva el valor original.
	cached, err := cache.Users.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "123", cached.PasswordHash)
}

func TestPush_RegistraResultado(t *testing.T) {
	record := &fakeRecordStore{}
	rec, _ := newTestReconciler(t, record)
	ctx := context.Background()

	assert.Equal(t, ResultPending, rec.LastResult().Status)

	require.NoError(t, rec.Push(ctx))
	assert.Equal(t, ResultSuccess, rec.LastResult().Status)

	record.pushErr = errors.New("sin conexión")
	require.Error(t, rec.Push(ctx))
	res := rec.LastResult()
	assert.Equal(t, ResultError, res.Status)
	assert.Contains(t, res.Error, "sin conexión")
}

func TestBootstrap_SiembraYSobreviveSinRecordStore(t *testing.T) {
	record := &fakeRecordStore{pullErr: errors.New("record store inaccesible")}
	rec, cache := newTestReconciler(t, record)
	ctx := context.Background()

	require.NoError(t, rec.Bootstrap(ctx))

	users, err := cache.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)

	admin, err := cache.Users.FindByEmail(ctx, "admin@sm-global.com")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleSuperAdmin, admin.Role)

	parcels, err := cache.Parcels.List(ctx)
	require.NoError(t, err)
	require.Len(t, parcels, 1)
	assert.Equal(t, "GE-2023-A001", parcels[0].TrackingCode)
}

func TestBootstrap_NoPisaUnCacheExistente(t *testing.T) {
	record := &fakeRecordStore{pullSnap: &Snapshot{}}
	rec, cache := newTestReconciler(t, record)
	ctx := context.Background()

	require.NoError(t, cache.Users.Replace(ctx, []*entity.User{{ID: "u-7", Email: "x@sm-global.com"}}))
	require.NoError(t, rec.Bootstrap(ctx))

	users, err := cache.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u-7", users[0].ID)
}

func TestModoSoloCache_SinRecordStore(t *testing.T) {
	rec, cache := newTestReconciler(t, nil)
	ctx := context.Background()

	// El arranque siembra y no falla aunque no haya Record Store.
	require.NoError(t, rec.Bootstrap(ctx))
	users, err := cache.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)

	// Los ciclos reportan el error sin tumbar la aplicación.
	err = rec.Push(ctx)
	require.ErrorIs(t, err, ErrRecordStoreUnavailable)
	assert.Equal(t, ResultError, rec.LastResult().Status)
}

func TestRunner_TriggerNoBloquea(t *testing.T) {
	record := &fakeRecordStore{}
	rec, _ := newTestReconciler(t, record)
	runner := NewRunner(rec, time.Hour)

	// Disparos repetidos se funden sin bloquear al llamador.
	runner.Trigger()
	runner.Trigger()
	runner.Trigger()
}

func TestRunner_IntervaloCeroSoloManual(t *testing.T) {
	record := &fakeRecordStore{pushC: make(chan struct{}, 1)}
	rec, _ := newTestReconciler(t, record)
	runner := NewRunner(rec, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// SYNC_INTERVAL_SECONDS=0 desactiva el ticker; el disparo manual sigue vivo.
	runner.Start(ctx)
	runner.Trigger()

	select {
	case <-record.pushC:
	case <-time.After(2 * time.Second):
		t.Fatal("el disparo manual no produjo un push")
	}
}
