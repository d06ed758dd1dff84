package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	gosync "sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sm-global/express-api/internal/domain/entity"
	"github.com/sm-global/express-api/internal/domain/repository"
	"github.com/sm-global/express-api/pkg/logger"
)

// Resultados de un ciclo de sincronización.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultPending = "pending"
)

// ErrRecordStoreUnavailable indica que la aplicación corre sin Record Store
// (modo solo caché) y el ciclo no puede ejecutarse.
var ErrRecordStoreUnavailable = errors.New("record store no disponible")

// Result es el estado del último ciclo, servido al panel vía /api/sync/status.
type Result struct {
	Status string    `json:"status"`
	Error  string    `json:"error,omitempty"`
	At     time.Time `json:"at"`
}

// Reconciler empuja el snapshot local al Record Store y rehidrata el caché.
// El caché local es la copia autoritativa para lecturas y mutaciones; el push
// replica, nunca decide.
type Reconciler struct {
	users     repository.UserStore
	customers repository.CustomerStore
	parcels   repository.ParcelStore
	record    RecordStore
	log       *logger.Logger

	mu   gosync.Mutex
	last Result
}

// NewReconciler construye el reconciliador.
func NewReconciler(
	users repository.UserStore,
	customers repository.CustomerStore,
	parcels repository.ParcelStore,
	record RecordStore,
	log *logger.Logger,
) *Reconciler {
	return &Reconciler{
		users:     users,
		customers: customers,
		parcels:   parcels,
		record:    record,
		log:       log,
		last:      Result{Status: ResultPending},
	}
}

// LastResult devuelve el resultado del último ciclo de push.
func (r *Reconciler) LastResult() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *Reconciler) setResult(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.last = Result{Status: ResultError, Error: err.Error(), At: time.Now()}
		return
	}
	r.last = Result{Status: ResultSuccess, At: time.Now()}
}

// Bootstrap prepara el estado inicial: si el caché no tiene usuarios carga la
// semilla, y luego intenta rehidratar desde el Record Store. Un Record Store
// inaccesible no es fatal: el caché (o la semilla) queda como autoritativo.
func (r *Reconciler) Bootstrap(ctx context.Context) error {
	users, err := r.users.List(ctx)
	if err != nil {
		return fmt.Errorf("leer caché de usuarios: %w", err)
	}
	if len(users) == 0 {
		r.log.Info().Msg("caché vacío, cargando datos semilla")
		if err := r.users.Replace(ctx, seedUsers()); err != nil {
			return err
		}
		if err := r.customers.Replace(ctx, seedCustomers()); err != nil {
			return err
		}
		if err := r.parcels.Replace(ctx, seedParcels()); err != nil {
			return err
		}
	}

	if err := r.Pull(ctx); err != nil {
		r.log.Warn().Err(err).Msg("pull inicial fallido, el caché local queda como autoritativo")
	}
	return nil
}

// Pull rehidrata el caché con el contenido del Record Store.
// Una colección remota vacía nunca reemplaza una local con datos.
func (r *Reconciler) Pull(ctx context.Context) error {
	if r.record == nil {
		return ErrRecordStoreUnavailable
	}
	snap, err := r.record.Pull(ctx)
	if err != nil {
		return fmt.Errorf("pull: %w", err)
	}

	if len(snap.Users) > 0 {
		if err := r.users.Replace(ctx, snap.Users); err != nil {
			return err
		}
	}
	if len(snap.Customers) > 0 {
		if err := r.customers.Replace(ctx, snap.Customers); err != nil {
			return err
		}
	}
	if len(snap.Parcels) > 0 {
		if err := r.parcels.Replace(ctx, snap.Parcels); err != nil {
			return err
		}
	}

	r.log.Info().
		Int("usuarios", len(snap.Users)).
		Int("clientes", len(snap.Customers)).
		Int("paquetes", len(snap.Parcels)).
		Msg("caché rehidratado desde el Record Store")
	return nil
}

// Push replica el snapshot local completo en el Record Store dentro de una
// transacción. Las contraseñas sin hashear se protegen con bcrypt antes de
// salir del proceso; el caché local no se modifica.
func (r *Reconciler) Push(ctx context.Context) error {
	err := r.push(ctx)
	r.setResult(err)
	return err
}

func (r *Reconciler) push(ctx context.Context) error {
	if r.record == nil {
		return ErrRecordStoreUnavailable
	}
	users, err := r.users.List(ctx)
	if err != nil {
		return err
	}
	customers, err := r.customers.List(ctx)
	if err != nil {
		return err
	}
	parcels, err := r.parcels.List(ctx)
	if err != nil {
		return err
	}

	hashed, err := hashPasswords(users)
	if err != nil {
		return err
	}

	snap := &Snapshot{Users: hashed, Customers: customers, Parcels: parcels}
	if err := r.record.Push(ctx, snap); err != nil {
		return err
	}

	r.log.Debug().
		Int("usuarios", len(users)).
		Int("clientes", len(customers)).
		Int("paquetes", len(parcels)).
		Msg("snapshot replicado en el Record Store")
	return nil
}

// hashPasswords devuelve copias de los usuarios con la contraseña protegida.
// Los valores que ya son hashes bcrypt (prefijo $2) pasan sin tocar.
func hashPasswords(users []*entity.User) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(users))
	for _, u := range users {
		if strings.HasPrefix(u.PasswordHash, "$2") {
			out = append(out, u)
			continue
		}
		cp := *u
		raw, err := bcrypt.GenerateFromPassword([]byte(u.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashear contraseña de %s: %w", u.Email, err)
		}
		cp.PasswordHash = string(raw)
		out = append(out, &cp)
	}
	return out, nil
}
