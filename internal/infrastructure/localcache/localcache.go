// Package localcache implementa el caché local durable sobre Redis: una réplica
// del último snapshot conocido de usuarios, clientes, paquetes y notificaciones.
// Cada colección se guarda como un documento JSON bajo una clave fija. El caché
// es la copia autoritativa mientras el Record Store esté inaccesible.
package localcache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/sm-global/express-api/internal/domain/repository"
)

// Claves de las colecciones persistidas.
const (
	keyUsers         = "users"
	keyCustomers     = "customers"
	keyParcels       = "parcels"
	keyNotifications = "notifications"
)

// core comparte el cliente Redis y el candado entre las vistas por entidad.
// El mutex serializa los ciclos leer-modificar-escribir: el modelo es de un solo
// escritor por cliente, sin mutación concurrente del mismo registro.
type core struct {
	c  *redis.Client
	mu sync.Mutex
}

// Store agrupa las vistas tipadas del caché local, una por entidad.
type Store struct {
	core          *core
	Users         *UserCache
	Customers     *CustomerCache
	Parcels       *ParcelCache
	Notifications *NotificationCache
}

// Interfaces implementadas (verificación en compilación).
var (
	_ repository.UserStore         = (*UserCache)(nil)
	_ repository.CustomerStore     = (*CustomerCache)(nil)
	_ repository.ParcelStore       = (*ParcelCache)(nil)
	_ repository.NotificationStore = (*NotificationCache)(nil)
)

// New construye el caché local contra la dirección Redis dada.
func New(addr string) *Store {
	co := &core{
		c: redis.NewClient(&redis.Options{Addr: addr}),
	}
	return &Store{
		core:          co,
		Users:         &UserCache{co},
		Customers:     &CustomerCache{co},
		Parcels:       &ParcelCache{co},
		Notifications: &NotificationCache{co},
	}
}

// Close cierra la conexión con Redis.
func (s *Store) Close() error {
	return s.core.c.Close()
}

// getJSON deserializa la colección bajo key en dest. Clave ausente = colección vacía.
func (co *core) getJSON(ctx context.Context, key string, dest any) error {
	val, err := co.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("cache decode %s: %w", key, err)
	}
	return nil
}

// setJSON serializa y persiste la colección bajo key, sin TTL (snapshot durable).
func (co *core) setJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := co.c.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
