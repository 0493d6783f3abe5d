// Package cache provee un caché de lectura con TTL explícito.
//
// Los servicios reciben un Store por inyección en lugar de depender de un
// singleton a nivel de módulo; la invalidación es una llamada explícita.
package cache

import (
	"context"
	"time"
)

type Store interface {
	// Get deserializa el valor en dest y reporta si la clave existía y estaba vigente.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}
