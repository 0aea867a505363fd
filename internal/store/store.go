// Package store expone el acceso a datos de Ergiva detrás de una interfaz
// única. Drivers disponibles: "postgres" (pgxpool) y "memory" (dev/test).
package store

import (
	"context"
	"fmt"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
)

// Store agrupa los repositorios del dominio.
type Store interface {
	Users() repository.UserRepository
	Products() repository.ProductRepository
	Orders() repository.OrderRepository
	Sessions() repository.SessionRepository
	Partners() repository.PartnerRepository
	Testimonials() repository.TestimonialRepository
	Contacts() repository.ContactRepository

	// Ping verifica la conexión al backend.
	Ping(ctx context.Context) error

	// Close libera recursos (pool de conexiones).
	Close()
}

// Config selecciona y configura el driver.
type Config struct {
	Driver string // "postgres" | "memory"
	DSN    string // solo postgres
}

// Opener abre un Store concreto. Los drivers se registran en init().
type Opener func(ctx context.Context, cfg Config) (Store, error)

var openers = map[string]Opener{}

// Register registra un driver por nombre. Llamado desde init() de cada driver.
func Register(name string, open Opener) {
	openers[name] = open
}

// Open abre el Store según cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	open, ok := openers[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("store: driver desconocido %q", cfg.Driver)
	}
	return open(ctx, cfg)
}
