// Package memory implementa store.Store en memoria.
//
// Se usa para desarrollo y tests. Respeta los mismos contratos que el driver
// postgres: errores sentinela y unicidad de email/google_id (acá con mutex;
// en postgres con constraints).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ergiva/ergiva-server/internal/store"
)

func init() {
	store.Register("memory", func(ctx context.Context, cfg store.Config) (store.Store, error) {
		return New(), nil
	})
}

// Store implementa store.Store sobre maps protegidos por un mutex.
type Store struct {
	mu           sync.RWMutex
	users        map[string]*userRow
	products     map[string]*productRow
	orders       map[string]*orderRow
	sessions     map[string]*sessionRow
	partners     map[string]*partnerRow
	testimonials map[string]*testimonialRow
	contacts     map[string]*contactRow
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		users:        make(map[string]*userRow),
		products:     make(map[string]*productRow),
		orders:       make(map[string]*orderRow),
		sessions:     make(map[string]*sessionRow),
		partners:     make(map[string]*partnerRow),
		testimonials: make(map[string]*testimonialRow),
		contacts:     make(map[string]*contactRow),
	}
}

func (s *Store) Ping(ctx context.Context) error { return nil }
func (s *Store) Close()                         {}

func newID() string { return uuid.NewString() }

func now() time.Time { return time.Now().UTC() }
