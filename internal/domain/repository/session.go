package repository

import (
	"context"
	"time"
)

// Estados de una sesión de fisioterapia a domicilio.
const (
	SessionRequested = "requested"
	SessionConfirmed = "confirmed"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// Session representa una reserva de sesión de fisioterapia a domicilio.
type Session struct {
	ID            string
	UserID        string
	PatientName   string
	Phone         string
	Address       string
	Condition     string // nota libre: qué hay que tratar
	PreferredDate time.Time
	Slot          string // "morning" | "afternoon" | "evening"
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateSessionInput datos para reservar una sesión.
type CreateSessionInput struct {
	UserID        string
	PatientName   string
	Phone         string
	Address       string
	Condition     string
	PreferredDate time.Time
	Slot          string
}

// SessionRepository define operaciones sobre reservas de sesiones.
type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) (*Session, error)

	// GetByID retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Session, error)

	// ListByUser lista las reservas de un usuario, más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]Session, error)

	// List lista todas las reservas (admin), más recientes primero.
	List(ctx context.Context) ([]Session, error)

	// UpdateStatus retorna ErrNotFound si no existe, ErrInvalidInput si el
	// status no es uno de los conocidos.
	UpdateStatus(ctx context.Context, id, status string) (*Session, error)
}
