package repository

import (
	"context"
	"time"
)

// Estados de una solicitud de partner (fisioterapeutas/clínicas que aplican
// a la red).
const (
	PartnerPending  = "pending"
	PartnerApproved = "approved"
	PartnerRejected = "rejected"
)

// PartnerApplication representa una solicitud para unirse a la red Ergiva.
type PartnerApplication struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	City       string
	Experience string // años de experiencia / especialidad, texto libre
	Message    string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreatePartnerInput datos de la solicitud pública.
type CreatePartnerInput struct {
	Name       string
	Email      string
	Phone      string
	City       string
	Experience string
	Message    string
}

// PartnerRepository define operaciones sobre solicitudes de partner.
type PartnerRepository interface {
	Create(ctx context.Context, input CreatePartnerInput) (*PartnerApplication, error)

	// List lista todas las solicitudes (admin), más recientes primero.
	List(ctx context.Context) ([]PartnerApplication, error)

	// UpdateStatus retorna ErrNotFound si no existe, ErrInvalidInput si el
	// status no es uno de los conocidos.
	UpdateStatus(ctx context.Context, id, status string) (*PartnerApplication, error)
}
