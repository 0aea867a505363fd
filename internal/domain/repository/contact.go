package repository

import (
	"context"
	"time"
)

// ContactQuery representa una consulta del formulario de contacto.
type ContactQuery struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Message   string
	CreatedAt time.Time
}

// CreateContactInput datos del formulario público.
type CreateContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// ContactRepository define operaciones sobre consultas de contacto.
type ContactRepository interface {
	Create(ctx context.Context, input CreateContactInput) (*ContactQuery, error)

	// List lista todas las consultas (admin), más recientes primero.
	List(ctx context.Context) ([]ContactQuery, error)
}
