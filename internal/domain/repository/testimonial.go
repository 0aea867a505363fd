package repository

import (
	"context"
	"time"
)

// Estados de un testimonio. Solo los aprobados son visibles públicamente.
const (
	TestimonialPending  = "pending"
	TestimonialApproved = "approved"
	TestimonialRejected = "rejected"
)

// Testimonial representa una reseña de un usuario.
type Testimonial struct {
	ID        string
	UserID    string
	Author    string // nombre mostrado
	Rating    int    // 1..5
	Content   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateTestimonialInput datos para crear un testimonio (queda pending).
type CreateTestimonialInput struct {
	UserID  string
	Author  string
	Rating  int
	Content string
}

// TestimonialRepository define operaciones sobre testimonios.
type TestimonialRepository interface {
	Create(ctx context.Context, input CreateTestimonialInput) (*Testimonial, error)

	// ListApproved lista los testimonios aprobados, más recientes primero.
	ListApproved(ctx context.Context) ([]Testimonial, error)

	// List lista todos los testimonios (admin), más recientes primero.
	List(ctx context.Context) ([]Testimonial, error)

	// UpdateStatus retorna ErrNotFound si no existe, ErrInvalidInput si el
	// status no es uno de los conocidos.
	UpdateStatus(ctx context.Context, id, status string) (*Testimonial, error)
}
