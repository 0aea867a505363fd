package repository

import (
	"context"
	"time"
)

// Product representa un producto del catálogo (equipos de fisioterapia,
// soportes, consumibles). Los precios se guardan en paise para evitar
// aritmética de punto flotante.
type Product struct {
	ID            string
	Title         string
	Description   string
	Price         int64 // paise
	OriginalPrice int64 // paise, 0 = sin descuento
	Category      string
	ImageURL      string
	InStock       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductFilter opciones para listar productos.
type ProductFilter struct {
	Category string // "" = todas
	Limit    int    // default 50, max 200
	Offset   int
}

// CreateProductInput datos para crear un producto.
type CreateProductInput struct {
	Title         string
	Description   string
	Price         int64
	OriginalPrice int64
	Category      string
	ImageURL      string
	InStock       bool
}

// UpdateProductInput campos actualizables de un producto (nil = no tocar).
type UpdateProductInput struct {
	Title         *string
	Description   *string
	Price         *int64
	OriginalPrice *int64
	Category      *string
	ImageURL      *string
	InStock       *bool
}

// ProductRepository define operaciones sobre el catálogo.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]Product, error)

	// GetByID retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Product, error)

	Create(ctx context.Context, input CreateProductInput) (*Product, error)

	// Update retorna ErrNotFound si no existe.
	Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error)

	// Delete retorna ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
}
