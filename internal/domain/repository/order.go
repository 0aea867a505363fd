package repository

import (
	"context"
	"time"
)

// Estados de una orden. Flujo normal: pending → confirmed → shipped →
// delivered. Cancelled puede aplicarse desde cualquier estado no terminal.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Modos de pago. No hay integración con gateway: "online" solo guarda una
// referencia opaca que carga el frontend.
const (
	PaymentCOD    = "cod"
	PaymentOnline = "online"
)

// OrderItem es un renglón de la orden: snapshot del producto al momento de
// la compra (el título y precio no cambian si el catálogo cambia después).
type OrderItem struct {
	ProductID string
	Title     string
	Price     int64 // paise, al momento de la compra
	Quantity  int
}

// Order representa un pedido de productos.
type Order struct {
	ID              string
	UserID          string
	Items           []OrderItem
	Total           int64 // paise
	Status          string
	PaymentMode     string
	PaymentRef      string
	ShippingName    string
	ShippingPhone   string
	ShippingAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateOrderInput datos para crear una orden.
type CreateOrderInput struct {
	UserID          string
	Items           []OrderItem
	Total           int64
	PaymentMode     string
	PaymentRef      string
	ShippingName    string
	ShippingPhone   string
	ShippingAddress string
}

// OrderRepository define operaciones sobre órdenes.
type OrderRepository interface {
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)

	// GetByID retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Order, error)

	// ListByUser lista las órdenes de un usuario, más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]Order, error)

	// List lista todas las órdenes (admin), más recientes primero.
	List(ctx context.Context) ([]Order, error)

	// UpdateStatus retorna ErrNotFound si no existe, ErrInvalidInput si el
	// status no es uno de los conocidos.
	UpdateStatus(ctx context.Context, id, status string) (*Order, error)
}
