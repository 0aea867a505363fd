package pg

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
)

type orderRepo struct{ s *Store }

// Orders retorna el repositorio de órdenes.
func (s *Store) Orders() repository.OrderRepository { return &orderRepo{s: s} }

// Los items se guardan como JSONB: son un snapshot inmutable al momento de
// la compra, no filas que se consulten por separado.
const orderCols = `id, user_id, items, total, status, payment_mode, payment_ref, shipping_name, shipping_phone, shipping_address, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*repository.Order, error) {
	var o repository.Order
	var items []byte
	var payRef *string
	err := row.Scan(
		&o.ID, &o.UserID, &items, &o.Total, &o.Status, &o.PaymentMode, &payRef,
		&o.ShippingName, &o.ShippingPhone, &o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	o.PaymentRef = deref(payRef)
	return &o, nil
}

func (r *orderRepo) Create(ctx context.Context, input repository.CreateOrderInput) (*repository.Order, error) {
	if input.UserID == "" || len(input.Items) == 0 {
		return nil, repository.ErrInvalidInput
	}
	items, err := json.Marshal(input.Items)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO app_order (id, user_id, items, total, status, payment_mode, payment_ref, shipping_name, shipping_phone, shipping_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'pending', $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + orderCols
	return scanOrder(r.s.pool.QueryRow(ctx, q,
		uuid.NewString(), input.UserID, items, input.Total, input.PaymentMode,
		nullIfEmpty(input.PaymentRef), input.ShippingName, input.ShippingPhone, input.ShippingAddress,
	))
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*repository.Order, error) {
	const q = `SELECT ` + orderCols + ` FROM app_order WHERE id = $1`
	return scanOrder(r.s.pool.QueryRow(ctx, q, id))
}

func (r *orderRepo) list(ctx context.Context, q string, args ...any) ([]repository.Order, error) {
	rows, err := r.s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []repository.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]repository.Order, error) {
	const q = `SELECT ` + orderCols + ` FROM app_order WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, userID)
}

func (r *orderRepo) List(ctx context.Context) ([]repository.Order, error) {
	const q = `SELECT ` + orderCols + ` FROM app_order ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id, status string) (*repository.Order, error) {
	switch status {
	case repository.OrderPending, repository.OrderConfirmed, repository.OrderShipped,
		repository.OrderDelivered, repository.OrderCancelled:
	default:
		return nil, repository.ErrInvalidInput
	}
	const q = `
		UPDATE app_order SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + orderCols
	return scanOrder(r.s.pool.QueryRow(ctx, q, id, status))
}
