package memory

import (
	"context"
	"sort"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
)

type orderRow struct {
	o repository.Order
}

type orderRepo struct{ s *Store }

// Orders retorna el repositorio de órdenes.
func (s *Store) Orders() repository.OrderRepository { return &orderRepo{s: s} }

func validOrderStatus(st string) bool {
	switch st {
	case repository.OrderPending, repository.OrderConfirmed, repository.OrderShipped,
		repository.OrderDelivered, repository.OrderCancelled:
		return true
	}
	return false
}

func (r *orderRepo) Create(ctx context.Context, input repository.CreateOrderInput) (*repository.Order, error) {
	if input.UserID == "" || len(input.Items) == 0 {
		return nil, repository.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ts := now()
	o := repository.Order{
		ID:              newID(),
		UserID:          input.UserID,
		Items:           append([]repository.OrderItem(nil), input.Items...),
		Total:           input.Total,
		Status:          repository.OrderPending,
		PaymentMode:     input.PaymentMode,
		PaymentRef:      input.PaymentRef,
		ShippingName:    input.ShippingName,
		ShippingPhone:   input.ShippingPhone,
		ShippingAddress: input.ShippingAddress,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	r.s.orders[o.ID] = &orderRow{o: o}
	out := o
	return &out, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*repository.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o := row.o
	return &o, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]repository.Order, error) {
	r.s.mu.RLock()
	var out []repository.Order
	for _, row := range r.s.orders {
		if row.o.UserID == userID {
			out = append(out, row.o)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *orderRepo) List(ctx context.Context) ([]repository.Order, error) {
	r.s.mu.RLock()
	var out []repository.Order
	for _, row := range r.s.orders {
		out = append(out, row.o)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id, status string) (*repository.Order, error) {
	if !validOrderStatus(status) {
		return nil, repository.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row.o.Status = status
	row.o.UpdatedAt = now()
	o := row.o
	return &o, nil
}
