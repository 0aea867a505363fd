package memory

import (
	"context"
	"sort"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
)

type productRow struct {
	p repository.Product
}

type productRepo struct{ s *Store }

// Products retorna el repositorio del catálogo.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

func (r *productRepo) List(ctx context.Context, filter repository.ProductFilter) ([]repository.Product, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	r.s.mu.RLock()
	var all []repository.Product
	for _, row := range r.s.products {
		if filter.Category != "" && row.p.Category != filter.Category {
			continue
		}
		all = append(all, row.p)
	}
	r.s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if filter.Offset >= len(all) {
		return []repository.Product{}, nil
	}
	all = all[filter.Offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*repository.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := row.p
	return &p, nil
}

func (r *productRepo) Create(ctx context.Context, input repository.CreateProductInput) (*repository.Product, error) {
	if input.Title == "" || input.Price < 0 {
		return nil, repository.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ts := now()
	p := repository.Product{
		ID:            newID(),
		Title:         input.Title,
		Description:   input.Description,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Category:      input.Category,
		ImageURL:      input.ImageURL,
		InStock:       input.InStock,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
	r.s.products[p.ID] = &productRow{p: p}
	out := p
	return &out, nil
}

func (r *productRepo) Update(ctx context.Context, id string, input repository.UpdateProductInput) (*repository.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if input.Title != nil {
		row.p.Title = *input.Title
	}
	if input.Description != nil {
		row.p.Description = *input.Description
	}
	if input.Price != nil {
		row.p.Price = *input.Price
	}
	if input.OriginalPrice != nil {
		row.p.OriginalPrice = *input.OriginalPrice
	}
	if input.Category != nil {
		row.p.Category = *input.Category
	}
	if input.ImageURL != nil {
		row.p.ImageURL = *input.ImageURL
	}
	if input.InStock != nil {
		row.p.InStock = *input.InStock
	}
	row.p.UpdatedAt = now()
	p := row.p
	return &p, nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}
