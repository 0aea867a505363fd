package pg

import (
	"context"

	"github.com/google/uuid"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
)

type productRepo struct{ s *Store }

// Products retorna el repositorio del catálogo.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

const productCols = `id, title, description, price, original_price, category, image_url, in_stock, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*repository.Product, error) {
	var p repository.Product
	var desc, category, imageURL *string
	err := row.Scan(
		&p.ID, &p.Title, &desc, &p.Price, &p.OriginalPrice, &category,
		&imageURL, &p.InStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	p.Description = deref(desc)
	p.Category = deref(category)
	p.ImageURL = deref(imageURL)
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, filter repository.ProductFilter) ([]repository.Product, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	const q = `
		SELECT ` + productCols + ` FROM product
		WHERE ($1 = '' OR category = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.s.pool.Query(ctx, q, filter.Category, limit, filter.Offset)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []repository.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*repository.Product, error) {
	const q = `SELECT ` + productCols + ` FROM product WHERE id = $1`
	return scanProduct(r.s.pool.QueryRow(ctx, q, id))
}

func (r *productRepo) Create(ctx context.Context, input repository.CreateProductInput) (*repository.Product, error) {
	if input.Title == "" || input.Price < 0 {
		return nil, repository.ErrInvalidInput
	}
	const q = `
		INSERT INTO product (id, title, description, price, original_price, category, image_url, in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + productCols
	return scanProduct(r.s.pool.QueryRow(ctx, q,
		uuid.NewString(), input.Title, nullIfEmpty(input.Description), input.Price,
		input.OriginalPrice, nullIfEmpty(input.Category), nullIfEmpty(input.ImageURL), input.InStock,
	))
}

func (r *productRepo) Update(ctx context.Context, id string, input repository.UpdateProductInput) (*repository.Product, error) {
	const q = `
		UPDATE product
		SET title          = COALESCE($2, title),
		    description    = COALESCE($3, description),
		    price          = COALESCE($4, price),
		    original_price = COALESCE($5, original_price),
		    category       = COALESCE($6, category),
		    image_url      = COALESCE($7, image_url),
		    in_stock       = COALESCE($8, in_stock),
		    updated_at     = NOW()
		WHERE id = $1
		RETURNING ` + productCols
	return scanProduct(r.s.pool.QueryRow(ctx, q, id,
		input.Title, input.Description, input.Price, input.OriginalPrice,
		input.Category, input.ImageURL, input.InStock,
	))
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.s.pool.Exec(ctx, `DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
