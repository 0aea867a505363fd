package pg

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
)

// Repos chicos: partners, testimonials, contacts.

type partnerRepo struct{ s *Store }

// Partners retorna el repositorio de solicitudes de partner.
func (s *Store) Partners() repository.PartnerRepository { return &partnerRepo{s: s} }

const partnerCols = `id, name, email, phone, city, experience, message, status, created_at, updated_at`

func scanPartner(row interface{ Scan(...any) error }) (*repository.PartnerApplication, error) {
	var p repository.PartnerApplication
	var phone, city, experience, message *string
	err := row.Scan(&p.ID, &p.Name, &p.Email, &phone, &city, &experience, &message,
		&p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	p.Phone = deref(phone)
	p.City = deref(city)
	p.Experience = deref(experience)
	p.Message = deref(message)
	return &p, nil
}

func (r *partnerRepo) Create(ctx context.Context, input repository.CreatePartnerInput) (*repository.PartnerApplication, error) {
	if input.Name == "" || input.Email == "" {
		return nil, repository.ErrInvalidInput
	}
	const q = `
		INSERT INTO partner_application (id, name, email, phone, city, experience, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending', NOW(), NOW())
		RETURNING ` + partnerCols
	return scanPartner(r.s.pool.QueryRow(ctx, q,
		uuid.NewString(), input.Name, strings.ToLower(strings.TrimSpace(input.Email)),
		nullIfEmpty(input.Phone), nullIfEmpty(input.City), nullIfEmpty(input.Experience), nullIfEmpty(input.Message),
	))
}

func (r *partnerRepo) List(ctx context.Context) ([]repository.PartnerApplication, error) {
	const q = `SELECT ` + partnerCols + ` FROM partner_application ORDER BY created_at DESC`
	rows, err := r.s.pool.Query(ctx, q)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	out := []repository.PartnerApplication{}
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *partnerRepo) UpdateStatus(ctx context.Context, id, status string) (*repository.PartnerApplication, error) {
	switch status {
	case repository.PartnerPending, repository.PartnerApproved, repository.PartnerRejected:
	default:
		return nil, repository.ErrInvalidInput
	}
	const q = `
		UPDATE partner_application SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + partnerCols
	return scanPartner(r.s.pool.QueryRow(ctx, q, id, status))
}

type testimonialRepo struct{ s *Store }

// Testimonials retorna el repositorio de testimonios.
func (s *Store) Testimonials() repository.TestimonialRepository { return &testimonialRepo{s: s} }

const testimonialCols = `id, user_id, author, rating, content, status, created_at, updated_at`

func scanTestimonial(row interface{ Scan(...any) error }) (*repository.Testimonial, error) {
	var t repository.Testimonial
	err := row.Scan(&t.ID, &t.UserID, &t.Author, &t.Rating, &t.Content,
		&t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r *testimonialRepo) Create(ctx context.Context, input repository.CreateTestimonialInput) (*repository.Testimonial, error) {
	if input.UserID == "" || input.Rating < 1 || input.Rating > 5 {
		return nil, repository.ErrInvalidInput
	}
	const q = `
		INSERT INTO testimonial (id, user_id, author, rating, content, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'pending', NOW(), NOW())
		RETURNING ` + testimonialCols
	return scanTestimonial(r.s.pool.QueryRow(ctx, q,
		uuid.NewString(), input.UserID, input.Author, input.Rating, input.Content,
	))
}

func (r *testimonialRepo) listWhere(ctx context.Context, q string, args ...any) ([]repository.Testimonial, error) {
	rows, err := r.s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	out := []repository.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *testimonialRepo) ListApproved(ctx context.Context) ([]repository.Testimonial, error) {
	const q = `SELECT ` + testimonialCols + ` FROM testimonial WHERE status = 'approved' ORDER BY created_at DESC`
	return r.listWhere(ctx, q)
}

func (r *testimonialRepo) List(ctx context.Context) ([]repository.Testimonial, error) {
	const q = `SELECT ` + testimonialCols + ` FROM testimonial ORDER BY created_at DESC`
	return r.listWhere(ctx, q)
}

func (r *testimonialRepo) UpdateStatus(ctx context.Context, id, status string) (*repository.Testimonial, error) {
	switch status {
	case repository.TestimonialPending, repository.TestimonialApproved, repository.TestimonialRejected:
	default:
		return nil, repository.ErrInvalidInput
	}
	const q = `
		UPDATE testimonial SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + testimonialCols
	return scanTestimonial(r.s.pool.QueryRow(ctx, q, id, status))
}

type contactRepo struct{ s *Store }

// Contacts retorna el repositorio de consultas de contacto.
func (s *Store) Contacts() repository.ContactRepository { return &contactRepo{s: s} }

const contactCols = `id, name, email, phone, message, created_at`

func (r *contactRepo) Create(ctx context.Context, input repository.CreateContactInput) (*repository.ContactQuery, error) {
	if input.Name == "" || input.Message == "" {
		return nil, repository.ErrInvalidInput
	}
	const q = `
		INSERT INTO contact_query (id, name, email, phone, message, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING ` + contactCols
	var c repository.ContactQuery
	var email, phone *string
	err := r.s.pool.QueryRow(ctx, q,
		uuid.NewString(), input.Name, nullIfEmpty(strings.ToLower(strings.TrimSpace(input.Email))),
		nullIfEmpty(input.Phone), input.Message,
	).Scan(&c.ID, &c.Name, &email, &phone, &c.Message, &c.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	c.Email = deref(email)
	c.Phone = deref(phone)
	return &c, nil
}

func (r *contactRepo) List(ctx context.Context) ([]repository.ContactQuery, error) {
	const q = `SELECT ` + contactCols + ` FROM contact_query ORDER BY created_at DESC`
	rows, err := r.s.pool.Query(ctx, q)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	out := []repository.ContactQuery{}
	for rows.Next() {
		var c repository.ContactQuery
		var email, phone *string
		if err := rows.Scan(&c.ID, &c.Name, &email, &phone, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Email = deref(email)
		c.Phone = deref(phone)
		out = append(out, c)
	}
	return out, rows.Err()
}
