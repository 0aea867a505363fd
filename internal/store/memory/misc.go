package memory

import (
	"context"
	"sort"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
)

// Repos chicos: partners, testimonials, contacts.

type partnerRow struct {
	p repository.PartnerApplication
}

type partnerRepo struct{ s *Store }

// Partners retorna el repositorio de solicitudes de partner.
func (s *Store) Partners() repository.PartnerRepository { return &partnerRepo{s: s} }

func (r *partnerRepo) Create(ctx context.Context, input repository.CreatePartnerInput) (*repository.PartnerApplication, error) {
	if input.Name == "" || input.Email == "" {
		return nil, repository.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ts := now()
	p := repository.PartnerApplication{
		ID:         newID(),
		Name:       input.Name,
		Email:      normEmail(input.Email),
		Phone:      input.Phone,
		City:       input.City,
		Experience: input.Experience,
		Message:    input.Message,
		Status:     repository.PartnerPending,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	r.s.partners[p.ID] = &partnerRow{p: p}
	out := p
	return &out, nil
}

func (r *partnerRepo) List(ctx context.Context) ([]repository.PartnerApplication, error) {
	r.s.mu.RLock()
	var out []repository.PartnerApplication
	for _, row := range r.s.partners {
		out = append(out, row.p)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *partnerRepo) UpdateStatus(ctx context.Context, id, status string) (*repository.PartnerApplication, error) {
	switch status {
	case repository.PartnerPending, repository.PartnerApproved, repository.PartnerRejected:
	default:
		return nil, repository.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.partners[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row.p.Status = status
	row.p.UpdatedAt = now()
	p := row.p
	return &p, nil
}

type testimonialRow struct {
	t repository.Testimonial
}

type testimonialRepo struct{ s *Store }

// Testimonials retorna el repositorio de testimonios.
func (s *Store) Testimonials() repository.TestimonialRepository { return &testimonialRepo{s: s} }

func (r *testimonialRepo) Create(ctx context.Context, input repository.CreateTestimonialInput) (*repository.Testimonial, error) {
	if input.UserID == "" || input.Rating < 1 || input.Rating > 5 {
		return nil, repository.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ts := now()
	t := repository.Testimonial{
		ID:        newID(),
		UserID:    input.UserID,
		Author:    input.Author,
		Rating:    input.Rating,
		Content:   input.Content,
		Status:    repository.TestimonialPending,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	r.s.testimonials[t.ID] = &testimonialRow{t: t}
	out := t
	return &out, nil
}

func (r *testimonialRepo) ListApproved(ctx context.Context) ([]repository.Testimonial, error) {
	r.s.mu.RLock()
	var out []repository.Testimonial
	for _, row := range r.s.testimonials {
		if row.t.Status == repository.TestimonialApproved {
			out = append(out, row.t)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *testimonialRepo) List(ctx context.Context) ([]repository.Testimonial, error) {
	r.s.mu.RLock()
	var out []repository.Testimonial
	for _, row := range r.s.testimonials {
		out = append(out, row.t)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *testimonialRepo) UpdateStatus(ctx context.Context, id, status string) (*repository.Testimonial, error) {
	switch status {
	case repository.TestimonialPending, repository.TestimonialApproved, repository.TestimonialRejected:
	default:
		return nil, repository.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.testimonials[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row.t.Status = status
	row.t.UpdatedAt = now()
	t := row.t
	return &t, nil
}

type contactRow struct {
	c repository.ContactQuery
}

type contactRepo struct{ s *Store }

// Contacts retorna el repositorio de consultas de contacto.
func (s *Store) Contacts() repository.ContactRepository { return &contactRepo{s: s} }

func (r *contactRepo) Create(ctx context.Context, input repository.CreateContactInput) (*repository.ContactQuery, error) {
	if input.Name == "" || input.Message == "" {
		return nil, repository.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := repository.ContactQuery{
		ID:        newID(),
		Name:      input.Name,
		Email:     normEmail(input.Email),
		Phone:     input.Phone,
		Message:   input.Message,
		CreatedAt: now(),
	}
	r.s.contacts[c.ID] = &contactRow{c: c}
	out := c
	return &out, nil
}

func (r *contactRepo) List(ctx context.Context) ([]repository.ContactQuery, error) {
	r.s.mu.RLock()
	var out []repository.ContactQuery
	for _, row := range r.s.contacts {
		out = append(out, row.c)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
