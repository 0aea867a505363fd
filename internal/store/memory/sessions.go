package memory

import (
	"context"
	"sort"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
)

type sessionRow struct {
	b repository.Session
}

type sessionRepo struct{ s *Store }

// Sessions retorna el repositorio de reservas de sesiones.
func (s *Store) Sessions() repository.SessionRepository { return &sessionRepo{s: s} }

func validSessionStatus(st string) bool {
	switch st {
	case repository.SessionRequested, repository.SessionConfirmed,
		repository.SessionCompleted, repository.SessionCancelled:
		return true
	}
	return false
}

func (r *sessionRepo) Create(ctx context.Context, input repository.CreateSessionInput) (*repository.Session, error) {
	if input.UserID == "" || input.PatientName == "" || input.Address == "" {
		return nil, repository.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ts := now()
	b := repository.Session{
		ID:            newID(),
		UserID:        input.UserID,
		PatientName:   input.PatientName,
		Phone:         input.Phone,
		Address:       input.Address,
		Condition:     input.Condition,
		PreferredDate: input.PreferredDate,
		Slot:          input.Slot,
		Status:        repository.SessionRequested,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
	r.s.sessions[b.ID] = &sessionRow{b: b}
	out := b
	return &out, nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*repository.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b := row.b
	return &b, nil
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID string) ([]repository.Session, error) {
	r.s.mu.RLock()
	var out []repository.Session
	for _, row := range r.s.sessions {
		if row.b.UserID == userID {
			out = append(out, row.b)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *sessionRepo) List(ctx context.Context) ([]repository.Session, error) {
	r.s.mu.RLock()
	var out []repository.Session
	for _, row := range r.s.sessions {
		out = append(out, row.b)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *sessionRepo) UpdateStatus(ctx context.Context, id, status string) (*repository.Session, error) {
	if !validSessionStatus(status) {
		return nil, repository.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row.b.Status = status
	row.b.UpdatedAt = now()
	b := row.b
	return &b, nil
}
