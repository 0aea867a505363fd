package memory

import (
	"context"
	"strings"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
)

type userRow struct {
	u repository.User
}

type userRepo struct{ s *Store }

// Users retorna el repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

func normEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func (r *userRepo) GetByGoogleID(ctx context.Context, googleID string) (*repository.User, error) {
	if googleID == "" {
		return nil, repository.ErrNotFound
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, row := range r.s.users {
		if row.u.GoogleID == googleID {
			u := row.u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	email = normEmail(email)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, row := range r.s.users {
		if row.u.Email == email {
			u := row.u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := row.u
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	email := normEmail(input.Email)
	if email == "" {
		return nil, repository.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, row := range r.s.users {
		if row.u.Email == email {
			return nil, repository.ErrConflict
		}
		if input.GoogleID != "" && row.u.GoogleID == input.GoogleID {
			return nil, repository.ErrConflict
		}
	}
	ts := now()
	u := repository.User{
		ID:        newID(),
		GoogleID:  input.GoogleID,
		Email:     email,
		Name:      input.Name,
		Picture:   input.Picture,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	r.s.users[u.ID] = &userRow{u: u}
	out := u
	return &out, nil
}

func (r *userRepo) UpdateGoogleIDAndPicture(ctx context.Context, userID, googleID, picture string) (*repository.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for id, other := range r.s.users {
		if id != userID && googleID != "" && other.u.GoogleID == googleID {
			return nil, repository.ErrConflict
		}
	}
	row.u.GoogleID = googleID
	row.u.Picture = picture
	row.u.UpdatedAt = now()
	u := row.u
	return &u, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, userID string, input repository.UpdateProfileInput) (*repository.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if input.Name != nil {
		row.u.Name = *input.Name
	}
	if input.Phone != nil {
		row.u.Phone = *input.Phone
	}
	if input.Address != nil {
		row.u.Address = *input.Address
	}
	row.u.UpdatedAt = now()
	u := row.u
	return &u, nil
}

// SeedUser inserta un usuario tal cual (tests y cmd seed). No pasa por las
// validaciones de Create: el caller es responsable de la unicidad.
func (s *Store) SeedUser(u repository.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = newID()
	}
	u.Email = normEmail(u.Email)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now()
	}
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = &userRow{u: u}
}

// DeleteUser borra un usuario (solo tests: simula una cuenta eliminada por
// un proceso administrativo externo).
func (s *Store) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// CountUsers retorna la cantidad de usuarios (tests).
func (s *Store) CountUsers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
