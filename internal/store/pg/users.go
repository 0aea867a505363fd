package pg

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
)

type userRepo struct{ s *Store }

// Users retorna el repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

const userCols = `id, google_id, email, name, picture, phone, address, is_admin, password_hash, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*repository.User, error) {
	var u repository.User
	var googleID, picture, phone, address *string
	err := row.Scan(
		&u.ID, &googleID, &u.Email, &u.Name, &picture, &phone, &address,
		&u.IsAdmin, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	u.GoogleID = deref(googleID)
	u.Picture = deref(picture)
	u.Phone = deref(phone)
	u.Address = deref(address)
	return &u, nil
}

func (r *userRepo) GetByGoogleID(ctx context.Context, googleID string) (*repository.User, error) {
	if googleID == "" {
		return nil, repository.ErrNotFound
	}
	const q = `SELECT ` + userCols + ` FROM app_user WHERE google_id = $1`
	return scanUser(r.s.pool.QueryRow(ctx, q, googleID))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	const q = `SELECT ` + userCols + ` FROM app_user WHERE email = $1`
	return scanUser(r.s.pool.QueryRow(ctx, q, strings.ToLower(strings.TrimSpace(email))))
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	const q = `SELECT ` + userCols + ` FROM app_user WHERE id = $1`
	return scanUser(r.s.pool.QueryRow(ctx, q, id))
}

func (r *userRepo) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, repository.ErrInvalidInput
	}
	const q = `
		INSERT INTO app_user (id, google_id, email, name, picture, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW(), NOW())
		RETURNING ` + userCols
	id := uuid.NewString()
	return scanUser(r.s.pool.QueryRow(ctx, q, id, nullIfEmpty(input.GoogleID), email, input.Name, nullIfEmpty(input.Picture)))
}

func (r *userRepo) UpdateGoogleIDAndPicture(ctx context.Context, userID, googleID, picture string) (*repository.User, error) {
	const q = `
		UPDATE app_user
		SET google_id = $2, picture = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userCols
	return scanUser(r.s.pool.QueryRow(ctx, q, userID, nullIfEmpty(googleID), nullIfEmpty(picture)))
}

func (r *userRepo) UpdateProfile(ctx context.Context, userID string, input repository.UpdateProfileInput) (*repository.User, error) {
	// COALESCE: solo pisa los campos no-nil.
	const q = `
		UPDATE app_user
		SET name    = COALESCE($2, name),
		    phone   = COALESCE($3, phone),
		    address = COALESCE($4, address),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userCols
	return scanUser(r.s.pool.QueryRow(ctx, q, userID, input.Name, input.Phone, input.Address))
}
