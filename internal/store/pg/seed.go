package pg

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
)

// SeedAdmin crea una cuenta admin con login por password, o promueve la
// cuenta existente con ese email. Fuera de banda a propósito: ningún
// endpoint toca is_admin ni password_hash.
func (s *Store) SeedAdmin(ctx context.Context, email, name, passwordHash string) (*repository.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || passwordHash == "" {
		return nil, repository.ErrInvalidInput
	}

	const upd = `
		UPDATE app_user
		SET is_admin = TRUE, password_hash = $2, updated_at = NOW()
		WHERE email = $1
		RETURNING ` + userCols
	u, err := scanUser(s.pool.QueryRow(ctx, upd, email, passwordHash))
	if err == nil {
		return u, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	const ins = `
		INSERT INTO app_user (id, email, name, is_admin, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, $4, NOW(), NOW())
		RETURNING ` + userCols
	return scanUser(s.pool.QueryRow(ctx, ins, uuid.NewString(), email, name, passwordHash))
}
