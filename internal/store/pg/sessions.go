package pg

import (
	"context"

	"github.com/google/uuid"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
)

type sessionRepo struct{ s *Store }

// Sessions retorna el repositorio de reservas de sesiones.
func (s *Store) Sessions() repository.SessionRepository { return &sessionRepo{s: s} }

const sessionCols = `id, user_id, patient_name, phone, address, condition_note, preferred_date, slot, status, created_at, updated_at`

func scanSession(row interface{ Scan(...any) error }) (*repository.Session, error) {
	var b repository.Session
	var condition *string
	err := row.Scan(
		&b.ID, &b.UserID, &b.PatientName, &b.Phone, &b.Address, &condition,
		&b.PreferredDate, &b.Slot, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	b.Condition = deref(condition)
	return &b, nil
}

func (r *sessionRepo) Create(ctx context.Context, input repository.CreateSessionInput) (*repository.Session, error) {
	if input.UserID == "" || input.PatientName == "" || input.Address == "" {
		return nil, repository.ErrInvalidInput
	}
	const q = `
		INSERT INTO physio_session (id, user_id, patient_name, phone, address, condition_note, preferred_date, slot, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'requested', NOW(), NOW())
		RETURNING ` + sessionCols
	return scanSession(r.s.pool.QueryRow(ctx, q,
		uuid.NewString(), input.UserID, input.PatientName, input.Phone, input.Address,
		nullIfEmpty(input.Condition), input.PreferredDate, input.Slot,
	))
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*repository.Session, error) {
	const q = `SELECT ` + sessionCols + ` FROM physio_session WHERE id = $1`
	return scanSession(r.s.pool.QueryRow(ctx, q, id))
}

func (r *sessionRepo) list(ctx context.Context, q string, args ...any) ([]repository.Session, error) {
	rows, err := r.s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []repository.Session{}
	for rows.Next() {
		b, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID string) ([]repository.Session, error) {
	const q = `SELECT ` + sessionCols + ` FROM physio_session WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, userID)
}

func (r *sessionRepo) List(ctx context.Context) ([]repository.Session, error) {
	const q = `SELECT ` + sessionCols + ` FROM physio_session ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *sessionRepo) UpdateStatus(ctx context.Context, id, status string) (*repository.Session, error) {
	switch status {
	case repository.SessionRequested, repository.SessionConfirmed,
		repository.SessionCompleted, repository.SessionCancelled:
	default:
		return nil, repository.ErrInvalidInput
	}
	const q = `
		UPDATE physio_session SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + sessionCols
	return scanSession(r.s.pool.QueryRow(ctx, q, id, status))
}
