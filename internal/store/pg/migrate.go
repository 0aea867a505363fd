package pg

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
)

// Migrate aplica las migraciones embebidas que aún no se corrieron, en orden
// lexicográfico, cada una en su propia transacción. Registra lo aplicado en
// schema_migrations.
func (s *Store) Migrate(ctx context.Context, fsys fs.FS) ([]string, error) {
	const bootstrap = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name       TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	if _, err := s.pool.Exec(ctx, bootstrap); err != nil {
		return nil, fmt.Errorf("migrate: bootstrap: %w", err)
	}

	names, err := fs.Glob(fsys, "postgres/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	var applied []string
	for _, name := range names {
		done, err := s.migrationApplied(ctx, name)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}

		sql, err := fs.ReadFile(fsys, name)
		if err != nil {
			return applied, err
		}
		if err := s.applyMigration(ctx, name, string(sql)); err != nil {
			return applied, fmt.Errorf("migrate: %s: %w", name, err)
		}
		applied = append(applied, name)
	}
	return applied, nil
}

func (s *Store) migrationApplied(ctx context.Context, name string) (bool, error) {
	var found string
	err := s.pool.QueryRow(ctx, `SELECT name FROM schema_migrations WHERE name = $1`, name).Scan(&found)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) applyMigration(ctx context.Context, name, sql string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, sql); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
