package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const applicationIDSchema = `CREATE TABLE IF NOT EXISTS application_ids (
	application_id CHAR(6) PRIMARY KEY,
	reserved_at TIMESTAMPTZ NOT NULL
)`

// ApplicationIDRepository records issued application identifiers so duplicates can be detected.
type ApplicationIDRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewApplicationIDRepository constructs the repository.
func NewApplicationIDRepository(db *sqlx.DB) *ApplicationIDRepository {
	return &ApplicationIDRepository{db: db, now: time.Now}
}

// EnsureSchema creates the ledger table when missing.
func (r *ApplicationIDRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, applicationIDSchema); err != nil {
		return fmt.Errorf("create application_ids: %w", err)
	}
	return nil
}

// Reserve claims id. It returns false when the id was issued before.
func (r *ApplicationIDRepository) Reserve(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO application_ids (application_id, reserved_at) VALUES ($1, $2) ON CONFLICT (application_id) DO NOTHING`,
		id, r.now().UTC())
	if err != nil {
		return false, fmt.Errorf("reserve application id: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reserve application id rows: %w", err)
	}
	return affected == 1, nil
}

// Exists reports whether id has been reserved.
func (r *ApplicationIDRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM application_ids WHERE application_id = $1)`, id); err != nil {
		return false, fmt.Errorf("check application id: %w", err)
	}
	return exists, nil
}
