package database

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresMetaRepository stores opaque per-event key/value pairs in event_meta.
type PostgresMetaRepository struct {
	db *sql.DB
}

func NewPostgresMetaRepository(db *sql.DB) *PostgresMetaRepository {
	return &PostgresMetaRepository{db: db}
}

func (r *PostgresMetaRepository) GetMeta(ctx context.Context, eventID int64, key string) (string, bool, error) {
	query := `SELECT meta_value FROM event_meta WHERE event_id = $1 AND meta_key = $2`
	var value string
	err := r.db.QueryRowContext(ctx, query, eventID, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("error getting event meta %q: %w", key, err)
	}
	return value, true, nil
}

// SetMeta upserts a single key.
func (r *PostgresMetaRepository) SetMeta(ctx context.Context, eventID int64, key, value string) error {
	query := `INSERT INTO event_meta (event_id, meta_key, meta_value, updated_at)
               VALUES ($1, $2, $3, NOW())
               ON CONFLICT ON CONSTRAINT event_meta_pkey
               DO UPDATE SET meta_value = EXCLUDED.meta_value, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, eventID, key, value); err != nil {
		return fmt.Errorf("error setting event meta %q: %w", key, err)
	}
	return nil
}

// DeleteMeta removes a key. Deleting an absent key is not an error.
func (r *PostgresMetaRepository) DeleteMeta(ctx context.Context, eventID int64, key string) error {
	query := `DELETE FROM event_meta WHERE event_id = $1 AND meta_key = $2`
	if _, err := r.db.ExecContext(ctx, query, eventID, key); err != nil {
		return fmt.Errorf("error deleting event meta %q: %w", key, err)
	}
	return nil
}
