package recent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteRepository stores the list in a SQLite key/value table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a SQLite repository. Call EnsureSchema before use.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// EnsureSchema creates the key/value table if it does not exist.
func (r *SQLiteRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create kv_store: %w", err)
	}
	return nil
}

// Load returns the stored list.
func (r *SQLiteRepository) Load(ctx context.Context) ([]Search, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, StorageKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []Search{}, nil
		}
		return nil, fmt.Errorf("load recent searches: %w", err)
	}
	return decode([]byte(value))
}

// Store replaces the stored list.
func (r *SQLiteRepository) Store(ctx context.Context, searches []Search) error {
	data, err := encode(searches)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, StorageKey, string(data)); err != nil {
		return fmt.Errorf("store recent searches: %w", err)
	}
	return nil
}

// Clear removes the stored list.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, StorageKey); err != nil {
		return fmt.Errorf("clear recent searches: %w", err)
	}
	return nil
}

// Ping checks the database connection.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

var _ Repository = (*SQLiteRepository)(nil)
