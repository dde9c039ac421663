package recent

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresRepository stores the list as JSONB in a PostgreSQL key/value table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the key/value table if it does not exist.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create kv_store: %w", err)
	}
	return nil
}

// Load returns the stored list.
func (r *PostgresRepository) Load(ctx context.Context) ([]Search, error) {
	var value []byte
	err := r.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, StorageKey).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []Search{}, nil
		}
		return nil, fmt.Errorf("load recent searches: %w", err)
	}
	return decode(value)
}

// Store replaces the stored list.
func (r *PostgresRepository) Store(ctx context.Context, searches []Search) error {
	data, err := encode(searches)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := r.pool.Exec(ctx, query, StorageKey, data); err != nil {
		return fmt.Errorf("store recent searches: %w", err)
	}
	return nil
}

// Clear removes the stored list.
func (r *PostgresRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, StorageKey); err != nil {
		return fmt.Errorf("clear recent searches: %w", err)
	}
	return nil
}

// Ping checks the pool connection.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

var _ Repository = (*PostgresRepository)(nil)
