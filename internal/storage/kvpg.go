package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresKV — реализация KV поверх таблицы kv_state.
// Таблица создаётся мигратором (cmd/migrator)
type PostgresKV struct {
	db *sql.DB
}

func NewPostgresKV(db *sql.DB) *PostgresKV {
	return &PostgresKV{db: db}
}

func (p *PostgresKV) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	row := p.db.QueryRowContext(ctx, "SELECT value FROM kv_state WHERE key = $1", key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to load key %q: %w", key, err)
	}
	return value, nil
}

func (p *PostgresKV) Save(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_state (key, value, updated_at) VALUES ($1, $2, NOW())
	          ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	if _, err := p.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to save key %q: %w", key, err)
	}
	return nil
}

func (p *PostgresKV) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, "DELETE FROM kv_state WHERE key = $1", key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
