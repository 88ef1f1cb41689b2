package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type sqlKV struct {
	db      *sql.DB
	dialect string
}

// NewSQLKV returns a KV over the kv_store table. dialect is "postgres" or
// "sqlite3"; the table must already exist (see database.RunMigrations).
func NewSQLKV(db *sql.DB, dialect string) KV {
	return &sqlKV{db: db, dialect: dialect}
}

// rebind rewrites $n placeholders to ? for sqlite.
func (s *sqlKV) rebind(query string) string {
	if s.dialect == "postgres" {
		return query
	}
	for _, p := range []string{"$1", "$2"} {
		query = strings.ReplaceAll(query, p, "?")
	}
	return query
}

func (s *sqlKV) Get(ctx context.Context, key string) (string, error) {
	query := s.rebind(`SELECT value FROM kv_store WHERE name = $1`)

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (s *sqlKV) Set(ctx context.Context, key string, value string) error {
	query := s.rebind(`
		INSERT INTO kv_store (name, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`)

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *sqlKV) Delete(ctx context.Context, key string) error {
	query := s.rebind(`DELETE FROM kv_store WHERE name = $1`)

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
