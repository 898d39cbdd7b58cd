package storage

import (
	"context"
	"errors"
	"fmt"

	"cinema-boxoffice/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type postgresStorage struct {
	db  database.PgxIface
	log *zap.Logger
}

// PostgresStorage is the Postgres-backed Storage; EnsureSchema creates its table.
type PostgresStorage interface {
	Storage
	EnsureSchema(ctx context.Context) error
}

func NewPostgresStorage(db database.PgxIface, log *zap.Logger) PostgresStorage {
	return &postgresStorage{
		db:  db,
		log: log.With(zap.String("repository", "kv_store")),
	}
}

func (s *postgresStorage) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := s.db.Exec(ctx, query); err != nil {
		s.log.Error("Failed to create kv_store table", zap.Error(err))
		return fmt.Errorf("create kv_store table: %w", err)
	}
	return nil
}

func (s *postgresStorage) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`

	var value string
	err := s.db.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		s.log.Error("Failed to read key", zap.Error(err), zap.String("key", key))
		return "", false, fmt.Errorf("read key %s: %w", key, err)
	}
	return value, true, nil
}

func (s *postgresStorage) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := s.db.Exec(ctx, query, key, value); err != nil {
		s.log.Error("Failed to write key", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("write key %s: %w", key, err)
	}
	return nil
}

func (s *postgresStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		s.log.Error("Failed to delete key", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

func (s *postgresStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	query := `
		SELECT key FROM kv_store
		WHERE left(key, length($1)) = $1
		ORDER BY key
	`
	rows, err := s.db.Query(ctx, query, prefix)
	if err != nil {
		s.log.Error("Failed to list keys", zap.Error(err), zap.String("prefix", prefix))
		return nil, fmt.Errorf("list keys %s: %w", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan key row: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keys %s: %w", prefix, err)
	}
	return keys, nil
}
