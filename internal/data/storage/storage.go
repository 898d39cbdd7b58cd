// Package storage is the key-value substrate holding the box office state.
// Values are JSON documents addressed by the keys below.
package storage

import (
	"context"
	"fmt"
	"strings"

	"cinema-boxoffice/pkg/database"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

const (
	KeyHalls           = "halls"
	KeyMovies          = "movies"
	KeyLastBookingCode = "lastBookingCode"
	KeyIsAdmin         = "isAdmin"
	KeyToken           = "cinema_token"
	BookingKeyPrefix   = "booking_"
)

// BookingKey returns the key a booking is stored under.
func BookingKey(code string) string {
	return BookingKeyPrefix + code
}

// Storage is a flat string key-value store.
type Storage interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Keys lists keys starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Open builds the storage selected by config.Storage.Driver. The returned
// closer releases the underlying connection, if any.
func Open(ctx context.Context, config *utils.Config, log *zap.Logger) (Storage, func(), error) {
	driver := strings.ToLower(strings.TrimSpace(config.Storage.Driver))
	log = log.With(zap.String("storage", driver))

	switch driver {
	case "", "file":
		store, err := NewFileStorage(nil, config.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using file storage", zap.String("path", config.Storage.Path))
		return store, func() {}, nil

	case "memory":
		log.Warn("Using in-memory storage, state is lost on exit")
		return NewMemoryStorage(), func() {}, nil

	case "postgres":
		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres storage: %w", err)
		}
		store := NewPostgresStorage(db, log)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("Using postgres storage", zap.String("host", config.Database.Host))
		return store, db.Close, nil

	case "redis":
		client, err := database.InitRedis(ctx, config.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis storage: %w", err)
		}
		log.Info("Using redis storage", zap.String("addr", config.Redis.Addr))
		return NewRedisStorage(client, config.Redis.Prefix), func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}
}
