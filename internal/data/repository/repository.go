package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"cinema-boxoffice/internal/data/storage"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

type Repository struct {
	Hall    HallRepository
	Movie   MovieRepository
	Booking BookingRepository
	Auth    AuthRepository
}

func NewRepository(store storage.Storage, log *zap.Logger) *Repository {
	return &Repository{
		Hall:    NewHallRepository(store, log),
		Movie:   NewMovieRepository(store, log),
		Booking: NewBookingRepository(store, log),
		Auth:    NewAuthRepository(store, log),
	}
}

// loadJSON decodes key into dest. It reports false when the key is absent.
// Unparsable values are wrapped in utils.ErrStorageCorrupt.
func loadJSON(ctx context.Context, store storage.Storage, key string, dest any) (bool, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", utils.ErrStorageCorrupt, key, err)
	}
	return true, nil
}

func saveJSON(ctx context.Context, store storage.Storage, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, key, string(raw))
}
