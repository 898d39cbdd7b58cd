package repository

import (
	"context"
	"fmt"

	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/internal/data/storage"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

// BookingRepository stores immutable bookings under booking_<code>.
type BookingRepository interface {
	// Create stores the booking and points lastBookingCode at it.
	Create(ctx context.Context, booking *entity.Booking) error
	FindByCode(ctx context.Context, code string) (*entity.Booking, error)
	LastCode(ctx context.Context) (string, error)
	ListCodes(ctx context.Context) ([]string, error)
}

type bookingRepository struct {
	store storage.Storage
	log   *zap.Logger
}

func NewBookingRepository(store storage.Storage, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		store: store,
		log:   log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	key := storage.BookingKey(booking.BookingCode)

	_, exists, err := r.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("check booking %s: %w", booking.BookingCode, err)
	}
	if exists {
		return fmt.Errorf("booking %s already exists", booking.BookingCode)
	}

	if err := saveJSON(ctx, r.store, key, booking); err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_code", booking.BookingCode),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingCode, err)
	}

	if err := r.store.Set(ctx, storage.KeyLastBookingCode, booking.BookingCode); err != nil {
		r.log.Error("Failed to update last booking pointer",
			zap.Error(err),
			zap.String("booking_code", booking.BookingCode),
		)
		return fmt.Errorf("set last booking code %s: %w", booking.BookingCode, err)
	}

	return nil
}

func (r *bookingRepository) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	var booking entity.Booking
	found, err := loadJSON(ctx, r.store, storage.BookingKey(code), &booking)
	if err != nil {
		r.log.Error("Failed to read booking", zap.Error(err), zap.String("booking_code", code))
		return nil, fmt.Errorf("find booking %s: %w", code, err)
	}
	if !found {
		return nil, fmt.Errorf("booking %s: %w", code, utils.ErrNotFound)
	}
	return &booking, nil
}

func (r *bookingRepository) LastCode(ctx context.Context) (string, error) {
	code, ok, err := r.store.Get(ctx, storage.KeyLastBookingCode)
	if err != nil {
		return "", fmt.Errorf("read last booking code: %w", err)
	}
	if !ok || code == "" {
		return "", fmt.Errorf("last booking: %w", utils.ErrNotFound)
	}
	return code, nil
}

func (r *bookingRepository) ListCodes(ctx context.Context) ([]string, error) {
	keys, err := r.store.Keys(ctx, storage.BookingKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	codes := make([]string, 0, len(keys))
	for _, key := range keys {
		codes = append(codes, key[len(storage.BookingKeyPrefix):])
	}
	return codes, nil
}
