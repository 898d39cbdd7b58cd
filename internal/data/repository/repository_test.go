package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/internal/data/storage"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

func TestHallRepository_MissingKeyIsEmpty(t *testing.T) {
	repo := NewHallRepository(storage.NewMemoryStorage(), zap.NewNop())

	halls, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(halls) != 0 {
		t.Fatalf("expected no halls, got %d", len(halls))
	}
}

func TestHallRepository_CorruptData(t *testing.T) {
	store := storage.NewMemoryStorage()
	_ = store.Set(context.Background(), storage.KeyHalls, "{not json")
	repo := NewHallRepository(store, zap.NewNop())

	_, err := repo.Load(context.Background())
	if !errors.Is(err, utils.ErrStorageCorrupt) {
		t.Fatalf("expected ErrStorageCorrupt, got %v", err)
	}
}

func TestMovieRepository_SaveNilWritesEmptyArray(t *testing.T) {
	store := storage.NewMemoryStorage()
	repo := NewMovieRepository(store, zap.NewNop())

	if err := repo.Save(context.Background(), nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	raw, _, _ := store.Get(context.Background(), storage.KeyMovies)
	if raw != "[]" {
		t.Fatalf("expected [], got %q", raw)
	}
}

func TestBookingRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(storage.NewMemoryStorage(), zap.NewNop())

	booking := &entity.Booking{
		BookingCode: "BK-1700000000000-abc123",
		MovieTitle:  "Arrival",
		SelectedSeats: []entity.BookedSeat{
			{Row: 1, Seat: 1, Type: entity.CategoryStandard, Price: 300},
		},
		TotalPrice:  300,
		BookingTime: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(ctx, booking); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	got, err := repo.FindByCode(ctx, booking.BookingCode)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.MovieTitle != "Arrival" || got.TotalPrice != 300 || !got.BookingTime.Equal(booking.BookingTime) {
		t.Fatalf("unexpected booking: %+v", got)
	}

	last, err := repo.LastCode(ctx)
	if err != nil || last != booking.BookingCode {
		t.Fatalf("expected last code %s, got %s (%v)", booking.BookingCode, last, err)
	}

	if err := repo.Create(ctx, booking); err == nil {
		t.Fatal("expected duplicate booking code to be rejected")
	}

	codes, _ := repo.ListCodes(ctx)
	if len(codes) != 1 || codes[0] != booking.BookingCode {
		t.Fatalf("unexpected codes: %v", codes)
	}
}

func TestBookingRepository_NotFound(t *testing.T) {
	repo := NewBookingRepository(storage.NewMemoryStorage(), zap.NewNop())

	if _, err := repo.FindByCode(context.Background(), "missing"); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.LastCode(context.Background()); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthRepository_AdminFlag(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	repo := NewAuthRepository(store, zap.NewNop())

	if err := repo.SetAdmin(ctx, true); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if raw, _, _ := store.Get(ctx, storage.KeyIsAdmin); raw != "true" {
		t.Fatalf("expected stored flag \"true\", got %q", raw)
	}

	if err := repo.SetAdmin(ctx, false); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, ok, _ := store.Get(ctx, storage.KeyIsAdmin); ok {
		t.Fatal("expected admin flag to be removed")
	}
	if admin, _ := repo.IsAdmin(ctx); admin {
		t.Fatal("expected non-admin after logout")
	}
}
