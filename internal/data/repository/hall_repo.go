package repository

import (
	"context"
	"fmt"

	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/internal/data/storage"

	"go.uber.org/zap"
)

// HallRepository persists the whole hall collection under one key.
type HallRepository interface {
	Load(ctx context.Context) ([]entity.Hall, error)
	Save(ctx context.Context, halls []entity.Hall) error
}

type hallRepository struct {
	store storage.Storage
	log   *zap.Logger
}

func NewHallRepository(store storage.Storage, log *zap.Logger) HallRepository {
	return &hallRepository{
		store: store,
		log:   log.With(zap.String("repository", "hall")),
	}
}

func (r *hallRepository) Load(ctx context.Context) ([]entity.Hall, error) {
	var halls []entity.Hall
	if _, err := loadJSON(ctx, r.store, storage.KeyHalls, &halls); err != nil {
		r.log.Error("Failed to load halls", zap.Error(err))
		return nil, fmt.Errorf("load halls: %w", err)
	}
	return halls, nil
}

func (r *hallRepository) Save(ctx context.Context, halls []entity.Hall) error {
	if halls == nil {
		halls = []entity.Hall{}
	}
	if err := saveJSON(ctx, r.store, storage.KeyHalls, halls); err != nil {
		r.log.Error("Failed to save halls", zap.Error(err), zap.Int("count", len(halls)))
		return fmt.Errorf("save %d halls: %w", len(halls), err)
	}
	return nil
}
