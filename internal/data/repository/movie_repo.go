package repository

import (
	"context"
	"fmt"

	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/internal/data/storage"

	"go.uber.org/zap"
)

type MovieRepository interface {
	Load(ctx context.Context) ([]entity.Movie, error)
	Save(ctx context.Context, movies []entity.Movie) error
}

type movieRepository struct {
	store storage.Storage
	log   *zap.Logger
}

func NewMovieRepository(store storage.Storage, log *zap.Logger) MovieRepository {
	return &movieRepository{
		store: store,
		log:   log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Load(ctx context.Context) ([]entity.Movie, error) {
	var movies []entity.Movie
	if _, err := loadJSON(ctx, r.store, storage.KeyMovies, &movies); err != nil {
		r.log.Error("Failed to load movies", zap.Error(err))
		return nil, fmt.Errorf("load movies: %w", err)
	}
	return movies, nil
}

func (r *movieRepository) Save(ctx context.Context, movies []entity.Movie) error {
	if movies == nil {
		movies = []entity.Movie{}
	}
	if err := saveJSON(ctx, r.store, storage.KeyMovies, movies); err != nil {
		r.log.Error("Failed to save movies", zap.Error(err), zap.Int("count", len(movies)))
		return fmt.Errorf("save %d movies: %w", len(movies), err)
	}
	return nil
}
