package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"cinema-boxoffice/internal/catalog"
	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/internal/dto/request"
	"cinema-boxoffice/internal/dto/response"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

// maxPosterBytes caps the decoded poster image.
const maxPosterBytes = 5 * 1024 * 1024

type MovieService interface {
	List(ctx context.Context) []response.MovieResponse
	Create(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	// Delete removes the movie and its sessions, returning how many sessions went with it.
	Delete(ctx context.Context, id string) (int, error)
}

type movieService struct {
	store       *catalog.Store
	remote      RemoteSync
	placeholder string
	log         *zap.Logger
}

func NewMovieService(store *catalog.Store, remote RemoteSync, placeholder string, log *zap.Logger) MovieService {
	if remote == nil {
		remote = offlineSync{}
	}
	return &movieService{
		store:       store,
		remote:      remote,
		placeholder: placeholder,
		log:         log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) List(ctx context.Context) []response.MovieResponse {
	movies := s.store.Movies()
	out := make([]response.MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, response.MovieToResponse(m, s.placeholder))
	}
	return out
}

// Create checks the form fields top to bottom and reports the first failure.
func (s *movieService) Create(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	movie, err := s.parseMovie(req)
	if err != nil {
		return nil, err
	}

	created, err := s.store.AddMovie(ctx, movie)
	if err != nil {
		return nil, fmt.Errorf("create movie %s: %w", movie.Title, err)
	}

	resp := response.MovieToResponse(created, s.placeholder)
	return &resp, nil
}

// Delete removes the movie locally and then from the remote API. A remote
// failure is logged and does not undo the local delete.
func (s *movieService) Delete(ctx context.Context, id string) (int, error) {
	movie, err := s.store.Movie(id)
	if err != nil {
		return 0, err
	}

	removed, err := s.store.DeleteMovie(ctx, id)
	if err != nil {
		return 0, err
	}

	if syncErr := s.remote.RemoveMovie(ctx, movie.Title); syncErr != nil {
		s.log.Warn("Remote movie delete failed", zap.String("title", movie.Title), zap.Error(syncErr))
	}
	return removed, nil
}

func (s *movieService) parseMovie(req *request.MovieRequest) (entity.Movie, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return entity.Movie{}, fmt.Errorf("%w: enter the movie title", utils.ErrValidation)
	}

	duration, err := strconv.Atoi(strings.TrimSpace(string(req.Duration)))
	if err != nil || duration <= 0 {
		return entity.Movie{}, fmt.Errorf("%w: enter a valid movie duration", utils.ErrValidation)
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return entity.Movie{}, fmt.Errorf("%w: enter the movie description", utils.ErrValidation)
	}

	country := strings.TrimSpace(req.Country)
	if country == "" {
		return entity.Movie{}, fmt.Errorf("%w: enter the country of production", utils.ErrValidation)
	}

	poster := strings.TrimSpace(req.Poster)
	if poster == "" {
		poster = s.placeholder
	} else if err := checkPoster(poster); err != nil {
		return entity.Movie{}, err
	}

	return entity.Movie{
		Title:       title,
		Duration:    duration,
		Description: description,
		Country:     country,
		Poster:      poster,
	}, nil
}

// checkPoster accepts a base64 data URI of an image no larger than maxPosterBytes.
func checkPoster(poster string) error {
	if !utils.ValidateVar(poster, "datauri") {
		return fmt.Errorf("%w: poster must be an embedded image", utils.ErrValidation)
	}

	header, payload, _ := strings.Cut(poster, ",")
	mime := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if !strings.HasPrefix(mime, "image/") {
		return fmt.Errorf("%w: please choose an image", utils.ErrValidation)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("%w: poster is not valid base64", utils.ErrValidation)
	}
	if len(data) > maxPosterBytes {
		return fmt.Errorf("%w: poster must not exceed 5MB", utils.ErrValidation)
	}
	return nil
}
