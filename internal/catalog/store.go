// Package catalog owns the hall and movie collections and their persistence.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/internal/data/repository"
	"cinema-boxoffice/internal/seating"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

type EventKind int

const (
	HallsChanged EventKind = iota + 1
	MoviesChanged
)

func (k EventKind) String() string {
	switch k {
	case HallsChanged:
		return "halls_changed"
	case MoviesChanged:
		return "movies_changed"
	default:
		return "unknown"
	}
}

type Event struct {
	Kind EventKind
}

// Store is the single owner of halls and movies. Every mutation persists the
// whole collection and then notifies subscribers. Reads return deep copies.
type Store struct {
	halls  HallRepo
	movies MovieRepo
	log    *zap.Logger

	mu          sync.RWMutex
	hallList    []entity.Hall
	movieList   []entity.Movie
	subscribers map[int]func(Event)
	nextSub     int
}

type HallRepo interface {
	Load(ctx context.Context) ([]entity.Hall, error)
	Save(ctx context.Context, halls []entity.Hall) error
}

type MovieRepo interface {
	Load(ctx context.Context) ([]entity.Movie, error)
	Save(ctx context.Context, movies []entity.Movie) error
}

func NewStore(repo *repository.Repository, log *zap.Logger) *Store {
	return New(repo.Hall, repo.Movie, log)
}

func New(halls HallRepo, movies MovieRepo, log *zap.Logger) *Store {
	return &Store{
		halls:       halls,
		movies:      movies,
		log:         log.With(zap.String("service", "catalog")),
		hallList:    []entity.Hall{},
		movieList:   []entity.Movie{},
		subscribers: make(map[int]func(Event)),
	}
}

// Load reads both collections from storage.
func (s *Store) Load(ctx context.Context) {
	s.LoadHalls(ctx)
	s.LoadMovies(ctx)
}

// LoadHalls replaces the in-memory halls with the persisted ones. Missing or
// corrupt data yields an empty collection.
func (s *Store) LoadHalls(ctx context.Context) []entity.Hall {
	halls, err := s.halls.Load(ctx)
	if err != nil {
		s.log.Warn("Halls unavailable, starting empty", zap.Error(err),
			zap.Bool("corrupt", errors.Is(err, utils.ErrStorageCorrupt)))
		halls = nil
	}
	if halls == nil {
		halls = []entity.Hall{}
	}

	s.mu.Lock()
	s.hallList = halls
	s.mu.Unlock()
	return cloneHalls(halls)
}

func (s *Store) LoadMovies(ctx context.Context) []entity.Movie {
	movies, err := s.movies.Load(ctx)
	if err != nil {
		s.log.Warn("Movies unavailable, starting empty", zap.Error(err),
			zap.Bool("corrupt", errors.Is(err, utils.ErrStorageCorrupt)))
		movies = nil
	}
	if movies == nil {
		movies = []entity.Movie{}
	}

	s.mu.Lock()
	s.movieList = movies
	s.mu.Unlock()
	return append([]entity.Movie{}, movies...)
}

// ==================== READS ====================

func (s *Store) Halls() []entity.Hall {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneHalls(s.hallList)
}

func (s *Store) Hall(id string) (entity.Hall, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.hallIndex(id)
	if i < 0 {
		return entity.Hall{}, fmt.Errorf("hall %s: %w", id, utils.ErrNotFound)
	}
	return s.hallList[i].Clone(), nil
}

func (s *Store) Movies() []entity.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Movie{}, s.movieList...)
}

func (s *Store) Movie(id string) (entity.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.movieList {
		if m.ID == id {
			return m, nil
		}
	}
	return entity.Movie{}, fmt.Errorf("movie %s: %w", id, utils.ErrNotFound)
}

func (s *Store) hallIndex(id string) int {
	for i := range s.hallList {
		if s.hallList[i].ID == id {
			return i
		}
	}
	return -1
}

// ==================== SUBSCRIPTIONS ====================

// Subscribe registers fn for change events and returns a function that
// removes it. fn runs on the mutating goroutine after the store lock is released.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Store) emit(kind EventKind) {
	s.mu.RLock()
	subs := make([]func(Event), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(Event{Kind: kind})
	}
}

// ==================== PERSISTENCE ====================

// SaveHalls back-fills defaults on every hall and persists the collection.
func (s *Store) SaveHalls(ctx context.Context) error {
	s.mu.Lock()
	err := s.commitHalls(ctx, cloneHalls(s.hallList))
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.emit(HallsChanged)
	return nil
}

func (s *Store) SaveMovies(ctx context.Context) error {
	s.mu.Lock()
	err := s.commitMovies(ctx, append([]entity.Movie{}, s.movieList...))
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.emit(MoviesChanged)
	return nil
}

// commitHalls persists halls and installs them as the current collection.
// The caller holds s.mu.
func (s *Store) commitHalls(ctx context.Context, halls []entity.Hall) error {
	for i := range halls {
		Backfill(&halls[i])
	}
	if err := s.halls.Save(ctx, halls); err != nil {
		s.log.Error("Failed to persist halls", zap.Error(err))
		return fmt.Errorf("persist halls: %w", err)
	}
	s.hallList = halls
	return nil
}

func (s *Store) commitMovies(ctx context.Context, movies []entity.Movie) error {
	if err := s.movies.Save(ctx, movies); err != nil {
		s.log.Error("Failed to persist movies", zap.Error(err))
		return fmt.Errorf("persist movies: %w", err)
	}
	s.movieList = movies
	return nil
}

// Backfill completes a partially constructed hall: positive dimensions, a
// rows*seats layout, an empty session list, default prices and closed sales.
func Backfill(h *entity.Hall) {
	if h.Rows < 1 {
		h.Rows = entity.DefaultRows
	}
	if h.Seats < 1 {
		h.Seats = entity.DefaultSeats
	}
	if h.Layout == nil {
		h.Layout = entity.NewLayout(h.Rows, h.Seats)
	} else {
		seating.Normalize(h)
	}
	if h.Sessions == nil {
		h.Sessions = []entity.Session{}
	}
	if h.Prices == nil {
		prices := entity.DefaultPrices()
		h.Prices = &prices
	}
	if h.SalesOpen == nil {
		h.SalesOpen = utils.BoolPtr(false)
	}
}

// ==================== HALL MUTATIONS ====================

// AddHall creates a hall with the default 5x6 all-normal layout.
func (s *Store) AddHall(ctx context.Context, name string) (entity.Hall, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.Hall{}, fmt.Errorf("%w: hall name is required", utils.ErrValidation)
	}

	hall := entity.Hall{
		ID:    utils.GenerateHallID(),
		Name:  name,
		Rows:  entity.DefaultRows,
		Seats: entity.DefaultSeats,
	}
	Backfill(&hall)

	s.mu.Lock()
	halls := append(cloneHalls(s.hallList), hall)
	err := s.commitHalls(ctx, halls)
	s.mu.Unlock()
	if err != nil {
		return entity.Hall{}, err
	}

	s.log.Info("Hall created", zap.String("hall_id", hall.ID), zap.String("name", name))
	s.emit(HallsChanged)
	return hall.Clone(), nil
}

func (s *Store) DeleteHall(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.hallIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("delete hall %s: %w", id, utils.ErrNotFound)
	}
	halls := cloneHalls(s.hallList)
	halls = append(halls[:i], halls[i+1:]...)
	err := s.commitHalls(ctx, halls)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.log.Info("Hall deleted", zap.String("hall_id", id))
	s.emit(HallsChanged)
	return nil
}

// UpdateHall applies fn to a copy of the hall and persists the result. When
// fn returns an error nothing is stored.
func (s *Store) UpdateHall(ctx context.Context, id string, fn func(h *entity.Hall) error) (entity.Hall, error) {
	s.mu.Lock()
	i := s.hallIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return entity.Hall{}, fmt.Errorf("hall %s: %w", id, utils.ErrNotFound)
	}

	halls := cloneHalls(s.hallList)
	if err := fn(&halls[i]); err != nil {
		s.mu.Unlock()
		return entity.Hall{}, err
	}
	halls[i].ID = id
	if err := s.commitHalls(ctx, halls); err != nil {
		s.mu.Unlock()
		return entity.Hall{}, err
	}
	updated := s.hallList[i].Clone()
	s.mu.Unlock()

	s.emit(HallsChanged)
	return updated, nil
}

// ==================== MOVIE MUTATIONS ====================

// AddMovie appends m, assigning an id when it has none.
func (s *Store) AddMovie(ctx context.Context, m entity.Movie) (entity.Movie, error) {
	if m.ID == "" {
		m.ID = utils.GenerateMovieID()
	}

	s.mu.Lock()
	movies := append(append([]entity.Movie{}, s.movieList...), m)
	err := s.commitMovies(ctx, movies)
	s.mu.Unlock()
	if err != nil {
		return entity.Movie{}, err
	}

	s.log.Info("Movie added", zap.String("movie_id", m.ID), zap.String("title", m.Title))
	s.emit(MoviesChanged)
	return m, nil
}

// DeleteMovie removes the movie and every session referencing it by movieId.
// Sessions without a movieId are kept. It returns the number of sessions removed.
func (s *Store) DeleteMovie(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	index := -1
	for i, m := range s.movieList {
		if m.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return 0, fmt.Errorf("delete movie %s: %w", id, utils.ErrNotFound)
	}

	movies := append([]entity.Movie{}, s.movieList[:index]...)
	movies = append(movies, s.movieList[index+1:]...)

	halls := cloneHalls(s.hallList)
	removed := 0
	for i := range halls {
		kept := make([]entity.Session, 0, len(halls[i].Sessions))
		for _, session := range halls[i].Sessions {
			if session.MovieID == id {
				removed++
				continue
			}
			kept = append(kept, session)
		}
		halls[i].Sessions = kept
	}

	// A failed delete leaves both collections as they were: halls are
	// committed first and restored when the movie save fails.
	previous := s.hallList
	if err := s.commitHalls(ctx, halls); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	if err := s.commitMovies(ctx, movies); err != nil {
		if rbErr := s.halls.Save(ctx, previous); rbErr != nil {
			s.log.Error("Failed to restore halls", zap.Error(rbErr))
		}
		s.hallList = previous
		s.mu.Unlock()
		return 0, err
	}
	s.mu.Unlock()

	s.log.Info("Movie deleted", zap.String("movie_id", id), zap.Int("sessions_removed", removed))
	s.emit(MoviesChanged)
	s.emit(HallsChanged)
	return removed, nil
}

func cloneHalls(halls []entity.Hall) []entity.Hall {
	out := make([]entity.Hall, len(halls))
	for i := range halls {
		out[i] = halls[i].Clone()
	}
	return out
}
