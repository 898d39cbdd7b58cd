// Package syncer pushes the local catalog to the remote cinema API. It is
// push-only and matches halls and movies by name.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cinema-boxoffice/internal/catalog"
	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/pkg/cinemaapi"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultInterval = 5 * time.Minute

type State int

const (
	Unauthenticated State = iota
	Authenticating
	Synced
	Syncing
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Synced:
		return "synced"
	case Syncing:
		return "syncing"
	default:
		return "unauthenticated"
	}
}

// API is the part of the remote client the syncer drives.
type API interface {
	Login(ctx context.Context, login, password string) (string, error)
	SetToken(token string)
	Logout()
	AllData(ctx context.Context) (cinemaapi.AllData, error)
	Halls(ctx context.Context) ([]cinemaapi.Hall, error)
	Movies(ctx context.Context) ([]cinemaapi.Film, error)
	CreateHall(ctx context.Context, name string, rows, cols int) error
	UpdateHallConfig(ctx context.Context, id cinemaapi.ID, config cinemaapi.HallConfig) error
	UpdateHallPrices(ctx context.Context, id cinemaapi.ID, normal, vip int) error
	ToggleHallSales(ctx context.Context, id cinemaapi.ID, open bool) error
	CreateMovie(ctx context.Context, movie cinemaapi.MovieData) error
	UpdateMovie(ctx context.Context, id cinemaapi.ID, movie cinemaapi.MovieData) error
	CreateSeance(ctx context.Context, seance cinemaapi.SeanceData) error
	DeleteHall(ctx context.Context, id cinemaapi.ID) error
	DeleteMovie(ctx context.Context, id cinemaapi.ID) error
}

// Catalog is the read side of the catalog store.
type Catalog interface {
	Halls() []entity.Hall
	Movies() []entity.Movie
	Subscribe(fn func(catalog.Event)) func()
}

// TokenStore persists the remote bearer token.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

type Options struct {
	Login        string
	Password     string
	Interval     time.Duration
	PushOnChange bool
	Location     *time.Location
	Now          func() time.Time
}

type Syncer struct {
	api     API
	catalog Catalog
	tokens  TokenStore
	opts    Options
	log     *zap.Logger

	group singleflight.Group

	mu          sync.Mutex
	state       State
	cancel      context.CancelFunc
	unsubscribe func()
	wg          sync.WaitGroup
}

func New(api API, cat Catalog, tokens TokenStore, opts Options, log *zap.Logger) *Syncer {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Syncer{
		api:     api,
		catalog: cat,
		tokens:  tokens,
		opts:    opts,
		log:     log.With(zap.String("service", "syncer")),
	}
}

func (s *Syncer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Syncer) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Start authenticates, runs a first full sync and starts the periodic loop.
// When authentication fails the syncer stays offline and the error is returned.
func (s *Syncer) Start(ctx context.Context) error {
	if err := s.authenticate(ctx); err != nil {
		s.log.Warn("Remote API unavailable, working offline", zap.Error(err))
		return err
	}

	if err := s.FullSync(ctx); err != nil {
		s.log.Warn("Initial sync finished with errors", zap.Error(err))
	}
	s.startLoop(ctx)
	return nil
}

// Stop cancels the periodic loop and waits for background passes to finish.
func (s *Syncer) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	unsubscribe := s.unsubscribe
	s.cancel = nil
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *Syncer) authenticate(ctx context.Context) error {
	s.setState(Authenticating)

	if token, err := s.tokens.Token(ctx); err == nil && token != "" {
		s.api.SetToken(token)
	}

	token, err := s.api.Login(ctx, s.opts.Login, s.opts.Password)
	if err != nil {
		s.api.Logout()
		s.setState(Unauthenticated)
		return fmt.Errorf("%w: login: %v", utils.ErrSync, err)
	}

	if err := s.tokens.SaveToken(ctx, token); err != nil {
		s.log.Warn("Failed to persist remote token", zap.Error(err))
	}
	s.setState(Synced)
	s.log.Info("Authenticated against remote API")
	return nil
}

func (s *Syncer) startLoop(parent context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	s.cancel = cancel

	if s.opts.PushOnChange {
		s.unsubscribe = s.catalog.Subscribe(func(e catalog.Event) {
			s.onCatalogEvent(ctx, e)
		})
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.opts.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.FullSync(ctx); err != nil {
					s.log.Warn("Periodic sync finished with errors", zap.Error(err))
				}
			}
		}
	}()
}

func (s *Syncer) onCatalogEvent(ctx context.Context, e catalog.Event) {
	var pass func(context.Context) error
	switch e.Kind {
	case catalog.HallsChanged:
		pass = s.syncHalls
	case catalog.MoviesChanged:
		pass = s.syncMovies
	default:
		return
	}

	// The loop handle is checked and the pass registered under s.mu, so
	// Stop never waits while a late event adds to the group.
	s.mu.Lock()
	if s.cancel == nil || ctx.Err() != nil || s.state == Unauthenticated {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		_, err, _ := s.group.Do(e.Kind.String(), func() (any, error) {
			return nil, pass(ctx)
		})
		if err != nil {
			s.log.Warn("Change propagation failed", zap.Stringer("event", e.Kind), zap.Error(err))
		}
	}()
}

// FullSync runs the hall, movie and session passes in that order. A failing
// pass does not stop the others; all failures are returned joined. Calls
// overlapping an in-flight cycle share its result. It is a no-op while
// unauthenticated.
func (s *Syncer) FullSync(ctx context.Context) error {
	if s.State() == Unauthenticated {
		return nil
	}

	_, err, shared := s.group.Do("full", func() (any, error) {
		s.setState(Syncing)
		started := time.Now()

		err := errors.Join(
			s.syncHalls(ctx),
			s.syncMovies(ctx),
			s.syncSessions(ctx),
		)

		if cinemaapi.IsUnauthorized(err) {
			s.api.Logout()
			if clearErr := s.tokens.ClearToken(ctx); clearErr != nil {
				s.log.Warn("Failed to clear remote token", zap.Error(clearErr))
			}
			s.setState(Unauthenticated)
		} else {
			s.setState(Synced)
		}

		s.log.Info("Full sync completed",
			zap.Duration("took", time.Since(started)),
			zap.Bool("clean", err == nil),
		)
		return nil, err
	})
	if shared {
		s.log.Debug("Joined in-flight sync")
	}
	if err != nil {
		return fmt.Errorf("%w: %w", utils.ErrSync, err)
	}
	return nil
}

// SyncNow re-authenticates when offline and then runs a full sync.
func (s *Syncer) SyncNow(ctx context.Context) error {
	if s.State() == Unauthenticated {
		if err := s.authenticate(ctx); err != nil {
			return err
		}
		s.startLoop(ctx)
	}
	return s.FullSync(ctx)
}

// UpdateHallSales pushes the sales flag of hall to its remote namesake. It
// does nothing while unauthenticated or when no remote hall matches.
func (s *Syncer) UpdateHallSales(ctx context.Context, hall entity.Hall) error {
	if s.State() == Unauthenticated {
		return nil
	}

	remote, err := s.api.Halls(ctx)
	if err != nil {
		return fmt.Errorf("%w: fetch remote halls: %v", utils.ErrSync, err)
	}
	id, ok := findHall(remote, hall.Name)
	if !ok {
		s.log.Debug("No remote hall for sales update", zap.String("hall", hall.Name))
		return nil
	}
	if err := s.api.ToggleHallSales(ctx, id, hall.IsSalesOpen()); err != nil {
		return fmt.Errorf("%w: toggle sales of %s: %v", utils.ErrSync, hall.Name, err)
	}
	return nil
}

// RemoveHall deletes the remote namesake of a locally deleted hall. It does
// nothing while unauthenticated or when no remote hall matches.
func (s *Syncer) RemoveHall(ctx context.Context, name string) error {
	if s.State() == Unauthenticated {
		return nil
	}

	remote, err := s.api.Halls(ctx)
	if err != nil {
		return fmt.Errorf("%w: fetch remote halls: %v", utils.ErrSync, err)
	}
	id, ok := findHall(remote, name)
	if !ok {
		return nil
	}
	if err := s.api.DeleteHall(ctx, id); err != nil {
		return fmt.Errorf("%w: delete hall %s: %v", utils.ErrSync, name, err)
	}
	s.log.Info("Remote hall deleted", zap.String("hall", name))
	return nil
}

// RemoveMovie deletes every remote movie titled title.
func (s *Syncer) RemoveMovie(ctx context.Context, title string) error {
	if s.State() == Unauthenticated {
		return nil
	}

	remote, err := s.api.Movies(ctx)
	if err != nil {
		return fmt.Errorf("%w: fetch remote movies: %v", utils.ErrSync, err)
	}

	var errs []error
	for _, film := range remote {
		if film.DisplayName() != title {
			continue
		}
		if err := s.api.DeleteMovie(ctx, film.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete movie %s: %w", title, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", utils.ErrSync, err)
	}
	return nil
}
