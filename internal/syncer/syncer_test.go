package syncer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"cinema-boxoffice/internal/catalog"
	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/pkg/cinemaapi"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

type fakeAPI struct {
	mu        sync.Mutex
	loginErr  error
	failOn    map[string]error
	halls     []cinemaapi.Hall
	films     []cinemaapi.Film
	calls     []string
	token     string
	nextID    int
	blockFull chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{failOn: map[string]error{}, nextID: 100}
}

func (f *fakeAPI) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	for prefix, err := range f.failOn {
		if strings.HasPrefix(call, prefix) {
			return err
		}
	}
	return nil
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) count(prefix string) int {
	n := 0
	for _, call := range f.Calls() {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeAPI) Login(_ context.Context, login, password string) (string, error) {
	if err := f.record("login " + login); err != nil {
		return "", err
	}
	if f.loginErr != nil {
		return "", f.loginErr
	}
	f.token = "tok"
	return "tok", nil
}

func (f *fakeAPI) SetToken(token string) { f.token = token }
func (f *fakeAPI) Logout()               { f.token = "" }

func (f *fakeAPI) AllData(ctx context.Context) (cinemaapi.AllData, error) {
	if err := f.record("alldata"); err != nil {
		return cinemaapi.AllData{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return cinemaapi.AllData{
		Halls: append([]cinemaapi.Hall(nil), f.halls...),
		Films: append([]cinemaapi.Film(nil), f.films...),
	}, nil
}

func (f *fakeAPI) Halls(ctx context.Context) ([]cinemaapi.Hall, error) {
	if f.blockFull != nil {
		<-f.blockFull
	}
	if err := f.record("halls"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]cinemaapi.Hall(nil), f.halls...), nil
}

func (f *fakeAPI) Movies(ctx context.Context) ([]cinemaapi.Film, error) {
	if err := f.record("movies"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]cinemaapi.Film(nil), f.films...), nil
}

func (f *fakeAPI) CreateHall(_ context.Context, name string, rows, cols int) error {
	if err := f.record(fmt.Sprintf("create_hall %s %dx%d", name, rows, cols)); err != nil {
		return err
	}
	f.mu.Lock()
	f.nextID++
	f.halls = append(f.halls, cinemaapi.Hall{ID: cinemaapi.ID(fmt.Sprint(f.nextID)), Name: name})
	f.mu.Unlock()
	return nil
}

func (f *fakeAPI) UpdateHallConfig(_ context.Context, id cinemaapi.ID, config cinemaapi.HallConfig) error {
	return f.record(fmt.Sprintf("config %s %dx%d %d", id, config.Rows, config.Cols, len(config.Layout)))
}

func (f *fakeAPI) UpdateHallPrices(_ context.Context, id cinemaapi.ID, normal, vip int) error {
	return f.record(fmt.Sprintf("prices %s %d/%d", id, normal, vip))
}

func (f *fakeAPI) ToggleHallSales(_ context.Context, id cinemaapi.ID, open bool) error {
	return f.record(fmt.Sprintf("sales %s %v", id, open))
}

func (f *fakeAPI) CreateMovie(_ context.Context, movie cinemaapi.MovieData) error {
	return f.record(fmt.Sprintf("create_movie %s %d %s", movie.Name, movie.Duration, movie.Country))
}

func (f *fakeAPI) UpdateMovie(_ context.Context, id cinemaapi.ID, movie cinemaapi.MovieData) error {
	return f.record(fmt.Sprintf("update_movie %s %s", id, movie.Name))
}

func (f *fakeAPI) CreateSeance(_ context.Context, seance cinemaapi.SeanceData) error {
	return f.record(fmt.Sprintf("seance %s %s %s %s", seance.HallID, seance.FilmID, seance.Date, seance.Time))
}

func (f *fakeAPI) DeleteHall(_ context.Context, id cinemaapi.ID) error {
	return f.record(fmt.Sprintf("delete_hall %s", id))
}

func (f *fakeAPI) DeleteMovie(_ context.Context, id cinemaapi.ID) error {
	return f.record(fmt.Sprintf("delete_movie %s", id))
}

type fakeCatalog struct {
	halls  []entity.Hall
	movies []entity.Movie
	subs   int
	notify func(catalog.Event)
}

func (c *fakeCatalog) Halls() []entity.Hall   { return c.halls }
func (c *fakeCatalog) Movies() []entity.Movie { return c.movies }
func (c *fakeCatalog) Subscribe(fn func(catalog.Event)) func() {
	c.subs++
	c.notify = fn
	return func() { c.subs-- }
}

type memTokens struct{ token string }

func (m *memTokens) Token(context.Context) (string, error)       { return m.token, nil }
func (m *memTokens) SaveToken(_ context.Context, t string) error { m.token = t; return nil }
func (m *memTokens) ClearToken(context.Context) error            { m.token = ""; return nil }

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func newTestSyncer(api *fakeAPI, cat *fakeCatalog, tokens *memTokens) *Syncer {
	return New(api, cat, tokens, Options{
		Login:    "admin",
		Password: "admin",
		Interval: time.Hour,
		Location: time.UTC,
		Now:      fixedNow,
	}, zap.NewNop())
}

func TestStart_LoginFailureStaysOffline(t *testing.T) {
	api := newFakeAPI()
	api.loginErr = errors.New("bad credentials")
	s := newTestSyncer(api, &fakeCatalog{}, &memTokens{})

	err := s.Start(context.Background())
	if !errors.Is(err, utils.ErrSync) {
		t.Fatalf("expected ErrSync, got %v", err)
	}
	if s.State() != Unauthenticated {
		t.Fatalf("expected unauthenticated, got %s", s.State())
	}

	if err := s.FullSync(context.Background()); err != nil {
		t.Fatalf("offline full sync should be a no-op, got %v", err)
	}
	if len(api.Calls()) != 1 {
		t.Fatalf("expected only the login call, got %v", api.Calls())
	}
	if err := s.UpdateHallSales(context.Background(), entity.Hall{Name: "A"}); err != nil {
		t.Fatalf("offline sales update should be a no-op, got %v", err)
	}
}

func TestStart_PersistsTokenAndSyncs(t *testing.T) {
	api := newFakeAPI()
	tokens := &memTokens{}
	cat := &fakeCatalog{}
	s := newTestSyncer(api, cat, tokens)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer s.Stop()

	if tokens.token != "tok" {
		t.Fatalf("expected token persisted, got %q", tokens.token)
	}
	if s.State() != Synced {
		t.Fatalf("expected synced, got %s", s.State())
	}
	if api.count("halls") == 0 || api.count("movies") == 0 || api.count("alldata") == 0 {
		t.Fatalf("expected all three passes, got %v", api.Calls())
	}
}

func TestHallPass_CreateAndUpdateByName(t *testing.T) {
	api := newFakeAPI()
	api.halls = []cinemaapi.Hall{{ID: "7", Name: "Existing"}}
	cat := &fakeCatalog{halls: []entity.Hall{
		{Name: "Existing", Rows: 2, Seats: 2, Layout: entity.NewLayout(2, 2), Prices: &entity.Prices{Normal: 0, VIP: 700}, SalesOpen: utils.BoolPtr(true)},
		{Name: "Fresh", Rows: 3, Seats: 4, Prices: &entity.Prices{Normal: 250, VIP: 450}, SalesOpen: utils.BoolPtr(false)},
	}}
	s := newTestSyncer(api, cat, &memTokens{})
	s.setState(Synced)

	if err := s.syncHalls(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	calls := strings.Join(api.Calls(), "\n")
	for _, want := range []string{
		"config 7 2x2 4",
		"prices 7 300/700",
		"sales 7 true",
		"create_hall Fresh 3x4",
		"prices 101 250/450",
		"sales 101 false",
	} {
		if !strings.Contains(calls, want) {
			t.Fatalf("missing call %q in:\n%s", want, calls)
		}
	}
}

func TestFullSync_PassFailureDoesNotAbortOthers(t *testing.T) {
	api := newFakeAPI()
	api.films = []cinemaapi.Film{{ID: "5", FilmName: "Arrival"}}
	api.failOn["halls"] = errors.New("halls down")
	cat := &fakeCatalog{
		halls:  []entity.Hall{{Name: "A"}},
		movies: []entity.Movie{{Title: "Arrival", Duration: 116}, {Title: "New"}},
	}
	s := newTestSyncer(api, cat, &memTokens{})
	s.setState(Synced)

	err := s.FullSync(context.Background())
	if !errors.Is(err, utils.ErrSync) || !strings.Contains(err.Error(), "halls down") {
		t.Fatalf("expected joined sync error, got %v", err)
	}
	if api.count("update_movie 5 Arrival") != 1 {
		t.Fatalf("expected movie update, got %v", api.Calls())
	}
	if api.count("create_movie New 90 Russia") != 1 {
		t.Fatalf("expected movie create with fallbacks, got %v", api.Calls())
	}
	if api.count("alldata") != 1 {
		t.Fatalf("expected sessions pass to run, got %v", api.Calls())
	}
	if s.State() != Synced {
		t.Fatalf("expected synced after cycle, got %s", s.State())
	}
}

func TestSessionPass(t *testing.T) {
	api := newFakeAPI()
	api.halls = []cinemaapi.Hall{{ID: "1", HallName: "A"}}
	api.films = []cinemaapi.Film{{ID: "9", Name: "Arrival"}}
	cat := &fakeCatalog{halls: []entity.Hall{{
		Name: "A",
		Sessions: []entity.Session{
			{Title: "Arrival", StartMinutes: 0, Duration: 116},
			{Title: "Arrival", StartMinutes: 845, Duration: 116},
			{Title: "Unknown", StartMinutes: 600, Duration: 90},
		},
	}}}
	s := newTestSyncer(api, cat, &memTokens{})
	s.setState(Synced)

	if err := s.syncSessions(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if api.count("seance 1 9 2026-03-14 10:00") != 1 || api.count("seance 1 9 2026-03-14 14:05") != 1 {
		t.Fatalf("unexpected seance calls: %v", api.Calls())
	}
	if api.count("seance") != 2 {
		t.Fatalf("expected unmatched movie to be skipped, got %v", api.Calls())
	}
}

func TestFullSync_UnauthorizedDropsToOffline(t *testing.T) {
	api := newFakeAPI()
	api.failOn["halls"] = &cinemaapi.APIError{StatusCode: 401, Endpoint: "alldata", Message: "expired"}
	tokens := &memTokens{token: "old"}
	s := newTestSyncer(api, &fakeCatalog{}, tokens)
	s.setState(Synced)

	if err := s.FullSync(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if s.State() != Unauthenticated || tokens.token != "" {
		t.Fatalf("expected offline with cleared token, got %s %q", s.State(), tokens.token)
	}
}

func TestSyncNow_ReauthenticatesWhenOffline(t *testing.T) {
	api := newFakeAPI()
	cat := &fakeCatalog{}
	s := newTestSyncer(api, cat, &memTokens{})

	if err := s.SyncNow(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer s.Stop()

	if api.count("login admin") != 1 {
		t.Fatalf("expected a login attempt, got %v", api.Calls())
	}
	if s.State() != Synced {
		t.Fatalf("expected synced, got %s", s.State())
	}
}

func TestUpdateHallSales(t *testing.T) {
	api := newFakeAPI()
	api.halls = []cinemaapi.Hall{{ID: "3", Name: "A"}}
	s := newTestSyncer(api, &fakeCatalog{}, &memTokens{})
	s.setState(Synced)

	if err := s.UpdateHallSales(context.Background(), entity.Hall{Name: "A", SalesOpen: utils.BoolPtr(true)}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if api.count("sales 3 true") != 1 {
		t.Fatalf("expected sales toggle, got %v", api.Calls())
	}

	if err := s.UpdateHallSales(context.Background(), entity.Hall{Name: "Missing"}); err != nil {
		t.Fatalf("unmatched hall should be a no-op, got %v", err)
	}

	api.failOn["sales"] = errors.New("remote down")
	err := s.UpdateHallSales(context.Background(), entity.Hall{Name: "A"})
	if !errors.Is(err, utils.ErrSync) {
		t.Fatalf("expected ErrSync, got %v", err)
	}
}

func TestFullSync_OverlappingCallsShareOneCycle(t *testing.T) {
	api := newFakeAPI()
	api.blockFull = make(chan struct{})
	s := newTestSyncer(api, &fakeCatalog{}, &memTokens{})
	s.setState(Synced)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.FullSync(context.Background())
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(api.blockFull)
	wg.Wait()

	if n := api.count("halls"); n != 1 {
		t.Fatalf("expected a single hall pass, got %d", n)
	}
}

func TestStop_UnsubscribesFromCatalog(t *testing.T) {
	api := newFakeAPI()
	cat := &fakeCatalog{}
	s := New(api, cat, &memTokens{}, Options{Interval: time.Hour, PushOnChange: true}, zap.NewNop())

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cat.subs != 1 {
		t.Fatalf("expected one subscription, got %d", cat.subs)
	}
	s.Stop()
	if cat.subs != 0 {
		t.Fatalf("expected subscription removed, got %d", cat.subs)
	}
}

func TestCatalogEvent_PushesUntilStopped(t *testing.T) {
	api := newFakeAPI()
	cat := &fakeCatalog{}
	s := New(api, cat, &memTokens{}, Options{Interval: time.Hour, PushOnChange: true}, zap.NewNop())

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	notify := cat.notify
	before := api.count("halls")

	notify(catalog.Event{Kind: catalog.HallsChanged})
	s.Stop()
	if got := api.count("halls"); got != before+1 {
		t.Fatalf("expected one halls pass from the event, got %d", got-before)
	}

	// An emit that copied the subscriber list before Stop delivers late.
	notify(catalog.Event{Kind: catalog.HallsChanged})
	s.Stop()
	if got := api.count("halls"); got != before+1 {
		t.Fatalf("expected no pass after stop, got %d", got-before)
	}
}

func TestRemoveHallAndMovie(t *testing.T) {
	api := newFakeAPI()
	api.halls = []cinemaapi.Hall{{ID: "7", Name: "A"}}
	api.films = []cinemaapi.Film{{ID: "3", Name: "Arrival"}, {ID: "4", Name: "Dune"}}
	s := newTestSyncer(api, &fakeCatalog{}, &memTokens{})

	if err := s.RemoveHall(context.Background(), "A"); err != nil {
		t.Fatalf("offline remove should be a no-op, got %v", err)
	}
	if api.count("delete_") != 0 {
		t.Fatalf("expected no deletes while offline, got %v", api.Calls())
	}

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer s.Stop()

	if err := s.RemoveHall(context.Background(), "A"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := s.RemoveHall(context.Background(), "missing"); err != nil {
		t.Fatalf("expected nil error for unknown hall, got %v", err)
	}
	if err := s.RemoveMovie(context.Background(), "Arrival"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if api.count("delete_hall 7") != 1 || api.count("delete_movie 3") != 1 || api.count("delete_") != 2 {
		t.Fatalf("unexpected delete calls: %v", api.Calls())
	}

	api.failOn["delete_movie"] = errors.New("boom")
	if err := s.RemoveMovie(context.Background(), "Dune"); !errors.Is(err, utils.ErrSync) {
		t.Fatalf("expected ErrSync, got %v", err)
	}
}
