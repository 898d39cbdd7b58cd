package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/internal/data/repository"
	"cinema-boxoffice/internal/data/storage"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*Store, storage.Storage) {
	t.Helper()
	kv := storage.NewMemoryStorage()
	return NewStore(repository.NewRepository(kv, zap.NewNop()), zap.NewNop()), kv
}

type failingHallRepo struct{ err error }

func (f failingHallRepo) Load(context.Context) ([]entity.Hall, error) { return nil, nil }
func (f failingHallRepo) Save(context.Context, []entity.Hall) error   { return f.err }

type failingMovieRepo struct{ err error }

func (f failingMovieRepo) Load(context.Context) ([]entity.Movie, error) { return nil, nil }
func (f failingMovieRepo) Save(context.Context, []entity.Movie) error   { return f.err }

func TestLoad_CorruptDataYieldsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStorage()
	_ = kv.Set(ctx, storage.KeyHalls, "not json")
	_ = kv.Set(ctx, storage.KeyMovies, "[{")
	store := NewStore(repository.NewRepository(kv, zap.NewNop()), zap.NewNop())

	store.Load(ctx)

	if len(store.Halls()) != 0 || len(store.Movies()) != 0 {
		t.Fatal("expected empty collections for corrupt storage")
	}
}

func TestAddHall_Defaults(t *testing.T) {
	store, _ := newTestStore(t)

	hall, err := store.AddHall(context.Background(), "  Hall 1 ")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if hall.Name != "Hall 1" || hall.Rows != 5 || hall.Seats != 6 || len(hall.Layout) != 30 {
		t.Fatalf("unexpected hall: %+v", hall)
	}
	if hall.EffectivePrices() != entity.DefaultPrices() || hall.IsSalesOpen() {
		t.Fatalf("unexpected prices or sales state: %+v", hall)
	}
	if hall.Sessions == nil {
		t.Fatal("expected sessions to be an empty list")
	}

	if _, err := store.AddHall(context.Background(), "   "); !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSaveHalls_BackfillsAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStorage()
	_ = kv.Set(ctx, storage.KeyHalls, `[{"id":"hall_1","name":"Old","rows":2,"seats":3}]`)
	store := NewStore(repository.NewRepository(kv, zap.NewNop()), zap.NewNop())
	store.Load(ctx)

	if err := store.SaveHalls(ctx); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	first, _, _ := kv.Get(ctx, storage.KeyHalls)

	if err := store.SaveHalls(ctx); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	second, _, _ := kv.Get(ctx, storage.KeyHalls)

	if first != second {
		t.Fatalf("SaveHalls is not idempotent:\n%s\n%s", first, second)
	}

	hall, _ := store.Hall("hall_1")
	if len(hall.Layout) != 6 || hall.Prices == nil || hall.SalesOpen == nil || hall.Sessions == nil {
		t.Fatalf("expected back-filled hall, got %+v", hall)
	}
}

func TestHallRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)

	hall, _ := store.AddHall(ctx, "Round")
	updated, err := store.UpdateHall(ctx, hall.ID, func(h *entity.Hall) error {
		h.Layout[0] = entity.SeatVIP
		h.Prices = &entity.Prices{Normal: 250, VIP: 450}
		h.SalesOpen = utils.BoolPtr(true)
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	reloaded := NewStore(repository.NewRepository(kv, zap.NewNop()), zap.NewNop())
	reloaded.Load(ctx)
	got, err := reloaded.Hall(hall.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !reflect.DeepEqual(got, updated) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", updated, got)
	}
}

func TestUpdateHall_ErrorLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	hall, _ := store.AddHall(ctx, "Hall")

	boom := errors.New("boom")
	_, err := store.UpdateHall(ctx, hall.ID, func(h *entity.Hall) error {
		h.Name = "changed"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got, _ := store.Hall(hall.ID); got.Name != "Hall" {
		t.Fatalf("expected name unchanged, got %q", got.Name)
	}

	if _, err := store.UpdateHall(ctx, "missing", func(*entity.Hall) error { return nil }); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateHall_PersistFailureKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	store := New(failingHallRepo{}, repository.NewMovieRepository(storage.NewMemoryStorage(), zap.NewNop()), zap.NewNop())
	hall, err := store.AddHall(ctx, "Hall")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	store.halls = failingHallRepo{err: errors.New("disk full")}
	if _, err := store.UpdateHall(ctx, hall.ID, func(h *entity.Hall) error {
		h.Name = "changed"
		return nil
	}); err == nil {
		t.Fatal("expected persist error")
	}
	if got, _ := store.Hall(hall.ID); got.Name != "Hall" {
		t.Fatalf("expected in-memory hall unchanged, got %q", got.Name)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	hall, _ := store.AddHall(ctx, "Hall")

	copyHall, _ := store.Hall(hall.ID)
	copyHall.Layout[0] = entity.SeatDisabled
	copyHall.Sessions = append(copyHall.Sessions, entity.Session{Title: "X"})

	got, _ := store.Hall(hall.ID)
	if got.Layout[0] != entity.SeatNormal || len(got.Sessions) != 0 {
		t.Fatal("mutating a read result changed the store")
	}
}

func TestDeleteHall(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	a, _ := store.AddHall(ctx, "A")
	b, _ := store.AddHall(ctx, "B")

	if err := store.DeleteHall(ctx, a.ID); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	halls := store.Halls()
	if len(halls) != 1 || halls[0].ID != b.ID {
		t.Fatalf("unexpected halls: %+v", halls)
	}
	if err := store.DeleteHall(ctx, a.ID); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMovie_CascadesByMovieID(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	m1, _ := store.AddMovie(ctx, entity.Movie{ID: "m1", Title: "Arrival", Duration: 116})
	_, _ = store.AddMovie(ctx, entity.Movie{ID: "m2", Title: "Dune", Duration: 155})
	a, _ := store.AddHall(ctx, "A")
	b, _ := store.AddHall(ctx, "B")

	_, _ = store.UpdateHall(ctx, a.ID, func(h *entity.Hall) error {
		h.Sessions = []entity.Session{
			{MovieID: "m1", Title: "Arrival", StartMinutes: 600, Duration: 116},
			{Title: "Arrival", StartMinutes: 900, Duration: 116},
			{MovieID: "m2", Title: "Dune", StartMinutes: 1000, Duration: 155},
		}
		return nil
	})
	_, _ = store.UpdateHall(ctx, b.ID, func(h *entity.Hall) error {
		h.Sessions = []entity.Session{{MovieID: "m1", Title: "Arrival", StartMinutes: 60, Duration: 116}}
		return nil
	})

	removed, err := store.DeleteMovie(ctx, m1.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 sessions removed, got %d", removed)
	}

	hallA, _ := store.Hall(a.ID)
	if len(hallA.Sessions) != 2 || hallA.Sessions[0].MovieID != "" || hallA.Sessions[1].MovieID != "m2" {
		t.Fatalf("unexpected sessions in A: %+v", hallA.Sessions)
	}
	hallB, _ := store.Hall(b.ID)
	if len(hallB.Sessions) != 0 {
		t.Fatalf("expected B to have no sessions, got %+v", hallB.Sessions)
	}
	if len(store.Movies()) != 1 {
		t.Fatalf("expected 1 movie left, got %d", len(store.Movies()))
	}
}

// seedCascade stores one movie with a session in one hall.
func seedCascade(t *testing.T, store *Store) (entity.Movie, entity.Hall) {
	t.Helper()
	ctx := context.Background()
	movie, err := store.AddMovie(ctx, entity.Movie{ID: "m1", Title: "Arrival", Duration: 116})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	hall, _ := store.AddHall(ctx, "A")
	if _, err := store.UpdateHall(ctx, hall.ID, func(h *entity.Hall) error {
		h.Sessions = []entity.Session{{MovieID: "m1", Title: "Arrival", StartMinutes: 600, Duration: 116}}
		return nil
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	return movie, hall
}

func TestDeleteMovie_HallPersistFailureChangesNothing(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)
	movie, hall := seedCascade(t, store)

	var events []EventKind
	store.Subscribe(func(e Event) { events = append(events, e.Kind) })

	store.halls = failingHallRepo{err: errors.New("disk full")}
	if _, err := store.DeleteMovie(ctx, movie.ID); err == nil {
		t.Fatal("expected persist error")
	}

	if len(store.Movies()) != 1 {
		t.Fatalf("expected movie kept in memory, got %d movies", len(store.Movies()))
	}
	if got, _ := store.Hall(hall.ID); len(got.Sessions) != 1 {
		t.Fatalf("expected session kept in memory, got %+v", got.Sessions)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %v", events)
	}

	reloaded := NewStore(repository.NewRepository(kv, zap.NewNop()), zap.NewNop())
	reloaded.Load(ctx)
	if len(reloaded.Movies()) != 1 {
		t.Fatalf("expected persisted movie kept, got %d movies", len(reloaded.Movies()))
	}
	if got, _ := reloaded.Hall(hall.ID); len(got.Sessions) != 1 {
		t.Fatalf("expected persisted session kept, got %+v", got.Sessions)
	}
}

func TestDeleteMovie_MoviePersistFailureRestoresHalls(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)
	movie, hall := seedCascade(t, store)

	store.movies = failingMovieRepo{err: errors.New("disk full")}
	if _, err := store.DeleteMovie(ctx, movie.ID); err == nil {
		t.Fatal("expected persist error")
	}

	if len(store.Movies()) != 1 {
		t.Fatalf("expected movie kept in memory, got %d movies", len(store.Movies()))
	}
	if got, _ := store.Hall(hall.ID); len(got.Sessions) != 1 {
		t.Fatalf("expected session restored in memory, got %+v", got.Sessions)
	}

	reloaded := NewStore(repository.NewRepository(kv, zap.NewNop()), zap.NewNop())
	reloaded.Load(ctx)
	if got, _ := reloaded.Hall(hall.ID); len(got.Sessions) != 1 {
		t.Fatalf("expected persisted session restored, got %+v", got.Sessions)
	}
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	var events []EventKind
	unsubscribe := store.Subscribe(func(e Event) { events = append(events, e.Kind) })

	_, _ = store.AddHall(ctx, "A")
	_, _ = store.AddMovie(ctx, entity.Movie{Title: "X", Duration: 90})

	if len(events) != 2 || events[0] != HallsChanged || events[1] != MoviesChanged {
		t.Fatalf("unexpected events: %v", events)
	}

	unsubscribe()
	_ = store.SaveHalls(ctx)
	if len(events) != 2 {
		t.Fatalf("expected no events after unsubscribe, got %v", events)
	}
}
