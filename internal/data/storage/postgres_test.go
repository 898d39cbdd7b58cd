package storage

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// fakePgx keeps kv_store rows in a map and answers the statements the
// Postgres storage issues.
type fakePgx struct {
	rows   map[string]string
	schema bool
	err    error
}

func newFakePgx() *fakePgx {
	return &fakePgx{rows: map[string]string{}}
}

func (f *fakePgx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.err != nil {
		return pgconn.NewCommandTag(""), f.err
	}
	switch {
	case strings.Contains(sql, "CREATE TABLE"):
		f.schema = true
	case strings.Contains(sql, "INSERT INTO kv_store"):
		f.rows[args[0].(string)] = args[1].(string)
	case strings.Contains(sql, "DELETE FROM kv_store"):
		delete(f.rows, args[0].(string))
	}
	return pgconn.NewCommandTag(""), nil
}

func (f *fakePgx) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	if f.err != nil {
		return fakeRow{err: f.err}
	}
	value, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: value}
}

func (f *fakePgx) Query(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	prefix := args[0].(string)
	var keys []string
	for _, key := range slices.Sorted(maps.Keys(f.rows)) {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return &fakeRows{keys: keys, index: -1}, nil
}

func (f *fakePgx) Ping(context.Context) error { return f.err }
func (f *fakePgx) Close()                     {}

type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.value
	return nil
}

type fakeRows struct {
	keys  []string
	index int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return []any{r.keys[r.index]}, nil }
func (r *fakeRows) RawValues() [][]byte                          { return [][]byte{[]byte(r.keys[r.index])} }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.index++
	return r.index < len(r.keys)
}

func (r *fakeRows) Scan(dest ...any) error {
	*dest[0].(*string) = r.keys[r.index]
	return nil
}

func TestPostgresStorage(t *testing.T) {
	db := newFakePgx()
	store := NewPostgresStorage(db, zap.NewNop())

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !db.schema {
		t.Fatal("expected kv_store table to be created")
	}
	exerciseStorage(t, store)
}

func TestPostgresStorage_MissingKeyIsNotAnError(t *testing.T) {
	store := NewPostgresStorage(newFakePgx(), zap.NewNop())

	value, ok, err := store.Get(context.Background(), "absent")
	if err != nil || ok || value != "" {
		t.Fatalf("expected absent key, got %q ok=%v err=%v", value, ok, err)
	}
}

func TestPostgresStorage_DatabaseErrors(t *testing.T) {
	boom := errors.New("connection reset")
	db := newFakePgx()
	db.err = boom
	store := NewPostgresStorage(db, zap.NewNop())
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, KeyHalls); !errors.Is(err, boom) || ok {
		t.Fatalf("expected wrapped read error, got ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, KeyHalls, "[]"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
	if _, err := store.Keys(ctx, BookingKeyPrefix); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped list error, got %v", err)
	}
	if err := store.EnsureSchema(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped schema error, got %v", err)
	}
}
