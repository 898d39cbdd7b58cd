package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"cinema-boxoffice/internal/syncer"

	"go.uber.org/zap"
)

type fakeOneShot struct {
	err     error
	stopped int
}

func (f *fakeOneShot) SyncNow(context.Context) error { return f.err }
func (f *fakeOneShot) Stop()                         { f.stopped++ }
func (f *fakeOneShot) State() syncer.State           { return syncer.Synced }

func TestRunSync_StopsSyncer(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantOut string
	}{
		{name: "success", wantOut: "Catalog synchronized\n"},
		{name: "failure", err: errors.New("offline")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeOneShot{err: tt.err}
			var out bytes.Buffer

			err := runSync(context.Background(), s, &out, zap.NewNop())

			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if s.stopped != 1 {
				t.Fatalf("expected Stop called once, got %d", s.stopped)
			}
			if out.String() != tt.wantOut {
				t.Fatalf("expected output %q, got %q", tt.wantOut, out.String())
			}
		})
	}
}
