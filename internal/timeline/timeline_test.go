package timeline

import (
	"errors"
	"math"
	"testing"

	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/pkg/utils"
)

func TestLayoutToPercent(t *testing.T) {
	pos := LayoutToPercent(600, 120)

	if math.Abs(pos.LeftPercent-41.67) > 0.01 {
		t.Fatalf("expected left ~41.67, got %f", pos.LeftPercent)
	}
	if math.Abs(pos.WidthPercent-8.33) > 0.01 {
		t.Fatalf("expected width ~8.33, got %f", pos.WidthPercent)
	}
}

func TestPlace_AllowsOverlap(t *testing.T) {
	h := &entity.Hall{ID: "hall_1"}

	Place(h, entity.Session{Title: "X", StartMinutes: 600, Duration: 120})
	Place(h, entity.Session{Title: "Y", StartMinutes: 660, Duration: 90})

	if len(h.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(h.Sessions))
	}
	if h.Sessions[0].HallID != "hall_1" {
		t.Fatalf("expected hall id to be stamped, got %q", h.Sessions[0].HallID)
	}

	overlaps := Overlaps(*h)
	if len(overlaps) != 1 || overlaps[0].First.Title != "X" || overlaps[0].Second.Title != "Y" {
		t.Fatalf("unexpected overlaps: %+v", overlaps)
	}
}

func TestOverlaps_AdjacentSessionsDoNotOverlap(t *testing.T) {
	h := entity.Hall{Sessions: []entity.Session{
		{Title: "A", StartMinutes: 600, Duration: 60},
		{Title: "B", StartMinutes: 660, Duration: 60},
	}}

	if got := Overlaps(h); len(got) != 0 {
		t.Fatalf("expected no overlaps, got %+v", got)
	}
}

func TestRemove_MatchesTitleAndStart(t *testing.T) {
	h := &entity.Hall{Sessions: []entity.Session{
		{Title: "X", StartMinutes: 600, Duration: 120},
		{Title: "X", StartMinutes: 900, Duration: 120},
		{Title: "X", StartMinutes: 600, Duration: 120},
		{Title: "Y", StartMinutes: 600, Duration: 90},
	}}

	removed := Remove(h, "X", 600)

	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if len(h.Sessions) != 2 || h.Sessions[0].StartMinutes != 900 || h.Sessions[1].Title != "Y" {
		t.Fatalf("unexpected sessions: %+v", h.Sessions)
	}
	if Remove(h, "Z", 0) != 0 {
		t.Fatal("expected no-op for unknown session")
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := map[int]string{0: "00:00", 5: "00:05", 600: "10:00", 1439: "23:59", 1500: "25:00"}
	for minutes, want := range cases {
		if got := FormatMinutes(minutes); got != want {
			t.Fatalf("FormatMinutes(%d): expected %s, got %s", minutes, want, got)
		}
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("10:30")
	if err != nil || got != 630 {
		t.Fatalf("expected 630, got %d (%v)", got, err)
	}

	for _, bad := range []string{"24:00", "12:60", "-1:10", "noon", "12", "ab:cd", ""} {
		if _, err := ParseClock(bad); !errors.Is(err, utils.ErrValidation) {
			t.Fatalf("ParseClock(%q): expected ErrValidation, got %v", bad, err)
		}
	}
}

func TestLabels_HidesCrowdedLabels(t *testing.T) {
	tests := []struct {
		name     string
		starts   []int
		texts    []string
		visibles []bool
	}{
		{
			name:     "close pair then far label",
			starts:   []int{630, 600, 720},
			texts:    []string{"10:00", "10:30", "12:00"},
			visibles: []bool{true, false, true},
		},
		{
			name:     "chain measured against hidden labels",
			starts:   []int{0, 58, 116},
			texts:    []string{"00:00", "00:58", "01:56"},
			visibles: []bool{true, false, false},
		},
		{
			name:     "chain clears the gap again",
			starts:   []int{0, 58, 116, 190},
			texts:    []string{"00:00", "00:58", "01:56", "03:10"},
			visibles: []bool{true, false, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := make([]entity.Session, 0, len(tt.starts))
			for _, start := range tt.starts {
				sessions = append(sessions, entity.Session{Title: "A", StartMinutes: start, Duration: 60})
			}

			labels := Labels(sessions)

			if len(labels) != len(tt.texts) {
				t.Fatalf("expected %d labels, got %d", len(tt.texts), len(labels))
			}
			for i, label := range labels {
				if label.Text != tt.texts[i] || label.Visible != tt.visibles[i] {
					t.Fatalf("label %d: expected %s visible=%v, got %+v", i, tt.texts[i], tt.visibles[i], label)
				}
			}
		})
	}
}
