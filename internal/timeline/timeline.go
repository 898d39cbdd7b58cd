// Package timeline places showtimes on the 0-1440 minute axis of a day.
package timeline

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/pkg/utils"
)

const (
	MinutesPerDay = 1440

	// labelGapPercent is the minimum horizontal distance between a visible
	// time label and every label placed before it.
	labelGapPercent = 5.0
)

// Position is where a session block sits on a 24-hour axis.
type Position struct {
	LeftPercent  float64 `json:"leftPercent"`
	WidthPercent float64 `json:"widthPercent"`
}

// Label is a start-time marker under a timeline.
type Label struct {
	Text        string  `json:"text"`
	LeftPercent float64 `json:"leftPercent"`
	Visible     bool    `json:"visible"`
}

// Overlap names two sessions of one hall whose intervals intersect.
type Overlap struct {
	First  entity.Session `json:"first"`
	Second entity.Session `json:"second"`
}

// Place appends the session to the hall. Overlaps are not rejected.
func Place(h *entity.Hall, session entity.Session) {
	session.HallID = h.ID
	h.Sessions = append(h.Sessions, session)
}

// Remove drops every session matching title and start and returns how many
// were removed.
func Remove(h *entity.Hall, title string, startMinutes int) int {
	kept := h.Sessions[:0]
	removed := 0
	for _, s := range h.Sessions {
		if s.Title == title && s.StartMinutes == startMinutes {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	h.Sessions = kept
	return removed
}

func LayoutToPercent(startMinutes, duration int) Position {
	return Position{
		LeftPercent:  float64(startMinutes) / MinutesPerDay * 100,
		WidthPercent: float64(duration) / MinutesPerDay * 100,
	}
}

// FormatMinutes renders minutes as HH:MM. Hours are not wrapped at 24.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(value string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", utils.ErrValidation, value)
	}
	hours, errH := strconv.Atoi(hh)
	minutes, errM := strconv.Atoi(mm)
	if errH != nil || errM != nil {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", utils.ErrValidation, value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: time %q is out of range", utils.ErrValidation, value)
	}
	return hours*60 + minutes, nil
}

// Overlaps lists pairs of sessions in h whose [start, start+duration)
// intervals intersect.
func Overlaps(h entity.Hall) []Overlap {
	sessions := Sorted(h.Sessions)
	var overlaps []Overlap
	for i := range sessions {
		end := sessions[i].StartMinutes + sessions[i].Duration
		for j := i + 1; j < len(sessions) && sessions[j].StartMinutes < end; j++ {
			overlaps = append(overlaps, Overlap{First: sessions[i], Second: sessions[j]})
		}
	}
	return overlaps
}

// Sorted returns a copy of sessions ordered by start time.
func Sorted(sessions []entity.Session) []entity.Session {
	out := append([]entity.Session(nil), sessions...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartMinutes < out[j].StartMinutes
	})
	return out
}

// Labels returns one label per session in start order. A label closer than
// labelGapPercent to any earlier label, hidden or not, is hidden.
func Labels(sessions []entity.Session) []Label {
	sorted := Sorted(sessions)
	labels := make([]Label, 0, len(sorted))
	for _, s := range sorted {
		left := LayoutToPercent(s.StartMinutes, s.Duration).LeftPercent
		visible := true
		for _, prev := range labels {
			if math.Abs(left-prev.LeftPercent) < labelGapPercent {
				visible = false
				break
			}
		}
		labels = append(labels, Label{
			Text:        FormatMinutes(s.StartMinutes),
			LeftPercent: left,
			Visible:     visible,
		})
	}
	return labels
}
