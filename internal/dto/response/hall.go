package response

import (
	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/internal/seating"
	"cinema-boxoffice/internal/timeline"
)

type HallResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Rows      int                `json:"rows"`
	Seats     int                `json:"seats"`
	Layout    []entity.SeatState `json:"layout"`
	Prices    entity.Prices      `json:"prices"`
	SalesOpen bool               `json:"sales_open"`
	Sessions  []SessionResponse  `json:"sessions"`
}

type SessionResponse struct {
	MovieID      string  `json:"movie_id,omitempty"`
	Title        string  `json:"title"`
	StartMinutes int     `json:"start_minutes"`
	Duration     int     `json:"duration"`
	Time         string  `json:"time"`
	LeftPercent  float64 `json:"left_percent"`
	WidthPercent float64 `json:"width_percent"`
}

type HallGridResponse struct {
	HallID string       `json:"hall_id"`
	Name   string       `json:"name"`
	Grid   seating.Grid `json:"grid"`
}

// TimelineResponse is one hall row of the scheduler.
type TimelineResponse struct {
	HallID   string             `json:"hall_id"`
	HallName string             `json:"hall_name"`
	Sessions []SessionResponse  `json:"sessions"`
	Labels   []timeline.Label   `json:"labels"`
	Overlaps []timeline.Overlap `json:"overlaps,omitempty"`
}

type SalesResponse struct {
	HallID    string `json:"hall_id"`
	Name      string `json:"name"`
	SalesOpen bool   `json:"sales_open"`
}

func HallToResponse(h entity.Hall) HallResponse {
	return HallResponse{
		ID:        h.ID,
		Name:      h.DisplayName(),
		Rows:      h.Rows,
		Seats:     h.Seats,
		Layout:    h.Layout,
		Prices:    h.EffectivePrices(),
		SalesOpen: h.IsSalesOpen(),
		Sessions:  SessionsToResponse(timeline.Sorted(h.Sessions)),
	}
}

func SessionsToResponse(sessions []entity.Session) []SessionResponse {
	out := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		pos := timeline.LayoutToPercent(s.StartMinutes, s.Duration)
		out = append(out, SessionResponse{
			MovieID:      s.MovieID,
			Title:        s.Title,
			StartMinutes: s.StartMinutes,
			Duration:     s.Duration,
			Time:         timeline.FormatMinutes(s.StartMinutes),
			LeftPercent:  pos.LeftPercent,
			WidthPercent: pos.WidthPercent,
		})
	}
	return out
}

func TimelineToResponse(h entity.Hall) TimelineResponse {
	return TimelineResponse{
		HallID:   h.ID,
		HallName: h.DisplayName(),
		Sessions: SessionsToResponse(timeline.Sorted(h.Sessions)),
		Labels:   timeline.Labels(h.Sessions),
		Overlaps: timeline.Overlaps(h),
	}
}
