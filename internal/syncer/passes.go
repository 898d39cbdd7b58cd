package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/internal/timeline"
	"cinema-boxoffice/pkg/cinemaapi"

	"go.uber.org/zap"
)

const (
	fallbackDuration = 90
	fallbackCountry  = "Russia"
	// fallbackSessionTime is sent for sessions starting at minute 0.
	fallbackSessionTime = "10:00"
)

func (s *Syncer) syncHalls(ctx context.Context) error {
	remote, err := s.api.Halls(ctx)
	if err != nil {
		return fmt.Errorf("fetch remote halls: %w", err)
	}

	var errs []error
	for _, hall := range s.catalog.Halls() {
		if err := s.pushHall(ctx, hall, remote); err != nil {
			s.log.Warn("Hall push failed", zap.String("hall", hall.Name), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Syncer) pushHall(ctx context.Context, hall entity.Hall, remote []cinemaapi.Hall) error {
	rows, cols := hall.Rows, hall.Seats
	if rows < 1 {
		rows = entity.DefaultRows
	}
	if cols < 1 {
		cols = entity.DefaultSeats
	}

	id, found := findHall(remote, hall.Name)
	if !found {
		if err := s.api.CreateHall(ctx, hall.Name, rows, cols); err != nil {
			return fmt.Errorf("create hall %s: %w", hall.Name, err)
		}
		refreshed, err := s.api.Halls(ctx)
		if err != nil {
			return fmt.Errorf("resolve created hall %s: %w", hall.Name, err)
		}
		if id, found = findHall(refreshed, hall.Name); !found {
			return fmt.Errorf("created hall %s not listed remotely", hall.Name)
		}
	} else {
		layout := make([]string, 0, len(hall.Layout))
		for _, seat := range hall.Layout {
			layout = append(layout, string(seat))
		}
		config := cinemaapi.HallConfig{Rows: rows, Cols: cols, Layout: layout}
		if err := s.api.UpdateHallConfig(ctx, id, config); err != nil {
			return fmt.Errorf("update hall %s configuration: %w", hall.Name, err)
		}
	}

	if hall.Prices != nil {
		prices := hall.EffectivePrices()
		if err := s.api.UpdateHallPrices(ctx, id, prices.Normal, prices.VIP); err != nil {
			return fmt.Errorf("update hall %s prices: %w", hall.Name, err)
		}
	}

	if hall.SalesOpen != nil {
		if err := s.api.ToggleHallSales(ctx, id, *hall.SalesOpen); err != nil {
			return fmt.Errorf("toggle hall %s sales: %w", hall.Name, err)
		}
	}
	return nil
}

func (s *Syncer) syncMovies(ctx context.Context) error {
	remote, err := s.api.Movies(ctx)
	if err != nil {
		return fmt.Errorf("fetch remote movies: %w", err)
	}
	byName := make(map[string]cinemaapi.ID, len(remote))
	for _, film := range remote {
		byName[film.DisplayName()] = film.ID
	}

	var errs []error
	for _, movie := range s.catalog.Movies() {
		data := movieData(movie)
		if id, ok := byName[movie.Title]; ok {
			err = s.api.UpdateMovie(ctx, id, data)
		} else {
			err = s.api.CreateMovie(ctx, data)
		}
		if err != nil {
			s.log.Warn("Movie push failed", zap.String("movie", movie.Title), zap.Error(err))
			errs = append(errs, fmt.Errorf("push movie %s: %w", movie.Title, err))
		}
	}
	return errors.Join(errs...)
}

func movieData(m entity.Movie) cinemaapi.MovieData {
	duration := m.Duration
	if duration <= 0 {
		duration = fallbackDuration
	}
	country := m.Country
	if country == "" {
		country = fallbackCountry
	}
	return cinemaapi.MovieData{
		Name:        m.Title,
		Description: m.Description,
		Duration:    duration,
		Country:     country,
		Poster:      m.Poster,
	}
}

// syncSessions creates every local session remotely for today's date. Already
// pushed sessions are created again on each cycle.
func (s *Syncer) syncSessions(ctx context.Context) error {
	data, err := s.api.AllData(ctx)
	if err != nil {
		return fmt.Errorf("fetch remote catalog: %w", err)
	}
	films := make(map[string]cinemaapi.ID, len(data.Films))
	for _, film := range data.Films {
		films[film.DisplayName()] = film.ID
	}
	today := s.opts.Now().In(s.opts.Location).Format(time.DateOnly)

	var errs []error
	for _, hall := range s.catalog.Halls() {
		hallID, ok := findHall(data.Halls, hall.Name)
		if !ok || len(hall.Sessions) == 0 {
			continue
		}
		for _, session := range hall.Sessions {
			filmID, ok := films[session.Title]
			if !ok {
				continue
			}
			seance := cinemaapi.SeanceData{
				HallID: hallID,
				FilmID: filmID,
				Date:   today,
				Time:   sessionTime(session.StartMinutes),
			}
			if err := s.api.CreateSeance(ctx, seance); err != nil {
				s.log.Warn("Session push failed",
					zap.String("hall", hall.Name),
					zap.String("movie", session.Title),
					zap.Error(err),
				)
				errs = append(errs, fmt.Errorf("create session %s at %s: %w", session.Title, seance.Time, err))
			}
		}
	}
	return errors.Join(errs...)
}

func sessionTime(startMinutes int) string {
	if startMinutes == 0 {
		return fallbackSessionTime
	}
	return timeline.FormatMinutes(startMinutes)
}

func findHall(halls []cinemaapi.Hall, name string) (cinemaapi.ID, bool) {
	for _, h := range halls {
		if h.DisplayName() == name {
			return h.ID, true
		}
	}
	return "", false
}
