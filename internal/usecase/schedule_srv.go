package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-boxoffice/internal/catalog"
	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/internal/dto/response"
	"cinema-boxoffice/internal/timeline"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

const weekDays = 7

type ScheduleService interface {
	// Schedule lists, for the given date (today when empty), every movie with
	// sessions grouped by hall. Sessions repeat daily.
	Schedule(ctx context.Context, date string) (*response.ScheduleResponse, error)
}

type scheduleService struct {
	store       *catalog.Store
	placeholder string
	clock       clock
	log         *zap.Logger
}

func NewScheduleService(store *catalog.Store, placeholder string, clock clock, log *zap.Logger) ScheduleService {
	return &scheduleService{
		store:       store,
		placeholder: placeholder,
		clock:       clock,
		log:         log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) Schedule(ctx context.Context, date string) (*response.ScheduleResponse, error) {
	now := s.clock.Now()
	if date == "" {
		date = now.Format(dateLayout)
	}
	day, err := time.ParseInLocation(dateLayout, date, s.clock.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", utils.ErrValidation)
	}

	halls := s.store.Halls()
	movies := make([]response.ScheduleMovieResponse, 0)
	for _, m := range s.store.Movies() {
		var grouped []response.ScheduleHallResponse
		for _, h := range halls {
			if h.SalesOpen != nil && !*h.SalesOpen {
				continue
			}
			times := slotsFor(h, m.Title, day, now)
			if len(times) == 0 {
				continue
			}
			grouped = append(grouped, response.ScheduleHallResponse{
				HallID:   h.ID,
				HallName: h.DisplayName(),
				Times:    times,
			})
		}
		if len(grouped) == 0 {
			continue
		}
		movies = append(movies, response.ScheduleMovieResponse{
			MovieResponse: response.MovieToResponse(m, s.placeholder),
			Halls:         grouped,
		})
	}

	return &response.ScheduleResponse{
		Date:   date,
		Days:   week(now),
		Movies: movies,
	}, nil
}

// slotsFor returns the sessions of title in h on day, ordered by start.
// Sessions that already started are disabled.
func slotsFor(h entity.Hall, title string, day, now time.Time) []response.TimeSlotResponse {
	var slots []response.TimeSlotResponse
	for _, session := range timeline.Sorted(h.Sessions) {
		if session.Title != title {
			continue
		}
		startsAt := day.Add(time.Duration(session.StartMinutes) * time.Minute)
		slots = append(slots, response.TimeSlotResponse{
			Time:      timeline.FormatMinutes(session.StartMinutes),
			Timestamp: startsAt.Unix(),
			Disabled:  startsAt.Before(now),
		})
	}
	return slots
}

// week is the 7-day strip starting today.
func week(now time.Time) []response.DayResponse {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := make([]response.DayResponse, 0, weekDays)
	for i := 0; i < weekDays; i++ {
		d := today.AddDate(0, 0, i)
		days = append(days, response.DayResponse{
			Date:      d.Format(dateLayout),
			DayName:   d.Weekday().String()[:3],
			DayNumber: d.Day(),
			IsToday:   i == 0,
		})
	}
	return days
}
