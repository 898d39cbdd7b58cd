package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cinema-boxoffice/internal/booking"
	"cinema-boxoffice/internal/catalog"
	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/internal/data/repository"
	"cinema-boxoffice/internal/dto/request"
	"cinema-boxoffice/internal/dto/response"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type BookingService interface {
	// Showing resolves the navigation query into a priced seat map.
	Showing(ctx context.Context, query *request.ShowingQuery) (*response.ShowingResponse, error)
	Create(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	// Last returns the most recent booking made on this box office.
	Last(ctx context.Context) (*response.BookingResponse, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	store    *catalog.Store
	clock    clock
	log      *zap.Logger
}

func NewBookingService(bookings repository.BookingRepository, store *catalog.Store, clock clock, log *zap.Logger) BookingService {
	return &bookingService{
		bookings: bookings,
		store:    store,
		clock:    clock,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Showing(ctx context.Context, query *request.ShowingQuery) (*response.ShowingResponse, error) {
	show, err := s.resolve(query)
	if err != nil {
		return nil, err
	}

	return &response.ShowingResponse{
		FilmID:     show.Movie.ID,
		MovieTitle: show.Movie.Title,
		HallID:     show.Hall.ID,
		HallName:   show.Hall.DisplayName(),
		Date:       show.Date,
		Time:       show.Time,
		SeatMap:    booking.RenderSeatMap(show),
	}, nil
}

func (s *bookingService) Create(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, utils.FormatValidationErrors(errs))
	}

	show, err := s.resolve(&req.ShowingQuery)
	if err != nil {
		return nil, err
	}

	sel := booking.NewSelection(show)
	for _, seat := range req.Seats {
		selected, err := sel.Toggle(seat.Row, seat.Seat)
		if err != nil {
			return nil, err
		}
		if !selected {
			return nil, fmt.Errorf("%w: row %d seat %d is listed twice", utils.ErrValidation, seat.Row, seat.Seat)
		}
	}

	now := s.clock.Now()
	b, err := booking.Commit(show, sel, now, utils.GenerateBookingCode(now))
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		s.log.Error("Failed to save booking", zap.Error(err), zap.String("booking_code", b.BookingCode))
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_code", b.BookingCode),
		zap.String("hall_id", b.HallID),
		zap.Int("seats", len(b.SelectedSeats)),
		zap.Int("total", b.TotalPrice),
	)
	resp := response.BookingToResponse(b)
	return &resp, nil
}

func (s *bookingService) Last(ctx context.Context) (*response.BookingResponse, error) {
	code, err := s.bookings.LastCode(ctx)
	if err != nil {
		return nil, err
	}
	b, err := s.bookings.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := response.BookingToResponse(b)
	return &resp, nil
}

// resolve finds the movie and hall of a query and renders the start time in
// the configured location.
func (s *bookingService) resolve(query *request.ShowingQuery) (booking.Showing, error) {
	if errs := utils.ValidateStruct(query); len(errs) > 0 {
		return booking.Showing{}, fmt.Errorf("%w: %s", utils.ErrValidation, utils.FormatValidationErrors(errs))
	}

	movie, ok := findMovie(s.store.Movies(), query.Film)
	if !ok {
		return booking.Showing{}, fmt.Errorf("movie %s: %w", query.Film, utils.ErrNotFound)
	}
	hall, ok := findHall(s.store.Halls(), query.Hall)
	if !ok {
		return booking.Showing{}, fmt.Errorf("hall %s: %w", query.Hall, utils.ErrNotFound)
	}
	if hall.Rows < 1 {
		hall.Rows = entity.DefaultRows
	}
	if hall.Seats < 1 {
		hall.Seats = entity.DefaultSeats
	}

	seconds, err := strconv.ParseInt(query.Time, 10, 64)
	if err != nil {
		return booking.Showing{}, fmt.Errorf("%w: time must be unix seconds", utils.ErrValidation)
	}
	startsAt := time.Unix(seconds, 0).In(s.clock.loc)

	date := query.Date
	if date == "" {
		date = s.clock.Now().Format(dateLayout)
	}

	return booking.Showing{
		Movie:    movie,
		Hall:     hall,
		Date:     date,
		Time:     startsAt.Format("15:04"),
		StartsAt: startsAt,
	}, nil
}

// findMovie matches an id with or without the movie_ prefix.
func findMovie(movies []entity.Movie, id string) (entity.Movie, bool) {
	id = strings.TrimSpace(id)
	for _, m := range movies {
		if m.ID == id || "movie_"+m.ID == id || m.ID == "movie_"+id {
			return m, true
		}
	}
	return entity.Movie{}, false
}

// findHall matches an id with or without the hall_ prefix, then a hall name.
func findHall(halls []entity.Hall, id string) (entity.Hall, bool) {
	id = strings.TrimSpace(id)
	for _, h := range halls {
		if h.ID == id || "hall_"+h.ID == id || h.ID == "hall_"+id || h.Name == id {
			return h, true
		}
	}
	return entity.Hall{}, false
}
