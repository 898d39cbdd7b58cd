// Package booking renders priced seat maps and turns a seat selection into
// an immutable booking record.
package booking

import (
	"fmt"
	"sort"
	"time"

	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/pkg/utils"
)

// Showing is a resolved session: the movie, the hall and the concrete start.
type Showing struct {
	Movie    entity.Movie
	Hall     entity.Hall
	Date     string
	Time     string
	StartsAt time.Time
}

// Seat is one priced cell of a seat map. Row and Seat are 1-based.
type Seat struct {
	Row      int                 `json:"row"`
	Seat     int                 `json:"seat"`
	State    entity.SeatState    `json:"state"`
	Category entity.SeatCategory `json:"category"`
	Price    int                 `json:"price"`
}

type SeatMap struct {
	Rows   int           `json:"rows"`
	Seats  int           `json:"seats"`
	Prices entity.Prices `json:"prices"`
	Grid   [][]Seat      `json:"grid"`
}

// PriceOf resolves the price of a seat state against hall prices.
func PriceOf(state entity.SeatState, prices entity.Prices) int {
	switch state {
	case entity.SeatDisabled:
		return 0
	case entity.SeatVIP:
		return prices.VIP
	default:
		return prices.Normal
	}
}

// RenderSeatMap builds a grid shaped like the hall layout. A hall without a
// usable layout renders as all normal.
func RenderSeatMap(show Showing) SeatMap {
	h := show.Hall
	prices := h.EffectivePrices()
	m := SeatMap{Rows: h.Rows, Seats: h.Seats, Prices: prices, Grid: make([][]Seat, 0, max(h.Rows, 0))}

	for r := 0; r < h.Rows; r++ {
		row := make([]Seat, 0, h.Seats)
		for c := 0; c < h.Seats; c++ {
			state := stateAt(h, r+1, c+1)
			row = append(row, Seat{
				Row:      r + 1,
				Seat:     c + 1,
				State:    state,
				Category: state.Category(),
				Price:    PriceOf(state, prices),
			})
		}
		m.Grid = append(m.Grid, row)
	}
	return m
}

// stateAt looks up a 1-based seat. Out of range seats report disabled.
func stateAt(h entity.Hall, row, seat int) entity.SeatState {
	if row < 1 || seat < 1 || row > h.Rows || seat > h.Seats {
		return entity.SeatDisabled
	}
	index := (row-1)*h.Seats + (seat - 1)
	if index >= len(h.Layout) || !h.Layout[index].Valid() {
		return entity.SeatNormal
	}
	return h.Layout[index]
}

type seatKey struct{ row, seat int }

// Selection accumulates chosen seats for one showing with a running total.
type Selection struct {
	hall   entity.Hall
	prices entity.Prices
	seats  map[seatKey]entity.BookedSeat
	total  int
}

func NewSelection(show Showing) *Selection {
	return &Selection{
		hall:   show.Hall,
		prices: show.Hall.EffectivePrices(),
		seats:  make(map[seatKey]entity.BookedSeat),
	}
}

// Toggle selects or deselects a seat and reports whether it is now selected.
// Disabled and out-of-range seats cannot be selected.
func (s *Selection) Toggle(row, seat int) (bool, error) {
	state := stateAt(s.hall, row, seat)
	if state == entity.SeatDisabled {
		return false, fmt.Errorf("%w: row %d seat %d is not available", utils.ErrValidation, row, seat)
	}

	key := seatKey{row, seat}
	if booked, ok := s.seats[key]; ok {
		delete(s.seats, key)
		s.total -= booked.Price
		return false, nil
	}

	booked := entity.BookedSeat{
		Row:   row,
		Seat:  seat,
		Type:  state.Category(),
		Price: PriceOf(state, s.prices),
	}
	s.seats[key] = booked
	s.total += booked.Price
	return true, nil
}

// Seats returns the selection ordered by row then seat.
func (s *Selection) Seats() []entity.BookedSeat {
	seats := make([]entity.BookedSeat, 0, len(s.seats))
	for _, seat := range s.seats {
		seats = append(seats, seat)
	}
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].Seat < seats[j].Seat
	})
	return seats
}

func (s *Selection) Total() int {
	return s.total
}

func (s *Selection) Len() int {
	return len(s.seats)
}

// Commit snapshots the showing and the selection into a booking identified by code.
func Commit(show Showing, sel *Selection, now time.Time, code string) (*entity.Booking, error) {
	if sel == nil || sel.Len() == 0 {
		return nil, fmt.Errorf("%w: select at least one seat", utils.ErrValidation)
	}

	seats := sel.Seats()
	total := 0
	for _, seat := range seats {
		total += seat.Price
	}

	h := show.Hall.Clone()
	layout := h.Layout
	if len(layout) != h.Rows*h.Seats {
		layout = entity.NewLayout(h.Rows, h.Seats)
		copy(layout, h.Layout)
	}

	return &entity.Booking{
		BookingCode:   code,
		FilmID:        show.Movie.ID,
		MovieTitle:    show.Movie.Title,
		HallID:        h.ID,
		HallName:      h.DisplayName(),
		Date:          show.Date,
		Time:          show.Time,
		SelectedSeats: seats,
		TotalPrice:    total,
		BookingTime:   now,
		HallRows:      h.Rows,
		HallSeats:     h.Seats,
		HallLayout:    layout,
		Prices:        h.EffectivePrices(),
	}, nil
}
