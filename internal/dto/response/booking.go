package response

import (
	"fmt"
	"time"

	"cinema-boxoffice/internal/booking"
	"cinema-boxoffice/internal/data/entity"
)

type ShowingResponse struct {
	FilmID     string          `json:"film_id"`
	MovieTitle string          `json:"movie_title"`
	HallID     string          `json:"hall_id"`
	HallName   string          `json:"hall_name"`
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	SeatMap    booking.SeatMap `json:"seat_map"`
}

type BookingResponse struct {
	BookingCode   string              `json:"booking_code"`
	FilmID        string              `json:"film_id"`
	MovieTitle    string              `json:"movie_title"`
	HallID        string              `json:"hall_id"`
	HallName      string              `json:"hall_name"`
	Date          string              `json:"date"`
	Time          string              `json:"time"`
	SelectedSeats []entity.BookedSeat `json:"selected_seats"`
	TotalPrice    int                 `json:"total_price"`
	BookingTime   time.Time           `json:"booking_time"`
}

// TicketResponse is the printable ticket view.
type TicketResponse struct {
	BookingCode string   `json:"booking_code"`
	MovieTitle  string   `json:"movie_title"`
	HallName    string   `json:"hall_name"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Seats       []string `json:"seats"`
	TotalPrice  int      `json:"total_price"`
	QRURL       string   `json:"qr_url"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		BookingCode:   b.BookingCode,
		FilmID:        b.FilmID,
		MovieTitle:    b.MovieTitle,
		HallID:        b.HallID,
		HallName:      b.HallName,
		Date:          b.Date,
		Time:          b.Time,
		SelectedSeats: b.SelectedSeats,
		TotalPrice:    b.TotalPrice,
		BookingTime:   b.BookingTime,
	}
}

func BookingToTicket(b *entity.Booking) TicketResponse {
	seats := make([]string, 0, len(b.SelectedSeats))
	for _, s := range b.SelectedSeats {
		seats = append(seats, fmt.Sprintf("Row %d, Seat %d", s.Row, s.Seat))
	}

	title := b.MovieTitle
	if title == "" {
		title = "Unknown"
	}
	hall := b.HallName
	if hall == "" {
		hall = b.HallID
	}

	return TicketResponse{
		BookingCode: b.BookingCode,
		MovieTitle:  title,
		HallName:    hall,
		Date:        b.Date,
		Time:        b.Time,
		Seats:       seats,
		TotalPrice:  b.TotalPrice,
		QRURL:       "/api/tickets/" + b.BookingCode + "/qr",
	}
}
