package entity

import "time"

// BookedSeat is a purchased seat; Row and Seat are 1-based.
type BookedSeat struct {
	Row   int          `json:"row"`
	Seat  int          `json:"seat"`
	Type  SeatCategory `json:"type"`
	Price int          `json:"price"`
}

// Booking is immutable once stored under booking_<BookingCode>.
type Booking struct {
	BookingCode   string       `json:"bookingCode"`
	FilmID        string       `json:"filmId"`
	MovieTitle    string       `json:"movieTitle"`
	HallID        string       `json:"hallId"`
	HallName      string       `json:"hallName"`
	Date          string       `json:"date"`
	Time          string       `json:"time"`
	SelectedSeats []BookedSeat `json:"selectedSeats"`
	TotalPrice    int          `json:"totalPrice"`
	BookingTime   time.Time    `json:"bookingTime"`
	HallRows      int          `json:"hallRows"`
	HallSeats     int          `json:"hallSeats"`
	HallLayout    []SeatState  `json:"hallLayout"`
	Prices        Prices       `json:"prices"`
}
