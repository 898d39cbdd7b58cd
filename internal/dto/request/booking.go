package request

// ShowingQuery is the navigation contract from the schedule to the hall page.
// Time is the session start in unix seconds.
type ShowingQuery struct {
	Film string `json:"film" validate:"required"`
	Hall string `json:"hall" validate:"required"`
	Time string `json:"time" validate:"required,numeric"`
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type SeatRef struct {
	Row  int `json:"row" validate:"min=1"`
	Seat int `json:"seat" validate:"min=1"`
}

type CreateBookingRequest struct {
	ShowingQuery
	Seats []SeatRef `json:"seats" validate:"dive"`
}
