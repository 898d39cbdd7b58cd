package entity

// Session is one scheduled showtime of a movie in a hall, placed on the
// 0-1440 minute axis of a day. Title is denormalized from the movie.
type Session struct {
	MovieID      string `json:"movieId,omitempty"`
	Title        string `json:"title"`
	HallID       string `json:"hallId"`
	StartMinutes int    `json:"startMinutes"`
	Duration     int    `json:"duration"`
}
