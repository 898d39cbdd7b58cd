package request

// MovieRequest mirrors the movie form. Duration is the raw text input; the
// poster is an optional data URI.
type MovieRequest struct {
	Title       string      `json:"title"`
	Duration    LooseString `json:"duration"`
	Description string      `json:"description"`
	Country     string      `json:"country"`
	Poster      string      `json:"poster,omitempty"`
}
