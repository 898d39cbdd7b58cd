package response

import "cinema-boxoffice/internal/data/entity"

type MovieResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
	Country     string `json:"country"`
	Poster      string `json:"poster"`
}

// MovieToResponse substitutes placeholder for a missing poster.
func MovieToResponse(m entity.Movie, placeholder string) MovieResponse {
	poster := m.Poster
	if poster == "" {
		poster = placeholder
	}
	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Duration:    m.Duration,
		Description: m.Description,
		Country:     m.Country,
		Poster:      poster,
	}
}
