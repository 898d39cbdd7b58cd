package entity

type Movie struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
	Country     string `json:"country"`
	Poster      string `json:"poster"`
}
