package response

// DragStateResponse describes the scheduler interaction state.
type DragStateResponse struct {
	State        string `json:"state"`
	MovieID      string `json:"movie_id,omitempty"`
	HallID       string `json:"hall_id,omitempty"`
	Title        string `json:"title,omitempty"`
	Duration     int    `json:"duration,omitempty"`
	StartMinutes *int   `json:"start_minutes,omitempty"`
}

type EditorStateResponse struct {
	ActiveHallID      string            `json:"active_hall_id"`
	ActivePriceHallID string            `json:"active_price_hall_id"`
	Drag              DragStateResponse `json:"drag"`
}

// DropResponse reports the outcome of a drop and the state it left behind.
type DropResponse struct {
	Removed int               `json:"removed"`
	Drag    DragStateResponse `json:"drag"`
}
