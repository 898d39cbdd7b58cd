package request

type StartMovieDragRequest struct {
	MovieID string `json:"movie_id" validate:"required"`
}

type DropOnTimelineRequest struct {
	HallID string `json:"hall_id" validate:"required"`
}

type ConfirmSessionRequest struct {
	StartTime string `json:"start_time" validate:"required"`
}

type StartSessionDragRequest struct {
	HallID       string `json:"hall_id" validate:"required"`
	Title        string `json:"title" validate:"required"`
	StartMinutes int    `json:"start_minutes" validate:"min=0,max=1439"`
}
