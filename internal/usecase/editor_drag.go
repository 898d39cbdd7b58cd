package usecase

import "cinema-boxoffice/internal/dto/response"

// DragState is the scheduler interaction state. Exactly one of the types
// below is held by the editor at any time.
type DragState interface {
	isDragState()
	View() response.DragStateResponse
}

// Idle means no drag is in progress.
type Idle struct{}

// DraggingMovie carries the movie card being dragged.
type DraggingMovie struct {
	MovieID  string
	Title    string
	Duration int
}

// PendingSession waits for a start time after a movie was dropped on a
// hall timeline.
type PendingSession struct {
	HallID   string
	MovieID  string
	Title    string
	Duration int
}

// DraggingSession carries a placed session block, identified by title and start.
type DraggingSession struct {
	HallID       string
	Title        string
	StartMinutes int
}

func (Idle) isDragState()            {}
func (DraggingMovie) isDragState()   {}
func (PendingSession) isDragState()  {}
func (DraggingSession) isDragState() {}

func (Idle) View() response.DragStateResponse {
	return response.DragStateResponse{State: "idle"}
}

func (d DraggingMovie) View() response.DragStateResponse {
	return response.DragStateResponse{
		State:    "dragging_movie",
		MovieID:  d.MovieID,
		Title:    d.Title,
		Duration: d.Duration,
	}
}

func (p PendingSession) View() response.DragStateResponse {
	return response.DragStateResponse{
		State:    "pending_session",
		MovieID:  p.MovieID,
		HallID:   p.HallID,
		Title:    p.Title,
		Duration: p.Duration,
	}
}

func (d DraggingSession) View() response.DragStateResponse {
	start := d.StartMinutes
	return response.DragStateResponse{
		State:        "dragging_session",
		HallID:       d.HallID,
		Title:        d.Title,
		StartMinutes: &start,
	}
}
