package adaptor

import (
	"errors"
	"net/http"

	"cinema-boxoffice/internal/usecase"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Schedule *ScheduleHandler
	Booking  *BookingHandler
	Ticket   *TicketHandler
	Hall     *HallHandler
	Movie    *MovieHandler
	Editor   *EditorHandler
	Sync     *SyncHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Schedule: NewScheduleHandler(service.Schedule, log),
		Booking:  NewBookingHandler(service.Booking, log),
		Ticket:   NewTicketHandler(service.Ticket, log),
		Hall:     NewHallHandler(service.Hall, service.Editor, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Editor:   NewEditorHandler(service.Editor, log),
		Sync:     NewSyncHandler(service.Sync, log),
	}
}

// handleServiceError maps the error taxonomy onto HTTP status codes.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, utils.ErrValidation):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, utils.ErrUnauthorized):
		log.Warn(operation+" unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, utils.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, utils.ErrSync):
		log.Error(operation+" failed - remote sync",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadGateway(w, err.Error())

	default:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
