package adaptor

import (
	"net/http"

	"cinema-boxoffice/internal/usecase"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

type ScheduleHandler struct {
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log.With(zap.String("handler", "schedule")),
	}
}

// Schedule handles GET /api/schedule?date=YYYY-MM-DD (public)
func (h *ScheduleHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.service.Schedule(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		handleServiceError(w, h.log, err, "get schedule")
		return
	}

	utils.ResponseSuccess(w, "success", schedule)
}
