package adaptor

import (
	"net/http"

	"cinema-boxoffice/internal/usecase"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

type SyncHandler struct {
	service usecase.SyncService
	log     *zap.Logger
}

func NewSyncHandler(service usecase.SyncService, log *zap.Logger) *SyncHandler {
	return &SyncHandler{
		service: service,
		log:     log.With(zap.String("handler", "sync")),
	}
}

// SyncNow handles POST /api/admin/sync
func (h *SyncHandler) SyncNow(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SyncNow(r.Context()); err != nil {
		handleServiceError(w, h.log, err, "sync now")
		return
	}

	utils.ResponseSuccess(w, "Synchronized", nil)
}
