package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-boxoffice/internal/dto/request"
	"cinema-boxoffice/internal/usecase"
	"cinema-boxoffice/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HallHandler serves the hall list and the per-hall admin actions.
type HallHandler struct {
	halls  usecase.HallService
	editor usecase.EditorService
	log    *zap.Logger
}

func NewHallHandler(halls usecase.HallService, editor usecase.EditorService, log *zap.Logger) *HallHandler {
	return &HallHandler{
		halls:  halls,
		editor: editor,
		log:    log.With(zap.String("handler", "hall")),
	}
}

// GetHalls handles GET /api/admin/halls
func (h *HallHandler) GetHalls(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.halls.List(r.Context()))
}

// GetHallByID handles GET /api/admin/halls/{id}
func (h *HallHandler) GetHallByID(w http.ResponseWriter, r *http.Request) {
	hallID := chi.URLParam(r, "id")
	if hallID == "" {
		utils.ResponseBadRequest(w, "Hall ID is required", nil)
		return
	}

	hall, err := h.halls.Get(r.Context(), hallID)
	if err != nil {
		handleServiceError(w, h.log, err, "get hall")
		return
	}

	utils.ResponseSuccess(w, "success", hall)
}

// CreateHall handles POST /api/admin/halls
func (h *HallHandler) CreateHall(w http.ResponseWriter, r *http.Request) {
	var req request.CreateHallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	hall, err := h.editor.CreateHall(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create hall")
		return
	}

	utils.ResponseCreated(w, "Hall created", hall)
}

// DeleteHall handles DELETE /api/admin/halls/{id}
func (h *HallHandler) DeleteHall(w http.ResponseWriter, r *http.Request) {
	hallID := chi.URLParam(r, "id")
	if hallID == "" {
		utils.ResponseBadRequest(w, "Hall ID is required", nil)
		return
	}

	if err := h.editor.DeleteHall(r.Context(), hallID); err != nil {
		handleServiceError(w, h.log, err, "delete hall")
		return
	}

	utils.ResponseSuccess(w, "Hall deleted", nil)
}

// SelectHall handles POST /api/admin/halls/{id}/select
func (h *HallHandler) SelectHall(w http.ResponseWriter, r *http.Request) {
	grid, err := h.editor.SelectHall(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "select hall")
		return
	}

	utils.ResponseSuccess(w, "success", grid)
}

// SelectPriceHall handles POST /api/admin/halls/{id}/select-prices
func (h *HallHandler) SelectPriceHall(w http.ResponseWriter, r *http.Request) {
	hall, err := h.editor.SelectPriceHall(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "select price hall")
		return
	}

	utils.ResponseSuccess(w, "success", hall)
}
