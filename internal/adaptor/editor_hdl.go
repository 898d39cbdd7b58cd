package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-boxoffice/internal/dto/request"
	"cinema-boxoffice/internal/dto/response"
	"cinema-boxoffice/internal/usecase"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

// EditorHandler exposes the admin console: the seat grid and price panel of
// the selected halls and the scheduler drag-and-drop.
type EditorHandler struct {
	service usecase.EditorService
	log     *zap.Logger
}

func NewEditorHandler(service usecase.EditorService, log *zap.Logger) *EditorHandler {
	return &EditorHandler{
		service: service,
		log:     log.With(zap.String("handler", "editor")),
	}
}

// GetState handles GET /api/admin/editor
func (h *EditorHandler) GetState(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.State(r.Context()))
}

// ==================== SEAT GRID ====================

// GetGrid handles GET /api/admin/editor/grid
func (h *EditorHandler) GetGrid(w http.ResponseWriter, r *http.Request) {
	grid, err := h.service.Grid(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get grid")
		return
	}

	utils.ResponseSuccess(w, "success", grid)
}

// ToggleSeat handles POST /api/admin/editor/grid/toggle
func (h *EditorHandler) ToggleSeat(w http.ResponseWriter, r *http.Request) {
	var req request.ToggleSeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	grid, err := h.service.ToggleSeat(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "toggle seat")
		return
	}

	utils.ResponseSuccess(w, "success", grid)
}

// SaveConfig handles PUT /api/admin/editor/grid/config
func (h *EditorHandler) SaveConfig(w http.ResponseWriter, r *http.Request) {
	var req request.HallConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	grid, err := h.service.SaveConfig(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "save hall config")
		return
	}

	utils.ResponseSuccess(w, "Hall configuration saved", grid)
}

// CancelConfig handles POST /api/admin/editor/grid/cancel
func (h *EditorHandler) CancelConfig(w http.ResponseWriter, r *http.Request) {
	grid, err := h.service.CancelConfig(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "cancel hall config")
		return
	}

	utils.ResponseSuccess(w, "Changes discarded", grid)
}

// ==================== PRICES & SALES ====================

// SavePrices handles PUT /api/admin/editor/prices
func (h *EditorHandler) SavePrices(w http.ResponseWriter, r *http.Request) {
	var req request.HallPricesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	hall, err := h.service.SavePrices(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "save prices")
		return
	}

	utils.ResponseSuccess(w, "Prices saved", hall)
}

// ToggleSales handles POST /api/admin/editor/sales/toggle
func (h *EditorHandler) ToggleSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.ToggleSales(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "toggle sales")
		return
	}

	message := "Ticket sales closed"
	if sales.SalesOpen {
		message = "Ticket sales opened"
	}
	utils.ResponseSuccess(w, message, sales)
}

// ==================== SCHEDULER ====================

// GetTimelines handles GET /api/admin/editor/timelines
func (h *EditorHandler) GetTimelines(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.Timelines(r.Context()))
}

// StartMovieDrag handles POST /api/admin/editor/drag/movie
func (h *EditorHandler) StartMovieDrag(w http.ResponseWriter, r *http.Request) {
	var req request.StartMovieDragRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	state, err := h.service.StartMovieDrag(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "start movie drag")
		return
	}

	utils.ResponseSuccess(w, "success", state.View())
}

// StartSessionDrag handles POST /api/admin/editor/drag/session
func (h *EditorHandler) StartSessionDrag(w http.ResponseWriter, r *http.Request) {
	var req request.StartSessionDragRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	state, err := h.service.StartSessionDrag(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "start session drag")
		return
	}

	utils.ResponseSuccess(w, "success", state.View())
}

// DropOnTimeline handles POST /api/admin/editor/drag/timeline
func (h *EditorHandler) DropOnTimeline(w http.ResponseWriter, r *http.Request) {
	var req request.DropOnTimelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	state, err := h.service.DropOnTimeline(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "drop on timeline")
		return
	}

	utils.ResponseSuccess(w, "success", state.View())
}

// DropOnTrash handles POST /api/admin/editor/drag/trash
func (h *EditorHandler) DropOnTrash(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.DropOnTrash(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "drop on trash")
		return
	}

	utils.ResponseSuccess(w, "success", response.DropResponse{
		Removed: removed,
		Drag:    h.service.Drag().View(),
	})
}

// DropElsewhere handles POST /api/admin/editor/drag/elsewhere
func (h *EditorHandler) DropElsewhere(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.DropElsewhere(r.Context()).View())
}

// ConfirmPending handles POST /api/admin/editor/pending/confirm
func (h *EditorHandler) ConfirmPending(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	timeline, err := h.service.ConfirmPending(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "confirm session")
		return
	}

	utils.ResponseCreated(w, "Session added", timeline)
}

// CancelPending handles POST /api/admin/editor/pending/cancel
func (h *EditorHandler) CancelPending(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.CancelPending(r.Context()).View())
}
