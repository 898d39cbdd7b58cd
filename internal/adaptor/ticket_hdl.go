package adaptor

import (
	"net/http"

	"cinema-boxoffice/internal/usecase"
	"cinema-boxoffice/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// GetTicket handles GET /api/tickets/{code} (public)
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		utils.ResponseBadRequest(w, "Booking code is required", nil)
		return
	}

	ticket, err := h.service.Ticket(r.Context(), code)
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}

// GetQR handles GET /api/tickets/{code}/qr (public)
func (h *TicketHandler) GetQR(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		utils.ResponseBadRequest(w, "Booking code is required", nil)
		return
	}

	png, err := h.service.QR(r.Context(), code)
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket qr")
		return
	}

	utils.ResponsePNG(w, png)
}
