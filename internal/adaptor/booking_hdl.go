package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-boxoffice/internal/dto/request"
	"cinema-boxoffice/internal/usecase"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// Showing handles GET /api/hall?film=&hall=&time=&date= (public)
func (h *BookingHandler) Showing(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ShowingQuery{
		Film: query.Get("film"),
		Hall: query.Get("hall"),
		Time: query.Get("time"),
		Date: query.Get("date"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Session parameters are missing", validationErrors)
		return
	}

	showing, err := h.service.Showing(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get showing")
		return
	}

	utils.ResponseSuccess(w, "success", showing)
}

// CreateBooking handles POST /api/bookings (public)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// LastBooking handles GET /api/bookings/last (public)
func (h *BookingHandler) LastBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.Last(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get last booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}
