package wire

import (
	"cinema-boxoffice/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireBooking mounts the public pages: schedule, hall seat map, booking and ticket.
func wireBooking(
	r chi.Router,
	scheduleHandler *adaptor.ScheduleHandler,
	bookingHandler *adaptor.BookingHandler,
	ticketHandler *adaptor.TicketHandler,
) {
	r.Get("/api/schedule", scheduleHandler.Schedule)

	// Requires query params: ?film=<id>&hall=<id>&time=<unix seconds>&date=2026-01-16
	r.Get("/api/hall", bookingHandler.Showing)

	r.Post("/api/bookings", bookingHandler.CreateBooking)
	r.Get("/api/bookings/last", bookingHandler.LastBooking)

	r.Get("/api/tickets/{code}", ticketHandler.GetTicket)
	r.Get("/api/tickets/{code}/qr", ticketHandler.GetQR)
}
