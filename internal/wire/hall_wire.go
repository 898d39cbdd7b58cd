package wire

import (
	"net/http"

	"cinema-boxoffice/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireHall(r chi.Router, hallHandler *adaptor.HallHandler, gate func(http.Handler) http.Handler) {
	r.Route("/api/admin/halls", func(r chi.Router) {
		r.Use(gate)

		r.Get("/", hallHandler.GetHalls)
		r.Post("/", hallHandler.CreateHall)
		r.Get("/{id}", hallHandler.GetHallByID)
		r.Delete("/{id}", hallHandler.DeleteHall)
		r.Post("/{id}/select", hallHandler.SelectHall)             // seat grid panel
		r.Post("/{id}/select-prices", hallHandler.SelectPriceHall) // prices and sales panel
	})
}
