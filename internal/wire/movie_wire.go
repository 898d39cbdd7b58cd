package wire

import (
	"net/http"

	"cinema-boxoffice/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, gate func(http.Handler) http.Handler) {
	r.Route("/api/admin/movies", func(r chi.Router) {
		r.Use(gate)

		r.Get("/", movieHandler.GetMovies)
		r.Post("/", movieHandler.CreateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie) // also drops its sessions
	})
}
