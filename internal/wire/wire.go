package wire

import (
	"net/http"

	"cinema-boxoffice/internal/adaptor"
	"cinema-boxoffice/internal/catalog"
	"cinema-boxoffice/internal/data/repository"
	"cinema-boxoffice/internal/usecase"
	"cinema-boxoffice/pkg/middleware"
	"cinema-boxoffice/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services and handlers and mounts every route. remote may be
// nil when the sync adapter is disabled.
func Wiring(repo *repository.Repository, store *catalog.Store, remote usecase.RemoteSync, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, store, remote, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, service, logger),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, service *usecase.Service, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	gate := middleware.AdminGate(service.Auth, logger)

	wireAuth(r, handler.Auth)
	wireBooking(r, handler.Schedule, handler.Booking, handler.Ticket)
	wireHall(r, handler.Hall, gate)
	wireMovie(r, handler.Movie, gate)
	wireEditor(r, handler.Editor, handler.Sync, gate)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
