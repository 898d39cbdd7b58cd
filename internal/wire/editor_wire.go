package wire

import (
	"net/http"

	"cinema-boxoffice/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireEditor(
	r chi.Router,
	editorHandler *adaptor.EditorHandler,
	syncHandler *adaptor.SyncHandler,
	gate func(http.Handler) http.Handler,
) {
	r.Route("/api/admin/editor", func(r chi.Router) {
		r.Use(gate)

		r.Get("/", editorHandler.GetState)

		r.Get("/grid", editorHandler.GetGrid)
		r.Post("/grid/toggle", editorHandler.ToggleSeat)
		r.Put("/grid/config", editorHandler.SaveConfig)
		r.Post("/grid/cancel", editorHandler.CancelConfig)

		r.Put("/prices", editorHandler.SavePrices)
		r.Post("/sales/toggle", editorHandler.ToggleSales)

		r.Get("/timelines", editorHandler.GetTimelines)
		r.Post("/drag/movie", editorHandler.StartMovieDrag)
		r.Post("/drag/session", editorHandler.StartSessionDrag)
		r.Post("/drag/timeline", editorHandler.DropOnTimeline)
		r.Post("/drag/trash", editorHandler.DropOnTrash)
		r.Post("/drag/elsewhere", editorHandler.DropElsewhere)
		r.Post("/pending/confirm", editorHandler.ConfirmPending)
		r.Post("/pending/cancel", editorHandler.CancelPending)
	})

	r.With(gate).Post("/api/admin/sync", syncHandler.SyncNow)
}
