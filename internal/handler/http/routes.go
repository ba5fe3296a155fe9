package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// protocol routes, all requiring device identification
	router.Group(func(r chi.Router) {
		r.Use(h.withDevice)
		r.Post("/api/sync", h.sync)
		r.Post("/api/itemestimate", h.itemEstimate)
		r.Get("/api/folders", h.getFolders)
		r.Post("/api/folders", h.setFolders)
	})

	// observability routes
	router.Group(func(r chi.Router) {
		r.Get("/api/admin/loopdata", h.getLoopData)
		r.Delete("/api/admin/loopdata", h.clearLoopData)
		r.Get("/api/admin/ignored", h.getIgnoredMessages)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
