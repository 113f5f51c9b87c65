package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. The note routes are list-shaped: every bulk
// operation addresses the collection URL, single-object operations address
// the id-suffixed URL. The auth middleware is attached only when a token
// sign key is configured.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		if h.appCfg.TokenSignKey != "" {
			r.Use(h.auth)
		}

		r.Get("/api/notes/", h.listNotes)
		r.Post("/api/notes/", h.createNotes)
		r.Put("/api/notes/", h.bulkUpdateNotes)
		r.Patch("/api/notes/", h.partialBulkUpdateNotes)
		r.Delete("/api/notes/", h.bulkDestroyNotes)

		r.Get("/api/notes/{noteID}", h.getNote)
		r.Delete("/api/notes/{noteID}", h.deleteNote)
	})

	return router
}
