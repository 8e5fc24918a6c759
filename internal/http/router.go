package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the site and API routes.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", HealthHandler)

	r.Get("/", h.ViewHandler)
	r.Get("/v/{view}", h.ViewHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/query", h.QueryHandler)
		r.Post("/query/reset", h.ResetHandler)
		r.Get("/query/state", h.StateHandler)
		r.Post("/schedule", h.ScheduleHandler)
	})

	return r
}
