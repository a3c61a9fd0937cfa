package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all projection routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/goals/{goalID}/projection", func(r chi.Router) {
		r.Post("/", h.HandleProject)    // Forecast at a candidate rate
		r.Post("/apply", h.HandleApply) // Persist the rate on the goal
	})
}
