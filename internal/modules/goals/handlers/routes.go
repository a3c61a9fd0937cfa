package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all goal routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/goals", func(r chi.Router) {
		r.Get("/", h.HandleList)              // List goals
		r.Post("/", h.HandleCreate)           // Create goal
		r.Get("/{goalID}", h.HandleGet)       // Goal detail
		r.Put("/{goalID}", h.HandleUpdate)    // Update goal
		r.Delete("/{goalID}", h.HandleDelete) // Delete goal
	})
}
