package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all simulation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/goals/{goalID}/simulations", func(r chi.Router) {
		r.Post("/", h.HandleSimulate) // Run and record a simulation
		r.Get("/", h.HandleHistory)   // Prior runs, newest first
	})
}
