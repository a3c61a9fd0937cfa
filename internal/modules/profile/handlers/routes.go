package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers authenticated profile routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/profile", func(r chi.Router) {
		r.Get("/", h.HandleGetProfile)              // Profile detail
		r.Put("/salary", h.HandleUpdateSalary)      // Update salary
		r.Get("/expenses", h.HandleListExpenses)    // List expenses
		r.Put("/expenses", h.HandleReplaceExpenses) // Replace expenses wholesale
		r.Get("/snapshot", h.HandleGetSnapshot)     // Financial capacity snapshot
	})
}

// RegisterPublicRoutes registers routes that run before identity resolution
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/users", h.HandleRegister) // Create profile
}
