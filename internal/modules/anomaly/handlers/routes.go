package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all anomaly routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/anomalies", func(r chi.Router) {
		r.Get("/", h.HandleListActive)                  // Undismissed anomalies
		r.Get("/history", h.HandleHistory)              // Full history
		r.Post("/scan", h.HandleScan)                   // Run detection now
		r.Post("/{anomalyID}/dismiss", h.HandleDismiss) // One-way dismissal
	})
}
