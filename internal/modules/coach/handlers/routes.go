package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers coach routes on the router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/coach", func(r chi.Router) {
		r.Post("/chat", h.HandleChat)       // One conversational exchange
		r.Get("/history", h.HandleHistory)  // Transcript, oldest first
		r.Delete("/session", h.HandleReset) // Abandon the current dialogue
	})
}
