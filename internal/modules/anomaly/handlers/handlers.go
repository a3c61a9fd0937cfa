// Package handlers provides HTTP handlers for spending anomalies.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pathwise/pathwise/internal/identity"
	"github.com/pathwise/pathwise/internal/modules/anomaly"
)

// Handler handles anomaly HTTP requests
type Handler struct {
	service *anomaly.Service
	log     zerolog.Logger
}

// NewHandler creates a new anomaly handler
func NewHandler(service *anomaly.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "anomaly").Logger(),
	}
}

// HandleScan runs detection for the acting user and returns new findings
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	created, err := h.service.Scan(userID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"created":   anomalyList(created),
		"new_count": len(created),
	})
}

// HandleListActive returns undismissed anomalies
func (h *Handler) HandleListActive(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	active, err := h.service.Active(userID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, anomalyList(active))
}

// HandleHistory returns all anomalies including dismissed ones
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	all, err := h.service.History(userID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, anomalyList(all))
}

// HandleDismiss marks an anomaly as dismissed
func (h *Handler) HandleDismiss(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)
	anomalyID, err := uuid.Parse(chi.URLParam(r, "anomalyID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid anomaly id")
		return
	}

	switch err := h.service.Dismiss(userID, anomalyID); {
	case err == nil:
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "dismissed"})
	case errors.Is(err, anomaly.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "anomaly not found")
	case errors.Is(err, anomaly.ErrNotOwner):
		h.writeError(w, http.StatusForbidden, "anomaly belongs to another user")
	default:
		h.log.Error().Err(err).Msg("Anomaly dismissal failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func anomalyList(anomalies []anomaly.Anomaly) []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(anomalies))
	for _, a := range anomalies {
		result = append(result, map[string]interface{}{
			"id":              a.ID.String(),
			"category":        a.Category,
			"severity":        string(a.Severity),
			"actual_amount":   a.ActualAmount,
			"baseline_amount": a.BaselineAmount,
			"message":         a.Message,
			"is_dismissed":    a.IsDismissed,
			"created_at":      a.CreatedAt.Format(time.RFC3339),
		})
	}
	return result
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
