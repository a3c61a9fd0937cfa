// Package handlers provides HTTP handlers for generated reports.
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
	"github.com/pathwise/pathwise/internal/modules/reports"
)

// Handler handles report HTTP requests
type Handler struct {
	service *reports.Service
	log     zerolog.Logger
}

// NewHandler creates a new report handler
func NewHandler(service *reports.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "reports").Logger(),
	}
}

// HandleGenerate builds and stores a report for the acting user
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	rep, err := h.service.Generate(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("Report generation failed")
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.writeJSON(w, http.StatusCreated, reportResponse(*rep))
}

// HandleHistory lists the user's reports
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	history, err := h.service.History(userID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := make([]map[string]interface{}, 0, len(history))
	for _, rep := range history {
		result = append(result, reportResponse(rep))
	}
	h.writeJSON(w, http.StatusOK, result)
}

// HandleGet returns one report
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)
	reportID, err := uuid.Parse(chi.URLParam(r, "reportID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid report id")
		return
	}

	rep, err := h.service.Get(userID, reportID)
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, reportResponse(*rep))
	case errors.Is(err, reports.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "report not found")
	case errors.Is(err, reports.ErrNotOwner):
		h.writeError(w, http.StatusForbidden, "report belongs to another user")
	default:
		h.log.Error().Err(err).Msg("Report fetch failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func reportResponse(rep reports.Report) map[string]interface{} {
	return map[string]interface{}{
		"id":           rep.ID.String(),
		"title":        rep.Title,
		"period_start": rep.PeriodStart.Format(time.DateOnly),
		"period_end":   rep.PeriodEnd.Format(time.DateOnly),
		"content":      rep.Content,
		"created_at":   rep.CreatedAt.Format(time.RFC3339),
	}
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
