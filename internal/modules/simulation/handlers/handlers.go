// Package handlers provides HTTP handlers for what-if simulations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
	"github.com/pathwise/pathwise/internal/identity"
	"github.com/pathwise/pathwise/internal/modules/goals"
	"github.com/pathwise/pathwise/internal/modules/projection"
	"github.com/pathwise/pathwise/internal/modules/simulation"
)

// Handler handles simulation HTTP requests
type Handler struct {
	service *simulation.Service
	log     zerolog.Logger
}

// NewHandler creates a new simulation handler
func NewHandler(service *simulation.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "simulation").Logger(),
	}
}

// HandleSimulate runs a simulation for a goal and records it
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)
	goalID, err := uuid.Parse(chi.URLParam(r, "goalID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	var req struct {
		Name        string                     `json:"name,omitempty"`
		CurrentRate *decimal.Decimal           `json:"current_rate,omitempty"`
		Adjustments map[string]decimal.Decimal `json:"adjustments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Run(userID, goalID, req.Name, req.CurrentRate, req.Adjustments)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"goal_id":            result.GoalID.String(),
		"name":               result.Name,
		"current_rate":       result.CurrentRate,
		"simulated_rate":     result.SimulatedRate,
		"baseline_months":    result.BaselineMonths,
		"simulated_months":   result.SimulatedMonths,
		"months_saved":       result.MonthsSaved,
		"baseline_date":      result.BaselineDate.Format(time.DateOnly),
		"simulated_date":     result.SimulatedDate.Format(time.DateOnly),
		"degenerate":         result.Degenerate,
		"baseline_chart":     chartResponse(result.BaselineChart),
		"simulated_chart":    chartResponse(result.SimulatedChart),
		"affordability_note": result.AffordabilityNote,
	})
}

// HandleHistory lists prior simulation runs for a goal
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)
	goalID, err := uuid.Parse(chi.URLParam(r, "goalID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	records, err := h.service.History(userID, goalID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	result := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		result = append(result, map[string]interface{}{
			"id":             rec.ID.String(),
			"name":           rec.Name,
			"adjustments":    rec.Adjustments,
			"simulated_rate": rec.SimulatedRate,
			"baseline_date":  rec.BaselineDate.Format(time.DateOnly),
			"simulated_date": rec.SimulatedDate.Format(time.DateOnly),
			"months_saved":   rec.MonthsSaved,
			"created_at":     rec.CreatedAt.Format(time.RFC3339),
		})
	}
	h.writeJSON(w, http.StatusOK, result)
}

func chartResponse(points []projection.ChartPoint) []map[string]interface{} {
	chart := make([]map[string]interface{}, 0, len(points))
	for _, p := range points {
		chart = append(chart, map[string]interface{}{
			"date":   p.Date.Format(time.DateOnly),
			"amount": p.Amount,
		})
	}
	return chart
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		h.writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, goals.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "goal not found")
	case errors.Is(err, goals.ErrNotOwner):
		h.writeError(w, http.StatusForbidden, "goal belongs to another user")
	default:
		h.log.Error().Err(err).Msg("Simulation request failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
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
