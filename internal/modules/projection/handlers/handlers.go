// Package handlers provides HTTP handlers for goal projections.
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
)

// Handler handles projection HTTP requests
type Handler struct {
	service *projection.Service
	log     zerolog.Logger
}

// NewHandler creates a new projection handler
func NewHandler(service *projection.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "projection").Logger(),
	}
}

type rateRequest struct {
	MonthlyRate decimal.Decimal `json:"monthly_rate"`
}

// HandleProject returns a forecast for a goal at a candidate rate without
// persisting anything
func (h *Handler) HandleProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)
	goalID, err := uuid.Parse(chi.URLParam(r, "goalID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.ProjectGoal(userID, goalID, req.MonthlyRate)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resultResponse(result))
}

// HandleApply persists a projected rate onto the goal
func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)
	goalID, err := uuid.Parse(chi.URLParam(r, "goalID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.service.ApplyRate(userID, goalID, req.MonthlyRate)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"goal_id":                g.ID.String(),
		"monthly_savings_target": g.MonthlySavingsTarget,
		"status":                 string(g.Status),
	})
}

func resultResponse(res projection.Result) map[string]interface{} {
	chart := make([]map[string]interface{}, 0, len(res.Chart))
	for _, p := range res.Chart {
		chart = append(chart, map[string]interface{}{
			"date":   p.Date.Format(time.DateOnly),
			"amount": p.Amount,
		})
	}
	return map[string]interface{}{
		"goal_id":             res.GoalID,
		"monthly_rate":        res.MonthlyRate,
		"months_needed":       res.MonthsNeeded,
		"projected_date":      res.ProjectedDate.Format(time.DateOnly),
		"deadline":            res.Deadline.Format(time.DateOnly),
		"on_track":            res.OnTrack,
		"months_ahead_behind": res.MonthsAheadBehind,
		"chart":               chart,
		"affordability_note":  res.AffordabilityNote,
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var limitErr *goals.SavingsLimitError
	switch {
	case errors.As(err, &verr):
		h.writeError(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &limitErr):
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":     limitErr.Error(),
			"available": limitErr.Available,
		})
	case errors.Is(err, goals.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "goal not found")
	case errors.Is(err, goals.ErrNotOwner):
		h.writeError(w, http.StatusForbidden, "goal belongs to another user")
	default:
		h.log.Error().Err(err).Msg("Projection request failed")
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
