// Package handlers provides HTTP handlers for goal management.
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
)

// Handler handles goal HTTP requests
type Handler struct {
	service *goals.Service
	log     zerolog.Logger
}

// NewHandler creates a new goal handler
func NewHandler(service *goals.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "goals").Logger(),
	}
}

type goalRequest struct {
	Name                 string           `json:"name"`
	Category             string           `json:"category"`
	TargetAmount         decimal.Decimal  `json:"target_amount"`
	SavedAmount          *decimal.Decimal `json:"saved_amount,omitempty"`
	MonthlySavingsTarget *decimal.Decimal `json:"monthly_savings_target,omitempty"`
	Currency             string           `json:"currency,omitempty"`
	Deadline             string           `json:"deadline"`
	Priority             string           `json:"priority"`
}

func (req goalRequest) toInput() (goals.Input, error) {
	deadline, err := time.Parse(time.DateOnly, req.Deadline)
	if err != nil {
		return goals.Input{}, domain.NewValidationError("deadline", "must be a date in YYYY-MM-DD format")
	}
	return goals.Input{
		Name:                 req.Name,
		Category:             domain.GoalCategory(req.Category),
		TargetAmount:         req.TargetAmount,
		SavedAmount:          req.SavedAmount,
		MonthlySavingsTarget: req.MonthlySavingsTarget,
		Currency:             req.Currency,
		Deadline:             deadline,
		Priority:             domain.GoalPriority(req.Priority),
	}, nil
}

// HandleList returns all goals for the acting user
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	list, err := h.service.List(userID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := make([]map[string]interface{}, 0, len(list))
	for _, g := range list {
		result = append(result, goalResponse(g))
	}
	h.writeJSON(w, http.StatusOK, result)
}

// HandleGet returns a single goal
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)
	goalID, err := uuid.Parse(chi.URLParam(r, "goalID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	g, err := h.service.Get(userID, goalID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, goalResponse(*g))
}

// HandleCreate creates a new goal
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	g, err := h.service.Create(userID, in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, goalResponse(*g))
}

// HandleUpdate updates an existing goal
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)
	goalID, err := uuid.Parse(chi.URLParam(r, "goalID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	g, err := h.service.Update(userID, goalID, in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, goalResponse(*g))
}

// HandleDelete removes a goal
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)
	goalID, err := uuid.Parse(chi.URLParam(r, "goalID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	if err := h.service.Delete(userID, goalID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func goalResponse(g goals.Goal) map[string]interface{} {
	var target interface{}
	if g.MonthlySavingsTarget != nil {
		target = g.MonthlySavingsTarget
	}
	return map[string]interface{}{
		"id":                     g.ID.String(),
		"name":                   g.Name,
		"category":               string(g.Category),
		"target_amount":          g.TargetAmount,
		"saved_amount":           g.SavedAmount,
		"remaining_amount":       g.Remaining(),
		"progress_percent":       g.ProgressPercent(),
		"monthly_savings_target": target,
		"currency":               g.Currency,
		"deadline":               g.Deadline.Format(time.DateOnly),
		"priority":               string(g.Priority),
		"status":                 string(g.Status),
		"created_at":             g.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":             g.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// writeServiceError maps module errors onto HTTP status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var limitErr *goals.SavingsLimitError
	switch {
	case errors.As(err, &verr):
		h.writeError(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &limitErr):
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":             limitErr.Error(),
			"proposed":          limitErr.Proposed,
			"new_total":         limitErr.NewTotal,
			"disposable_income": limitErr.Disposable,
			"available":         limitErr.Available,
		})
	case errors.Is(err, goals.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "goal not found")
	case errors.Is(err, goals.ErrNotOwner):
		h.writeError(w, http.StatusForbidden, "goal belongs to another user")
	default:
		h.log.Error().Err(err).Msg("Goal request failed")
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
