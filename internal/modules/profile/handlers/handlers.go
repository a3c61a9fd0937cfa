// Package handlers provides HTTP handlers for the financial profile.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
	"github.com/pathwise/pathwise/internal/identity"
	"github.com/pathwise/pathwise/internal/modules/profile"
)

// Handler handles profile HTTP requests
type Handler struct {
	service *profile.Service
	log     zerolog.Logger
}

// NewHandler creates a new profile handler
func NewHandler(service *profile.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "profile").Logger(),
	}
}

// HandleRegister creates a user profile. Mounted outside the identity
// middleware since the caller has no id yet.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName          string          `json:"full_name"`
		Email             string          `json:"email"`
		MonthlySalary     decimal.Decimal `json:"monthly_salary"`
		PreferredCurrency string          `json:"preferred_currency,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.service.Register(req.FullName, req.Email, req.MonthlySalary, req.PreferredCurrency)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, userResponse(*u))
}

// HandleGetProfile returns the acting user's financial profile
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	u, err := h.service.User(userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if u == nil {
		h.writeError(w, http.StatusNotFound, "user not found")
		return
	}
	h.writeJSON(w, http.StatusOK, userResponse(*u))
}

// HandleUpdateSalary sets a new monthly salary
func (h *Handler) HandleUpdateSalary(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	var req struct {
		MonthlySalary decimal.Decimal `json:"monthly_salary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateSalary(userID, req.MonthlySalary); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleListExpenses returns the user's declared monthly expenses
func (h *Handler) HandleListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	expenses, err := h.service.ListExpenses(userID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := make([]map[string]interface{}, 0, len(expenses))
	for _, e := range expenses {
		result = append(result, map[string]interface{}{
			"id":       e.ID.String(),
			"category": string(e.Category),
			"amount":   e.Amount,
			"label":    e.Label,
		})
	}
	h.writeJSON(w, http.StatusOK, result)
}

// HandleReplaceExpenses replaces the user's expense set wholesale
func (h *Handler) HandleReplaceExpenses(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	var req struct {
		Expenses []struct {
			Category string          `json:"category"`
			Amount   decimal.Decimal `json:"amount"`
			Label    string          `json:"label,omitempty"`
		} `json:"expenses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]profile.ExpenseItem, 0, len(req.Expenses))
	for _, e := range req.Expenses {
		items = append(items, profile.ExpenseItem{
			Category: domain.ExpenseCategory(e.Category),
			Amount:   e.Amount,
			Label:    e.Label,
		})
	}

	if err := h.service.ReplaceExpenses(userID, items); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "replaced",
		"count":  len(items),
	})
}

// HandleGetSnapshot returns the computed financial capacity snapshot
func (h *Handler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	snap, err := h.service.SnapshotFor(userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"salary":                   snap.Salary,
		"total_expenses":           snap.TotalExpenses,
		"disposable_income":        snap.DisposableIncome,
		"total_monthly_commitment": snap.TotalMonthlyCommitment,
		"savings_rate_percent":     snap.SavingsRatePercent,
		"warning_level":            string(snap.WarningLevel),
		"warning_message":          snap.WarningMessage,
	})
}

func userResponse(u profile.UserFinancials) map[string]interface{} {
	return map[string]interface{}{
		"id":                 u.ID.String(),
		"full_name":          u.FullName,
		"email":              u.Email,
		"monthly_salary":     u.MonthlySalary,
		"preferred_currency": u.PreferredCurrency,
		"created_at":         u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		h.writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, profile.ErrUserNotFound):
		h.writeError(w, http.StatusNotFound, "user not found")
	default:
		h.log.Error().Err(err).Msg("Profile request failed")
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
