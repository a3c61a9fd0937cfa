// Package handlers provides HTTP handlers for the financial coach.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathwise/pathwise/internal/domain"
	"github.com/pathwise/pathwise/internal/identity"
	"github.com/pathwise/pathwise/internal/modules/coach"
	"github.com/pathwise/pathwise/internal/modules/goals"
)

// Handler handles coach HTTP requests
type Handler struct {
	service *coach.Service
	log     zerolog.Logger
}

// NewHandler creates a new coach handler
func NewHandler(service *coach.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "coach").Logger(),
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

// HandleChat processes one coach message for the acting user
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Chat(r.Context(), userID, req.Message)
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	response := map[string]interface{}{
		"reply":        result.Reply,
		"goal_created": result.GoalCreated != nil,
	}
	if result.GoalCreated != nil {
		response["goal_id"] = result.GoalCreated.ID.String()
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleHistory returns the coaching transcript, oldest first
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	entries, err := h.service.History(userID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		result = append(result, map[string]interface{}{
			"role":       string(entry.Role),
			"message":    entry.Message,
			"created_at": entry.CreatedAt.Format(time.RFC3339),
		})
	}
	h.writeJSON(w, http.StatusOK, result)
}

// HandleReset abandons any in-flight goal dialogue
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	if err := h.service.Reset(userID); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handler) writeChatError(w http.ResponseWriter, err error) {
	var (
		verr     *domain.ValidationError
		limitErr *goals.SavingsLimitError
	)
	switch {
	case errors.As(err, &verr):
		h.writeError(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &limitErr):
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":     limitErr.Error(),
			"proposed":  limitErr.Proposed,
			"new_total": limitErr.NewTotal,
			"available": limitErr.Available,
		})
	default:
		h.log.Error().Err(err).Msg("Coach exchange failed")
		h.writeError(w, http.StatusBadGateway, err.Error())
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
