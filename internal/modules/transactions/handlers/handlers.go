// Package handlers provides HTTP handlers for imported transactions.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathwise/pathwise/internal/identity"
	"github.com/pathwise/pathwise/internal/modules/transactions"
)

// Handler handles transaction HTTP requests
type Handler struct {
	service *transactions.Service
	log     zerolog.Logger
}

// NewHandler creates a new transaction handler
func NewHandler(service *transactions.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "transactions").Logger(),
	}
}

// HandleSync pulls new transactions from the bank feed
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	count, err := h.service.Sync(r.Context(), userID)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "synced",
		"imported": count,
	})
}

// HandleList returns a filtered page of transactions
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)
	q := r.URL.Query()

	filter := transactions.ListFilter{
		Merchant: q.Get("merchant"),
		Category: q.Get("category"),
	}
	if v, err := strconv.Atoi(q.Get("year")); err == nil {
		filter.Year = v
	}
	if v, err := strconv.Atoi(q.Get("month")); err == nil && v >= 1 && v <= 12 {
		filter.Month = time.Month(v)
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = v
	}
	if v, err := strconv.Atoi(q.Get("page_size")); err == nil {
		filter.PageSize = v
	}

	page, err := h.service.List(userID, filter)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]map[string]interface{}, 0, len(page.Transactions))
	for _, t := range page.Transactions {
		items = append(items, map[string]interface{}{
			"id":               t.ID.String(),
			"merchant_name":    t.MerchantName,
			"amount":           t.Amount,
			"type":             string(t.Type),
			"currency":         t.Currency,
			"category":         t.Category,
			"transaction_date": t.TransactionDate.Format(time.DateOnly),
		})
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": items,
		"total":        page.Total,
		"page":         page.Page,
		"page_size":    page.PageSize,
	})
}

// HandleAnalytics returns spending aggregates over a trailing window
func (h *Handler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r)

	months := 3
	if v, err := strconv.Atoi(r.URL.Query().Get("months")); err == nil && v > 0 {
		months = v
	}

	summary, err := h.service.Analytics(userID, months)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	byCategory := make([]map[string]interface{}, 0, len(summary.ByCategory))
	for _, c := range summary.ByCategory {
		byCategory = append(byCategory, map[string]interface{}{
			"category": c.Category,
			"amount":   c.Amount,
		})
	}
	monthly := make([]map[string]interface{}, 0, len(summary.Monthly))
	for _, m := range summary.Monthly {
		monthly = append(monthly, map[string]interface{}{
			"month":    m.Month,
			"income":   m.Income,
			"expenses": m.Expenses,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_income":        summary.TotalIncome,
		"total_expenses":      summary.TotalExpenses,
		"net_flow":            summary.NetFlow,
		"by_category":         byCategory,
		"monthly":             monthly,
		"daily_spending":      summary.DailySpending,
		"average_daily_spend": summary.AverageDailySpend,
		"spending_trend":      summary.SpendingTrend,
	})
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
