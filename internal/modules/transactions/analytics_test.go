package transactions

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathwise/pathwise/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func txn(txType domain.TransactionType, category, amount string, year int, month time.Month, day int) Transaction {
	return Transaction{
		Amount:          d(amount),
		Type:            txType,
		Category:        category,
		TransactionDate: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestSummarize_Totals(t *testing.T) {
	s := Summarize([]Transaction{
		txn(domain.TransactionCredit, "OTHER", "1500", 2026, 1, 1),
		txn(domain.TransactionDebit, "FOOD", "200.5", 2026, 1, 5),
		txn(domain.TransactionDebit, "TRANSPORT", "99.5", 2026, 1, 10),
	})

	assert.True(t, s.TotalIncome.Equal(d("1500")))
	assert.True(t, s.TotalExpenses.Equal(d("300")))
	assert.True(t, s.NetFlow.Equal(d("1200")))
}

func TestSummarize_ByCategorySortedDescending(t *testing.T) {
	s := Summarize([]Transaction{
		txn(domain.TransactionDebit, "FOOD", "50", 2026, 1, 2),
		txn(domain.TransactionDebit, "TRANSPORT", "120", 2026, 1, 3),
		txn(domain.TransactionDebit, "FOOD", "30", 2026, 1, 4),
	})

	require.Len(t, s.ByCategory, 2)
	assert.Equal(t, "TRANSPORT", s.ByCategory[0].Category)
	assert.True(t, s.ByCategory[0].Amount.Equal(d("120")))
	assert.Equal(t, "FOOD", s.ByCategory[1].Category)
	assert.True(t, s.ByCategory[1].Amount.Equal(d("80")))
}

func TestSummarize_MonthlyBreakdownChronological(t *testing.T) {
	s := Summarize([]Transaction{
		txn(domain.TransactionDebit, "FOOD", "100", 2026, 2, 5),
		txn(domain.TransactionCredit, "OTHER", "1500", 2026, 1, 1),
		txn(domain.TransactionDebit, "FOOD", "80", 2026, 1, 10),
	})

	require.Len(t, s.Monthly, 2)
	assert.Equal(t, "2026-01", s.Monthly[0].Month)
	assert.True(t, s.Monthly[0].Income.Equal(d("1500")))
	assert.True(t, s.Monthly[0].Expenses.Equal(d("80")))
	assert.Equal(t, "2026-02", s.Monthly[1].Month)
	assert.True(t, s.Monthly[1].Expenses.Equal(d("100")))
}

func TestSummarize_DailySpendingAndTrend(t *testing.T) {
	// Spending rises by 10 per day; the fitted slope should say so.
	s := Summarize([]Transaction{
		txn(domain.TransactionDebit, "FOOD", "10", 2026, 1, 1),
		txn(domain.TransactionDebit, "FOOD", "20", 2026, 1, 2),
		txn(domain.TransactionDebit, "FOOD", "30", 2026, 1, 3),
	})

	assert.Len(t, s.DailySpending, 3)
	assert.True(t, s.DailySpending["2026-01-02"].Equal(d("20")))
	assert.InDelta(t, 20.0, s.AverageDailySpend, 1e-9)
	assert.InDelta(t, 10.0, s.SpendingTrend, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpenses.IsZero())
	assert.Empty(t, s.ByCategory)
	assert.Empty(t, s.Monthly)
	assert.Zero(t, s.SpendingTrend)
}

func TestKeywordClassifier(t *testing.T) {
	c := NewKeywordClassifier()

	tests := map[string]string{
		"Starbucks Coffee Seef":  "FOOD",
		"UBER *TRIP":             "TRANSPORT",
		"EWA Electricity Bill":   "UTILITIES",
		"Netflix.com":            "SUBSCRIPTIONS",
		"Al Salam Pharmacy":      "HEALTHCARE",
		"Unknown Merchant 123":   "OTHER",
		"TAKAFUL INTL INSURANCE": "INSURANCE",
	}
	for merchant, want := range tests {
		assert.Equal(t, want, c.Classify(merchant), merchant)
	}
}
