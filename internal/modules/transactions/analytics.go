package transactions

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/pathwise/pathwise/internal/domain"
)

// CategorySpend is total debit spend for one category.
type CategorySpend struct {
	Category string
	Amount   decimal.Decimal
}

// MonthlyFlow is income and expenses for one calendar month.
type MonthlyFlow struct {
	Month    string // YYYY-MM
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Summary aggregates a set of transactions for dashboards and reports.
// Monetary totals are exact decimals; the trend statistics are estimates
// and live comfortably in float64.
type Summary struct {
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	NetFlow           decimal.Decimal
	ByCategory        []CategorySpend // descending by amount
	Monthly           []MonthlyFlow   // chronological
	DailySpending     map[string]decimal.Decimal
	AverageDailySpend float64
	// SpendingTrend is the least-squares slope of daily debit totals over
	// time, in currency units per day. Positive means spending is rising.
	SpendingTrend float64
}

// Summarize aggregates transactions into a Summary. Pure.
func Summarize(txns []Transaction) Summary {
	s := Summary{DailySpending: make(map[string]decimal.Decimal)}

	byCategory := make(map[string]decimal.Decimal)
	monthly := make(map[string]*MonthlyFlow)

	for _, t := range txns {
		month := t.TransactionDate.Format("2006-01")
		flow := monthly[month]
		if flow == nil {
			flow = &MonthlyFlow{Month: month}
			monthly[month] = flow
		}

		switch t.Type {
		case domain.TransactionCredit:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
			flow.Income = flow.Income.Add(t.Amount)
		case domain.TransactionDebit:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
			flow.Expenses = flow.Expenses.Add(t.Amount)
			byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)

			day := t.TransactionDate.Format(time.DateOnly)
			s.DailySpending[day] = s.DailySpending[day].Add(t.Amount)
		}
	}
	s.NetFlow = s.TotalIncome.Sub(s.TotalExpenses)

	for category, amount := range byCategory {
		s.ByCategory = append(s.ByCategory, CategorySpend{Category: category, Amount: amount})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		if !s.ByCategory[i].Amount.Equal(s.ByCategory[j].Amount) {
			return s.ByCategory[i].Amount.GreaterThan(s.ByCategory[j].Amount)
		}
		return s.ByCategory[i].Category < s.ByCategory[j].Category
	})

	for _, flow := range monthly {
		s.Monthly = append(s.Monthly, *flow)
	}
	sort.Slice(s.Monthly, func(i, j int) bool { return s.Monthly[i].Month < s.Monthly[j].Month })

	if len(s.DailySpending) > 0 {
		days := make([]string, 0, len(s.DailySpending))
		for day := range s.DailySpending {
			days = append(days, day)
		}
		sort.Strings(days)

		xs := make([]float64, len(days))
		ys := make([]float64, len(days))
		first, _ := time.Parse(time.DateOnly, days[0])
		for i, day := range days {
			d, _ := time.Parse(time.DateOnly, day)
			xs[i] = d.Sub(first).Hours() / 24
			ys[i] = s.DailySpending[day].InexactFloat64()
		}

		s.AverageDailySpend = stat.Mean(ys, nil)
		if len(days) > 1 {
			_, s.SpendingTrend = stat.LinearRegression(xs, ys, nil, false)
		}
	}

	return s
}
