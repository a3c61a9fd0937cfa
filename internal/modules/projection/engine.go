// Package projection turns a goal and a candidate monthly savings rate into
// a completion forecast. The forecast itself is a pure calculation; writing
// the rate back onto the goal is a separate, explicit step.
package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
	"github.com/pathwise/pathwise/internal/modules/goals"
)

// Chart length cap: three years of monthly points plus the starting point.
const maxChartPoints = 37

// ChartPoint is one month on the projected savings curve.
type ChartPoint struct {
	Date   time.Time
	Amount decimal.Decimal
}

// Result is a completion forecast for one goal at one candidate rate.
// Scalar fields are exact even when the chart is truncated by the cap.
type Result struct {
	GoalID            string
	MonthlyRate       decimal.Decimal
	MonthsNeeded      int
	ProjectedDate     time.Time
	Deadline          time.Time
	OnTrack           bool
	MonthsAheadBehind int // positive when ahead of the deadline
	Chart             []ChartPoint
	AffordabilityNote string
}

// Project forecasts when a goal completes at the given monthly rate. Pure:
// the goal is read, never written. An already-funded goal projects to
// completion today with a single chart point.
func Project(g goals.Goal, rate decimal.Decimal, today time.Time) (Result, error) {
	if !rate.IsPositive() {
		return Result{}, domain.NewValidationError("monthlyRate", "must be greater than zero")
	}

	remaining := g.TargetAmount.Sub(g.SavedAmount)
	monthsNeeded := 0
	if remaining.IsPositive() {
		monthsNeeded = domain.CeilDiv(remaining, rate)
	}

	projectedDate := domain.AddMonths(today, monthsNeeded)
	onTrack := !projectedDate.After(g.Deadline)

	// Positive months ahead means finishing before the deadline.
	aheadBehind := domain.WholeMonthsBetween(projectedDate, g.Deadline)

	points := monthsNeeded + 1
	if points > maxChartPoints {
		points = maxChartPoints
	}
	chart := make([]ChartPoint, 0, points)
	for i := 0; i < points; i++ {
		amount := g.SavedAmount.Add(rate.Mul(decimal.NewFromInt(int64(i))))
		if amount.GreaterThan(g.TargetAmount) {
			amount = g.TargetAmount
		}
		chart = append(chart, ChartPoint{
			Date:   domain.AddMonths(today, i),
			Amount: amount,
		})
	}

	return Result{
		GoalID:            g.ID.String(),
		MonthlyRate:       rate,
		MonthsNeeded:      monthsNeeded,
		ProjectedDate:     projectedDate,
		Deadline:          g.Deadline,
		OnTrack:           onTrack,
		MonthsAheadBehind: aheadBehind,
		Chart:             chart,
	}, nil
}
