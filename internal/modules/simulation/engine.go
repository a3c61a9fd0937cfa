package simulation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
	"github.com/pathwise/pathwise/internal/modules/goals"
	"github.com/pathwise/pathwise/internal/modules/projection"
)

// Simulate projects a goal at its current rate and at the rate implied by
// redirecting the given spending cuts into savings. Pure: the goal is never
// written, and the commitment ledger has no say here.
//
// Adjustments are amounts freed per category, so they must be non-negative.
// A negative total is impossible; a zero or negative simulated rate can
// only arise from a non-positive current rate and is flagged degenerate
// rather than rejected.
func Simulate(g goals.Goal, currentRate decimal.Decimal, adjustments map[string]decimal.Decimal, today time.Time) (Result, error) {
	if !currentRate.IsPositive() {
		return Result{}, domain.NewValidationError("currentRate",
			"goal has no positive monthly savings target to simulate against")
	}
	total := decimal.Zero
	for category, amount := range adjustments {
		if amount.IsNegative() {
			return Result{}, domain.NewValidationError("adjustments",
				fmt.Sprintf("adjustment for %s cannot be negative", category))
		}
		total = total.Add(amount)
	}

	simulatedRate := currentRate.Add(total)
	degenerate := false
	if !simulatedRate.IsPositive() {
		degenerate = true
		simulatedRate = MinimumRate
	}

	baseline, err := projection.Project(g, currentRate, today)
	if err != nil {
		return Result{}, err
	}
	simulated, err := projection.Project(g, simulatedRate, today)
	if err != nil {
		return Result{}, err
	}

	return Result{
		GoalID:          g.ID,
		CurrentRate:     currentRate,
		SimulatedRate:   simulatedRate,
		BaselineMonths:  baseline.MonthsNeeded,
		SimulatedMonths: simulated.MonthsNeeded,
		MonthsSaved:     baseline.MonthsNeeded - simulated.MonthsNeeded,
		BaselineDate:    baseline.ProjectedDate,
		SimulatedDate:   simulated.ProjectedDate,
		Degenerate:      degenerate,
		BaselineChart:   baseline.Chart,
		SimulatedChart:  simulated.Chart,
	}, nil
}
