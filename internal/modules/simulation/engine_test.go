package simulation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathwise/pathwise/internal/domain"
	"github.com/pathwise/pathwise/internal/modules/goals"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var simToday = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

func simGoal(target, saved string) goals.Goal {
	return goals.Goal{
		ID:           uuid.New(),
		TargetAmount: d(target),
		SavedAmount:  d(saved),
		Deadline:     time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSimulate_SpendingCutShortensTimeline(t *testing.T) {
	// 1200 remaining at 100/month is 12 months; freeing 50 from food makes
	// it 1200/150 = 8 months, saving 4.
	g := simGoal("1200", "0")

	res, err := Simulate(g, d("100"), map[string]decimal.Decimal{"FOOD": d("50")}, simToday)
	require.NoError(t, err)

	assert.Equal(t, 12, res.BaselineMonths)
	assert.Equal(t, 8, res.SimulatedMonths)
	assert.Equal(t, 4, res.MonthsSaved)
	assert.True(t, res.SimulatedRate.Equal(d("150")))
	assert.False(t, res.Degenerate)
	assert.Len(t, res.BaselineChart, 13)
	assert.Len(t, res.SimulatedChart, 9)
}

func TestSimulate_ZeroAdjustmentsChangeNothing(t *testing.T) {
	g := simGoal("1200", "0")

	res, err := Simulate(g, d("100"), map[string]decimal.Decimal{
		"FOOD":          decimal.Zero,
		"SUBSCRIPTIONS": decimal.Zero,
	}, simToday)
	require.NoError(t, err)

	assert.Equal(t, res.BaselineMonths, res.SimulatedMonths)
	assert.Equal(t, 0, res.MonthsSaved)
	assert.Equal(t, res.BaselineDate, res.SimulatedDate)
}

func TestSimulate_NoAdjustmentsMap(t *testing.T) {
	g := simGoal("1200", "0")

	res, err := Simulate(g, d("100"), nil, simToday)
	require.NoError(t, err)
	assert.Equal(t, 0, res.MonthsSaved)
}

func TestSimulate_NegativeAdjustmentRejected(t *testing.T) {
	g := simGoal("1200", "0")

	_, err := Simulate(g, d("100"), map[string]decimal.Decimal{"FOOD": d("-10")}, simToday)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "adjustments", verr.Field)
}

func TestSimulate_NoBaselineRateRejected(t *testing.T) {
	g := simGoal("1200", "0")

	_, err := Simulate(g, decimal.Zero, map[string]decimal.Decimal{"FOOD": d("50")}, simToday)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestSimulate_MultipleCategoriesSum(t *testing.T) {
	g := simGoal("1200", "0")

	res, err := Simulate(g, d("100"), map[string]decimal.Decimal{
		"FOOD":          d("30"),
		"TRANSPORT":     d("15"),
		"SUBSCRIPTIONS": d("5"),
	}, simToday)
	require.NoError(t, err)
	assert.True(t, res.SimulatedRate.Equal(d("150")))
	assert.Equal(t, 8, res.SimulatedMonths)
}

func TestSimulate_AlmostFundedGoal(t *testing.T) {
	g := simGoal("1200", "1150")

	res, err := Simulate(g, d("100"), map[string]decimal.Decimal{"FOOD": d("50")}, simToday)
	require.NoError(t, err)
	assert.Equal(t, 1, res.BaselineMonths)
	assert.Equal(t, 1, res.SimulatedMonths)
	assert.Equal(t, 0, res.MonthsSaved)
}

func TestMinimumRateIsOneMinorUnit(t *testing.T) {
	assert.True(t, MinimumRate.Equal(d("0.001")))
}
