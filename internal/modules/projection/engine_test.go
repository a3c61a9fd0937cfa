package projection

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

func projGoal(target, saved string, deadline time.Time) goals.Goal {
	return goals.Goal{
		ID:           uuid.New(),
		TargetAmount: d(target),
		SavedAmount:  d(saved),
		Deadline:     deadline,
	}
}

var projToday = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

func TestProject_Basic(t *testing.T) {
	g := projGoal("1200", "0", time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC))

	res, err := Project(g, d("100"), projToday)
	require.NoError(t, err)

	assert.Equal(t, 12, res.MonthsNeeded)
	assert.Equal(t, time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC), res.ProjectedDate)
	assert.True(t, res.OnTrack)
	assert.Equal(t, 4, res.MonthsAheadBehind)
	require.Len(t, res.Chart, 13)
	assert.True(t, res.Chart[0].Amount.IsZero())
	assert.True(t, res.Chart[12].Amount.Equal(d("1200")))
	assert.Equal(t, projToday, res.Chart[0].Date)
}

func TestProject_PartialMonthRoundsUp(t *testing.T) {
	g := projGoal("1000", "50", time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC))

	res, err := Project(g, d("100"), projToday)
	require.NoError(t, err)
	assert.Equal(t, 10, res.MonthsNeeded)

	// Final point is clamped at the target, not 50 + 10*100.
	assert.True(t, res.Chart[len(res.Chart)-1].Amount.Equal(d("1000")))
}

func TestProject_AlreadyFunded(t *testing.T) {
	g := projGoal("1000", "1000", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	res, err := Project(g, d("50"), projToday)
	require.NoError(t, err)
	assert.Equal(t, 0, res.MonthsNeeded)
	assert.Equal(t, projToday, res.ProjectedDate)
	assert.True(t, res.OnTrack)
	require.Len(t, res.Chart, 1)
	assert.True(t, res.Chart[0].Amount.Equal(d("1000")))
}

func TestProject_OverFundedBehavesLikeFunded(t *testing.T) {
	g := projGoal("1000", "1500", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	res, err := Project(g, d("50"), projToday)
	require.NoError(t, err)
	assert.Equal(t, 0, res.MonthsNeeded)
}

func TestProject_ChartCappedScalarsExact(t *testing.T) {
	// 12000 at 100/month needs 120 months; the chart stops at 37 points but
	// the scalar forecast stays exact.
	g := projGoal("12000", "0", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))

	res, err := Project(g, d("100"), projToday)
	require.NoError(t, err)
	assert.Equal(t, 120, res.MonthsNeeded)
	assert.Equal(t, time.Date(2036, 1, 15, 0, 0, 0, 0, time.UTC), res.ProjectedDate)
	assert.False(t, res.OnTrack)
	assert.Len(t, res.Chart, 37)
	assert.True(t, res.MonthsAheadBehind < 0)
}

func TestProject_HighRateConvergesToZeroMonths(t *testing.T) {
	g := projGoal("1000", "0", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	prev := -1
	for _, rate := range []string{"100", "500", "1000", "100000", "100000000"} {
		res, err := Project(g, d(rate), projToday)
		require.NoError(t, err)
		if prev >= 0 {
			assert.LessOrEqual(t, res.MonthsNeeded, prev, "months must not grow with rate")
		}
		prev = res.MonthsNeeded
	}
	// Any rate covering the full remainder completes in one month.
	assert.Equal(t, 1, prev)
}

func TestProject_InvalidRate(t *testing.T) {
	g := projGoal("1000", "0", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	var verr *domain.ValidationError
	_, err := Project(g, decimal.Zero, projToday)
	require.ErrorAs(t, err, &verr)

	_, err = Project(g, d("-5"), projToday)
	require.ErrorAs(t, err, &verr)
}

func TestProject_OnDeadlineIsOnTrack(t *testing.T) {
	g := projGoal("1000", "0", time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC))

	res, err := Project(g, d("100"), projToday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC), res.ProjectedDate)
	assert.True(t, res.OnTrack)
	assert.Equal(t, 0, res.MonthsAheadBehind)
}

func TestAffordabilityNote(t *testing.T) {
	note := affordabilityNote(d("700"), d("600"))
	assert.Contains(t, note, "exceeds")
	assert.Contains(t, note, "BD 600.000")

	note = affordabilityNote(d("150"), d("600"))
	assert.Contains(t, note, "25%")

	note = affordabilityNote(d("150"), d("0"))
	assert.Contains(t, note, "no disposable income")
}
