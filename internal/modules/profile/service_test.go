package profile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathwise/pathwise/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestComputeSnapshot_DisposableIncomeExact(t *testing.T) {
	snap := ComputeSnapshot(dec("1000.000"), []decimal.Decimal{dec("400.000")}, nil)

	assert.True(t, snap.DisposableIncome.Equal(dec("600.000")),
		"disposable = %s", snap.DisposableIncome)
	assert.True(t, snap.TotalExpenses.Equal(dec("400.000")))
	assert.Equal(t, domain.WarningNone, snap.WarningLevel)
}

func TestComputeSnapshot_RedWhenExpensesMeetSalary(t *testing.T) {
	tests := []struct {
		name     string
		salary   string
		expenses []string
	}{
		{"expenses equal salary", "1000", []string{"600", "400"}},
		{"expenses exceed salary", "1000", []string{"1200"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var expenses []decimal.Decimal
			for _, e := range tt.expenses {
				expenses = append(expenses, dec(e))
			}
			snap := ComputeSnapshot(dec(tt.salary), expenses, nil)

			assert.Equal(t, domain.WarningRed, snap.WarningLevel)
			assert.Nil(t, snap.SavingsRatePercent, "savings rate undefined without disposable income")
			assert.Contains(t, snap.WarningMessage, "no room for savings")
		})
	}
}

func TestComputeSnapshot_RedWhenCommitmentReachesDisposable(t *testing.T) {
	goals := []GoalCommitment{
		{MonthlySavingsTarget: decPtr("600.000"), Status: domain.StatusOnTrack},
	}
	snap := ComputeSnapshot(dec("1000.000"), []decimal.Decimal{dec("400.000")}, goals)

	assert.Equal(t, domain.WarningRed, snap.WarningLevel)
	assert.Contains(t, snap.WarningMessage, "BD 600.000")
	assert.Contains(t, snap.WarningMessage, "meets or exceeds")
}

func TestComputeSnapshot_RedAboveFiftyPercent(t *testing.T) {
	goals := []GoalCommitment{
		{MonthlySavingsTarget: decPtr("301"), Status: domain.StatusOnTrack},
	}
	snap := ComputeSnapshot(dec("1000"), []decimal.Decimal{dec("400")}, goals)

	require.NotNil(t, snap.SavingsRatePercent)
	assert.InDelta(t, 50.17, *snap.SavingsRatePercent, 0.01)
	assert.Equal(t, domain.WarningRed, snap.WarningLevel)
	assert.Contains(t, snap.WarningMessage, "very aggressive")
}

func TestComputeSnapshot_AmberBetweenThirtyAndFifty(t *testing.T) {
	goals := []GoalCommitment{
		{MonthlySavingsTarget: decPtr("200"), Status: domain.StatusOnTrack},
		{MonthlySavingsTarget: decPtr("40"), Status: domain.StatusOnTrack},
	}
	snap := ComputeSnapshot(dec("1000"), []decimal.Decimal{dec("400")}, goals)

	require.NotNil(t, snap.SavingsRatePercent)
	assert.InDelta(t, 40.0, *snap.SavingsRatePercent, 0.01)
	assert.Equal(t, domain.WarningAmber, snap.WarningLevel)
}

func TestComputeSnapshot_ExactlyFiftyIsAmberNotRed(t *testing.T) {
	// Thresholds are strict greater-than; exactly 50% stays AMBER.
	goals := []GoalCommitment{
		{MonthlySavingsTarget: decPtr("300"), Status: domain.StatusOnTrack},
	}
	snap := ComputeSnapshot(dec("1000"), []decimal.Decimal{dec("400")}, goals)

	assert.Equal(t, domain.WarningAmber, snap.WarningLevel)
}

func TestComputeSnapshot_ExactlyThirtyIsNone(t *testing.T) {
	goals := []GoalCommitment{
		{MonthlySavingsTarget: decPtr("180"), Status: domain.StatusOnTrack},
	}
	snap := ComputeSnapshot(dec("1000"), []decimal.Decimal{dec("400")}, goals)

	assert.Equal(t, domain.WarningNone, snap.WarningLevel)
	assert.Empty(t, snap.WarningMessage)
}

func TestComputeSnapshot_CompletedGoalsExcludedFromCommitment(t *testing.T) {
	goals := []GoalCommitment{
		{MonthlySavingsTarget: decPtr("100"), Status: domain.StatusOnTrack},
		{MonthlySavingsTarget: decPtr("500"), Status: domain.StatusCompleted},
		{MonthlySavingsTarget: nil, Status: domain.StatusAtRisk},
	}
	snap := ComputeSnapshot(dec("1000"), nil, goals)

	assert.True(t, snap.TotalMonthlyCommitment.Equal(dec("100")),
		"commitment = %s", snap.TotalMonthlyCommitment)
}

func TestComputeSnapshot_ZeroCommitmentRateIsZero(t *testing.T) {
	snap := ComputeSnapshot(dec("1000"), []decimal.Decimal{dec("400")}, nil)

	require.NotNil(t, snap.SavingsRatePercent)
	assert.Equal(t, 0.0, *snap.SavingsRatePercent)
	assert.Equal(t, domain.WarningNone, snap.WarningLevel)
}

func TestComputeSnapshot_ExactDecimalThresholds(t *testing.T) {
	// 500.0005 vs 500.001 disposable: a float comparison could collapse
	// these. The decimal path must keep them distinct.
	goals := []GoalCommitment{
		{MonthlySavingsTarget: decPtr("500.0005"), Status: domain.StatusOnTrack},
	}
	snap := ComputeSnapshot(dec("500.001"), nil, goals)

	// commitment < disposable by 0.0005, so not the commitment-ceiling RED,
	// but the rate is ~99.9999% which is above 50%.
	assert.Equal(t, domain.WarningRed, snap.WarningLevel)
	assert.Contains(t, snap.WarningMessage, "very aggressive")
}
