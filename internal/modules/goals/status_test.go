package goals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pathwise/pathwise/internal/domain"
)

func statusGoal(target, saved, rate string, deadline time.Time) Goal {
	g := Goal{
		TargetAmount: d(target),
		SavedAmount:  d(saved),
		Deadline:     deadline,
	}
	if rate != "" {
		g.MonthlySavingsTarget = dp(rate)
	}
	return g
}

func TestResolveStatus_CompletedWhenSavedMeetsTarget(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	pastDeadline := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Completion wins even when the deadline has already passed.
	g := statusGoal("1000", "1000", "50", pastDeadline)
	assert.Equal(t, domain.StatusCompleted, ResolveStatus(g, today))

	g = statusGoal("1000", "1200.5", "", pastDeadline)
	assert.Equal(t, domain.StatusCompleted, ResolveStatus(g, today))
}

func TestResolveStatus_NoRateIsOnTrack(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	// Without a committed rate there is no timeline to miss.
	g := statusGoal("1000", "100", "", deadline)
	assert.Equal(t, domain.StatusOnTrack, ResolveStatus(g, today))
}

func TestResolveStatus_ProjectedBeforeDeadline(t *testing.T) {
	today := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	// 900 remaining at 100/month lands on 2026-10-10.
	g := statusGoal("1000", "100", "100", time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, domain.StatusOnTrack, ResolveStatus(g, today))
}

func TestResolveStatus_ProjectedOnDeadlineIsOnTrack(t *testing.T) {
	today := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	// Landing exactly on the deadline counts as on track.
	g := statusGoal("1000", "100", "100", time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, domain.StatusOnTrack, ResolveStatus(g, today))
}

func TestResolveStatus_ProjectedPastDeadlineIsAtRisk(t *testing.T) {
	today := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	g := statusGoal("1000", "100", "100", time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, domain.StatusAtRisk, ResolveStatus(g, today))
}

func TestResolveStatus_PartialMonthRoundsUp(t *testing.T) {
	today := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	// 950 remaining at 100/month needs 10 whole months, not 9.5.
	g := statusGoal("1000", "50", "100", time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, domain.StatusAtRisk, ResolveStatus(g, today))

	g.Deadline = time.Date(2026, 11, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, domain.StatusOnTrack, ResolveStatus(g, today))
}

func TestResolveStatus_HigherRateNeverWorsens(t *testing.T) {
	today := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	rates := []string{"50", "100", "150", "200", "500"}
	atRiskSeen := false
	for i := len(rates) - 1; i >= 0; i-- {
		g := statusGoal("1000", "0", rates[i], deadline)
		status := ResolveStatus(g, today)
		if status == domain.StatusAtRisk {
			atRiskSeen = true
		} else if atRiskSeen {
			// Once a rate is too low, every lower rate must also be at risk.
			t.Fatalf("rate %s on track below an at-risk rate", rates[i])
		}
	}
	assert.True(t, atRiskSeen, "lowest rate should be at risk for this deadline")
}
