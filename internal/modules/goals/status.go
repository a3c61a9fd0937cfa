package goals

import (
	"time"

	"github.com/pathwise/pathwise/internal/domain"
)

// ResolveStatus derives a goal's status from its amounts, rate and deadline.
//
//   - COMPLETED when savedAmount has reached targetAmount. savedAmount may
//     exceed the target transiently between a write and this recomputation;
//     the status pins it down.
//   - ON_TRACK when no positive monthly target is set: without a rate there
//     is nothing to project against, so this is a conservative default, not
//     a real assessment. Callers that care should surface "rate not set"
//     separately.
//   - Otherwise, project ceil(remaining/rate) months forward from today and
//     compare against the deadline. Arriving exactly on the deadline counts
//     as ON_TRACK (not-after, inclusive).
func ResolveStatus(g Goal, today time.Time) domain.GoalStatus {
	if g.SavedAmount.GreaterThanOrEqual(g.TargetAmount) {
		return domain.StatusCompleted
	}

	if g.MonthlySavingsTarget == nil || !g.MonthlySavingsTarget.IsPositive() {
		return domain.StatusOnTrack
	}

	remaining := g.TargetAmount.Sub(g.SavedAmount)
	monthsNeeded := domain.CeilDiv(remaining, *g.MonthlySavingsTarget)

	if domain.AddMonths(today, monthsNeeded).After(g.Deadline) {
		return domain.StatusAtRisk
	}
	return domain.StatusOnTrack
}
