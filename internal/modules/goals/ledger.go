package goals

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
)

// SavingsLimitError is the business rejection for a monthly target that
// would push the user's total commitment past their disposable income.
// It carries the maximum value the caller could have set so they can
// self-correct without another round trip.
type SavingsLimitError struct {
	Proposed   decimal.Decimal
	NewTotal   decimal.Decimal
	Disposable decimal.Decimal
	Available  decimal.Decimal // headroom for this goal, floored at zero
}

func (e *SavingsLimitError) Error() string {
	return fmt.Sprintf(
		"setting a monthly savings target of %s would bring your total savings "+
			"commitment to %s, which exceeds your disposable income of %s. "+
			"The maximum you can allocate to this goal is %s.",
		domain.FormatAmount(e.Proposed), domain.FormatAmount(e.NewTotal),
		domain.FormatAmount(e.Disposable), domain.FormatAmount(e.Available))
}

// CheckSavingsLimit validates that a proposed monthly target keeps the
// user's total commitment within disposable income.
//
// currentTarget is the goal's existing target (nil for new goals). It is
// subtracted from existingTotal first so an update replaces rather than
// double-counts its own contribution; in particular, re-setting a goal to
// its current rate always passes.
func CheckSavingsLimit(disposable, existingTotal decimal.Decimal, currentTarget *decimal.Decimal, proposed decimal.Decimal) error {
	baseline := existingTotal
	if currentTarget != nil {
		baseline = baseline.Sub(*currentTarget)
	}

	newTotal := baseline.Add(proposed)
	if newTotal.GreaterThan(disposable) {
		available := disposable.Sub(baseline)
		if available.IsNegative() {
			available = decimal.Zero
		}
		return &SavingsLimitError{
			Proposed:   proposed,
			NewTotal:   newTotal,
			Disposable: disposable,
			Available:  available,
		}
	}
	return nil
}

// userLocks serializes commitment-affecting writes per user. The ledger
// check reads the persisted commitment sum and the subsequent write changes
// it; holding the user's lock across both keeps the invariant that the sum
// of active monthly targets never exceeds disposable income, even under
// concurrent updates to different goals of the same user.
type userLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// acquire locks the given user's mutex and returns the unlock function.
func (l *userLocks) acquire(userID uuid.UUID) func() {
	l.mu.Lock()
	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
