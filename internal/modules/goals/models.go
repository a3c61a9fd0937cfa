// Package goals manages savings goals: CRUD with ownership checks, the
// commitment ledger that caps total monthly targets at disposable income,
// and the derived goal status.
package goals

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
)

// ErrNotFound is returned when a goal id does not exist.
var ErrNotFound = errors.New("goal not found")

// ErrNotOwner is returned when a goal exists but belongs to another user.
// Callers must not learn anything else about the goal.
var ErrNotOwner = errors.New("goal belongs to another user")

// Goal is a savings goal. Status is derived (see ResolveStatus), persisted
// for cheap reads, and recomputed on every write that can change it.
type Goal struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Name                 string
	Category             domain.GoalCategory
	TargetAmount         decimal.Decimal
	SavedAmount          decimal.Decimal
	MonthlySavingsTarget *decimal.Decimal // nil until the user commits a rate
	Currency             string
	Deadline             time.Time
	Priority             domain.GoalPriority
	Status               domain.GoalStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Remaining returns the amount still to be saved, floored at zero.
func (g Goal) Remaining() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.SavedAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// ProgressPercent returns saved/target as a percentage, clamped to
// [0, 100] and rounded to one decimal place for display.
func (g Goal) ProgressPercent() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	pct, _ := g.SavedAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Input is the write shape for creating or updating a goal.
type Input struct {
	Name                 string
	Category             domain.GoalCategory
	TargetAmount         decimal.Decimal
	SavedAmount          *decimal.Decimal // nil keeps the existing value on update
	MonthlySavingsTarget *decimal.Decimal
	Currency             string
	Deadline             time.Time
	Priority             domain.GoalPriority
}
