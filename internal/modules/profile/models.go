// Package profile manages the user's declared financial profile (salary and
// fixed monthly expenses) and derives the financial capacity snapshot every
// other module depends on.
package profile

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
)

// ErrUserNotFound is returned when no profile exists for a user id.
var ErrUserNotFound = errors.New("user not found")

// UserFinancials is a user's declared income profile. Salary is required at
// registration, so disposable income is always computable.
type UserFinancials struct {
	ID                uuid.UUID
	FullName          string
	Email             string
	MonthlySalary     decimal.Decimal
	PreferredCurrency string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// MonthlyExpense is one recurring fixed cost. The set of rows for a user is
// replaced wholesale on edit, never patched.
type MonthlyExpense struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Category  domain.ExpenseCategory
	Amount    decimal.Decimal
	Label     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExpenseItem is the write shape for replacing a user's expenses.
type ExpenseItem struct {
	Category domain.ExpenseCategory
	Amount   decimal.Decimal
	Label    string
}

// GoalCommitment is the slice of goal state the snapshot calculation needs:
// the per-goal monthly target and whether the goal still counts toward the
// total commitment.
type GoalCommitment struct {
	MonthlySavingsTarget *decimal.Decimal
	Status               domain.GoalStatus
}

// FinancialSnapshot is the computed financial-capacity view. It is derived
// on demand and never persisted.
type FinancialSnapshot struct {
	Salary                 decimal.Decimal
	TotalExpenses          decimal.Decimal
	DisposableIncome       decimal.Decimal
	TotalMonthlyCommitment decimal.Decimal
	SavingsRatePercent     *float64 // nil when disposable income is zero or negative
	WarningLevel           domain.WarningLevel
	WarningMessage         string
}
