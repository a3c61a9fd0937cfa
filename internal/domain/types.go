// Package domain contains shared types and collaborator contracts used
// across modules. It has no infrastructure dependencies.
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyScale is the display scale for all monetary values (BHD minor units).
// Threshold comparisons always use the exact decimal value; rounding to
// MoneyScale happens only when formatting for users.
const MoneyScale = 3

// CurrencySymbol prefixes user-facing amounts.
const CurrencySymbol = "BD"

// GoalStatus is the derived state of a savings goal.
type GoalStatus string

const (
	StatusOnTrack   GoalStatus = "ON_TRACK"
	StatusAtRisk    GoalStatus = "AT_RISK"
	StatusCompleted GoalStatus = "COMPLETED"
)

// GoalCategory classifies what a goal is saving toward.
type GoalCategory string

const (
	GoalSavings   GoalCategory = "SAVINGS"
	GoalTravel    GoalCategory = "TRAVEL"
	GoalEducation GoalCategory = "EDUCATION"
	GoalVehicle   GoalCategory = "VEHICLE"
	GoalProperty  GoalCategory = "PROPERTY"
	GoalEmergency GoalCategory = "EMERGENCY"
	GoalOther     GoalCategory = "OTHER"
)

// GoalPriority orders goals by importance to the user.
type GoalPriority string

const (
	PriorityLow    GoalPriority = "LOW"
	PriorityMedium GoalPriority = "MEDIUM"
	PriorityHigh   GoalPriority = "HIGH"
)

// ExpenseCategory classifies a fixed monthly expense. These are recurring,
// predictable costs declared by the user, not imported bank transactions.
type ExpenseCategory string

const (
	ExpenseHousing       ExpenseCategory = "HOUSING"
	ExpenseTransport     ExpenseCategory = "TRANSPORT"
	ExpenseUtilities     ExpenseCategory = "UTILITIES"
	ExpenseFood          ExpenseCategory = "FOOD"
	ExpenseHealthcare    ExpenseCategory = "HEALTHCARE"
	ExpenseEducation     ExpenseCategory = "EDUCATION"
	ExpenseSubscriptions ExpenseCategory = "SUBSCRIPTIONS"
	ExpenseFamily        ExpenseCategory = "FAMILY"
	ExpenseInsurance     ExpenseCategory = "INSURANCE"
	ExpenseOther         ExpenseCategory = "OTHER"
)

// TransactionType marks imported transactions as money in or money out.
type TransactionType string

const (
	TransactionDebit  TransactionType = "DEBIT"
	TransactionCredit TransactionType = "CREDIT"
)

// Severity grades how far current spending deviates from its baseline.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// WarningLevel grades the sustainability of a user's total savings commitment.
type WarningLevel string

const (
	WarningNone  WarningLevel = "NONE"
	WarningAmber WarningLevel = "AMBER"
	WarningRed   WarningLevel = "RED"
)

// ValidationError reports malformed or out-of-range input. It is raised
// before any computation so rejected requests are never partially applied.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a validation error for a named input field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// FormatAmount renders a monetary value for user-facing messages,
// e.g. "BD 600.000".
func FormatAmount(d decimal.Decimal) string {
	return fmt.Sprintf("%s %s", CurrencySymbol, d.StringFixed(MoneyScale))
}

// CeilDiv returns ceil(numerator/denominator) as an integer month count,
// computed exactly via quotient and remainder (no precision-bounded
// division that could round a boundary case the wrong way).
// The denominator must be positive.
func CeilDiv(numerator, denominator decimal.Decimal) int {
	q, r := numerator.QuoRem(denominator, 0)
	months := int(q.IntPart())
	if r.Sign() > 0 {
		months++
	}
	return months
}

// AddMonths advances a calendar date by whole months, clamping the day to
// the end of the target month (Jan 31 + 1 month = Feb 28/29). This matches
// calendar arithmetic conventions for deadlines; time.AddDate would
// normalize overflow into the following month instead.
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	m += time.Month(months)
	target := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	last := daysInMonth(target.Year(), target.Month())
	if d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, t.Location())
}

// WholeMonthsBetween returns the number of complete months from start to
// end. Negative when end precedes start.
func WholeMonthsBetween(start, end time.Time) int {
	sign := 1
	if end.Before(start) {
		start, end = end, start
		sign = -1
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	return sign * months
}

// StartOfMonth truncates a date to the first of its calendar month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// SameCalendarMonth reports whether two dates fall in the same year and month.
func SameCalendarMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
