// Package anomaly flags categories where the current month's spending runs
// well above the user's own trailing average.
package anomaly

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
)

// ErrNotFound is returned when an anomaly id does not exist.
var ErrNotFound = errors.New("anomaly not found")

// ErrNotOwner is returned when an anomaly belongs to another user.
var ErrNotOwner = errors.New("anomaly belongs to another user")

// Anomaly is one flagged category for one calendar month. Dismissal is a
// one-way transition; dismissed rows drop out of the active list but stay
// for history.
type Anomaly struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Category       string
	Severity       domain.Severity
	ActualAmount   decimal.Decimal
	BaselineAmount decimal.Decimal
	Message        string
	IsDismissed    bool
	CreatedAt      time.Time
}

// Debit is the slice of transaction data the detector needs: a categorized
// outflow on a calendar date.
type Debit struct {
	Category string
	Amount   decimal.Decimal
	Date     time.Time
}

// Thresholds are the ratio cutoffs mapping current/average spend onto a
// severity, checked highest first.
type Thresholds struct {
	High   float64
	Medium float64
	Low    float64
}

// DefaultThresholds mirror common budgeting heuristics: triple the usual
// spend is urgent, double is notable, one and a half is worth a glance.
var DefaultThresholds = Thresholds{High: 3.0, Medium: 2.0, Low: 1.5}
