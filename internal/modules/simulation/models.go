// Package simulation answers "what if I cut spending" questions against a
// goal. Runs are advisory and read-only with respect to the goal; each run
// is appended to a history log.
package simulation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/modules/projection"
)

// MinimumRate is the floor applied to a degenerate simulated rate so the
// projection math stays defined. One minor currency unit.
var MinimumRate = decimal.New(1, -3)

// Result compares a goal's baseline trajectory against a simulated one
// where spending adjustments are redirected into savings.
type Result struct {
	GoalID          uuid.UUID
	Name            string
	CurrentRate     decimal.Decimal
	SimulatedRate   decimal.Decimal
	BaselineMonths  int
	SimulatedMonths int
	MonthsSaved     int // negative when the simulation is worse
	BaselineDate    time.Time
	SimulatedDate   time.Time
	// Degenerate is set when the adjustments sum to a non-positive rate.
	// The rate is floored to MinimumRate and the result is still returned;
	// callers decide how loudly to surface it.
	Degenerate        bool
	BaselineChart     []projection.ChartPoint
	SimulatedChart    []projection.ChartPoint
	AffordabilityNote string
}

// Record is one persisted simulation run. Append-only; runs are never
// updated or deleted.
type Record struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	GoalID        uuid.UUID
	Name          string
	Adjustments   map[string]decimal.Decimal
	SimulatedRate decimal.Decimal
	BaselineDate  time.Time
	SimulatedDate time.Time
	MonthsSaved   int
	CreatedAt     time.Time
}
