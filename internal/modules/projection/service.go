package projection

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
	"github.com/pathwise/pathwise/internal/modules/goals"
)

// DisposableIncomeProvider reports a user's disposable income. Implemented
// by the profile service.
type DisposableIncomeProvider interface {
	DisposableIncome(userID uuid.UUID) (decimal.Decimal, error)
}

// Service loads goals, runs projections and applies accepted rates.
type Service struct {
	goals      *goals.Service
	disposable DisposableIncomeProvider
	now        func() time.Time
	log        zerolog.Logger
}

// NewService creates a new projection service
func NewService(goalService *goals.Service, disposable DisposableIncomeProvider, log zerolog.Logger) *Service {
	return &Service{
		goals:      goalService,
		disposable: disposable,
		now:        time.Now,
		log:        log.With().Str("service", "projection").Logger(),
	}
}

// ProjectGoal forecasts an owned goal at a candidate rate. Read-only: the
// candidate rate is not persisted. The affordability note is advisory and
// never blocks the forecast.
func (s *Service) ProjectGoal(userID, goalID uuid.UUID, rate decimal.Decimal) (Result, error) {
	g, err := s.goals.Get(userID, goalID)
	if err != nil {
		return Result{}, err
	}

	result, err := Project(*g, rate, s.now())
	if err != nil {
		return Result{}, err
	}

	disposable, err := s.disposable.DisposableIncome(userID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get disposable income: %w", err)
	}
	result.AffordabilityNote = affordabilityNote(rate, disposable)

	return result, nil
}

// ApplyRate persists a projected rate onto the goal. This is where the
// commitment ledger gets a say; a forecast the user never applies costs
// nothing.
func (s *Service) ApplyRate(userID, goalID uuid.UUID, rate decimal.Decimal) (*goals.Goal, error) {
	return s.goals.ApplyRate(userID, goalID, rate)
}

// affordabilityNote compares a monthly rate against disposable income.
func affordabilityNote(rate, disposable decimal.Decimal) string {
	if !disposable.IsPositive() {
		return "Your expenses currently leave no disposable income to save from."
	}
	if rate.GreaterThan(disposable) {
		return fmt.Sprintf("This rate exceeds your disposable income of %s per month.",
			domain.FormatAmount(disposable))
	}
	pct := rate.Div(disposable).Mul(decimal.NewFromInt(100))
	return fmt.Sprintf("This rate uses %s%% of your %s monthly disposable income.",
		pct.Round(1), domain.FormatAmount(disposable))
}
