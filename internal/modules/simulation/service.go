package simulation

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

// Service runs spending-cut simulations and keeps their history.
type Service struct {
	goals      *goals.Service
	repo       *Repository
	disposable DisposableIncomeProvider
	now        func() time.Time
	log        zerolog.Logger
}

// NewService creates a new simulation service
func NewService(goalService *goals.Service, repo *Repository, disposable DisposableIncomeProvider, log zerolog.Logger) *Service {
	return &Service{
		goals:      goalService,
		repo:       repo,
		disposable: disposable,
		now:        time.Now,
		log:        log.With().Str("service", "simulation").Logger(),
	}
}

// Run simulates an owned goal under the given spending adjustments and
// appends the run to history. The goal itself is untouched, and no
// commitment check applies: a simulation is a question, not a commitment.
//
// currentRate is the hypothetical baseline; nil means the goal's own
// persisted monthly target.
func (s *Service) Run(userID, goalID uuid.UUID, name string, currentRate *decimal.Decimal, adjustments map[string]decimal.Decimal) (Result, error) {
	g, err := s.goals.Get(userID, goalID)
	if err != nil {
		return Result{}, err
	}

	baseline := decimal.Zero
	if currentRate != nil {
		baseline = *currentRate
	} else if g.MonthlySavingsTarget != nil {
		baseline = *g.MonthlySavingsTarget
	}

	result, err := Simulate(*g, baseline, adjustments, s.now())
	if err != nil {
		return Result{}, err
	}

	if name == "" {
		name = fmt.Sprintf("Simulation %s", s.now().Format(time.DateOnly))
	}
	result.Name = name

	disposable, err := s.disposable.DisposableIncome(userID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get disposable income: %w", err)
	}
	if result.SimulatedRate.GreaterThan(disposable) {
		result.AffordabilityNote = fmt.Sprintf(
			"The simulated rate of %s exceeds your disposable income of %s per month. "+
				"The timeline is shown anyway; treat it as an upper bound.",
			domain.FormatAmount(result.SimulatedRate), domain.FormatAmount(disposable))
	}

	rec := Record{
		ID:            uuid.New(),
		UserID:        userID,
		GoalID:        goalID,
		Name:          name,
		Adjustments:   adjustments,
		SimulatedRate: result.SimulatedRate,
		BaselineDate:  result.BaselineDate,
		SimulatedDate: result.SimulatedDate,
		MonthsSaved:   result.MonthsSaved,
		CreatedAt:     s.now(),
	}
	if err := s.repo.Append(rec); err != nil {
		return Result{}, err
	}

	s.log.Info().
		Str("goal_id", goalID.String()).
		Int("months_saved", result.MonthsSaved).
		Bool("degenerate", result.Degenerate).
		Msg("Simulation recorded")
	return result, nil
}

// History lists prior runs for an owned goal, newest first.
func (s *Service) History(userID, goalID uuid.UUID) ([]Record, error) {
	if _, err := s.goals.Get(userID, goalID); err != nil {
		return nil, err
	}
	return s.repo.ListByGoal(userID, goalID)
}
