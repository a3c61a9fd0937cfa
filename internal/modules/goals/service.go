package goals

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
)

// DisposableIncomeProvider reports a user's disposable income (salary minus
// fixed expenses). Implemented by the profile service.
type DisposableIncomeProvider interface {
	DisposableIncome(userID uuid.UUID) (decimal.Decimal, error)
}

// Service orchestrates goal operations. Every write that can change a
// goal's monthly target runs the commitment ledger check and the persisting
// write under the same per-user lock, so concurrent updates to different
// goals of one user cannot jointly exceed disposable income.
type Service struct {
	repo       *Repository
	disposable DisposableIncomeProvider
	locks      *userLocks
	now        func() time.Time
	log        zerolog.Logger
}

// NewService creates a new goal service
func NewService(repo *Repository, disposable DisposableIncomeProvider, log zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		disposable: disposable,
		locks:      newUserLocks(),
		now:        time.Now,
		log:        log.With().Str("service", "goals").Logger(),
	}
}

// Create validates input, runs the ledger check when a monthly target is
// set, and inserts the goal with its derived status.
func (s *Service) Create(userID uuid.UUID, in Input) (*Goal, error) {
	if err := validateInput(in, true, s.now()); err != nil {
		return nil, err
	}

	unlock := s.locks.acquire(userID)
	defer unlock()

	if in.MonthlySavingsTarget != nil && in.MonthlySavingsTarget.IsPositive() {
		if err := s.checkLimit(userID, nil, *in.MonthlySavingsTarget); err != nil {
			return nil, err
		}
	}

	saved := decimal.Zero
	if in.SavedAmount != nil {
		saved = *in.SavedAmount
	}
	currency := in.Currency
	if currency == "" {
		currency = "BHD"
	}

	now := s.now()
	g := Goal{
		ID:                   uuid.New(),
		UserID:               userID,
		Name:                 in.Name,
		Category:             in.Category,
		TargetAmount:         in.TargetAmount,
		SavedAmount:          saved,
		MonthlySavingsTarget: in.MonthlySavingsTarget,
		Currency:             currency,
		Deadline:             in.Deadline,
		Priority:             in.Priority,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	g.Status = ResolveStatus(g, now)

	if err := s.repo.Create(g); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("goal_id", g.ID.String()).
		Str("user_id", userID.String()).
		Str("target", g.TargetAmount.String()).
		Msg("Goal created")
	return &g, nil
}

// Update applies new values to an owned goal, re-running the ledger check
// when the monthly target changes and recomputing status afterwards.
func (s *Service) Update(userID, goalID uuid.UUID, in Input) (*Goal, error) {
	if err := validateInput(in, false, s.now()); err != nil {
		return nil, err
	}

	unlock := s.locks.acquire(userID)
	defer unlock()

	g, err := s.owned(userID, goalID)
	if err != nil {
		return nil, err
	}

	if in.MonthlySavingsTarget != nil && in.MonthlySavingsTarget.IsPositive() {
		// Pass the goal's current target so it is excluded from the
		// baseline: we are replacing it, not adding to it.
		if err := s.checkLimit(userID, g.MonthlySavingsTarget, *in.MonthlySavingsTarget); err != nil {
			return nil, err
		}
	}

	g.Name = in.Name
	g.Category = in.Category
	g.TargetAmount = in.TargetAmount
	g.Priority = in.Priority
	g.Deadline = in.Deadline
	if in.Currency != "" {
		g.Currency = in.Currency
	}
	if in.SavedAmount != nil {
		g.SavedAmount = *in.SavedAmount
	}
	if in.MonthlySavingsTarget != nil {
		g.MonthlySavingsTarget = in.MonthlySavingsTarget
	}

	g.Status = ResolveStatus(*g, s.now())
	g.UpdatedAt = s.now()

	if err := s.repo.Update(*g); err != nil {
		return nil, err
	}
	return g, nil
}

// ApplyRate persists a new monthly savings rate on an owned goal and
// recomputes its status. This is the explicit write half of a projection;
// the projection calculation itself never mutates anything.
func (s *Service) ApplyRate(userID, goalID uuid.UUID, rate decimal.Decimal) (*Goal, error) {
	if !rate.IsPositive() {
		return nil, domain.NewValidationError("monthlyRate", "must be greater than zero")
	}

	unlock := s.locks.acquire(userID)
	defer unlock()

	g, err := s.owned(userID, goalID)
	if err != nil {
		return nil, err
	}

	if err := s.checkLimit(userID, g.MonthlySavingsTarget, rate); err != nil {
		return nil, err
	}

	g.MonthlySavingsTarget = &rate
	g.Status = ResolveStatus(*g, s.now())
	g.UpdatedAt = s.now()

	if err := s.repo.Update(*g); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("goal_id", goalID.String()).
		Str("rate", rate.String()).
		Str("status", string(g.Status)).
		Msg("Monthly savings rate applied")
	return g, nil
}

// Delete removes an owned goal.
func (s *Service) Delete(userID, goalID uuid.UUID) error {
	g, err := s.owned(userID, goalID)
	if err != nil {
		return err
	}
	return s.repo.Delete(g.ID)
}

// Get returns an owned goal.
func (s *Service) Get(userID, goalID uuid.UUID) (*Goal, error) {
	return s.owned(userID, goalID)
}

// List returns all goals for a user.
func (s *Service) List(userID uuid.UUID) ([]Goal, error) {
	return s.repo.ListByUser(userID)
}

// CheckLimit exposes the ledger check for a proposed target without
// writing anything. Used by callers that want a dry-run verdict.
func (s *Service) CheckLimit(userID uuid.UUID, currentTarget *decimal.Decimal, proposed decimal.Decimal) error {
	return s.checkLimit(userID, currentTarget, proposed)
}

func (s *Service) checkLimit(userID uuid.UUID, currentTarget *decimal.Decimal, proposed decimal.Decimal) error {
	disposable, err := s.disposable.DisposableIncome(userID)
	if err != nil {
		return fmt.Errorf("failed to get disposable income: %w", err)
	}
	existingTotal, err := s.repo.SumMonthlyTargets(userID)
	if err != nil {
		return fmt.Errorf("failed to sum existing commitments: %w", err)
	}
	return CheckSavingsLimit(disposable, existingTotal, currentTarget, proposed)
}

// owned loads a goal and verifies ownership before anything else runs on it.
func (s *Service) owned(userID, goalID uuid.UUID) (*Goal, error) {
	g, err := s.repo.GetByID(goalID)
	if err != nil {
		return nil, err
	}
	if g.UserID != userID {
		return nil, ErrNotOwner
	}
	return g, nil
}

func validateInput(in Input, creating bool, today time.Time) error {
	if in.Name == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	if !in.TargetAmount.IsPositive() {
		return domain.NewValidationError("targetAmount", "must be greater than zero")
	}
	if in.SavedAmount != nil && in.SavedAmount.IsNegative() {
		return domain.NewValidationError("savedAmount", "must not be negative")
	}
	if in.MonthlySavingsTarget != nil && !in.MonthlySavingsTarget.IsPositive() {
		return domain.NewValidationError("monthlySavingsTarget", "must be greater than zero when set")
	}
	if creating && !in.Deadline.After(today) {
		return domain.NewValidationError("deadline", "must be a future date")
	}
	return nil
}
