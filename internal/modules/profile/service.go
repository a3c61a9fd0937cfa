package profile

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
)

// Savings-rate warning thresholds, in percent of disposable income.
// Standard personal finance guidance: committing over half of disposable
// income is unsustainable, over 30% deserves a caution.
var (
	redRateThreshold   = decimal.NewFromInt(50)
	amberRateThreshold = decimal.NewFromInt(30)
	hundred            = decimal.NewFromInt(100)
)

// CommitmentProvider reports the sum of monthly savings targets across a
// user's non-completed goals. Implemented by the goals repository; defined
// here to avoid an import cycle.
type CommitmentProvider interface {
	SumMonthlyTargets(userID uuid.UUID) (decimal.Decimal, error)
}

// Service derives financial snapshots and manages the declared profile.
//
// This is the single source of truth for disposable income and warning
// levels. The goals, projection, simulation and coach modules all consume
// its snapshot rather than re-deriving capacity themselves.
type Service struct {
	repo        *Repository
	commitments CommitmentProvider
	log         zerolog.Logger
}

// NewService creates a new profile service
func NewService(repo *Repository, commitments CommitmentProvider, log zerolog.Logger) *Service {
	return &Service{
		repo:        repo,
		commitments: commitments,
		log:         log.With().Str("service", "profile").Logger(),
	}
}

// ComputeSnapshot derives a financial snapshot from raw inputs. Pure: no
// repository access, no side effects. The warning decision table is
// evaluated top to bottom, first match wins. All threshold comparisons use
// exact decimal arithmetic; formatting rounds for display only.
func ComputeSnapshot(salary decimal.Decimal, expenses []decimal.Decimal, goals []GoalCommitment) FinancialSnapshot {
	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e)
	}

	disposable := salary.Sub(totalExpenses)

	commitment := decimal.Zero
	for _, g := range goals {
		if g.Status == domain.StatusCompleted || g.MonthlySavingsTarget == nil {
			continue
		}
		commitment = commitment.Add(*g.MonthlySavingsTarget)
	}

	snap := FinancialSnapshot{
		Salary:                 salary,
		TotalExpenses:          totalExpenses,
		DisposableIncome:       disposable,
		TotalMonthlyCommitment: commitment,
	}

	// Savings rate is undefined when there is no disposable income to
	// measure against.
	var ratePct decimal.Decimal
	if disposable.IsPositive() {
		if commitment.IsPositive() {
			ratePct = commitment.Div(disposable).Mul(hundred)
		}
		rate := ratePct.InexactFloat64()
		snap.SavingsRatePercent = &rate
	}

	switch {
	case !disposable.IsPositive():
		snap.WarningLevel = domain.WarningRed
		snap.WarningMessage = fmt.Sprintf(
			"Your fixed expenses (%s) meet or exceed your salary (%s). "+
				"There is no room for savings until you reduce your fixed costs.",
			domain.FormatAmount(totalExpenses), domain.FormatAmount(salary))

	case commitment.GreaterThanOrEqual(disposable):
		snap.WarningLevel = domain.WarningRed
		snap.WarningMessage = fmt.Sprintf(
			"Your total monthly savings commitment (%s) meets or exceeds your "+
				"disposable income (%s). Reduce your monthly targets or extend goal deadlines.",
			domain.FormatAmount(commitment), domain.FormatAmount(disposable))

	case ratePct.GreaterThan(redRateThreshold):
		snap.WarningLevel = domain.WarningRed
		snap.WarningMessage = fmt.Sprintf(
			"You are planning to save %.0f%% of your disposable income (%s/month). "+
				"This is very aggressive. Consider extending your goal timelines.",
			ratePct.InexactFloat64(), domain.FormatAmount(disposable))

	case ratePct.GreaterThan(amberRateThreshold):
		snap.WarningLevel = domain.WarningAmber
		snap.WarningMessage = fmt.Sprintf(
			"You are planning to save %.0f%% of your disposable income (%s/month). "+
				"This is ambitious, keep a buffer for unexpected costs.",
			ratePct.InexactFloat64(), domain.FormatAmount(disposable))

	default:
		snap.WarningLevel = domain.WarningNone
	}

	return snap
}

// SnapshotFor loads a user's profile and goals and computes their snapshot.
func (s *Service) SnapshotFor(userID uuid.UUID) (FinancialSnapshot, error) {
	user, err := s.repo.GetUser(userID)
	if err != nil {
		return FinancialSnapshot{}, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return FinancialSnapshot{}, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}

	totalExpenses, err := s.repo.SumExpenses(userID)
	if err != nil {
		return FinancialSnapshot{}, fmt.Errorf("failed to sum expenses: %w", err)
	}

	commitment, err := s.commitments.SumMonthlyTargets(userID)
	if err != nil {
		return FinancialSnapshot{}, fmt.Errorf("failed to sum goal commitments: %w", err)
	}

	// The stored sums are already aggregated, so feed them through the pure
	// calculation as single-element inputs.
	return ComputeSnapshot(
		user.MonthlySalary,
		[]decimal.Decimal{totalExpenses},
		[]GoalCommitment{{MonthlySavingsTarget: &commitment, Status: domain.StatusOnTrack}},
	), nil
}

// DisposableIncome returns salary minus total fixed expenses for a user.
func (s *Service) DisposableIncome(userID uuid.UUID) (decimal.Decimal, error) {
	user, err := s.repo.GetUser(userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return decimal.Zero, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}

	totalExpenses, err := s.repo.SumExpenses(userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return user.MonthlySalary.Sub(totalExpenses), nil
}

// TotalMonthlyCommitment returns the sum of monthly savings targets across
// a user's non-completed goals.
func (s *Service) TotalMonthlyCommitment(userID uuid.UUID) (decimal.Decimal, error) {
	commitment, err := s.commitments.SumMonthlyTargets(userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum monthly targets: %w", err)
	}
	return commitment, nil
}

// ReplaceExpenses validates and wholesale-replaces a user's declared
// expenses. Negative amounts are rejected before any row is touched.
func (s *Service) ReplaceExpenses(userID uuid.UUID, items []ExpenseItem) error {
	for _, item := range items {
		if item.Amount.IsNegative() {
			return domain.NewValidationError("amount",
				fmt.Sprintf("expense amount for %s cannot be negative", item.Category))
		}
	}

	user, err := s.repo.GetUser(userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}

	if err := s.repo.ReplaceExpenses(userID, items); err != nil {
		return err
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Int("items", len(items)).
		Msg("Replaced monthly expenses")
	return nil
}

// Register creates a user's financial profile. Salary is mandatory so the
// snapshot is computable from the first request.
func (s *Service) Register(fullName, email string, salary decimal.Decimal, currency string) (*UserFinancials, error) {
	if fullName == "" {
		return nil, domain.NewValidationError("fullName", "must not be empty")
	}
	if email == "" {
		return nil, domain.NewValidationError("email", "must not be empty")
	}
	if !salary.IsPositive() {
		return nil, domain.NewValidationError("monthlySalary", "must be greater than zero")
	}
	if currency == "" {
		currency = "BHD"
	}

	now := time.Now()
	u := UserFinancials{
		ID:                uuid.New(),
		FullName:          fullName,
		Email:             email,
		MonthlySalary:     salary,
		PreferredCurrency: currency,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.CreateUser(u); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", u.ID.String()).Msg("User profile created")
	return &u, nil
}

// UpdateSalary sets a new monthly salary for the user.
func (s *Service) UpdateSalary(userID uuid.UUID, salary decimal.Decimal) error {
	if !salary.IsPositive() {
		return domain.NewValidationError("monthlySalary", "must be greater than zero")
	}
	user, err := s.repo.GetUser(userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}
	return s.repo.UpdateSalary(userID, salary)
}

// ListExpenses returns the user's declared expenses.
func (s *Service) ListExpenses(userID uuid.UUID) ([]MonthlyExpense, error) {
	return s.repo.ListExpenses(userID)
}

// User returns the user's financial profile.
func (s *Service) User(userID uuid.UUID) (*UserFinancials, error) {
	return s.repo.GetUser(userID)
}
