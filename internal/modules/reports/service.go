package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pathwise/pathwise/internal/domain"
	"github.com/pathwise/pathwise/internal/modules/anomaly"
	"github.com/pathwise/pathwise/internal/modules/profile"
	"github.com/pathwise/pathwise/internal/modules/transactions"
)

// Report data covers this many trailing months, current month included.
const periodMonths = 3

// AnalyticsSource supplies spending aggregates. Implemented by the
// transactions service.
type AnalyticsSource interface {
	Analytics(userID uuid.UUID, months int) (transactions.Summary, error)
}

// AnomalySource supplies active spending anomalies. Implemented by the
// anomaly service.
type AnomalySource interface {
	Active(userID uuid.UUID) ([]anomaly.Anomaly, error)
}

// SnapshotSource supplies the financial capacity snapshot. Implemented by
// the profile service.
type SnapshotSource interface {
	SnapshotFor(userID uuid.UUID) (profile.FinancialSnapshot, error)
}

// Service assembles report prompts and delegates the prose to the text
// generation collaborator.
type Service struct {
	repo      *Repository
	analytics AnalyticsSource
	anomalies AnomalySource
	snapshots SnapshotSource
	generator domain.TextGenerator
	now       func() time.Time
	log       zerolog.Logger
}

// NewService creates a new report service
func NewService(repo *Repository, analytics AnalyticsSource, anomalies AnomalySource,
	snapshots SnapshotSource, generator domain.TextGenerator, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		analytics: analytics,
		anomalies: anomalies,
		snapshots: snapshots,
		generator: generator,
		now:       time.Now,
		log:       log.With().Str("service", "reports").Logger(),
	}
}

// Generate assembles the trailing period's data into a prompt, asks the
// generator for prose, and stores the result.
func (s *Service) Generate(ctx context.Context, userID uuid.UUID) (*Report, error) {
	now := s.now()
	periodEnd := now
	periodStart := domain.AddMonths(domain.StartOfMonth(now), -(periodMonths - 1))

	summary, err := s.analytics.Analytics(userID, periodMonths)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics: %w", err)
	}
	snap, err := s.snapshots.SnapshotFor(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	active, err := s.anomalies.Active(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load anomalies: %w", err)
	}

	prompt := buildPrompt(periodStart, periodEnd, summary, snap, active)
	content, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("report generation failed: %w", err)
	}

	rep := Report{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       fmt.Sprintf("Financial Report %s", now.Format("January 2006")),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Content:     content,
		CreatedAt:   now,
	}
	if err := s.repo.Insert(rep); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("report_id", rep.ID.String()).
		Msg("Report generated")
	return &rep, nil
}

// History lists a user's reports, newest first.
func (s *Service) History(userID uuid.UUID) ([]Report, error) {
	return s.repo.ListByUser(userID)
}

// Get returns an owned report.
func (s *Service) Get(userID, reportID uuid.UUID) (*Report, error) {
	rep, err := s.repo.GetByID(reportID)
	if err != nil {
		return nil, err
	}
	if rep.UserID != userID {
		return nil, ErrNotOwner
	}
	return rep, nil
}

// buildPrompt lays out the period's numbers for the text generator. The
// generator only ever sees aggregates, never raw transactions.
func buildPrompt(start, end time.Time, summary transactions.Summary,
	snap profile.FinancialSnapshot, active []anomaly.Anomaly) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a concise personal financial report for the period %s to %s.\n\n",
		start.Format(time.DateOnly), end.Format(time.DateOnly))

	fmt.Fprintf(&b, "Capacity: salary %s, fixed expenses %s, disposable income %s, "+
		"total monthly savings commitment %s, warning level %s.\n",
		domain.FormatAmount(snap.Salary), domain.FormatAmount(snap.TotalExpenses),
		domain.FormatAmount(snap.DisposableIncome),
		domain.FormatAmount(snap.TotalMonthlyCommitment), snap.WarningLevel)
	if snap.SavingsRatePercent != nil {
		fmt.Fprintf(&b, "Savings rate: %.1f%% of disposable income.\n", *snap.SavingsRatePercent)
	}

	fmt.Fprintf(&b, "\nPeriod totals: income %s, expenses %s, net %s.\n",
		domain.FormatAmount(summary.TotalIncome), domain.FormatAmount(summary.TotalExpenses),
		domain.FormatAmount(summary.NetFlow))
	if len(summary.ByCategory) > 0 {
		b.WriteString("Spending by category:\n")
		for _, c := range summary.ByCategory {
			fmt.Fprintf(&b, "- %s: %s\n", c.Category, domain.FormatAmount(c.Amount))
		}
	}

	if len(active) > 0 {
		b.WriteString("\nActive spending anomalies:\n")
		for _, a := range active {
			fmt.Fprintf(&b, "- [%s] %s\n", a.Severity, a.Message)
		}
	}

	b.WriteString("\nSummarize the period, highlight the anomalies if any, " +
		"and give two or three specific suggestions. Keep it under 300 words.")
	return b.String()
}
