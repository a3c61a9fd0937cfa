package anomaly

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pathwise/pathwise/internal/domain"
)

// DebitSource supplies categorized debit transactions on or after a date.
// Implemented by the transactions module.
type DebitSource interface {
	DebitsSince(userID uuid.UUID, since time.Time) ([]Debit, error)
}

// Service runs detection over stored transactions and manages the anomaly
// lifecycle.
type Service struct {
	detector *Detector
	repo     *Repository
	debits   DebitSource
	now      func() time.Time
	log      zerolog.Logger
}

// NewService creates a new anomaly service
func NewService(detector *Detector, repo *Repository, debits DebitSource, log zerolog.Logger) *Service {
	return &Service{
		detector: detector,
		repo:     repo,
		debits:   debits,
		now:      time.Now,
		log:      log.With().Str("service", "anomaly").Logger(),
	}
}

// Scan detects and stores new anomalies for a user. Findings deduplicate
// against undismissed anomalies from the same calendar month, so repeated
// scans are idempotent until the user dismisses or the month rolls over.
func (s *Service) Scan(userID uuid.UUID) ([]Anomaly, error) {
	now := s.now()
	windowStart := domain.AddMonths(domain.StartOfMonth(now), -s.detector.windowMonths)

	debits, err := s.debits.DebitsSince(userID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to load debits: %w", err)
	}

	findings := s.detector.Detect(debits, now)

	var created []Anomaly
	for _, f := range findings {
		exists, err := s.repo.HasUndismissedInMonth(userID, f.Category, now)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		a := Anomaly{
			ID:             uuid.New(),
			UserID:         userID,
			Category:       f.Category,
			Severity:       f.Severity,
			ActualAmount:   f.Actual,
			BaselineAmount: f.Baseline,
			Message:        f.Message,
			CreatedAt:      now,
		}
		if err := s.repo.Insert(a); err != nil {
			return nil, err
		}
		created = append(created, a)
	}

	if len(created) > 0 {
		s.log.Info().
			Str("user_id", userID.String()).
			Int("count", len(created)).
			Msg("New spending anomalies detected")
	}
	return created, nil
}

// Active returns the user's undismissed anomalies.
func (s *Service) Active(userID uuid.UUID) ([]Anomaly, error) {
	return s.repo.ListActive(userID)
}

// History returns all anomalies for the user, dismissed included.
func (s *Service) History(userID uuid.UUID) ([]Anomaly, error) {
	return s.repo.ListAll(userID)
}

// Dismiss marks an owned anomaly as dismissed. Dismissing an already
// dismissed anomaly is a no-op.
func (s *Service) Dismiss(userID, anomalyID uuid.UUID) error {
	a, err := s.repo.GetByID(anomalyID)
	if err != nil {
		return err
	}
	if a.UserID != userID {
		return ErrNotOwner
	}
	if a.IsDismissed {
		return nil
	}
	return s.repo.Dismiss(anomalyID)
}
