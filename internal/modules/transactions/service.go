package transactions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pathwise/pathwise/internal/domain"
)

// Service imports, lists and aggregates bank transactions.
type Service struct {
	repo       *Repository
	importer   Importer
	classifier Classifier
	now        func() time.Time
	log        zerolog.Logger
}

// NewService creates a new transaction service
func NewService(repo *Repository, importer Importer, classifier Classifier, log zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		importer:   importer,
		classifier: classifier,
		now:        time.Now,
		log:        log.With().Str("service", "transactions").Logger(),
	}
}

// Sync pulls new movements from the bank feed, categorizes them and stores
// the batch.
func (s *Service) Sync(ctx context.Context, userID uuid.UUID) (int, error) {
	records, err := s.importer.Import(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("bank import failed: %w", err)
	}

	now := s.now()
	txns := make([]Transaction, 0, len(records))
	for _, rec := range records {
		currency := rec.Currency
		if currency == "" {
			currency = "BHD"
		}
		txns = append(txns, Transaction{
			ID:              uuid.New(),
			UserID:          userID,
			MerchantName:    rec.MerchantName,
			Amount:          rec.Amount,
			Type:            rec.Type,
			Currency:        currency,
			Category:        s.classifier.Classify(rec.MerchantName),
			TransactionDate: rec.Date,
			CreatedAt:       now,
		})
	}

	if err := s.repo.InsertBatch(txns); err != nil {
		return 0, err
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Int("count", len(txns)).
		Msg("Imported bank transactions")
	return len(txns), nil
}

// List returns a filtered page of the user's transactions.
func (s *Service) List(userID uuid.UUID, filter ListFilter) (Page, error) {
	return s.repo.List(userID, filter)
}

// Analytics aggregates the user's transactions over the trailing number of
// whole months, current month included.
func (s *Service) Analytics(userID uuid.UUID, months int) (Summary, error) {
	if months < 1 {
		months = 3
	}
	since := domain.AddMonths(domain.StartOfMonth(s.now()), -(months - 1))

	txns, err := s.repo.ListSince(userID, since)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(txns), nil
}

// DebitsSince returns the user's debit transactions on or after a date.
// Feeds the anomaly detector.
func (s *Service) DebitsSince(userID uuid.UUID, since time.Time) ([]Transaction, error) {
	txns, err := s.repo.ListSince(userID, since)
	if err != nil {
		return nil, err
	}
	debits := txns[:0]
	for _, t := range txns {
		if t.Type == domain.TransactionDebit {
			debits = append(debits, t)
		}
	}
	return debits, nil
}
