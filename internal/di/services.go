package di

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pathwise/pathwise/internal/clients/bankfeed"
	"github.com/pathwise/pathwise/internal/clients/textgen"
	"github.com/pathwise/pathwise/internal/config"
	"github.com/pathwise/pathwise/internal/modules/anomaly"
	"github.com/pathwise/pathwise/internal/modules/coach"
	"github.com/pathwise/pathwise/internal/modules/goals"
	"github.com/pathwise/pathwise/internal/modules/profile"
	"github.com/pathwise/pathwise/internal/modules/projection"
	"github.com/pathwise/pathwise/internal/modules/reports"
	"github.com/pathwise/pathwise/internal/modules/simulation"
	"github.com/pathwise/pathwise/internal/modules/transactions"
)

// debitSourceAdapter adapts the transactions service to the anomaly
// module's DebitSource interface.
type debitSourceAdapter struct {
	transactions *transactions.Service
}

func (a *debitSourceAdapter) DebitsSince(userID uuid.UUID, since time.Time) ([]anomaly.Debit, error) {
	txns, err := a.transactions.DebitsSince(userID, since)
	if err != nil {
		return nil, err
	}
	debits := make([]anomaly.Debit, 0, len(txns))
	for _, t := range txns {
		debits = append(debits, anomaly.Debit{
			Category: t.Category,
			Amount:   t.Amount,
			Date:     t.TransactionDate,
		})
	}
	return debits, nil
}

// InitializeServices creates the business logic layer. Repositories must
// already be initialized.
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) {
	container.Importer = bankfeed.NewCSVImporter(cfg.DataDir+"/bank", log)
	container.Generator = textgen.NewLocal(log)

	// The goals repository doubles as the profile service's commitment
	// provider; the profile service is the disposable income provider for
	// everything downstream.
	container.ProfileService = profile.NewService(container.ProfileRepo, container.GoalRepo, log)
	container.GoalService = goals.NewService(container.GoalRepo, container.ProfileService, log)
	container.ProjectionService = projection.NewService(container.GoalService, container.ProfileService, log)
	container.SimulationService = simulation.NewService(container.GoalService, container.SimulationRepo,
		container.ProfileService, log)

	container.TransactionService = transactions.NewService(container.TransactionRepo, container.Importer,
		transactions.NewKeywordClassifier(), log)

	detector := anomaly.NewDetector(cfg.Anomaly.WindowMonths, anomaly.Thresholds{
		High:   cfg.Anomaly.HighThreshold,
		Medium: cfg.Anomaly.MediumThreshold,
		Low:    cfg.Anomaly.LowThreshold,
	})
	container.AnomalyService = anomaly.NewService(detector, container.AnomalyRepo,
		&debitSourceAdapter{transactions: container.TransactionService}, log)

	container.ReportService = reports.NewService(container.ReportRepo, container.TransactionService,
		container.AnomalyService, container.ProfileService, container.Generator, log)

	container.CoachService = coach.NewService(
		coach.NewFSM(coach.KeywordIntentClassifier{}),
		container.SessionStore,
		container.AdviceRepo,
		container.GoalService,
		container.ProfileService,
		container.Generator,
		log,
	)
}
