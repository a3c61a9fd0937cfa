package di

import (
	"github.com/rs/zerolog"

	"github.com/pathwise/pathwise/internal/modules/anomaly"
	"github.com/pathwise/pathwise/internal/modules/coach"
	"github.com/pathwise/pathwise/internal/modules/goals"
	"github.com/pathwise/pathwise/internal/modules/profile"
	"github.com/pathwise/pathwise/internal/modules/reports"
	"github.com/pathwise/pathwise/internal/modules/simulation"
	"github.com/pathwise/pathwise/internal/modules/transactions"
)

// InitializeRepositories creates the data access layer.
func InitializeRepositories(container *Container, log zerolog.Logger) {
	core := container.CoreDB.Conn()
	ledger := container.LedgerDB.Conn()
	cache := container.CacheDB.Conn()

	container.ProfileRepo = profile.NewRepository(core, log)
	container.GoalRepo = goals.NewRepository(core, log)
	container.TransactionRepo = transactions.NewRepository(ledger, log)
	container.SimulationRepo = simulation.NewRepository(ledger, log)
	container.AnomalyRepo = anomaly.NewRepository(ledger, log)
	container.ReportRepo = reports.NewRepository(ledger, log)
	container.AdviceRepo = coach.NewAdviceRepository(ledger)
	container.SessionStore = coach.NewSQLSessionStore(cache)
}
