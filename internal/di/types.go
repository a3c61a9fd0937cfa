// Package di provides dependency injection wiring for the application.
// The Container is the single source of truth for all service instances
// and is passed to the server for route registration.
package di

import (
	"github.com/pathwise/pathwise/internal/database"
	"github.com/pathwise/pathwise/internal/domain"
	"github.com/pathwise/pathwise/internal/modules/anomaly"
	"github.com/pathwise/pathwise/internal/modules/coach"
	"github.com/pathwise/pathwise/internal/modules/goals"
	"github.com/pathwise/pathwise/internal/modules/profile"
	"github.com/pathwise/pathwise/internal/modules/projection"
	"github.com/pathwise/pathwise/internal/modules/reports"
	"github.com/pathwise/pathwise/internal/modules/simulation"
	"github.com/pathwise/pathwise/internal/modules/transactions"
)

// Container holds all application dependencies.
//
// Architecture:
// - Databases: core (profile, goals), ledger (transactions, simulations,
//   anomalies, reports, advice), cache (coach sessions)
// - Clients: bank feed importer and text generation backend
// - Repositories: data access layer, one per module
// - Services: business logic layer, one per module
//
// All dependencies are injected via constructor injection.
type Container struct {
	// Databases
	CoreDB   *database.DB // Declared financial profile and goals
	LedgerDB *database.DB // Append-only financial history
	CacheDB  *database.DB // Ephemeral operational data

	// Clients
	Importer  transactions.Importer
	Generator domain.TextGenerator

	// Repositories
	ProfileRepo     *profile.Repository
	GoalRepo        *goals.Repository
	TransactionRepo *transactions.Repository
	SimulationRepo  *simulation.Repository
	AnomalyRepo     *anomaly.Repository
	ReportRepo      *reports.Repository
	AdviceRepo      *coach.AdviceRepository
	SessionStore    *coach.SQLSessionStore

	// Services
	ProfileService     *profile.Service
	GoalService        *goals.Service
	ProjectionService  *projection.Service
	SimulationService  *simulation.Service
	TransactionService *transactions.Service
	AnomalyService     *anomaly.Service
	ReportService      *reports.Service
	CoachService       *coach.Service
}

// Close releases all database connections. Safe to call on a partially
// initialized container.
func (c *Container) Close() {
	for _, db := range []*database.DB{c.CoreDB, c.LedgerDB, c.CacheDB} {
		if db != nil {
			db.Close()
		}
	}
}
