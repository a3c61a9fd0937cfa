package di

import (
	"fmt"

	"github.com/pathwise/pathwise/internal/config"
	"github.com/pathwise/pathwise/internal/database"
)

// InitializeDatabases opens the three databases and applies their schemas.
func InitializeDatabases(cfg *config.Config, container *Container) error {
	coreDB, err := database.New(database.Config{
		Path:    cfg.DataDir + "/core.db",
		Profile: database.ProfileStandard,
		Name:    "core",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize core database: %w", err)
	}
	container.CoreDB = coreDB

	ledgerDB, err := database.New(database.Config{
		Path:    cfg.DataDir + "/ledger.db",
		Profile: database.ProfileLedger, // Maximum safety for append-only history
		Name:    "ledger",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize ledger database: %w", err)
	}
	container.LedgerDB = ledgerDB

	cacheDB, err := database.New(database.Config{
		Path:    cfg.DataDir + "/cache.db",
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize cache database: %w", err)
	}
	container.CacheDB = cacheDB

	for _, db := range []*database.DB{coreDB, ledgerDB, cacheDB} {
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate %s database: %w", db.Name(), err)
		}
	}

	return nil
}
