package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pathwise/pathwise/internal/config"
)

// Wire initializes all dependencies and returns a fully configured
// container. Order of operations:
// 1. Initialize databases and apply schemas
// 2. Initialize repositories
// 3. Initialize clients and services
func Wire(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	if err := InitializeDatabases(cfg, container); err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to initialize databases: %w", err)
	}

	InitializeRepositories(container, log)
	InitializeServices(container, cfg, log)

	log.Info().Msg("Dependency injection wiring completed")
	return container, nil
}
