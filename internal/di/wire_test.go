package di

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/pathwise/pathwise/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir: t.TempDir(),
		Anomaly: config.AnomalyConfig{
			WindowMonths:    3,
			HighThreshold:   3.0,
			MediumThreshold: 2.0,
			LowThreshold:    1.5,
		},
	}
}

func TestWire_BuildsFullContainer(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)

	container, err := Wire(testConfig(t), log)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	require.NotNil(t, container.CoreDB)
	require.NotNil(t, container.LedgerDB)
	require.NotNil(t, container.CacheDB)

	require.NotNil(t, container.ProfileService)
	require.NotNil(t, container.GoalService)
	require.NotNil(t, container.ProjectionService)
	require.NotNil(t, container.SimulationService)
	require.NotNil(t, container.TransactionService)
	require.NotNil(t, container.AnomalyService)
	require.NotNil(t, container.ReportService)
	require.NotNil(t, container.CoachService)
}

func TestWire_SchemasApplied(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)

	container, err := Wire(testConfig(t), log)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	// One table per database proves each schema ran.
	var n int
	require.NoError(t, container.CoreDB.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'goals'`).Scan(&n))
	require.Equal(t, 1, n)
	require.NoError(t, container.LedgerDB.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'transactions'`).Scan(&n))
	require.Equal(t, 1, n)
	require.NoError(t, container.CacheDB.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'coach_sessions'`).Scan(&n))
	require.Equal(t, 1, n)
}
