package reports

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/pathwise/pathwise/internal/domain"
	"github.com/pathwise/pathwise/internal/modules/anomaly"
	"github.com/pathwise/pathwise/internal/modules/profile"
	"github.com/pathwise/pathwise/internal/modules/transactions"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setupTestReportDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Each pool connection would get its own in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE reports (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			period_start TEXT NOT NULL,
			period_end TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
	`)
	require.NoError(t, err)

	return db
}

type fakeSources struct {
	summary   transactions.Summary
	snapshot  profile.FinancialSnapshot
	anomalies []anomaly.Anomaly
}

func (f fakeSources) Analytics(uuid.UUID, int) (transactions.Summary, error) {
	return f.summary, nil
}
func (f fakeSources) Active(uuid.UUID) ([]anomaly.Anomaly, error) {
	return f.anomalies, nil
}
func (f fakeSources) SnapshotFor(uuid.UUID) (profile.FinancialSnapshot, error) {
	return f.snapshot, nil
}

// echoGenerator returns a fixed body and captures the prompt it was given.
type echoGenerator struct {
	prompt string
}

func (g *echoGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return "Your quarter in review.", nil
}

func newReportService(t *testing.T, sources fakeSources, gen *echoGenerator) *Service {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	svc := NewService(NewRepository(setupTestReportDB(t), log),
		sources, sources, sources, gen, log)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestGenerate_StoresReport(t *testing.T) {
	rate := 25.0
	sources := fakeSources{
		summary: transactions.Summary{
			TotalIncome:   d("4500"),
			TotalExpenses: d("2700"),
			NetFlow:       d("1800"),
			ByCategory:    []transactions.CategorySpend{{Category: "FOOD", Amount: d("900")}},
		},
		snapshot: profile.FinancialSnapshot{
			Salary:                 d("1500"),
			TotalExpenses:          d("900"),
			DisposableIncome:       d("600"),
			TotalMonthlyCommitment: d("150"),
			SavingsRatePercent:     &rate,
			WarningLevel:           domain.WarningNone,
		},
		anomalies: []anomaly.Anomaly{{
			Severity: domain.SeverityHigh,
			Message:  "Your FOOD spending this month is BD 900.000, more than triple your usual BD 250.000. Worth a close look.",
		}},
	}
	gen := &echoGenerator{}
	svc := newReportService(t, sources, gen)
	userID := uuid.New()

	rep, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Financial Report March 2026", rep.Title)
	assert.Equal(t, "Your quarter in review.", rep.Content)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), rep.PeriodStart)

	// The prompt carries the aggregates and the anomaly, never raw rows.
	assert.Contains(t, gen.prompt, "BD 600.000")
	assert.Contains(t, gen.prompt, "25.0%")
	assert.Contains(t, gen.prompt, "FOOD: BD 900.000")
	assert.Contains(t, gen.prompt, "[HIGH]")

	// Stored and retrievable with ownership enforced.
	got, err := svc.Get(userID, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, rep.Content, got.Content)

	_, err = svc.Get(uuid.New(), rep.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Get(userID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistory_NewestFirst(t *testing.T) {
	gen := &echoGenerator{}
	svc := newReportService(t, fakeSources{}, gen)
	userID := uuid.New()

	times := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, ts := range times {
		now := ts
		svc.now = func() time.Time { return now }
		_, err := svc.Generate(context.Background(), userID)
		require.NoError(t, err)
	}

	history, err := svc.History(userID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Financial Report February 2026", history[0].Title)
}
