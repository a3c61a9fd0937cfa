package profile

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/pathwise/pathwise/internal/domain"
)

// setupTestCoreDB creates an in-memory SQLite database with the core tables
func setupTestCoreDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Each pool connection would get its own in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			monthly_salary TEXT NOT NULL,
			preferred_currency TEXT NOT NULL DEFAULT 'BHD',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE monthly_expenses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			category TEXT NOT NULL,
			amount TEXT NOT NULL,
			label TEXT,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	require.NoError(t, err)

	return db
}

func testUser(t *testing.T, repo *Repository, salary string) uuid.UUID {
	id := uuid.New()
	err := repo.CreateUser(UserFinancials{
		ID:                id,
		FullName:          "Test User",
		Email:             id.String() + "@example.com",
		MonthlySalary:     decimal.RequireFromString(salary),
		PreferredCurrency: "BHD",
	})
	require.NoError(t, err)
	return id
}

func TestRepository_SumExpenses_ZeroWhenNoneDeclared(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	repo := NewRepository(setupTestCoreDB(t), log)
	userID := testUser(t, repo, "1000")

	total, err := repo.SumExpenses(userID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestRepository_ReplaceExpenses_Wholesale(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	repo := NewRepository(setupTestCoreDB(t), log)
	userID := testUser(t, repo, "1000")

	err := repo.ReplaceExpenses(userID, []ExpenseItem{
		{Category: domain.ExpenseHousing, Amount: decimal.RequireFromString("300"), Label: "Seef apartment"},
		{Category: domain.ExpenseFood, Amount: decimal.RequireFromString("150")},
	})
	require.NoError(t, err)

	total, err := repo.SumExpenses(userID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("450")))

	// Replacing again wipes the previous rows entirely.
	err = repo.ReplaceExpenses(userID, []ExpenseItem{
		{Category: domain.ExpenseUtilities, Amount: decimal.RequireFromString("80")},
	})
	require.NoError(t, err)

	expenses, err := repo.ListExpenses(userID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, domain.ExpenseUtilities, expenses[0].Category)
	assert.True(t, expenses[0].Amount.Equal(decimal.RequireFromString("80")))

	total, err = repo.SumExpenses(userID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("80")))
}

func TestRepository_ReplaceExpenses_SkipsNonPositiveAmounts(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	repo := NewRepository(setupTestCoreDB(t), log)
	userID := testUser(t, repo, "1000")

	err := repo.ReplaceExpenses(userID, []ExpenseItem{
		{Category: domain.ExpenseHousing, Amount: decimal.Zero},
		{Category: domain.ExpenseFood, Amount: decimal.RequireFromString("120")},
	})
	require.NoError(t, err)

	expenses, err := repo.ListExpenses(userID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, domain.ExpenseFood, expenses[0].Category)
}

func TestRepository_GetUser_NotFound(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	repo := NewRepository(setupTestCoreDB(t), log)

	user, err := repo.GetUser(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestRepository_UpdateSalary(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	repo := NewRepository(setupTestCoreDB(t), log)
	userID := testUser(t, repo, "1000")

	err := repo.UpdateSalary(userID, decimal.RequireFromString("1250.500"))
	require.NoError(t, err)

	user, err := repo.GetUser(userID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.MonthlySalary.Equal(decimal.RequireFromString("1250.500")))

	err = repo.UpdateSalary(uuid.New(), decimal.RequireFromString("1"))
	assert.Error(t, err)
}
