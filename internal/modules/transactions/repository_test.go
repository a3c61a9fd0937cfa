package transactions

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/pathwise/pathwise/internal/domain"
)

func setupTestLedgerDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Each pool connection would get its own in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE transactions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			merchant_name TEXT,
			amount TEXT NOT NULL,
			type TEXT NOT NULL,
			currency TEXT NOT NULL DEFAULT 'BHD',
			category TEXT NOT NULL DEFAULT 'OTHER',
			transaction_date TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
	`)
	require.NoError(t, err)

	return db
}

func storedTxn(userID uuid.UUID, merchant, category, amount string, date time.Time) Transaction {
	return Transaction{
		ID:              uuid.New(),
		UserID:          userID,
		MerchantName:    merchant,
		Amount:          d(amount),
		Type:            domain.TransactionDebit,
		Currency:        "BHD",
		Category:        category,
		TransactionDate: date,
		CreatedAt:       time.Now(),
	}
}

func TestListFilters(t *testing.T) {
	repo := NewRepository(setupTestLedgerDB(t), zerolog.New(nil).Level(zerolog.Disabled))
	userID := uuid.New()

	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.InsertBatch([]Transaction{
		storedTxn(userID, "Cafe Lilou", "FOOD", "12.5", jan),
		storedTxn(userID, "Uber", "TRANSPORT", "4.2", jan),
		storedTxn(userID, "Cafe Lilou", "FOOD", "15", feb),
		storedTxn(uuid.New(), "Cafe Lilou", "FOOD", "99", jan),
	}))

	page, err := repo.List(userID, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)

	page, err = repo.List(userID, ListFilter{Category: "FOOD"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = repo.List(userID, ListFilter{Merchant: "lilou"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = repo.List(userID, ListFilter{Year: 2026, Month: time.January})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = repo.List(userID, ListFilter{Year: 2026, Month: time.February})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 1)
	assert.True(t, page.Transactions[0].Amount.Equal(d("15")))
}

func TestListPagination(t *testing.T) {
	repo := NewRepository(setupTestLedgerDB(t), zerolog.New(nil).Level(zerolog.Disabled))
	userID := uuid.New()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	batch := make([]Transaction, 0, 7)
	for i := 0; i < 7; i++ {
		batch = append(batch, storedTxn(userID, "Shop", "OTHER", "1", base.AddDate(0, 0, i)))
	}
	require.NoError(t, repo.InsertBatch(batch))

	page, err := repo.List(userID, ListFilter{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, page.Total)
	assert.Len(t, page.Transactions, 3)
	// Newest first: page 2 of size 3 starts at the 4th newest.
	assert.Equal(t, "2026-01-04", page.Transactions[0].TransactionDate.Format(time.DateOnly))
}

type staticImporter struct {
	records []BankRecord
}

func (s staticImporter) Import(context.Context, uuid.UUID) ([]BankRecord, error) {
	return s.records, nil
}

func TestSyncClassifiesAndStores(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	repo := NewRepository(setupTestLedgerDB(t), log)
	importer := staticImporter{records: []BankRecord{
		{MerchantName: "Talabat", Amount: d("8.4"), Type: domain.TransactionDebit,
			Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{MerchantName: "Salary Transfer", Amount: d("1500"), Type: domain.TransactionCredit,
			Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}
	svc := NewService(repo, importer, NewKeywordClassifier(), log)
	userID := uuid.New()

	count, err := svc.Sync(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	page, err := repo.List(userID, ListFilter{Category: "FOOD"})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 1)
	assert.Equal(t, "Talabat", page.Transactions[0].MerchantName)
	assert.Equal(t, "BHD", page.Transactions[0].Currency)
}

func TestDebitsSince_ExcludesCredits(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	repo := NewRepository(setupTestLedgerDB(t), log)
	svc := NewService(repo, staticImporter{}, NewKeywordClassifier(), log)
	userID := uuid.New()

	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	credit := storedTxn(userID, "Salary", "OTHER", "1500", jan)
	credit.Type = domain.TransactionCredit
	require.NoError(t, repo.InsertBatch([]Transaction{
		storedTxn(userID, "Cafe", "FOOD", "10", jan),
		credit,
	}))

	debits, err := svc.DebitsSince(userID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, debits, 1)
	assert.Equal(t, domain.TransactionDebit, debits[0].Type)
}
