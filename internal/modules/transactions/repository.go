package transactions

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
)

const defaultPageSize = 50

// Repository persists transactions in the ledger database
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new transaction repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "transactions").Logger(),
	}
}

// InsertBatch stores a batch of transactions in one transaction.
func (r *Repository) InsertBatch(txns []Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.Prepare(`INSERT INTO transactions
		(id, user_id, merchant_name, amount, type, currency, category,
		 transaction_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txns {
		_, err := stmt.Exec(t.ID.String(), t.UserID.String(), t.MerchantName,
			t.Amount.String(), string(t.Type), t.Currency, t.Category,
			t.TransactionDate.Format(time.DateOnly), t.CreatedAt.Unix())
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}
	return tx.Commit()
}

// List returns a filtered page of a user's transactions, newest first.
func (r *Repository) List(userID uuid.UUID, filter ListFilter) (Page, error) {
	where := []string{"user_id = ?"}
	args := []interface{}{userID.String()}

	if filter.Merchant != "" {
		where = append(where, "LOWER(merchant_name) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Merchant)+"%")
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Year != 0 {
		if filter.Month != 0 {
			where = append(where, "strftime('%Y-%m', transaction_date) = ?")
			args = append(args, fmt.Sprintf("%04d-%02d", filter.Year, filter.Month))
		} else {
			where = append(where, "strftime('%Y', transaction_date) = ?")
			args = append(args, fmt.Sprintf("%04d", filter.Year))
		}
	}
	clause := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM transactions WHERE "+clause, args...).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("failed to count transactions: %w", err)
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	query := fmt.Sprintf(`SELECT id, user_id, merchant_name, amount, type,
		currency, category, transaction_date, created_at
		FROM transactions WHERE %s
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT ? OFFSET ?`, clause)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return Page{}, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return Page{}, err
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return Page{}, err
	}

	return Page{Transactions: txns, Total: total, Page: page, PageSize: pageSize}, nil
}

// ListSince returns all of a user's transactions on or after a date.
func (r *Repository) ListSince(userID uuid.UUID, since time.Time) ([]Transaction, error) {
	rows, err := r.db.Query(`SELECT id, user_id, merchant_name, amount, type,
		currency, category, transaction_date, created_at
		FROM transactions WHERE user_id = ? AND transaction_date >= ?
		ORDER BY transaction_date ASC`,
		userID.String(), since.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func scanTransaction(rows *sql.Rows) (Transaction, error) {
	var t Transaction
	var id, userID, amount, txType, date string
	var createdAt int64

	if err := rows.Scan(&id, &userID, &t.MerchantName, &amount, &txType,
		&t.Currency, &t.Category, &date, &createdAt); err != nil {
		return Transaction{}, fmt.Errorf("failed to scan transaction: %w", err)
	}

	var err error
	if t.ID, err = uuid.Parse(id); err != nil {
		return Transaction{}, fmt.Errorf("invalid transaction id: %w", err)
	}
	if t.UserID, err = uuid.Parse(userID); err != nil {
		return Transaction{}, fmt.Errorf("invalid user id: %w", err)
	}
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return Transaction{}, fmt.Errorf("invalid amount: %w", err)
	}
	if t.TransactionDate, err = time.Parse(time.DateOnly, date); err != nil {
		return Transaction{}, fmt.Errorf("invalid transaction date: %w", err)
	}
	t.Type = domain.TransactionType(txType)
	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	return t, nil
}
