package profile

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/database"
	"github.com/pathwise/pathwise/internal/domain"
)

// Repository handles user financials and monthly expense persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new profile repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "profile").Logger(),
	}
}

// CreateUser inserts a new user financial profile
func (r *Repository) CreateUser(u UserFinancials) error {
	now := time.Now().Unix()
	_, err := r.db.Exec(`INSERT INTO users
		(id, full_name, email, monthly_salary, preferred_currency, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID.String(), u.FullName, u.Email, u.MonthlySalary.String(),
		u.PreferredCurrency, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUser returns a user's financial profile, or nil if not found
func (r *Repository) GetUser(userID uuid.UUID) (*UserFinancials, error) {
	row := r.db.QueryRow(`SELECT id, full_name, email, monthly_salary,
		preferred_currency, created_at, updated_at
		FROM users WHERE id = ?`, userID.String())

	var (
		id, fullName, email, salary, currency string
		createdAt, updatedAt                  int64
	)
	if err := row.Scan(&id, &fullName, &email, &salary, &currency, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in database: %w", err)
	}
	parsedSalary, err := decimal.NewFromString(salary)
	if err != nil {
		return nil, fmt.Errorf("invalid salary in database: %w", err)
	}

	return &UserFinancials{
		ID:                parsedID,
		FullName:          fullName,
		Email:             email,
		MonthlySalary:     parsedSalary,
		PreferredCurrency: currency,
		CreatedAt:         time.Unix(createdAt, 0),
		UpdatedAt:         time.Unix(updatedAt, 0),
	}, nil
}

// UpdateSalary sets a new monthly salary for a user
func (r *Repository) UpdateSalary(userID uuid.UUID, salary decimal.Decimal) error {
	res, err := r.db.Exec(`UPDATE users SET monthly_salary = ?, updated_at = ? WHERE id = ?`,
		salary.String(), time.Now().Unix(), userID.String())
	if err != nil {
		return fmt.Errorf("failed to update salary: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user %s not found", userID)
	}
	return nil
}

// ListUserIDs returns every registered user id. Used by background jobs
// that sweep all accounts.
func (r *Repository) ListUserIDs() ([]uuid.UUID, error) {
	rows, err := r.db.Query(`SELECT id FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query user ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid user id in database: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user ids: %w", err)
	}
	return ids, nil
}

// SumExpenses returns the total of a user's fixed monthly expenses,
// zero if none are declared.
func (r *Repository) SumExpenses(userID uuid.UUID) (decimal.Decimal, error) {
	rows, err := r.db.Query(`SELECT amount FROM monthly_expenses WHERE user_id = ?`,
		userID.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amount string
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan expense amount: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid expense amount in database: %w", err)
		}
		total = total.Add(d)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("error iterating expenses: %w", err)
	}

	return total, nil
}

// ListExpenses returns all declared expenses for a user
func (r *Repository) ListExpenses(userID uuid.UUID) ([]MonthlyExpense, error) {
	rows, err := r.db.Query(`SELECT id, user_id, category, amount, label, created_at, updated_at
		FROM monthly_expenses WHERE user_id = ? ORDER BY category`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []MonthlyExpense
	for rows.Next() {
		var (
			id, uid, category, amount string
			label                     sql.NullString
			createdAt, updatedAt      int64
		)
		if err := rows.Scan(&id, &uid, &category, &amount, &label, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		parsedID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid expense id in database: %w", err)
		}
		parsedUID, err := uuid.Parse(uid)
		if err != nil {
			return nil, fmt.Errorf("invalid user id in database: %w", err)
		}
		parsedAmount, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid expense amount in database: %w", err)
		}
		expenses = append(expenses, MonthlyExpense{
			ID:        parsedID,
			UserID:    parsedUID,
			Category:  domain.ExpenseCategory(category),
			Amount:    parsedAmount,
			Label:     label.String,
			CreatedAt: time.Unix(createdAt, 0),
			UpdatedAt: time.Unix(updatedAt, 0),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}

// ReplaceExpenses atomically replaces all of a user's expenses with the
// given items. Items with non-positive amounts are skipped, matching the
// registration flow where empty sliders are simply omitted.
func (r *Repository) ReplaceExpenses(userID uuid.UUID, items []ExpenseItem) error {
	return database.WithTransaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM monthly_expenses WHERE user_id = ?`, userID.String()); err != nil {
			return fmt.Errorf("failed to delete existing expenses: %w", err)
		}

		now := time.Now().Unix()
		for _, item := range items {
			if !item.Amount.IsPositive() {
				continue
			}
			var label interface{}
			if item.Label != "" {
				label = item.Label
			}
			_, err := tx.Exec(`INSERT INTO monthly_expenses
				(id, user_id, category, amount, label, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				uuid.New().String(), userID.String(), string(item.Category),
				item.Amount.String(), label, now, now)
			if err != nil {
				return fmt.Errorf("failed to insert expense: %w", err)
			}
		}
		return nil
	})
}
