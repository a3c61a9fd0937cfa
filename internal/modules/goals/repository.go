package goals

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
)

const goalColumns = `id, user_id, name, category, target_amount, saved_amount,
	monthly_savings_target, currency, deadline, priority, status, created_at, updated_at`

// Repository handles goal persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new goal repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "goals").Logger(),
	}
}

// Create inserts a new goal
func (r *Repository) Create(g Goal) error {
	var target interface{}
	if g.MonthlySavingsTarget != nil {
		target = g.MonthlySavingsTarget.String()
	}
	_, err := r.db.Exec(`INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID.String(), g.UserID.String(), g.Name, string(g.Category),
		g.TargetAmount.String(), g.SavedAmount.String(), target,
		g.Currency, g.Deadline.Format(time.DateOnly), string(g.Priority),
		string(g.Status), g.CreatedAt.Unix(), g.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

// Update persists all mutable fields of a goal
func (r *Repository) Update(g Goal) error {
	var target interface{}
	if g.MonthlySavingsTarget != nil {
		target = g.MonthlySavingsTarget.String()
	}
	res, err := r.db.Exec(`UPDATE goals SET
		name = ?, category = ?, target_amount = ?, saved_amount = ?,
		monthly_savings_target = ?, currency = ?, deadline = ?, priority = ?,
		status = ?, updated_at = ?
		WHERE id = ?`,
		g.Name, string(g.Category), g.TargetAmount.String(), g.SavedAmount.String(),
		target, g.Currency, g.Deadline.Format(time.DateOnly), string(g.Priority),
		string(g.Status), g.UpdatedAt.Unix(), g.ID.String())
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a goal by id
func (r *Repository) Delete(id uuid.UUID) error {
	res, err := r.db.Exec(`DELETE FROM goals WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns a goal by id, or ErrNotFound
func (r *Repository) GetByID(id uuid.UUID) (*Goal, error) {
	row := r.db.QueryRow(`SELECT `+goalColumns+` FROM goals WHERE id = ?`, id.String())
	g, err := scanGoal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan goal: %w", err)
	}
	return g, nil
}

// ListByUser returns all goals owned by a user, newest first
func (r *Repository) ListByUser(userID uuid.UUID) ([]Goal, error) {
	rows, err := r.db.Query(`SELECT `+goalColumns+` FROM goals
		WHERE user_id = ? ORDER BY created_at DESC`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return goals, nil
}

// SumMonthlyTargets returns the total monthly savings commitment across a
// user's non-completed goals. Goals without a target contribute nothing.
func (r *Repository) SumMonthlyTargets(userID uuid.UUID) (decimal.Decimal, error) {
	rows, err := r.db.Query(`SELECT monthly_savings_target FROM goals
		WHERE user_id = ? AND status != ? AND monthly_savings_target IS NOT NULL`,
		userID.String(), string(domain.StatusCompleted))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query monthly targets: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var target string
		if err := rows.Scan(&target); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan monthly target: %w", err)
		}
		d, err := decimal.NewFromString(target)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid monthly target in database: %w", err)
		}
		total = total.Add(d)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("error iterating monthly targets: %w", err)
	}

	return total, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanGoal(s scanner) (*Goal, error) {
	var (
		id, userID, name, category, target, saved string
		monthlyTarget                             sql.NullString
		currency, deadline, priority, status      string
		createdAt, updatedAt                      int64
	)
	if err := s.Scan(&id, &userID, &name, &category, &target, &saved,
		&monthlyTarget, &currency, &deadline, &priority, &status,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid goal id: %w", err)
	}
	parsedUserID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	parsedTarget, err := decimal.NewFromString(target)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	parsedSaved, err := decimal.NewFromString(saved)
	if err != nil {
		return nil, fmt.Errorf("invalid saved amount: %w", err)
	}
	parsedDeadline, err := time.Parse(time.DateOnly, deadline)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline: %w", err)
	}

	g := &Goal{
		ID:           parsedID,
		UserID:       parsedUserID,
		Name:         name,
		Category:     domain.GoalCategory(category),
		TargetAmount: parsedTarget,
		SavedAmount:  parsedSaved,
		Currency:     currency,
		Deadline:     parsedDeadline,
		Priority:     domain.GoalPriority(priority),
		Status:       domain.GoalStatus(status),
		CreatedAt:    time.Unix(createdAt, 0),
		UpdatedAt:    time.Unix(updatedAt, 0),
	}

	if monthlyTarget.Valid {
		parsed, err := decimal.NewFromString(monthlyTarget.String)
		if err != nil {
			return nil, fmt.Errorf("invalid monthly target: %w", err)
		}
		g.MonthlySavingsTarget = &parsed
	}

	return g, nil
}
