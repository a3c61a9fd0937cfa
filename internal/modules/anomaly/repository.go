package anomaly

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
)

// Repository persists anomalies in the ledger database
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new anomaly repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "anomalies").Logger(),
	}
}

// Insert stores a new anomaly
func (r *Repository) Insert(a Anomaly) error {
	_, err := r.db.Exec(`INSERT INTO anomalies
		(id, user_id, category, severity, actual_amount, baseline_amount,
		 message, is_dismissed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID.String(), a.UserID.String(), a.Category, string(a.Severity),
		a.ActualAmount.String(), a.BaselineAmount.String(), a.Message,
		boolToInt(a.IsDismissed), a.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert anomaly: %w", err)
	}
	return nil
}

// ListActive returns a user's undismissed anomalies, newest first.
func (r *Repository) ListActive(userID uuid.UUID) ([]Anomaly, error) {
	return r.list(userID, `SELECT id, user_id, category, severity, actual_amount,
		baseline_amount, message, is_dismissed, created_at
		FROM anomalies WHERE user_id = ? AND is_dismissed = 0
		ORDER BY created_at DESC`)
}

// ListAll returns every anomaly for a user, dismissed included.
func (r *Repository) ListAll(userID uuid.UUID) ([]Anomaly, error) {
	return r.list(userID, `SELECT id, user_id, category, severity, actual_amount,
		baseline_amount, message, is_dismissed, created_at
		FROM anomalies WHERE user_id = ?
		ORDER BY created_at DESC`)
}

// GetByID returns one anomaly or ErrNotFound.
func (r *Repository) GetByID(id uuid.UUID) (*Anomaly, error) {
	row := r.db.QueryRow(`SELECT id, user_id, category, severity, actual_amount,
		baseline_amount, message, is_dismissed, created_at
		FROM anomalies WHERE id = ?`, id.String())

	a, err := scanAnomaly(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// HasUndismissedInMonth reports whether an undismissed anomaly already
// exists for this user and category with a creation time inside the given
// month. This is the dedup guard: one live flag per category per month.
func (r *Repository) HasUndismissedInMonth(userID uuid.UUID, category string, month time.Time) (bool, error) {
	start := domain.StartOfMonth(month)
	end := domain.AddMonths(start, 1)

	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM anomalies
		WHERE user_id = ? AND category = ? AND is_dismissed = 0
		AND created_at >= ? AND created_at < ?`,
		userID.String(), category, start.Unix(), end.Unix()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check existing anomalies: %w", err)
	}
	return count > 0, nil
}

// Dismiss marks an anomaly dismissed. One-way; there is no undo.
func (r *Repository) Dismiss(id uuid.UUID) error {
	res, err := r.db.Exec(`UPDATE anomalies SET is_dismissed = 1 WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to dismiss anomaly: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check dismissal: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) list(userID uuid.UUID, query string) ([]Anomaly, error) {
	rows, err := r.db.Query(query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query anomalies: %w", err)
	}
	defer rows.Close()

	var anomalies []Anomaly
	for rows.Next() {
		a, err := scanAnomaly(rows)
		if err != nil {
			return nil, err
		}
		anomalies = append(anomalies, a)
	}
	return anomalies, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAnomaly(row scanner) (Anomaly, error) {
	var a Anomaly
	var id, userID, severity, actual, baseline string
	var dismissed int
	var createdAt int64

	err := row.Scan(&id, &userID, &a.Category, &severity, &actual,
		&baseline, &a.Message, &dismissed, &createdAt)
	if err == sql.ErrNoRows {
		return Anomaly{}, err
	}
	if err != nil {
		return Anomaly{}, fmt.Errorf("failed to scan anomaly: %w", err)
	}

	if a.ID, err = uuid.Parse(id); err != nil {
		return Anomaly{}, fmt.Errorf("invalid anomaly id: %w", err)
	}
	if a.UserID, err = uuid.Parse(userID); err != nil {
		return Anomaly{}, fmt.Errorf("invalid user id: %w", err)
	}
	if a.ActualAmount, err = decimal.NewFromString(actual); err != nil {
		return Anomaly{}, fmt.Errorf("invalid actual amount: %w", err)
	}
	if a.BaselineAmount, err = decimal.NewFromString(baseline); err != nil {
		return Anomaly{}, fmt.Errorf("invalid baseline amount: %w", err)
	}
	a.Severity = domain.Severity(severity)
	a.IsDismissed = dismissed != 0
	a.CreatedAt = time.Unix(createdAt, 0).UTC()
	return a, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
