package reports

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repository persists reports in the ledger database
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new report repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "reports").Logger(),
	}
}

// Insert stores a generated report
func (r *Repository) Insert(rep Report) error {
	_, err := r.db.Exec(`INSERT INTO reports
		(id, user_id, title, period_start, period_end, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rep.ID.String(), rep.UserID.String(), rep.Title,
		rep.PeriodStart.Format(time.DateOnly), rep.PeriodEnd.Format(time.DateOnly),
		rep.Content, rep.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// ListByUser returns a user's reports, newest first.
func (r *Repository) ListByUser(userID uuid.UUID) ([]Report, error) {
	rows, err := r.db.Query(`SELECT id, user_id, title, period_start,
		period_end, content, created_at
		FROM reports WHERE user_id = ? ORDER BY created_at DESC`,
		userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// GetByID returns one report or ErrNotFound.
func (r *Repository) GetByID(id uuid.UUID) (*Report, error) {
	rows, err := r.db.Query(`SELECT id, user_id, title, period_start,
		period_end, content, created_at
		FROM reports WHERE id = ?`, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query report: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	rep, err := scanReport(rows)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func scanReport(rows *sql.Rows) (Report, error) {
	var rep Report
	var id, userID, start, end string
	var createdAt int64

	if err := rows.Scan(&id, &userID, &rep.Title, &start, &end,
		&rep.Content, &createdAt); err != nil {
		return Report{}, fmt.Errorf("failed to scan report: %w", err)
	}

	var err error
	if rep.ID, err = uuid.Parse(id); err != nil {
		return Report{}, fmt.Errorf("invalid report id: %w", err)
	}
	if rep.UserID, err = uuid.Parse(userID); err != nil {
		return Report{}, fmt.Errorf("invalid user id: %w", err)
	}
	if rep.PeriodStart, err = time.Parse(time.DateOnly, start); err != nil {
		return Report{}, fmt.Errorf("invalid period start: %w", err)
	}
	if rep.PeriodEnd, err = time.Parse(time.DateOnly, end); err != nil {
		return Report{}, fmt.Errorf("invalid period end: %w", err)
	}
	rep.CreatedAt = time.Unix(createdAt, 0).UTC()
	return rep, nil
}
