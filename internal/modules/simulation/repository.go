package simulation

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repository persists simulation runs in the ledger database
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new simulation repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "simulations").Logger(),
	}
}

// Append inserts a simulation run. There is no update or delete path.
func (r *Repository) Append(rec Record) error {
	adjustments, err := json.Marshal(rec.Adjustments)
	if err != nil {
		return fmt.Errorf("failed to encode adjustments: %w", err)
	}

	_, err = r.db.Exec(`INSERT INTO simulations
		(id, user_id, goal_id, name, adjustments, simulated_rate,
		 baseline_date, simulated_date, months_saved, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.UserID.String(), rec.GoalID.String(), rec.Name,
		string(adjustments), rec.SimulatedRate.String(),
		rec.BaselineDate.Format(time.DateOnly), rec.SimulatedDate.Format(time.DateOnly),
		rec.MonthsSaved, rec.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert simulation: %w", err)
	}
	return nil
}

// ListByGoal returns a user's simulation history for one goal, newest first.
func (r *Repository) ListByGoal(userID, goalID uuid.UUID) ([]Record, error) {
	rows, err := r.db.Query(`SELECT id, user_id, goal_id, name, adjustments,
		simulated_rate, baseline_date, simulated_date, months_saved, created_at
		FROM simulations WHERE user_id = ? AND goal_id = ?
		ORDER BY created_at DESC`,
		userID.String(), goalID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query simulations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var id, userID, goalID, adjustments, rate, baselineDate, simulatedDate string
	var createdAt int64

	if err := rows.Scan(&id, &userID, &goalID, &rec.Name, &adjustments,
		&rate, &baselineDate, &simulatedDate, &rec.MonthsSaved, &createdAt); err != nil {
		return Record{}, fmt.Errorf("failed to scan simulation: %w", err)
	}

	var err error
	if rec.ID, err = uuid.Parse(id); err != nil {
		return Record{}, fmt.Errorf("invalid simulation id: %w", err)
	}
	if rec.UserID, err = uuid.Parse(userID); err != nil {
		return Record{}, fmt.Errorf("invalid user id: %w", err)
	}
	if rec.GoalID, err = uuid.Parse(goalID); err != nil {
		return Record{}, fmt.Errorf("invalid goal id: %w", err)
	}
	if err = json.Unmarshal([]byte(adjustments), &rec.Adjustments); err != nil {
		return Record{}, fmt.Errorf("invalid adjustments payload: %w", err)
	}
	if rec.SimulatedRate, err = decimal.NewFromString(rate); err != nil {
		return Record{}, fmt.Errorf("invalid simulated rate: %w", err)
	}
	if rec.BaselineDate, err = time.Parse(time.DateOnly, baselineDate); err != nil {
		return Record{}, fmt.Errorf("invalid baseline date: %w", err)
	}
	if rec.SimulatedDate, err = time.Parse(time.DateOnly, simulatedDate); err != nil {
		return Record{}, fmt.Errorf("invalid simulated date: %w", err)
	}
	rec.CreatedAt = time.Unix(createdAt, 0).UTC()
	return rec, nil
}
