package coach

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionStore persists conversation state between requests.
type SessionStore interface {
	Load(userID uuid.UUID) (State, error)
	Save(userID uuid.UUID, state State) error
	Clear(userID uuid.UUID) error
}

// SQLSessionStore keeps one row per user in the cache database. A missing
// row loads as the idle state.
type SQLSessionStore struct {
	db *sql.DB
}

// NewSQLSessionStore creates a new SQLSessionStore.
func NewSQLSessionStore(db *sql.DB) *SQLSessionStore {
	return &SQLSessionStore{db: db}
}

// Load returns the stored state for a user, or the idle state if none.
func (s *SQLSessionStore) Load(userID uuid.UUID) (State, error) {
	var raw string
	err := s.db.QueryRow(`SELECT state FROM coach_sessions WHERE user_id = ?`, userID.String()).Scan(&raw)
	if err == sql.ErrNoRows {
		return NewState(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("load coach session: %w", err)
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// A corrupt row should not wedge the conversation forever.
		return NewState(), nil
	}
	return state, nil
}

// Save upserts the state for a user.
func (s *SQLSessionStore) Save(userID uuid.UUID, state State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal coach session: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO coach_sessions (user_id, state, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		userID.String(), string(raw), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save coach session: %w", err)
	}
	return nil
}

// Clear removes the stored state for a user.
func (s *SQLSessionStore) Clear(userID uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM coach_sessions WHERE user_id = ?`, userID.String()); err != nil {
		return fmt.Errorf("clear coach session: %w", err)
	}
	return nil
}
