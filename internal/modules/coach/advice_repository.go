package coach

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role identifies who said an advice transcript line.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAssistant Role = "ASSISTANT"
)

// AdviceEntry is one line of the coaching transcript.
type AdviceEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      Role      `json:"role"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// AdviceRepository stores the coaching transcript in the ledger database.
type AdviceRepository struct {
	db *sql.DB
}

// NewAdviceRepository creates a new AdviceRepository.
func NewAdviceRepository(db *sql.DB) *AdviceRepository {
	return &AdviceRepository{db: db}
}

// Append records one transcript line.
func (r *AdviceRepository) Append(userID uuid.UUID, role Role, message string) error {
	_, err := r.db.Exec(`
		INSERT INTO advice_history (id, user_id, role, message, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), userID.String(), string(role), message, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("append advice entry: %w", err)
	}
	return nil
}

// History returns the most recent transcript lines, oldest first, capped at limit.
func (r *AdviceRepository) History(userID uuid.UUID, limit int) ([]AdviceEntry, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, role, message, created_at
		FROM advice_history
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, userID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("query advice history: %w", err)
	}
	defer rows.Close()

	var entries []AdviceEntry
	for rows.Next() {
		var (
			entry         AdviceEntry
			id, uid, role string
			createdAtUnix int64
		)
		if err := rows.Scan(&id, &uid, &role, &entry.Message, &createdAtUnix); err != nil {
			return nil, fmt.Errorf("scan advice entry: %w", err)
		}
		entry.ID, _ = uuid.Parse(id)
		entry.UserID, _ = uuid.Parse(uid)
		entry.Role = Role(role)
		entry.CreatedAt = time.Unix(createdAtUnix, 0)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate advice history: %w", err)
	}

	// Query is newest-first for the LIMIT; present oldest-first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}
