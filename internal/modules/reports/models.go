// Package reports assembles periodic financial summaries through a text
// generation collaborator and keeps them on file.
package reports

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a report id does not exist.
var ErrNotFound = errors.New("report not found")

// ErrNotOwner is returned when a report belongs to another user.
var ErrNotOwner = errors.New("report belongs to another user")

// Report is one generated financial summary covering a calendar period.
type Report struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Content     string
	CreatedAt   time.Time
}
