package domain

import "time"

// LogAction labels a lifecycle event in the audit trail.
type LogAction string

const (
	LogActionCreated LogAction = "Created"
	LogActionUpdated LogAction = "Updated"
)

// TicketLog is an immutable append-only audit entry. Entries are written
// once per lifecycle event and never mutated or deleted.
type TicketLog struct {
	ID          string
	TicketID    string
	Action      LogAction
	Description string
	CreatedBy   string
	CreatedAt   time.Time
}
