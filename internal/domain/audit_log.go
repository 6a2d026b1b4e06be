package domain

import "time"

// AuditLog is an immutable record of one state-changing action on a ticket.
// TicketID is a weak reference: audit entries outlive the ticket they
// describe, so no foreign-key cascade applies. Entries are append-only.
type AuditLog struct {
	ID          string
	TicketID    string
	ChangedByID string
	Observation string
	CreatedAt   time.Time
}
