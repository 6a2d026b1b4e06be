package domain

import "time"

// Comment is a note attached to a ticket by IT support. Comments are owned by
// their ticket (deleted with it) and are never updated once written.
type Comment struct {
	ID        string
	TicketID  string
	AuthorID  string
	Content   string
	CreatedAt time.Time
}
