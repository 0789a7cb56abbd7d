package domain

import "time"

// Comment is one entry in a ticket's append-only conversation thread.
// Comments are never updated or deleted in normal operation.
type Comment struct {
	ID        string
	TicketID  string
	UserID    string
	Content   string
	CreatedAt time.Time

	// Author is joined for immediate display; nil when not loaded.
	Author *Profile
}
