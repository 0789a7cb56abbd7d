package domain

import (
	"fmt"
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// ParseTicketStatus validates a wire value against the status enum.
func ParseTicketStatus(val string) (TicketStatus, error) {
	switch TicketStatus(strings.ToLower(strings.TrimSpace(val))) {
	case TicketStatusOpen:
		return TicketStatusOpen, nil
	case TicketStatusInProgress:
		return TicketStatusInProgress, nil
	case TicketStatusPending:
		return TicketStatusPending, nil
	case TicketStatusResolved:
		return TicketStatusResolved, nil
	case TicketStatusClosed:
		return TicketStatusClosed, nil
	}
	return "", fmt.Errorf("invalid ticket status %q", val)
}

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// ParseTicketPriority validates a wire value against the priority enum.
func ParseTicketPriority(val string) (TicketPriority, error) {
	switch TicketPriority(strings.ToLower(strings.TrimSpace(val))) {
	case TicketPriorityLow:
		return TicketPriorityLow, nil
	case TicketPriorityMedium:
		return TicketPriorityMedium, nil
	case TicketPriorityHigh:
		return TicketPriorityHigh, nil
	case TicketPriorityUrgent:
		return TicketPriorityUrgent, nil
	}
	return "", fmt.Errorf("invalid ticket priority %q", val)
}

// Ticket is the aggregate for support requests. CustomerID is immutable
// after creation and references a customer profile; AssigneeID, when set,
// references a worker or admin profile.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	Category    string
	CustomerID  string
	AssigneeID  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Customer and Assignee are joined for responses; nil when not loaded.
	Customer *Profile
	Assignee *Profile
}

// Resolved reports whether the ticket has left the active part of its
// lifecycle. Customer edits to title/description/category are frozen from
// this point.
func (t *Ticket) Resolved() bool {
	return t.Status == TicketStatusResolved || t.Status == TicketStatusClosed
}
