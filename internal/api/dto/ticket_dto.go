package dto

import (
	"encoding/json"
	"time"

	"github.com/helpdesk-kit/support-service/internal/domain"
)

// OptionalString distinguishes an absent JSON field from an explicit null.
// Set reports that the field was present; a present null clears the value.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// CreateTicketRequest is the customer ticket-creation payload.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// UpdateTicketRequest is the partial-update payload. Absent fields are left
// unchanged; assignee_id set to null unassigns.
type UpdateTicketRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Category    *string        `json:"category"`
	Status      *string        `json:"status"`
	Priority    *string        `json:"priority"`
	AssigneeID  OptionalString `json:"assignee_id"`
}

// TicketResponse is the wire form of a ticket.
type TicketResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Priority    string           `json:"priority"`
	Category    string           `json:"category"`
	CustomerID  string           `json:"customer_id"`
	AssigneeID  *string          `json:"assignee_id"`
	Customer    *ProfileResponse `json:"customer,omitempty"`
	Assignee    *ProfileResponse `json:"assignee,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NewTicketResponse maps a ticket.
func NewTicketResponse(ticket *domain.Ticket) *TicketResponse {
	return &TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      string(ticket.Status),
		Priority:    string(ticket.Priority),
		Category:    ticket.Category,
		CustomerID:  ticket.CustomerID,
		AssigneeID:  ticket.AssigneeID,
		Customer:    NewProfileResponse(ticket.Customer),
		Assignee:    NewProfileResponse(ticket.Assignee),
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}

// NewTicketListResponse maps a slice of tickets.
func NewTicketListResponse(tickets []domain.Ticket) []TicketResponse {
	result := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		result = append(result, *NewTicketResponse(&tickets[i]))
	}
	return result
}
