package dto

import "github.com/helpdesk-kit/support-service/internal/domain"

// ChatTurn is one prior exchange in the client-held conversation history.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is one conversation turn.
type ChatRequest struct {
	Message               string     `json:"message"`
	History               []ChatTurn `json:"history"`
	CreateTicketConfirmed bool       `json:"create_ticket_confirmed"`
}

// DomainHistory converts the wire history. Unknown roles are treated as
// user turns.
func (r *ChatRequest) DomainHistory() []domain.ChatTurn {
	history := make([]domain.ChatTurn, 0, len(r.History))
	for _, turn := range r.History {
		role := domain.ChatRoleUser
		if turn.Role == string(domain.ChatRoleAssistant) {
			role = domain.ChatRoleAssistant
		}
		history = append(history, domain.ChatTurn{Role: role, Content: turn.Content})
	}
	return history
}

// ChatResponse is the assistant's reply, plus the created ticket when the
// turn escalated.
type ChatResponse struct {
	Reply  string          `json:"reply"`
	Ticket *TicketResponse `json:"ticket,omitempty"`
}
