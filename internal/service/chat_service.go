package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/helpdesk-kit/support-service/internal/ai"
	"github.com/helpdesk-kit/support-service/internal/domain"
	"github.com/helpdesk-kit/support-service/internal/policy"
	apperrors "github.com/helpdesk-kit/support-service/pkg/util"
)

// ticketCreator and faqLister are the two slices of the other services the
// assistant needs.
type ticketCreator interface {
	Create(ctx context.Context, actor *domain.Profile, input CreateTicketInput) (*domain.Ticket, error)
}

type faqLister interface {
	List(ctx context.Context) ([]domain.FAQ, error)
}

// ChatInput is one conversation turn from the client. History is
// client-held; the server keeps no conversation state.
type ChatInput struct {
	Message               string
	History               []domain.ChatTurn
	CreateTicketConfirmed bool
}

// ChatResult is the assistant's reply, plus the ticket when the turn
// escalated into one.
type ChatResult struct {
	Reply  string
	Ticket *domain.Ticket
}

// ChatService is the FAQ-grounded assistant gateway. Replies are grounded
// in the current FAQ corpus; when the assistant cannot help it steers the
// customer toward opening a ticket, and a confirmed turn creates one from
// the conversation.
type ChatService struct {
	client  ai.Client
	faqs    faqLister
	tickets ticketCreator
	logger  *zap.Logger
}

// NewChatService constructs the service.
func NewChatService(client ai.Client, faqs faqLister, tickets ticketCreator, logger *zap.Logger) *ChatService {
	return &ChatService{client: client, faqs: faqs, tickets: tickets, logger: logger}
}

const ticketCreationApology = "I'm sorry, I wasn't able to create the ticket just now. Please try again in a moment, or open one directly from the tickets page."

// Converse handles one turn. A confirmed escalation drafts a ticket from
// the conversation and files it; any failure on that path returns an
// apology with no partial ticket rather than an error.
func (s *ChatService) Converse(ctx context.Context, actor *domain.Profile, input ChatInput) (*ChatResult, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, apperrors.NewInvalidInput("message is required")
	}

	if input.CreateTicketConfirmed {
		return s.escalate(ctx, actor, input)
	}

	faqs, err := s.faqs.List(ctx)
	if err != nil {
		return nil, err
	}

	reply, err := s.client.Complete(ctx, systemPrompt(faqs), input.History, input.Message)
	if err != nil {
		s.logger.Error("chat completion failed", zap.Error(err))
		return nil, apperrors.NewUpstreamFailure("assistant is temporarily unavailable", err)
	}
	return &ChatResult{Reply: reply}, nil
}

func (s *ChatService) escalate(ctx context.Context, actor *domain.Profile, input ChatInput) (*ChatResult, error) {
	// Policy denial is the caller's mistake, not a delivery failure, so it
	// surfaces as an error rather than an apology.
	if !policy.CanCreate(actor.Role) {
		return nil, apperrors.NewAccessDenied("only customers may open tickets")
	}

	history := append(append([]domain.ChatTurn{}, input.History...), domain.ChatTurn{
		Role:    domain.ChatRoleUser,
		Content: input.Message,
	})

	draft, err := s.client.DraftTicket(ctx, history)
	if err != nil {
		s.logger.Error("ticket draft failed", zap.Error(err))
		return &ChatResult{Reply: ticketCreationApology}, nil
	}

	ticket, err := s.tickets.Create(ctx, actor, CreateTicketInput{
		Title:       draft.Title,
		Description: draft.Description,
		Category:    "general",
		Priority:    domain.TicketPriorityMedium,
	})
	if err != nil {
		s.logger.Error("chat ticket creation failed", zap.Error(err))
		return &ChatResult{Reply: ticketCreationApology}, nil
	}

	reply := fmt.Sprintf("I've created support ticket %q for you. Our team will follow up there; you can track progress on your tickets page.", ticket.Title)
	return &ChatResult{Reply: reply, Ticket: ticket}, nil
}

func systemPrompt(faqs []domain.FAQ) string {
	var b strings.Builder
	b.WriteString("You are a helpful customer support assistant. Answer the customer's question using the FAQ entries below whenever they apply. ")
	b.WriteString("If the FAQ does not cover the question or the customer needs hands-on help, say so and suggest creating a support ticket. ")
	b.WriteString("Keep answers short and concrete.\n\nFAQ:\n")
	if len(faqs) == 0 {
		b.WriteString("(no entries)\n")
	}
	for _, faq := range faqs {
		b.WriteString("Q: ")
		b.WriteString(faq.Question)
		b.WriteString("\nA: ")
		b.WriteString(faq.Answer)
		b.WriteString("\n\n")
	}
	return b.String()
}
