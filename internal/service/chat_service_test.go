package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/helpdesk-kit/support-service/internal/domain"
)

type stubFAQLister struct {
	faqs []domain.FAQ
	err  error
}

func (s *stubFAQLister) List(ctx context.Context) ([]domain.FAQ, error) {
	return s.faqs, s.err
}

type stubTicketCreator struct {
	created *domain.Ticket
	err     error
	input   CreateTicketInput
}

func (s *stubTicketCreator) Create(ctx context.Context, actor *domain.Profile, input CreateTicketInput) (*domain.Ticket, error) {
	s.input = input
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func TestConverse(t *testing.T) {
	ctx := context.Background()
	customer := customerProfile("cust-1")

	t.Run("answers grounded in faq context", func(t *testing.T) {
		client := new(MockAIClient)
		client.On("Complete", ctx, mock.MatchedBy(func(system string) bool {
			return system != ""
		}), mock.Anything, "how do I reset my password?").Return("Use the reset link on the login page.", nil)

		faqs := &stubFAQLister{faqs: []domain.FAQ{{Question: "How do I reset my password?", Answer: "Use the reset link."}}}
		svc := NewChatService(client, faqs, &stubTicketCreator{}, zap.NewNop())

		result, err := svc.Converse(ctx, customer, ChatInput{Message: "how do I reset my password?"})
		assert.NoError(t, err)
		assert.Equal(t, "Use the reset link on the login page.", result.Reply)
		assert.Nil(t, result.Ticket)

		system := client.Calls[0].Arguments.String(1)
		assert.Contains(t, system, "How do I reset my password?")
	})

	t.Run("empty message rejected", func(t *testing.T) {
		svc := NewChatService(new(MockAIClient), &stubFAQLister{}, &stubTicketCreator{}, zap.NewNop())
		_, err := svc.Converse(ctx, customer, ChatInput{Message: "  "})
		assertCode(t, err, "INVALID_INPUT")
	})

	t.Run("completion failure is upstream failure", func(t *testing.T) {
		client := new(MockAIClient)
		client.On("Complete", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("rate limited"))

		svc := NewChatService(client, &stubFAQLister{}, &stubTicketCreator{}, zap.NewNop())
		_, err := svc.Converse(ctx, customer, ChatInput{Message: "hello"})
		assertCode(t, err, "UPSTREAM_FAILURE")
	})

	t.Run("confirmed turn creates ticket from draft", func(t *testing.T) {
		client := new(MockAIClient)
		client.On("DraftTicket", ctx, mock.MatchedBy(func(history []domain.ChatTurn) bool {
			return len(history) == 2 && history[1].Content == "yes please open a ticket"
		})).Return(&domain.TicketDraft{Title: "Billing overcharge", Description: "Charged twice in May"}, nil)

		creator := &stubTicketCreator{created: &domain.Ticket{ID: "t-9", Title: "Billing overcharge"}}
		svc := NewChatService(client, &stubFAQLister{}, creator, zap.NewNop())

		result, err := svc.Converse(ctx, customer, ChatInput{
			Message:               "yes please open a ticket",
			History:               []domain.ChatTurn{{Role: domain.ChatRoleAssistant, Content: "Shall I open a ticket?"}},
			CreateTicketConfirmed: true,
		})
		assert.NoError(t, err)
		assert.NotNil(t, result.Ticket)
		assert.Equal(t, "t-9", result.Ticket.ID)
		assert.Equal(t, domain.TicketPriorityMedium, creator.input.Priority)
		assert.Equal(t, "general", creator.input.Category)
	})

	t.Run("non-customer cannot escalate", func(t *testing.T) {
		svc := NewChatService(new(MockAIClient), &stubFAQLister{}, &stubTicketCreator{}, zap.NewNop())
		_, err := svc.Converse(ctx, workerProfile("w-1"), ChatInput{Message: "yes", CreateTicketConfirmed: true})
		assertCode(t, err, "ACCESS_DENIED")
	})

	t.Run("draft failure yields apology and no ticket", func(t *testing.T) {
		client := new(MockAIClient)
		client.On("DraftTicket", ctx, mock.Anything).Return(nil, errors.New("model down"))

		svc := NewChatService(client, &stubFAQLister{}, &stubTicketCreator{}, zap.NewNop())
		result, err := svc.Converse(ctx, customer, ChatInput{Message: "yes", CreateTicketConfirmed: true})
		assert.NoError(t, err)
		assert.Nil(t, result.Ticket)
		assert.Contains(t, result.Reply, "wasn't able to create the ticket")
	})

	t.Run("creation failure yields apology and no ticket", func(t *testing.T) {
		client := new(MockAIClient)
		client.On("DraftTicket", ctx, mock.Anything).Return(&domain.TicketDraft{Title: "x", Description: "y"}, nil)

		creator := &stubTicketCreator{err: errors.New("db down")}
		svc := NewChatService(client, &stubFAQLister{}, creator, zap.NewNop())
		result, err := svc.Converse(ctx, customer, ChatInput{Message: "yes", CreateTicketConfirmed: true})
		assert.NoError(t, err)
		assert.Nil(t, result.Ticket)
		assert.Contains(t, result.Reply, "wasn't able to create the ticket")
	})
}
