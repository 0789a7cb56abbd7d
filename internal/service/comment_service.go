package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/helpdesk-kit/support-service/internal/domain"
	"github.com/helpdesk-kit/support-service/internal/events"
	"github.com/helpdesk-kit/support-service/internal/policy"
	"github.com/helpdesk-kit/support-service/internal/realtime"
	"github.com/helpdesk-kit/support-service/internal/repository"
	apperrors "github.com/helpdesk-kit/support-service/pkg/util"
)

// CommentService owns a ticket's conversation thread, including the live
// fan-out to subscribed viewers.
type CommentService struct {
	comments   repository.CommentRepository
	tickets    repository.TicketRepository
	broker     realtime.Broker
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCommentService constructs the service.
func NewCommentService(
	comments repository.CommentRepository,
	tickets repository.TicketRepository,
	broker realtime.Broker,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		comments:   comments,
		tickets:    tickets,
		broker:     broker,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Add appends a comment to the thread and fans it out to live subscribers.
// Delivery is best effort; the insert succeeds even when no subscriber can
// be reached.
func (s *CommentService) Add(ctx context.Context, actor *domain.Profile, ticketID, content string) (*domain.Comment, error) {
	ticket, err := s.ticket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.CanComment(actor.Role, actor.ID, ticket) {
		return nil, apperrors.NewAccessDenied("you may not comment on this ticket")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewInvalidInput("content is required")
	}

	comment := &domain.Comment{
		TicketID: ticketID,
		UserID:   actor.ID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}
	comment.Author = actor

	if err := s.broker.Publish(ctx, comment); err != nil {
		s.logger.Warn("comment fan-out failed",
			zap.String("ticket_id", ticketID),
			zap.String("comment_id", comment.ID),
			zap.Error(err))
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCommentAdded,
		TicketID:  ticketID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp: comment.CreatedAt,
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			AuthorID:    actor.ID,
			BodyPreview: preview(content),
		},
	})

	return comment, nil
}

// List returns the thread oldest first, with authors joined.
func (s *CommentService) List(ctx context.Context, actor *domain.Profile, ticketID string) ([]domain.Comment, error) {
	ticket, err := s.ticket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(actor.Role, actor.ID, ticket) {
		return nil, apperrors.NewAccessDenied("you may not view this ticket")
	}
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return comments, nil
}

// Subscribe opens a live comment feed for a viewer of the ticket. Callers
// must invoke the release function when done.
func (s *CommentService) Subscribe(ctx context.Context, actor *domain.Profile, ticketID string) (<-chan domain.Comment, func(), error) {
	ticket, err := s.ticket(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	if !policy.CanView(actor.Role, actor.ID, ticket) {
		return nil, nil, apperrors.NewAccessDenied("you may not view this ticket")
	}
	ch, release, err := s.broker.Subscribe(ctx, ticketID)
	if err != nil {
		return nil, nil, apperrors.NewUpstreamFailure("live feed unavailable", err)
	}
	return ch, release, nil
}

func (s *CommentService) ticket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func preview(content string) string {
	const max = 120
	if len(content) <= max {
		return content
	}
	return content[:max]
}
