package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/helpdesk-kit/support-service/internal/domain"
	"github.com/helpdesk-kit/support-service/internal/events"
	"github.com/helpdesk-kit/support-service/internal/policy"
	"github.com/helpdesk-kit/support-service/internal/repository"
	"github.com/helpdesk-kit/support-service/internal/storage"
	apperrors "github.com/helpdesk-kit/support-service/pkg/util"
)

// CreateTicketInput carries the customer-supplied ticket fields.
type CreateTicketInput struct {
	Title       string
	Description string
	Category    string
	Priority    domain.TicketPriority
}

// TicketUpdate is a partial update. Nil fields are untouched. AssigneeSet
// distinguishes "leave assignee alone" from "unassign" when AssigneeID is
// nil.
type TicketUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Status      *domain.TicketStatus
	Priority    *domain.TicketPriority
	AssigneeID  *string
	AssigneeSet bool
}

// ListTicketsInput carries client list refinements. The access scope is
// derived from the actor, never from these fields.
type ListTicketsInput struct {
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	SearchTerm *string
	Unassigned bool
	Limit      int
	Offset     int
}

// TicketService owns the ticket lifecycle. Every operation checks the
// access policy against the stored ticket before touching it.
type TicketService struct {
	tickets     repository.TicketRepository
	profiles    repository.ProfileRepository
	attachments repository.AttachmentRepository
	store       storage.ObjectStore
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(
	tickets repository.TicketRepository,
	profiles repository.ProfileRepository,
	attachments repository.AttachmentRepository,
	store storage.ObjectStore,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *TicketService {
	return &TicketService{
		tickets:     tickets,
		profiles:    profiles,
		attachments: attachments,
		store:       store,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// Create opens a new ticket owned by the acting customer. New tickets are
// always open and unassigned.
func (s *TicketService) Create(ctx context.Context, actor *domain.Profile, input CreateTicketInput) (*domain.Ticket, error) {
	if !policy.CanCreate(actor.Role) {
		return nil, apperrors.NewAccessDenied("only customers may open tickets")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewInvalidInput("title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewInvalidInput("description is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return nil, apperrors.NewInvalidInput("category is required")
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}

	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		Category:    strings.TrimSpace(input.Category),
		CustomerID:  actor.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Customer = actor

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Category: ticket.Category,
			Priority: ticket.Priority,
		},
	})
	s.logger.Info("ticket created",
		zap.String("ticket_id", ticket.ID),
		zap.String("customer_id", actor.ID))
	return ticket, nil
}

// Get returns a single ticket with its customer and assignee joined.
func (s *TicketService) Get(ctx context.Context, actor *domain.Profile, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, apperrors.MapError(err)
	}
	if !policy.CanView(actor.Role, actor.ID, ticket) {
		return nil, apperrors.NewAccessDenied("you may not view this ticket")
	}
	s.joinProfiles(ctx, ticket)
	return ticket, nil
}

// List returns the tickets visible to the actor, refined by the client
// filters. The policy scope is applied in SQL so refinements can only
// narrow the result.
func (s *TicketService) List(ctx context.Context, actor *domain.Profile, input ListTicketsInput) ([]domain.Ticket, error) {
	scope := policy.ListScope(actor.Role, actor.ID, input.Unassigned)

	filter := repository.TicketFilter{
		CustomerID:     scope.CustomerID,
		AssigneeID:     scope.AssigneeID,
		UnassignedOnly: scope.UnassignedOnly,
		Statuses:       input.Statuses,
		Priorities:     input.Priorities,
		SearchTerm:     input.SearchTerm,
		Limit:          input.Limit,
		Offset:         input.Offset,
	}
	if actor.Role == domain.RoleAdmin && input.Unassigned {
		filter.UnassignedOnly = true
	}

	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	// One profile fetch per distinct id across the page.
	cache := map[string]*domain.Profile{actor.ID: actor}
	for i := range tickets {
		tickets[i].Customer = s.lookupProfile(ctx, cache, tickets[i].CustomerID)
		if tickets[i].AssigneeID != nil {
			tickets[i].Assignee = s.lookupProfile(ctx, cache, *tickets[i].AssigneeID)
		}
	}
	return tickets, nil
}

// Update applies a partial update. Each changed field is checked against
// the ticket as currently stored; one denied field rejects the whole
// request with no partial write.
func (s *TicketService) Update(ctx context.Context, actor *domain.Profile, id string, update TicketUpdate) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, apperrors.MapError(err)
	}

	type change struct {
		field policy.TicketField
		apply func()
	}
	var changes []change
	oldStatus := ticket.Status
	assigneeChanged := false

	if update.Title != nil && *update.Title != ticket.Title {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, apperrors.NewInvalidInput("title cannot be empty")
		}
		title := strings.TrimSpace(*update.Title)
		changes = append(changes, change{policy.FieldTitle, func() { ticket.Title = title }})
	}
	if update.Description != nil && *update.Description != ticket.Description {
		if strings.TrimSpace(*update.Description) == "" {
			return nil, apperrors.NewInvalidInput("description cannot be empty")
		}
		desc := strings.TrimSpace(*update.Description)
		changes = append(changes, change{policy.FieldDescription, func() { ticket.Description = desc }})
	}
	if update.Category != nil && *update.Category != ticket.Category {
		if strings.TrimSpace(*update.Category) == "" {
			return nil, apperrors.NewInvalidInput("category cannot be empty")
		}
		category := strings.TrimSpace(*update.Category)
		changes = append(changes, change{policy.FieldCategory, func() { ticket.Category = category }})
	}
	if update.Status != nil && *update.Status != ticket.Status {
		status := *update.Status
		changes = append(changes, change{policy.FieldStatus, func() { ticket.Status = status }})
	}
	if update.Priority != nil && *update.Priority != ticket.Priority {
		priority := *update.Priority
		changes = append(changes, change{policy.FieldPriority, func() { ticket.Priority = priority }})
	}
	if update.AssigneeSet && !sameAssignee(ticket.AssigneeID, update.AssigneeID) {
		if update.AssigneeID != nil {
			assignee, err := s.profiles.GetByID(ctx, *update.AssigneeID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, apperrors.NewInvalidInput("assignee does not exist")
				}
				return nil, apperrors.MapError(err)
			}
			if !assignee.Role.IsStaff() {
				return nil, apperrors.NewInvalidInput("assignee must be a worker or admin")
			}
		}
		assigneeID := update.AssigneeID
		assigneeChanged = true
		changes = append(changes, change{policy.FieldAssignee, func() { ticket.AssigneeID = assigneeID }})
	}

	if len(changes) == 0 {
		s.joinProfiles(ctx, ticket)
		return ticket, nil
	}

	fields := make([]string, 0, len(changes))
	for _, ch := range changes {
		if !policy.CanUpdateField(actor.Role, actor.ID, ticket, ch.field) {
			return nil, apperrors.NewAccessDenied("you may not change " + string(ch.field))
		}
		fields = append(fields, string(ch.field))
	}
	for _, ch := range changes {
		ch.apply()
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	payload := events.TicketUpdatedPayload{Fields: fields}
	if ticket.Status != oldStatus {
		old, now := oldStatus, ticket.Status
		payload.OldStatus = &old
		payload.NewStatus = &now
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload:  payload,
	})
	if assigneeChanged {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketAssigned,
			TicketID: ticket.ID,
			Actor:    events.Actor{UserID: actor.ID, Role: actor.Role},
			Payload:  events.TicketAssignedPayload{AssigneeID: ticket.AssigneeID},
		})
	}
	s.logger.Info("ticket updated",
		zap.String("ticket_id", ticket.ID),
		zap.Strings("fields", fields),
		zap.String("actor_id", actor.ID))

	s.joinProfiles(ctx, ticket)
	return ticket, nil
}

// Delete removes a ticket together with its thread and attachment rows.
// Stored objects are cleaned up best effort before the row delete cascades.
func (s *TicketService) Delete(ctx context.Context, actor *domain.Profile, id string) error {
	if !policy.CanDelete(actor.Role) {
		return apperrors.NewAccessDenied("only admins may delete tickets")
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket")
		}
		return apperrors.MapError(err)
	}

	attachments, err := s.attachments.ListByTicket(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	for _, att := range attachments {
		if err := s.store.Remove(ctx, att.StorageKey); err != nil {
			s.logger.Warn("orphaned attachment object",
				zap.String("storage_key", att.StorageKey),
				zap.Error(err))
		}
	}

	if err := s.tickets.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: actor.ID, Role: actor.Role},
	})
	s.logger.Info("ticket deleted",
		zap.String("ticket_id", id),
		zap.String("actor_id", actor.ID))
	return nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}

func (s *TicketService) joinProfiles(ctx context.Context, ticket *domain.Ticket) {
	cache := map[string]*domain.Profile{}
	ticket.Customer = s.lookupProfile(ctx, cache, ticket.CustomerID)
	if ticket.AssigneeID != nil {
		ticket.Assignee = s.lookupProfile(ctx, cache, *ticket.AssigneeID)
	}
}

// lookupProfile is display enrichment; a missing profile degrades to nil
// rather than failing the read.
func (s *TicketService) lookupProfile(ctx context.Context, cache map[string]*domain.Profile, id string) *domain.Profile {
	if p, ok := cache[id]; ok {
		return p
	}
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn("profile lookup failed", zap.String("user_id", id), zap.Error(err))
		cache[id] = nil
		return nil
	}
	cache[id] = profile
	return profile
}

func sameAssignee(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
