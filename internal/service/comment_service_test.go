package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/helpdesk-kit/support-service/internal/domain"
	"github.com/helpdesk-kit/support-service/internal/events"
	"github.com/helpdesk-kit/support-service/internal/realtime"
)

func newCommentService(comments *MockCommentRepository, tickets *MockTicketRepository, broker realtime.Broker) *CommentService {
	if broker == nil {
		broker = realtime.NewMemoryBroker()
	}
	return NewCommentService(comments, tickets, broker, events.NewInMemoryDispatcher(), zap.NewNop())
}

func assignedTicket(workerID string) *domain.Ticket {
	return &domain.Ticket{
		ID:         "t-1",
		CustomerID: "cust-1",
		AssigneeID: &workerID,
		Status:     domain.TicketStatusInProgress,
	}
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("owner comments", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", ctx, "t-1").Return(assignedTicket("w-1"), nil)
		comments := new(MockCommentRepository)
		comments.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.TicketID == "t-1" && c.UserID == "cust-1" && c.Content == "any update?"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Comment).ID = "c-1"
		}).Return(nil)

		svc := newCommentService(comments, tickets, nil)
		comment, err := svc.Add(ctx, customerProfile("cust-1"), "t-1", "any update?")
		assert.NoError(t, err)
		assert.Equal(t, "c-1", comment.ID)
		assert.NotNil(t, comment.Author)
	})

	t.Run("worker viewing the pool cannot comment", func(t *testing.T) {
		unassigned := &domain.Ticket{ID: "t-1", CustomerID: "cust-1"}
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", ctx, "t-1").Return(unassigned, nil)

		svc := newCommentService(new(MockCommentRepository), tickets, nil)
		_, err := svc.Add(ctx, workerProfile("w-1"), "t-1", "hi")
		assertCode(t, err, "ACCESS_DENIED")
	})

	t.Run("empty content rejected", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", ctx, "t-1").Return(assignedTicket("w-1"), nil)

		svc := newCommentService(new(MockCommentRepository), tickets, nil)
		_, err := svc.Add(ctx, customerProfile("cust-1"), "t-1", "   ")
		assertCode(t, err, "INVALID_INPUT")
	})

	t.Run("missing ticket is not found", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", ctx, "nope").Return(nil, pgx.ErrNoRows)

		svc := newCommentService(new(MockCommentRepository), tickets, nil)
		_, err := svc.Add(ctx, customerProfile("cust-1"), "nope", "hi")
		assertCode(t, err, "NOT_FOUND")
	})
}

func TestCommentFanOut(t *testing.T) {
	ctx := context.Background()
	broker := realtime.NewMemoryBroker()

	tickets := new(MockTicketRepository)
	tickets.On("GetByID", ctx, "t-1").Return(assignedTicket("w-1"), nil)
	comments := new(MockCommentRepository)
	comments.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Comment).ID = "c-1"
	}).Return(nil)

	svc := newCommentService(comments, tickets, broker)

	ch, release, err := svc.Subscribe(ctx, workerProfile("w-1"), "t-1")
	assert.NoError(t, err)
	defer release()

	_, err = svc.Add(ctx, customerProfile("cust-1"), "t-1", "live one")
	assert.NoError(t, err)

	select {
	case got := <-ch:
		assert.Equal(t, "c-1", got.ID)
		assert.Equal(t, "live one", got.Content)
	case <-time.After(time.Second):
		t.Fatal("expected comment on subscription channel")
	}
}

func TestSubscribeRequiresView(t *testing.T) {
	ctx := context.Background()
	tickets := new(MockTicketRepository)
	tickets.On("GetByID", ctx, "t-1").Return(assignedTicket("w-1"), nil)

	svc := newCommentService(new(MockCommentRepository), tickets, nil)
	_, _, err := svc.Subscribe(ctx, customerProfile("cust-2"), "t-1")
	assertCode(t, err, "ACCESS_DENIED")
}

func TestListComments(t *testing.T) {
	ctx := context.Background()
	tickets := new(MockTicketRepository)
	tickets.On("GetByID", ctx, "t-1").Return(assignedTicket("w-1"), nil)
	comments := new(MockCommentRepository)
	comments.On("ListByTicket", ctx, "t-1").Return([]domain.Comment{
		{ID: "c-1", Content: "first"},
		{ID: "c-2", Content: "second"},
	}, nil)

	svc := newCommentService(comments, tickets, nil)
	thread, err := svc.List(ctx, workerProfile("w-1"), "t-1")
	assert.NoError(t, err)
	assert.Len(t, thread, 2)
}
