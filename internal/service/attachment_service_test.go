package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/helpdesk-kit/support-service/internal/domain"
	"github.com/helpdesk-kit/support-service/internal/events"
	"github.com/helpdesk-kit/support-service/internal/storage"
)

func newAttachmentService(attachments *MockAttachmentRepository, tickets *MockTicketRepository, store *storage.MemoryStore) (*AttachmentService, *storage.MemoryStore) {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	return NewAttachmentService(attachments, tickets, store, events.NewInMemoryDispatcher(), zap.NewNop()), store
}

func pngUpload(size int64) UploadInput {
	return UploadInput{
		FileName:    "screenshot.png",
		ContentType: "image/png",
		Size:        size,
		Reader:      strings.NewReader(strings.Repeat("x", int(size))),
	}
}

func TestUploadAttachment(t *testing.T) {
	ctx := context.Background()

	t.Run("owner uploads", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", ctx, "t-1").Return(assignedTicket("w-1"), nil)
		attachments := new(MockAttachmentRepository)
		attachments.On("Create", ctx, mock.MatchedBy(func(a *domain.Attachment) bool {
			return a.TicketID == "t-1" && a.UploadedBy == "cust-1" && a.FileURL != ""
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Attachment).ID = "att-1"
		}).Return(nil)

		svc, store := newAttachmentService(attachments, tickets, nil)
		attachment, err := svc.Upload(ctx, customerProfile("cust-1"), "t-1", pngUpload(16))
		assert.NoError(t, err)
		assert.Equal(t, "att-1", attachment.ID)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("oversized file rejected before any side effect", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", ctx, "t-1").Return(assignedTicket("w-1"), nil)

		svc, store := newAttachmentService(new(MockAttachmentRepository), tickets, nil)
		input := UploadInput{
			FileName:    "huge.pdf",
			ContentType: "application/pdf",
			Size:        MaxAttachmentSize + 1,
			Reader:      strings.NewReader(""),
		}
		_, err := svc.Upload(ctx, customerProfile("cust-1"), "t-1", input)
		assertCode(t, err, "INVALID_INPUT")
		assert.Equal(t, 0, store.Len())
	})

	t.Run("disallowed type rejected", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", ctx, "t-1").Return(assignedTicket("w-1"), nil)

		svc, _ := newAttachmentService(new(MockAttachmentRepository), tickets, nil)
		input := UploadInput{
			FileName:    "run.sh",
			ContentType: "application/x-sh",
			Size:        10,
			Reader:      strings.NewReader("echo hi"),
		}
		_, err := svc.Upload(ctx, customerProfile("cust-1"), "t-1", input)
		assertCode(t, err, "INVALID_INPUT")
	})

	t.Run("store failure surfaces as upstream failure", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", ctx, "t-1").Return(assignedTicket("w-1"), nil)
		store := storage.NewMemoryStore()
		store.FailPut = true

		svc, _ := newAttachmentService(new(MockAttachmentRepository), tickets, store)
		_, err := svc.Upload(ctx, customerProfile("cust-1"), "t-1", pngUpload(16))
		assertCode(t, err, "UPSTREAM_FAILURE")
	})

	t.Run("metadata failure removes stored object", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", ctx, "t-1").Return(assignedTicket("w-1"), nil)
		attachments := new(MockAttachmentRepository)
		attachments.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))

		svc, store := newAttachmentService(attachments, tickets, nil)
		_, err := svc.Upload(ctx, customerProfile("cust-1"), "t-1", pngUpload(16))
		assert.Error(t, err)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("pool visibility does not grant upload", func(t *testing.T) {
		unassigned := &domain.Ticket{ID: "t-1", CustomerID: "cust-1"}
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", ctx, "t-1").Return(unassigned, nil)

		svc, _ := newAttachmentService(new(MockAttachmentRepository), tickets, nil)
		_, err := svc.Upload(ctx, workerProfile("w-1"), "t-1", pngUpload(16))
		assertCode(t, err, "ACCESS_DENIED")
	})
}

func TestDeleteAttachment(t *testing.T) {
	ctx := context.Background()
	stored := &domain.Attachment{ID: "att-1", TicketID: "t-1", StorageKey: "t-1/1-file.png", UploadedBy: "cust-1"}

	t.Run("uploader deletes", func(t *testing.T) {
		attachments := new(MockAttachmentRepository)
		attachments.On("GetByID", ctx, "att-1").Return(stored, nil)
		attachments.On("Delete", ctx, "att-1").Return(nil)

		svc, store := newAttachmentService(attachments, new(MockTicketRepository), nil)
		_, _ = store.Put(ctx, stored.StorageKey, strings.NewReader("png"), 3, "image/png")

		assert.NoError(t, svc.Delete(ctx, customerProfile("cust-1"), "att-1"))
		assert.False(t, store.Has(stored.StorageKey))
		attachments.AssertExpectations(t)
	})

	t.Run("non-uploader non-admin denied", func(t *testing.T) {
		attachments := new(MockAttachmentRepository)
		attachments.On("GetByID", ctx, "att-1").Return(stored, nil)

		svc, _ := newAttachmentService(attachments, new(MockTicketRepository), nil)
		err := svc.Delete(ctx, workerProfile("w-1"), "att-1")
		assertCode(t, err, "ACCESS_DENIED")
	})

	t.Run("object removal failure keeps the row", func(t *testing.T) {
		attachments := new(MockAttachmentRepository)
		attachments.On("GetByID", ctx, "att-1").Return(stored, nil)
		store := storage.NewMemoryStore()
		store.FailRemove = true

		svc, _ := newAttachmentService(attachments, new(MockTicketRepository), store)
		err := svc.Delete(ctx, adminProfile("a-1"), "att-1")
		assertCode(t, err, "UPSTREAM_FAILURE")
		attachments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing attachment is not found", func(t *testing.T) {
		attachments := new(MockAttachmentRepository)
		attachments.On("GetByID", ctx, "nope").Return(nil, pgx.ErrNoRows)

		svc, _ := newAttachmentService(attachments, new(MockTicketRepository), nil)
		err := svc.Delete(ctx, adminProfile("a-1"), "nope")
		assertCode(t, err, "NOT_FOUND")
	})
}
