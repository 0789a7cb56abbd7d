package service

import (
	"context"
	"errors"
	"fmt"
	"io"
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

// MaxAttachmentSize is the per-file upload ceiling.
const MaxAttachmentSize = 5 << 20

var allowedAttachmentTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"application/pdf": {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// UploadInput describes one incoming file.
type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// AttachmentService stores attachment payloads in the object store and
// their metadata in Postgres. The two writes are not transactional; upload
// order and cleanup keep them from drifting apart silently.
type AttachmentService struct {
	attachments repository.AttachmentRepository
	tickets     repository.TicketRepository
	store       storage.ObjectStore
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewAttachmentService constructs the service.
func NewAttachmentService(
	attachments repository.AttachmentRepository,
	tickets repository.TicketRepository,
	store storage.ObjectStore,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *AttachmentService {
	return &AttachmentService{
		attachments: attachments,
		tickets:     tickets,
		store:       store,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// Upload validates, stores, and records one file. Validation happens before
// any side effect; a metadata insert failure triggers a best-effort removal
// of the just-stored object.
func (s *AttachmentService) Upload(ctx context.Context, actor *domain.Profile, ticketID string, input UploadInput) (*domain.Attachment, error) {
	ticket, err := s.ticket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.CanComment(actor.Role, actor.ID, ticket) {
		return nil, apperrors.NewAccessDenied("you may not attach files to this ticket")
	}
	if input.Size <= 0 {
		return nil, apperrors.NewInvalidInput("file is empty")
	}
	if input.Size > MaxAttachmentSize {
		return nil, apperrors.NewInvalidInput("file exceeds the 5MB limit")
	}
	if _, ok := allowedAttachmentTypes[input.ContentType]; !ok {
		return nil, apperrors.NewInvalidInput("unsupported file type")
	}
	if input.FileName == "" {
		return nil, apperrors.NewInvalidInput("file name is required")
	}

	key := fmt.Sprintf("%s/%d-%s", ticketID, time.Now().UnixMilli(), input.FileName)
	url, err := s.store.Put(ctx, key, input.Reader, input.Size, input.ContentType)
	if err != nil {
		return nil, apperrors.NewUpstreamFailure("failed to store attachment", err)
	}

	attachment := &domain.Attachment{
		TicketID:   ticketID,
		FileName:   input.FileName,
		FileType:   input.ContentType,
		FileSize:   input.Size,
		FileURL:    url,
		StorageKey: key,
		UploadedBy: actor.ID,
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		if removeErr := s.store.Remove(ctx, key); removeErr != nil {
			s.logger.Warn("orphaned attachment object",
				zap.String("storage_key", key),
				zap.Error(removeErr))
		}
		return nil, apperrors.MapError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAttachmentUploaded,
		TicketID:  ticketID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp: attachment.CreatedAt,
		Payload: events.AttachmentUploadedPayload{
			AttachmentID: attachment.ID,
			FileName:     attachment.FileName,
			FileSize:     attachment.FileSize,
		},
	})
	s.logger.Info("attachment uploaded",
		zap.String("ticket_id", ticketID),
		zap.String("attachment_id", attachment.ID),
		zap.Int64("size", attachment.FileSize))
	return attachment, nil
}

// List returns a ticket's attachment metadata.
func (s *AttachmentService) List(ctx context.Context, actor *domain.Profile, ticketID string) ([]domain.Attachment, error) {
	ticket, err := s.ticket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(actor.Role, actor.ID, ticket) {
		return nil, apperrors.NewAccessDenied("you may not view this ticket")
	}
	attachments, err := s.attachments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return attachments, nil
}

// Delete removes one attachment. Only an admin or the uploader may delete.
// The stored object goes first; if its removal fails the metadata row is
// kept so the attachment stays discoverable for a retry.
func (s *AttachmentService) Delete(ctx context.Context, actor *domain.Profile, attachmentID string) error {
	attachment, err := s.attachments.GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("attachment")
		}
		return apperrors.MapError(err)
	}
	if actor.Role != domain.RoleAdmin && attachment.UploadedBy != actor.ID {
		return apperrors.NewAccessDenied("you may not delete this attachment")
	}

	if err := s.store.Remove(ctx, attachment.StorageKey); err != nil {
		return apperrors.NewUpstreamFailure("failed to remove stored file", err)
	}
	if err := s.attachments.Delete(ctx, attachmentID); err != nil {
		return apperrors.MapError(err)
	}
	s.logger.Info("attachment deleted",
		zap.String("attachment_id", attachmentID),
		zap.String("actor_id", actor.ID))
	return nil
}

func (s *AttachmentService) ticket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}
