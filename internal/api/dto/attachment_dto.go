package dto

import (
	"time"

	"github.com/helpdesk-kit/support-service/internal/domain"
)

// AttachmentResponse is the wire form of attachment metadata.
type AttachmentResponse struct {
	ID         string    `json:"id"`
	TicketID   string    `json:"ticket_id"`
	FileName   string    `json:"file_name"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	FileURL    string    `json:"file_url"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewAttachmentResponse maps an attachment.
func NewAttachmentResponse(attachment *domain.Attachment) *AttachmentResponse {
	return &AttachmentResponse{
		ID:         attachment.ID,
		TicketID:   attachment.TicketID,
		FileName:   attachment.FileName,
		FileType:   attachment.FileType,
		FileSize:   attachment.FileSize,
		FileURL:    attachment.FileURL,
		UploadedBy: attachment.UploadedBy,
		CreatedAt:  attachment.CreatedAt,
	}
}

// NewAttachmentListResponse maps a slice of attachments.
func NewAttachmentListResponse(attachments []domain.Attachment) []AttachmentResponse {
	result := make([]AttachmentResponse, 0, len(attachments))
	for i := range attachments {
		result = append(result, *NewAttachmentResponse(&attachments[i]))
	}
	return result
}
