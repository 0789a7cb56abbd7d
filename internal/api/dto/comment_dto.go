package dto

import (
	"time"

	"github.com/helpdesk-kit/support-service/internal/domain"
)

// CreateCommentRequest is the comment payload.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// CommentResponse is the wire form of one thread entry.
type CommentResponse struct {
	ID        string           `json:"id"`
	TicketID  string           `json:"ticket_id"`
	UserID    string           `json:"user_id"`
	Content   string           `json:"content"`
	Author    *ProfileResponse `json:"author,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewCommentResponse maps a comment.
func NewCommentResponse(comment *domain.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		TicketID:  comment.TicketID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		Author:    NewProfileResponse(comment.Author),
		CreatedAt: comment.CreatedAt,
	}
}

// NewCommentListResponse maps a thread.
func NewCommentListResponse(comments []domain.Comment) []CommentResponse {
	result := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		result = append(result, *NewCommentResponse(&comments[i]))
	}
	return result
}
