package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/helpdesk-kit/support-service/internal/api/dto"
	"github.com/helpdesk-kit/support-service/internal/auth"
	"github.com/helpdesk-kit/support-service/internal/service"
	apperrors "github.com/helpdesk-kit/support-service/pkg/util"
)

// CommentsHandler manages a ticket's conversation thread endpoints.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// CreateComment POST /tickets/:id/comments.
func (h *CommentsHandler) CreateComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload")
	}
	comment, err := h.service.Add(c.UserContext(), principal.Profile, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// ListComments GET /tickets/:id/comments.
func (h *CommentsHandler) ListComments(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	comments, err := h.service.List(c.UserContext(), principal.Profile, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentListResponse(comments)})
}

// StreamComments GET /tickets/:id/comments/stream. Serves the thread as
// server-sent events until the client disconnects.
func (h *CommentsHandler) StreamComments(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	// The subscription must outlive this handler's return; the stream
	// writer below runs after fiber hands the response to fasthttp.
	streamCtx, cancel := context.WithCancel(context.Background())
	ch, release, err := h.service.Subscribe(streamCtx, principal.Profile, c.Params("id"))
	if err != nil {
		cancel()
		return err
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer release()
		for comment := range ch {
			payload, err := json.Marshal(dto.NewCommentResponse(&comment))
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
