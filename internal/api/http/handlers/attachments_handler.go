package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/support-service/internal/api/dto"
	"github.com/helpdesk-kit/support-service/internal/auth"
	"github.com/helpdesk-kit/support-service/internal/service"
	apperrors "github.com/helpdesk-kit/support-service/pkg/util"
)

// AttachmentsHandler manages file upload endpoints.
type AttachmentsHandler struct {
	service *service.AttachmentService
}

// NewAttachmentsHandler constructs handler.
func NewAttachmentsHandler(attachmentService *service.AttachmentService) *AttachmentsHandler {
	return &AttachmentsHandler{service: attachmentService}
}

// UploadAttachment POST /tickets/:id/attachments. Expects a multipart form
// with a single "file" part.
func (h *AttachmentsHandler) UploadAttachment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewInvalidInput("file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewInvalidInput("file could not be read")
	}
	defer file.Close()

	attachment, err := h.service.Upload(c.UserContext(), principal.Profile, c.Params("id"), service.UploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewAttachmentResponse(attachment)})
}

// ListAttachments GET /tickets/:id/attachments.
func (h *AttachmentsHandler) ListAttachments(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	attachments, err := h.service.List(c.UserContext(), principal.Profile, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAttachmentListResponse(attachments)})
}

// DeleteAttachment DELETE /tickets/attachments/:id.
func (h *AttachmentsHandler) DeleteAttachment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	if err := h.service.Delete(c.UserContext(), principal.Profile, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
