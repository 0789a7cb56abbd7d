package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/support-service/internal/api/dto"
	"github.com/helpdesk-kit/support-service/internal/auth"
	"github.com/helpdesk-kit/support-service/internal/service"
	apperrors "github.com/helpdesk-kit/support-service/pkg/util"
)

// FAQsHandler manages the FAQ endpoints. Reads are open to any
// authenticated role; writes are admin only.
type FAQsHandler struct {
	service *service.FAQService
}

// NewFAQsHandler constructs handler.
func NewFAQsHandler(faqService *service.FAQService) *FAQsHandler {
	return &FAQsHandler{service: faqService}
}

// ListFAQs GET /faqs.
func (h *FAQsHandler) ListFAQs(c *fiber.Ctx) error {
	faqs, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFAQListResponse(faqs)})
}

// GetFAQ GET /faqs/:id.
func (h *FAQsHandler) GetFAQ(c *fiber.Ctx) error {
	faq, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFAQResponse(faq)})
}

// CreateFAQ POST /faqs.
func (h *FAQsHandler) CreateFAQ(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.FAQRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload")
	}
	faq, err := h.service.Create(c.UserContext(), principal.Profile, service.FAQInput{
		Question: req.Question,
		Answer:   req.Answer,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewFAQResponse(faq)})
}

// UpdateFAQ PATCH /faqs/:id.
func (h *FAQsHandler) UpdateFAQ(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.FAQRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload")
	}
	faq, err := h.service.Update(c.UserContext(), principal.Profile, c.Params("id"), service.FAQInput{
		Question: req.Question,
		Answer:   req.Answer,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFAQResponse(faq)})
}

// DeleteFAQ DELETE /faqs/:id.
func (h *FAQsHandler) DeleteFAQ(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	if err := h.service.Delete(c.UserContext(), principal.Profile, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
