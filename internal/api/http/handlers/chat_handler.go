package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/support-service/internal/api/dto"
	"github.com/helpdesk-kit/support-service/internal/auth"
	"github.com/helpdesk-kit/support-service/internal/service"
	apperrors "github.com/helpdesk-kit/support-service/pkg/util"
)

// ChatHandler serves the support assistant endpoint.
type ChatHandler struct {
	service *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{service: chatService}
}

// Converse POST /chat.
func (h *ChatHandler) Converse(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload")
	}

	result, err := h.service.Converse(c.UserContext(), principal.Profile, service.ChatInput{
		Message:               req.Message,
		History:               req.DomainHistory(),
		CreateTicketConfirmed: req.CreateTicketConfirmed,
	})
	if err != nil {
		return err
	}

	resp := dto.ChatResponse{Reply: result.Reply}
	if result.Ticket != nil {
		resp.Ticket = dto.NewTicketResponse(result.Ticket)
	}
	return c.JSON(fiber.Map{"data": resp})
}
