package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/support-service/internal/api/dto"
	"github.com/helpdesk-kit/support-service/internal/auth"
	"github.com/helpdesk-kit/support-service/internal/domain"
	"github.com/helpdesk-kit/support-service/internal/repository"
	"github.com/helpdesk-kit/support-service/internal/service"
	apperrors "github.com/helpdesk-kit/support-service/pkg/util"
)

// UsersHandler manages account endpoints.
type UsersHandler struct {
	service *service.IdentityService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(identityService *service.IdentityService) *UsersHandler {
	return &UsersHandler{service: identityService}
}

// GetProfile GET /users/profile.
func (h *UsersHandler) GetProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(principal.Profile)})
}

// ListUsers GET /users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	filter := repository.ProfileFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if raw := c.Query("role"); raw != "" {
		role, err := domain.ParseRole(raw)
		if err != nil {
			return apperrors.NewInvalidInput(err.Error())
		}
		filter.Role = &role
	}

	profiles, err := h.service.ListProfiles(c.UserContext(), principal.Profile, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileListResponse(profiles)})
}

// UpdateUser PATCH /users/:id.
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload")
	}

	update := service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Role != nil {
		role, err := domain.ParseRole(*req.Role)
		if err != nil {
			return apperrors.NewInvalidInput(err.Error())
		}
		update.Role = &role
	}

	profile, err := h.service.UpdateProfile(c.UserContext(), principal.Profile, c.Params("id"), update)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(profile)})
}
