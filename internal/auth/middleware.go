package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/support-service/internal/domain"
	apperrors "github.com/helpdesk-kit/support-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Role comes from the stored
// profile, not the token, so role elevation takes effect on the next
// request without reissuing credentials.
type Principal struct {
	Profile *domain.Profile
}

// Role returns the caller's canonical role.
func (p *Principal) Role() domain.Role {
	return p.Profile.Role
}

// UserID returns the caller's profile id.
func (p *Principal) UserID() string {
	return p.Profile.ID
}

// ProfileResolver maps verified token claims to a stored profile,
// provisioning one on first sight.
type ProfileResolver interface {
	Resolve(ctx context.Context, userID, email string) (*domain.Profile, error)
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens   *TokenManager
	resolver ProfileResolver
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, resolver ProfileResolver) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, resolver: resolver}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthenticated("invalid token")
	}

	profile, err := m.resolver.Resolve(c.UserContext(), claims.SubjectID, claims.Email)
	if err != nil {
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{Profile: profile})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
