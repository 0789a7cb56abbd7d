package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/helpdesk-kit/support-service/internal/domain"
	"github.com/helpdesk-kit/support-service/internal/repository"
	apperrors "github.com/helpdesk-kit/support-service/pkg/util"
)

// IdentityService resolves verified token claims to stored profiles and
// carries the admin-facing account operations.
type IdentityService struct {
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

// NewIdentityService constructs the service.
func NewIdentityService(profiles repository.ProfileRepository, logger *zap.Logger) *IdentityService {
	return &IdentityService{profiles: profiles, logger: logger}
}

// Resolve returns the profile for a verified subject, provisioning a
// customer profile on first sight. The stored role is re-validated on every
// resolve so a corrupted row cannot smuggle an unknown role into policy
// decisions.
func (s *IdentityService) Resolve(ctx context.Context, userID, email string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		profile = &domain.Profile{
			ID:    userID,
			Email: email,
			Role:  domain.RoleCustomer,
		}
		if createErr := s.profiles.Create(ctx, profile); createErr != nil {
			// A concurrent first request may have provisioned the row already.
			profile, err = s.profiles.GetByID(ctx, userID)
			if err != nil {
				return nil, apperrors.MapError(createErr)
			}
		} else {
			s.logger.Info("provisioned customer profile",
				zap.String("user_id", userID))
		}
	}

	if _, err := domain.ParseRole(string(profile.Role)); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return profile, nil
}

// ProfileUpdate carries the admin-editable profile fields. Nil means leave
// unchanged.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Role      *domain.Role
}

// ListProfiles returns accounts for the admin console.
func (s *IdentityService) ListProfiles(ctx context.Context, actor *domain.Profile, filter repository.ProfileFilter) ([]domain.Profile, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewAccessDenied("only admins may list users")
	}
	profiles, err := s.profiles.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return profiles, nil
}

// UpdateProfile applies an admin edit, including role changes. The new role
// takes effect on the target's next request.
func (s *IdentityService) UpdateProfile(ctx context.Context, actor *domain.Profile, id string, update ProfileUpdate) (*domain.Profile, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewAccessDenied("only admins may update users")
	}

	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.MapError(err)
	}

	if update.FirstName != nil {
		profile.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		profile.LastName = *update.LastName
	}
	if update.Role != nil {
		profile.Role = *update.Role
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("profile updated",
		zap.String("user_id", profile.ID),
		zap.String("role", string(profile.Role)),
		zap.String("actor_id", actor.ID))
	return profile, nil
}
