package dto

import (
	"time"

	"github.com/helpdesk-kit/support-service/internal/domain"
)

// ProfileResponse is the wire form of an account profile.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProfileResponse maps a profile.
func NewProfileResponse(profile *domain.Profile) *ProfileResponse {
	if profile == nil {
		return nil
	}
	return &ProfileResponse{
		ID:        profile.ID,
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Role:      string(profile.Role),
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

// NewProfileListResponse maps a slice of profiles.
func NewProfileListResponse(profiles []domain.Profile) []ProfileResponse {
	result := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		result = append(result, *NewProfileResponse(&profiles[i]))
	}
	return result
}

// UpdateUserRequest is the admin account edit payload.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
}
