package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/helpdesk-kit/support-service/internal/domain"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("known subject returns stored profile", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		profiles.On("GetByID", ctx, "u-1").Return(workerProfile("u-1"), nil)

		svc := NewIdentityService(profiles, zap.NewNop())
		profile, err := svc.Resolve(ctx, "u-1", "u-1@example.com")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleWorker, profile.Role)
	})

	t.Run("first sight provisions a customer", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		profiles.On("GetByID", ctx, "new-1").Return(nil, pgx.ErrNoRows)
		profiles.On("Create", ctx, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.ID == "new-1" && p.Role == domain.RoleCustomer && p.Email == "new@example.com"
		})).Return(nil)

		svc := NewIdentityService(profiles, zap.NewNop())
		profile, err := svc.Resolve(ctx, "new-1", "new@example.com")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleCustomer, profile.Role)
		profiles.AssertExpectations(t)
	})

	t.Run("corrupted role fails closed", func(t *testing.T) {
		bad := &domain.Profile{ID: "u-1", Role: domain.Role("superuser")}
		profiles := new(MockProfileRepository)
		profiles.On("GetByID", ctx, "u-1").Return(bad, nil)

		svc := NewIdentityService(profiles, zap.NewNop())
		_, err := svc.Resolve(ctx, "u-1", "")
		assert.Error(t, err)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("admin promotes customer to worker", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		profiles.On("GetByID", ctx, "u-1").Return(customerProfile("u-1"), nil)
		profiles.On("Update", ctx, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.Role == domain.RoleWorker
		})).Return(nil)

		svc := NewIdentityService(profiles, zap.NewNop())
		role := domain.RoleWorker
		profile, err := svc.UpdateProfile(ctx, adminProfile("a-1"), "u-1", ProfileUpdate{Role: &role})
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleWorker, profile.Role)
	})

	t.Run("non-admin denied", func(t *testing.T) {
		svc := NewIdentityService(new(MockProfileRepository), zap.NewNop())
		role := domain.RoleAdmin
		_, err := svc.UpdateProfile(ctx, workerProfile("w-1"), "u-1", ProfileUpdate{Role: &role})
		assertCode(t, err, "ACCESS_DENIED")
	})
}
