package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/helpdesk-kit/support-service/internal/cache"
	"github.com/helpdesk-kit/support-service/internal/domain"
)

func newFAQService(faqs *MockFAQRepository) *FAQService {
	// A nil-backed cache behaves as a permanent miss.
	return NewFAQService(faqs, cache.New(nil), time.Minute, zap.NewNop())
}

func TestFAQReadsAndWrites(t *testing.T) {
	ctx := context.Background()

	t.Run("list falls through to repository on cache miss", func(t *testing.T) {
		faqs := new(MockFAQRepository)
		faqs.On("List", ctx).Return([]domain.FAQ{{ID: "f-1", Question: "Q", Answer: "A"}}, nil)

		svc := newFAQService(faqs)
		got, err := svc.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("admin creates", func(t *testing.T) {
		faqs := new(MockFAQRepository)
		faqs.On("Create", ctx, mock.MatchedBy(func(f *domain.FAQ) bool {
			return f.Question == "How?" && f.Answer == "Like this."
		})).Return(nil)

		svc := newFAQService(faqs)
		_, err := svc.Create(ctx, adminProfile("a-1"), FAQInput{Question: "How?", Answer: "Like this."})
		assert.NoError(t, err)
		faqs.AssertExpectations(t)
	})

	t.Run("non-admin writes denied", func(t *testing.T) {
		svc := newFAQService(new(MockFAQRepository))
		_, err := svc.Create(ctx, workerProfile("w-1"), FAQInput{Question: "q", Answer: "a"})
		assertCode(t, err, "ACCESS_DENIED")

		err = svc.Delete(ctx, customerProfile("c-1"), "f-1")
		assertCode(t, err, "ACCESS_DENIED")
	})

	t.Run("blank entry rejected", func(t *testing.T) {
		svc := newFAQService(new(MockFAQRepository))
		_, err := svc.Create(ctx, adminProfile("a-1"), FAQInput{Question: " ", Answer: "a"})
		assertCode(t, err, "INVALID_INPUT")
	})
}
