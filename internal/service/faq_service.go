package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/helpdesk-kit/support-service/internal/cache"
	"github.com/helpdesk-kit/support-service/internal/domain"
	"github.com/helpdesk-kit/support-service/internal/repository"
	apperrors "github.com/helpdesk-kit/support-service/pkg/util"
)

const faqListCacheKey = "faqs:list"

// FAQInput carries an FAQ entry's editable fields.
type FAQInput struct {
	Question string
	Answer   string
}

// FAQService manages the admin-curated FAQ corpus. Reads go through a
// fail-safe cache because the chat assistant loads the full list on every
// conversation turn.
type FAQService struct {
	faqs     repository.FAQRepository
	cache    *cache.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewFAQService constructs the service.
func NewFAQService(faqs repository.FAQRepository, cacheClient *cache.Client, cacheTTL time.Duration, logger *zap.Logger) *FAQService {
	return &FAQService{faqs: faqs, cache: cacheClient, cacheTTL: cacheTTL, logger: logger}
}

// List returns all FAQ entries, from cache when fresh.
func (s *FAQService) List(ctx context.Context) ([]domain.FAQ, error) {
	if raw, _ := s.cache.Get(ctx, faqListCacheKey); raw != nil {
		var cached []domain.FAQ
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	faqs, err := s.faqs.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if raw, err := json.Marshal(faqs); err == nil {
		_ = s.cache.Set(ctx, faqListCacheKey, raw, s.cacheTTL)
	}
	return faqs, nil
}

// Get returns one entry.
func (s *FAQService) Get(ctx context.Context, id string) (*domain.FAQ, error) {
	faq, err := s.faqs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("faq")
		}
		return nil, apperrors.MapError(err)
	}
	return faq, nil
}

// Create adds an entry and invalidates the cached list.
func (s *FAQService) Create(ctx context.Context, actor *domain.Profile, input FAQInput) (*domain.FAQ, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewAccessDenied("only admins may manage faqs")
	}
	if err := validateFAQ(input); err != nil {
		return nil, err
	}
	faq := &domain.FAQ{
		Question: strings.TrimSpace(input.Question),
		Answer:   strings.TrimSpace(input.Answer),
	}
	if err := s.faqs.Create(ctx, faq); err != nil {
		return nil, apperrors.MapError(err)
	}
	_ = s.cache.Delete(ctx, faqListCacheKey)
	return faq, nil
}

// Update edits an entry and invalidates the cached list.
func (s *FAQService) Update(ctx context.Context, actor *domain.Profile, id string, input FAQInput) (*domain.FAQ, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewAccessDenied("only admins may manage faqs")
	}
	if err := validateFAQ(input); err != nil {
		return nil, err
	}
	faq, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	faq.Question = strings.TrimSpace(input.Question)
	faq.Answer = strings.TrimSpace(input.Answer)
	if err := s.faqs.Update(ctx, faq); err != nil {
		return nil, apperrors.MapError(err)
	}
	_ = s.cache.Delete(ctx, faqListCacheKey)
	return faq, nil
}

// Delete removes an entry and invalidates the cached list.
func (s *FAQService) Delete(ctx context.Context, actor *domain.Profile, id string) error {
	if actor.Role != domain.RoleAdmin {
		return apperrors.NewAccessDenied("only admins may manage faqs")
	}
	if err := s.faqs.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("faq")
		}
		return apperrors.MapError(err)
	}
	_ = s.cache.Delete(ctx, faqListCacheKey)
	return nil
}

func validateFAQ(input FAQInput) error {
	if strings.TrimSpace(input.Question) == "" {
		return apperrors.NewInvalidInput("question is required")
	}
	if strings.TrimSpace(input.Answer) == "" {
		return apperrors.NewInvalidInput("answer is required")
	}
	return nil
}
