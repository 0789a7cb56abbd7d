package dto

import (
	"time"

	"github.com/helpdesk-kit/support-service/internal/domain"
)

// FAQRequest is the create/update payload for an FAQ entry.
type FAQRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQResponse is the wire form of an FAQ entry.
type FAQResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFAQResponse maps an entry.
func NewFAQResponse(faq *domain.FAQ) *FAQResponse {
	return &FAQResponse{
		ID:        faq.ID,
		Question:  faq.Question,
		Answer:    faq.Answer,
		CreatedAt: faq.CreatedAt,
		UpdatedAt: faq.UpdatedAt,
	}
}

// NewFAQListResponse maps a slice of entries.
func NewFAQListResponse(faqs []domain.FAQ) []FAQResponse {
	result := make([]FAQResponse, 0, len(faqs))
	for i := range faqs {
		result = append(result, *NewFAQResponse(&faqs[i]))
	}
	return result
}
