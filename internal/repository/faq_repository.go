package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesk-kit/support-service/internal/domain"
)

// FAQRepository persists admin-authored FAQ entries.
type FAQRepository interface {
	Create(ctx context.Context, faq *domain.FAQ) error
	Update(ctx context.Context, faq *domain.FAQ) error
	GetByID(ctx context.Context, id string) (*domain.FAQ, error)
	List(ctx context.Context) ([]domain.FAQ, error)
	Delete(ctx context.Context, id string) error
}

type faqRepository struct {
	pool *pgxpool.Pool
}

// NewFAQRepository constructs repository.
func NewFAQRepository(pool *pgxpool.Pool) FAQRepository {
	return &faqRepository{pool: pool}
}

func (r *faqRepository) Create(ctx context.Context, faq *domain.FAQ) error {
	const query = `
        INSERT INTO faqs (question, answer)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, faq.Question, faq.Answer).
		Scan(&faq.ID, &faq.CreatedAt, &faq.UpdatedAt)
}

func (r *faqRepository) Update(ctx context.Context, faq *domain.FAQ) error {
	const query = `
        UPDATE faqs SET question=$1, answer=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query, faq.Question, faq.Answer, faq.ID).
		Scan(&faq.UpdatedAt)
}

func (r *faqRepository) GetByID(ctx context.Context, id string) (*domain.FAQ, error) {
	const query = `
        SELECT id, question, answer, created_at, updated_at
        FROM faqs WHERE id=$1`
	var faq domain.FAQ
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&faq.ID,
		&faq.Question,
		&faq.Answer,
		&faq.CreatedAt,
		&faq.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &faq, nil
}

func (r *faqRepository) List(ctx context.Context) ([]domain.FAQ, error) {
	const query = `
        SELECT id, question, answer, created_at, updated_at
        FROM faqs ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FAQ
	for rows.Next() {
		var faq domain.FAQ
		if err := rows.Scan(
			&faq.ID,
			&faq.Question,
			&faq.Answer,
			&faq.CreatedAt,
			&faq.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, faq)
	}
	return result, rows.Err()
}

func (r *faqRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM faqs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
