package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/helpdesk-kit/support-service/internal/domain"
)

// commentEnvelope is the wire form carried over the Redis channel.
type commentEnvelope struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Author    *struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role"`
	} `json:"author,omitempty"`
}

// RedisBroker implements Broker over Redis pub/sub, one channel per ticket.
// Works across replicas: any instance inserting a comment reaches
// subscribers connected to any other instance.
type RedisBroker struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisBroker constructs the broker.
func NewRedisBroker(client *redis.Client, logger *zap.Logger) *RedisBroker {
	return &RedisBroker{client: client, logger: logger}
}

func channelFor(ticketID string) string {
	return "ticket:" + ticketID + ":comments"
}

// Publish sends the comment to the ticket's channel.
func (b *RedisBroker) Publish(ctx context.Context, comment *domain.Comment) error {
	env := toEnvelope(comment)
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, channelFor(comment.TicketID), payload).Err()
}

// Subscribe opens a per-ticket subscription. The returned release function
// closes the underlying pub/sub and the channel.
func (b *RedisBroker) Subscribe(ctx context.Context, ticketID string) (<-chan domain.Comment, func(), error) {
	pubsub := b.client.Subscribe(ctx, channelFor(ticketID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	out := make(chan domain.Comment, 8)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var env commentEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				b.logger.Warn("malformed comment payload", zap.Error(err))
				continue
			}
			out <- fromEnvelope(&env)
		}
	}()

	release := func() {
		_ = pubsub.Close()
	}
	return out, release, nil
}

func toEnvelope(comment *domain.Comment) commentEnvelope {
	env := commentEnvelope{
		ID:        comment.ID,
		TicketID:  comment.TicketID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Author != nil {
		env.Author = &struct {
			ID        string `json:"id"`
			Email     string `json:"email"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Role      string `json:"role"`
		}{
			ID:        comment.Author.ID,
			Email:     comment.Author.Email,
			FirstName: comment.Author.FirstName,
			LastName:  comment.Author.LastName,
			Role:      string(comment.Author.Role),
		}
	}
	return env
}

func fromEnvelope(env *commentEnvelope) domain.Comment {
	comment := domain.Comment{
		ID:        env.ID,
		TicketID:  env.TicketID,
		UserID:    env.UserID,
		Content:   env.Content,
		CreatedAt: env.CreatedAt,
	}
	if env.Author != nil {
		comment.Author = &domain.Profile{
			ID:        env.Author.ID,
			Email:     env.Author.Email,
			FirstName: env.Author.FirstName,
			LastName:  env.Author.LastName,
			Role:      domain.Role(env.Author.Role),
		}
	}
	return comment
}
