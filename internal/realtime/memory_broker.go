package realtime

import (
	"context"
	"sync"

	"github.com/helpdesk-kit/support-service/internal/domain"
)

// MemoryBroker is an in-process Broker for tests and single-instance runs.
type MemoryBroker struct {
	mu   sync.Mutex
	subs map[string]map[chan domain.Comment]struct{}
}

// NewMemoryBroker constructs the broker.
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string]map[chan domain.Comment]struct{})}
}

// Publish delivers to current subscribers of the ticket; slow subscribers
// with a full buffer are skipped rather than blocking the publisher.
func (b *MemoryBroker) Publish(ctx context.Context, comment *domain.Comment) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[comment.TicketID] {
		select {
		case ch <- *comment:
		default:
		}
	}
	return nil
}

// Subscribe registers a channel for the ticket.
func (b *MemoryBroker) Subscribe(ctx context.Context, ticketID string) (<-chan domain.Comment, func(), error) {
	ch := make(chan domain.Comment, 8)
	b.mu.Lock()
	if b.subs[ticketID] == nil {
		b.subs[ticketID] = make(map[chan domain.Comment]struct{})
	}
	b.subs[ticketID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[ticketID], ch)
			if len(b.subs[ticketID]) == 0 {
				delete(b.subs, ticketID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, release, nil
}
