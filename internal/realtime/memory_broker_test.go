package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/helpdesk-kit/support-service/internal/domain"
)

func TestMemoryBrokerDeliversPerTicket(t *testing.T) {
	ctx := context.Background()
	broker := NewMemoryBroker()

	chA, releaseA, err := broker.Subscribe(ctx, "ticket-a")
	assert.NoError(t, err)
	defer releaseA()

	chB, releaseB, err := broker.Subscribe(ctx, "ticket-b")
	assert.NoError(t, err)
	defer releaseB()

	err = broker.Publish(ctx, &domain.Comment{ID: "c-1", TicketID: "ticket-a", Content: "hello"})
	assert.NoError(t, err)

	select {
	case got := <-chA:
		assert.Equal(t, "c-1", got.ID)
	case <-time.After(time.Second):
		t.Fatal("expected delivery on ticket-a subscription")
	}

	select {
	case got := <-chB:
		t.Fatalf("unexpected delivery on ticket-b: %v", got)
	default:
	}
}

func TestMemoryBrokerReleaseClosesChannel(t *testing.T) {
	ctx := context.Background()
	broker := NewMemoryBroker()

	ch, release, err := broker.Subscribe(ctx, "ticket-a")
	assert.NoError(t, err)

	release()
	release() // idempotent

	_, open := <-ch
	assert.False(t, open)

	// Publishing after release must not panic.
	assert.NoError(t, broker.Publish(ctx, &domain.Comment{TicketID: "ticket-a"}))
}
