// Package realtime fans comment inserts out to live subscribers of a
// ticket thread. The contract is keyed by ticket id, never a global
// broadcast: consumers subscribe on entering a ticket view and release the
// subscription on leaving.
package realtime

import (
	"context"

	"github.com/helpdesk-kit/support-service/internal/domain"
)

// Broker delivers comments to subscribers of a single ticket's thread.
// Publish is fire-and-forget from the inserting operation's point of view:
// a delivery failure must never fail the insert that triggered it.
type Broker interface {
	Publish(ctx context.Context, comment *domain.Comment) error
	// Subscribe returns a channel of comments for the ticket and a release
	// function. The channel closes after release.
	Subscribe(ctx context.Context, ticketID string) (<-chan domain.Comment, func(), error)
}
