// Package worker hosts the background consumers that drain service queues.
package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/helpdesk-kit/support-service/internal/service"
)

// StartNotificationWorker drains the notification queue until the context
// is cancelled.
func StartNotificationWorker(ctx context.Context, notifications *service.NotificationService, logger *zap.Logger) {
	go func() {
		logger.Info("notification worker started")
		for {
			select {
			case <-ctx.Done():
				logger.Info("notification worker stopped")
				return
			case event := <-notifications.Queue():
				notifications.Deliver(ctx, event)
			}
		}
	}()
}
