package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/helpdesk-kit/support-service/internal/config"
	"github.com/helpdesk-kit/support-service/internal/events"
)

// NotificationService turns domain events into outbound notifications. The
// email and webhook senders are stubs that log the delivery; the queue and
// worker are real so a sender can be swapped in without touching callers.
type NotificationService struct {
	cfg    config.NotificationConfig
	logger *zap.Logger
	queue  chan events.Event
}

// NewNotificationService constructs the service.
func NewNotificationService(cfg config.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		cfg:    cfg,
		logger: logger,
		queue:  make(chan events.Event, 256),
	}
}

// RegisterHandlers subscribes the service to the events it notifies on.
func (s *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	enqueue := func(ctx context.Context, event events.Event) error {
		select {
		case s.queue <- event:
		default:
			s.logger.Warn("notification queue full, dropping event",
				zap.String("event_id", event.ID),
				zap.String("type", string(event.Type)))
		}
		return nil
	}
	dispatcher.Subscribe(events.EventTicketCreated, enqueue)
	dispatcher.Subscribe(events.EventTicketUpdated, enqueue)
	dispatcher.Subscribe(events.EventTicketAssigned, enqueue)
	dispatcher.Subscribe(events.EventCommentAdded, enqueue)
}

// Queue exposes the event stream for the worker.
func (s *NotificationService) Queue() <-chan events.Event {
	return s.queue
}

// Deliver sends the notifications for one event.
func (s *NotificationService) Deliver(ctx context.Context, event events.Event) {
	s.sendEmail(event)
	if s.cfg.WebhookURL != "" {
		s.sendWebhook(event)
	}
}

func (s *NotificationService) sendEmail(event events.Event) {
	s.logger.Info("notification email",
		zap.String("from", s.cfg.EmailFrom),
		zap.String("type", string(event.Type)),
		zap.String("ticket_id", event.TicketID))
}

func (s *NotificationService) sendWebhook(event events.Event) {
	s.logger.Info("notification webhook",
		zap.String("url", s.cfg.WebhookURL),
		zap.String("type", string(event.Type)),
		zap.String("ticket_id", event.TicketID))
}
