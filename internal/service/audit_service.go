package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sigma-platform/authentication/internal/events"
)

// AuditService writes lifecycle events to the structured log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventAdminRegistered, a.handleAdminEvent)
	a.dispatcher.Subscribe(events.EventAdminDeleted, a.handleAdminEvent)
	a.dispatcher.Subscribe(events.EventTableSessionCreated, a.handleTableSessionEvent)
	a.dispatcher.Subscribe(events.EventTableSessionDeactivated, a.handleTableSessionEvent)
	a.dispatcher.Subscribe(events.EventTableSessionCheckoutChanged, a.handleTableSessionEvent)
}

func (a *AuditService) handleAdminEvent(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
		zap.String("admin_email", event.Subject),
		zap.Time("at", event.Timestamp))
	return nil
}

func (a *AuditService) handleTableSessionEvent(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
		zap.String("session_id", event.Subject),
		zap.Any("payload", event.Payload),
		zap.Time("at", event.Timestamp))
	return nil
}
