package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/events"
)

// EventPublisher forwards serialized events to an external channel.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// AuditService records catalog events in the log and, when a publisher is
// configured, on a pub/sub channel.
type AuditService struct {
	dispatcher events.Dispatcher
	publisher  EventPublisher
	channel    string
	logger     *zap.Logger
}

// NewAuditService creates the service. publisher may be nil.
func NewAuditService(dispatcher events.Dispatcher, publisher EventPublisher, channel string, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		publisher:  publisher,
		channel:    channel,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to every catalog event.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllTypes {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

func (a *AuditService) handle(ctx context.Context, event events.Event) error {
	a.logger.Info("catalog event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int64("entity_id", event.EntityID),
		zap.Int64("actor_user_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))

	if a.publisher == nil || a.channel == "" {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := a.publisher.Publish(ctx, a.channel, body); err != nil {
		return fmt.Errorf("publish event to %s: %w", a.channel, err)
	}
	return nil
}
