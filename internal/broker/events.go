package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"video-order-service/internal/models"
	"video-order-service/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderSubmitted publishes an OrderSubmitted event
func (ep *EventPublisher) PublishOrderSubmitted(ctx context.Context, event *models.OrderSubmittedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishPaymentSucceeded publishes a PaymentSucceeded event
func (ep *EventPublisher) PublishPaymentSucceeded(ctx context.Context, event *models.PaymentSucceededEvent) error {
	key := fmt.Sprintf("payment-%s", event.AttemptID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishPaymentFailed publishes a PaymentFailed event
func (ep *EventPublisher) PublishPaymentFailed(ctx context.Context, event *models.PaymentFailedEvent) error {
	key := fmt.Sprintf("payment-%s", event.AttemptID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishGenerationProgress publishes a GenerationProgress event
func (ep *EventPublisher) PublishGenerationProgress(ctx context.Context, event *models.GenerationProgressEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes incoming events to registered handlers
type EventHandler struct {
	logger               *zap.Logger
	onGenerationProgress func(context.Context, *models.GenerationProgressEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{logger: util.GetLogger()}
}

// OnGenerationProgress registers a handler for GenerationProgress events
func (eh *EventHandler) OnGenerationProgress(handler func(context.Context, *models.GenerationProgressEvent) error) {
	eh.onGenerationProgress = handler
}

// HandleMessage routes messages to the appropriate handler
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	eh.logger.Debug("Handling event",
		zap.String("type", baseEvent.EventType),
		zap.String("id", baseEvent.EventID))

	switch baseEvent.EventType {
	case models.EventTypeGenerationProgress:
		if eh.onGenerationProgress != nil {
			var event models.GenerationProgressEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal GenerationProgress event: %w", err)
			}
			return eh.onGenerationProgress(ctx, &event)
		}

	default:
		eh.logger.Debug("Unhandled event type", zap.String("type", baseEvent.EventType))
	}

	return nil
}
