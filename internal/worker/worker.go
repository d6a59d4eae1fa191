package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"video-order-service/internal/broker"
	"video-order-service/internal/models"
	"video-order-service/internal/service"
	"video-order-service/internal/util"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// generationSteps is the simulated render pipeline, in order.
var generationSteps = []struct {
	status   string
	progress int
}{
	{models.GenerationStatusProcessing, 20},
	{models.GenerationStatusProcessing, 40},
	{models.GenerationStatusRendering, 60},
	{models.GenerationStatusRendering, 80},
	{models.GenerationStatusComplete, 100},
}

// GenerationWorker consumes OrderSubmitted events and simulates video
// generation, publishing progress events as the render advances. In
// production the render farm replaces this worker behind the same events.
type GenerationWorker struct {
	consumer  *broker.Consumer
	publisher *broker.EventPublisher
	tick      time.Duration
	logger    *zap.Logger
}

// NewGenerationWorker creates a new generation worker
func NewGenerationWorker(consumer *broker.Consumer, publisher *broker.EventPublisher, tick time.Duration) *GenerationWorker {
	return &GenerationWorker{
		consumer:  consumer,
		publisher: publisher,
		tick:      tick,
		logger:    util.GetLogger(),
	}
}

// Start starts the worker
func (w *GenerationWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting generation worker")

	return w.consumer.StartConsuming(ctx, func(ctx context.Context, msg kafka.Message) error {
		var baseEvent models.BaseEvent
		if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
			w.logger.Error("Failed to unmarshal event", zap.Error(err))
			return err
		}

		if baseEvent.EventType != models.EventTypeOrderSubmitted {
			return nil
		}

		var event models.OrderSubmittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			w.logger.Error("Failed to unmarshal OrderSubmitted event", zap.Error(err))
			return err
		}

		w.logger.Info("Starting video generation", zap.Int64("order_id", event.OrderID))
		return w.generate(ctx, event.OrderID)
	})
}

// Stop stops the worker
func (w *GenerationWorker) Stop() error {
	w.logger.Info("Stopping generation worker")
	return w.consumer.Close()
}

func (w *GenerationWorker) generate(ctx context.Context, orderID int64) error {
	for _, step := range generationSteps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.tick):
		}

		event := &models.GenerationProgressEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeGenerationProgress,
				Timestamp: time.Now(),
			},
			OrderID:  orderID,
			Status:   step.status,
			Progress: step.progress,
		}
		if step.status == models.GenerationStatusComplete {
			event.VideoURL = fmt.Sprintf("https://cdn.example.com/orders/%d.mp4", orderID)
		}

		if err := w.publisher.PublishGenerationProgress(ctx, event); err != nil {
			w.logger.Error("Failed to publish GenerationProgress event",
				zap.Int64("order_id", orderID), zap.Error(err))
			return err
		}
	}

	return nil
}

// StatusWorker applies generation progress events to stored orders.
type StatusWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewStatusWorker creates a new status worker
func NewStatusWorker(consumer *broker.Consumer, orders *service.OrderService) *StatusWorker {
	eventHandler := broker.NewEventHandler()
	eventHandler.OnGenerationProgress(orders.HandleGenerationProgress)

	return &StatusWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
		logger:       util.GetLogger(),
	}
}

// Start starts the worker
func (w *StatusWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting status worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *StatusWorker) Stop() error {
	w.logger.Info("Stopping status worker")
	return w.consumer.Close()
}
