package service

import (
	"context"
	"fmt"
	"time"

	"video-order-service/internal/broker"
	"video-order-service/internal/models"
	"video-order-service/internal/redisclient"
	"video-order-service/internal/store"
	"video-order-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService is the order-finalization boundary: it receives the frozen
// OrderSummary plus the PaymentRecord, persists the finalized order and
// hands it off to video generation.
type OrderService struct {
	store     *store.Store
	redis     *redisclient.Client
	publisher *broker.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store *store.Store, redis *redisclient.Client, publisher *broker.EventPublisher) *OrderService {
	return &OrderService{
		store:     store,
		redis:     redis,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// FinalizeOrder persists a paid order, caches its initial generation
// status and publishes OrderSubmitted for the generation worker.
func (s *OrderService) FinalizeOrder(ctx context.Context, summary models.OrderSummary, record models.PaymentRecord) (*models.VideoOrder, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.FinalizeOrder")
	defer span.End()

	order := &models.VideoOrder{
		ActivityDescription: summary.ActivityDescription,
		DurationSeconds:     summary.DurationSeconds,
		Style:               string(summary.Style),
		AdditionalNotes:     summary.AdditionalNotes,
		ImageCount:          summary.ImageCount,
		Price:               summary.Price,
		TransactionID:       record.TransactionID,
		Status:              models.GenerationStatusProcessing,
		Progress:            0,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	payment := &models.Payment{
		OrderID:       order.ID,
		Method:        string(record.Method),
		TransactionID: record.TransactionID,
		CardLast4:     record.CardLast4,
		WalletEmail:   record.WalletEmail,
		Amount:        record.Amount,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment record: %w", err)
	}

	if err := s.redis.SetGenerationStatus(ctx, order.ID, order.Status, order.Progress); err != nil {
		s.logger.Warn("Failed to cache generation status", zap.Error(err))
	}

	util.OrdersFinalizedTotal.Inc()
	s.logger.Info("Order finalized",
		zap.Int64("order_id", order.ID),
		zap.String("tx_id", record.TransactionID),
		zap.Int64("price", order.Price))

	event := &models.OrderSubmittedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderSubmitted,
			Timestamp: time.Now(),
		},
		OrderID:         order.ID,
		DurationSeconds: order.DurationSeconds,
		Style:           order.Style,
		ImageCount:      order.ImageCount,
		Price:           order.Price,
		TransactionID:   order.TransactionID,
	}
	if err := s.publisher.PublishOrderSubmitted(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderSubmitted event", zap.Error(err))
	}

	return order, nil
}

// GetOrderStatus retrieves an order, overlaying the fresher cached
// generation status when present.
func (s *OrderService) GetOrderStatus(ctx context.Context, orderID int64) (*models.VideoOrder, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	status, progress, ok, err := s.redis.GetGenerationStatus(ctx, orderID)
	if err != nil {
		s.logger.Warn("Failed to read cached generation status",
			zap.Int64("order_id", orderID), zap.Error(err))
		return order, nil
	}
	if ok {
		order.Status = status
		order.Progress = progress
	}

	return order, nil
}

// GetPayment returns the redacted payment recorded for a finalized order.
func (s *OrderService) GetPayment(ctx context.Context, orderID int64) (*models.Payment, error) {
	return s.store.GetPaymentByOrderID(ctx, orderID)
}

// HandleGenerationProgress applies a generation progress event to the
// order. Duplicate deliveries are detected through the processed-events
// table and skipped.
func (s *OrderService) HandleGenerationProgress(ctx context.Context, event *models.GenerationProgressEvent) error {
	ctx, span := util.StartSpan(ctx, "OrderService.HandleGenerationProgress")
	defer span.End()

	processed, err := s.store.IsEventProcessed(ctx, event.EventID)
	if err != nil {
		return fmt.Errorf("failed to check event processed: %w", err)
	}
	if processed {
		s.logger.Info("Event already processed", zap.String("event_id", event.EventID))
		return nil
	}

	if err := s.store.UpdateOrderGeneration(ctx, event.OrderID, event.Status, event.Progress); err != nil {
		return fmt.Errorf("failed to update order generation: %w", err)
	}

	// terminal statuses live in the order row; the cache only bridges
	// the polling gap while generation is running
	if event.Status == models.GenerationStatusComplete || event.Status == models.GenerationStatusFailed {
		if err := s.redis.ClearGenerationStatus(ctx, event.OrderID); err != nil {
			s.logger.Warn("Failed to clear generation status cache", zap.Error(err))
		}
	} else if err := s.redis.SetGenerationStatus(ctx, event.OrderID, event.Status, event.Progress); err != nil {
		s.logger.Warn("Failed to cache generation status", zap.Error(err))
	}

	switch event.Status {
	case models.GenerationStatusComplete:
		if event.VideoURL != "" {
			if err := s.store.SetOrderVideoURL(ctx, event.OrderID, event.VideoURL); err != nil {
				s.logger.Error("Failed to set video url", zap.Error(err))
			}
		}
		util.GenerationCompletedTotal.Inc()
		s.logger.Info("Video generation complete", zap.Int64("order_id", event.OrderID))

	case models.GenerationStatusFailed:
		util.GenerationFailedTotal.Inc()
		s.logger.Warn("Video generation failed", zap.Int64("order_id", event.OrderID))
	}

	if err := s.store.MarkEventProcessed(ctx, event.EventID, event.EventType); err != nil {
		s.logger.Error("Failed to mark event processed", zap.Error(err))
	}

	return nil
}
