package store

import (
	"context"
	"database/sql"
	"fmt"

	"video-order-service/internal/apperrors"
	"video-order-service/internal/models"
)

// CreateOrder creates a finalized video order
func (s *Store) CreateOrder(ctx context.Context, order *models.VideoOrder) error {
	query := `
		INSERT INTO video_orders (activity_description, duration_seconds, style, additional_notes, image_count, price, transaction_id, status, progress, video_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, order, query,
		order.ActivityDescription, order.DurationSeconds, order.Style,
		order.AdditionalNotes, order.ImageCount, order.Price,
		order.TransactionID, order.Status, order.Progress, order.VideoURL)
}

// GetOrderByID retrieves a video order by ID
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.VideoOrder, error) {
	var order models.VideoOrder
	err := s.db.GetContext(ctx, &order, "SELECT * FROM video_orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %d: %w", id, apperrors.ErrOrderNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderGeneration updates generation status and progress for an order
func (s *Store) UpdateOrderGeneration(ctx context.Context, orderID int64, status string, progress int) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE video_orders SET status = $1, progress = $2, updated_at = NOW() WHERE id = $3",
		status, progress, orderID)
	return err
}

// SetOrderVideoURL records the rendered video location for a completed order
func (s *Store) SetOrderVideoURL(ctx context.Context, orderID int64, videoURL string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE video_orders SET video_url = $1, updated_at = NOW() WHERE id = $2",
		videoURL, orderID)
	return err
}

// CreatePayment creates a redacted payment row for a finalized order
func (s *Store) CreatePayment(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (order_id, method, transaction_id, card_last4, wallet_email, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, payment, query,
		payment.OrderID, payment.Method, payment.TransactionID,
		payment.CardLast4, payment.WalletEmail, payment.Amount)
}

// GetPaymentByOrderID retrieves the payment for an order
func (s *Store) GetPaymentByOrderID(ctx context.Context, orderID int64) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.GetContext(ctx, &payment,
		"SELECT * FROM payments WHERE order_id = $1 ORDER BY created_at DESC LIMIT 1", orderID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment for order %d: %w", orderID, apperrors.ErrOrderNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
