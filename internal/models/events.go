package models

import "time"

// Event types
const (
	EventTypeOrderSubmitted     = "ORDER_SUBMITTED"
	EventTypePaymentSucceeded   = "PAYMENT_SUCCEEDED"
	EventTypePaymentFailed      = "PAYMENT_FAILED"
	EventTypeGenerationProgress = "GENERATION_PROGRESS"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderSubmittedEvent published when a paid order is handed to generation
type OrderSubmittedEvent struct {
	BaseEvent
	OrderID         int64  `json:"order_id"`
	DurationSeconds int    `json:"duration_seconds"`
	Style           string `json:"style"`
	ImageCount      int    `json:"image_count"`
	Price           int64  `json:"price"`
	TransactionID   string `json:"transaction_id"`
}

// PaymentSucceededEvent published when a payment attempt confirms
type PaymentSucceededEvent struct {
	BaseEvent
	AttemptID     string `json:"attempt_id"`
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
}

// PaymentFailedEvent published when a payment attempt is rejected
type PaymentFailedEvent struct {
	BaseEvent
	AttemptID string `json:"attempt_id"`
	Method    string `json:"method"`
	Reason    string `json:"reason"`
}

// GenerationProgressEvent published as video generation advances
type GenerationProgressEvent struct {
	BaseEvent
	OrderID  int64  `json:"order_id"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	VideoURL string `json:"video_url,omitempty"`
}
