package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DraftsStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "drafts_started_total",
		Help: "Total number of draft sessions opened",
	})

	OrdersSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Total number of order drafts submitted for payment",
	})

	OrdersFinalizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_finalized_total",
		Help: "Total number of orders finalized after successful payment",
	})

	PaymentAttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_attempts_total",
		Help: "Total number of payment attempts",
	})

	PaymentSuccessTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_success_total",
		Help: "Total number of successful payments",
	})

	PaymentFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_failed_total",
		Help: "Total number of failed payment attempts",
	}, []string{"field"})

	PaymentCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_cancelled_total",
		Help: "Total number of cancelled payment attempts",
	})

	PaymentConfirmLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "payment_confirm_latency_seconds",
		Help:    "Latency from payment validation to confirmation",
		Buckets: prometheus.DefBuckets,
	})

	GenerationCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "generation_completed_total",
		Help: "Total number of videos generated to completion",
	})

	GenerationFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "generation_failed_total",
		Help: "Total number of video generations that failed",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
