// Package payment validates payment attempts and simulates the gateway
// confirmation step. The production gateway slots in behind the same
// contract: inputs, result shape and the redaction rule stay stable.
package payment

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"video-order-service/internal/apperrors"
	"video-order-service/internal/broker"
	"video-order-service/internal/models"
	"video-order-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	whitespaceRe = regexp.MustCompile(`\s`)
)

// Result is the outcome of a confirmed payment attempt.
type Result struct {
	Record models.PaymentRecord
	Err    error
}

// Validator checks payment-method fields and runs the simulated
// confirmation delay for accepted attempts.
type Validator struct {
	mu        sync.Mutex
	sleeper   Sleeper
	delay     time.Duration
	publisher *broker.EventPublisher
	logger    *zap.Logger
	inflight  map[string]context.CancelFunc
}

// NewValidator creates a validator. A nil sleeper gets the real timer;
// publisher may be nil when no broker is wired.
func NewValidator(delay time.Duration, sleeper Sleeper, publisher *broker.EventPublisher) *Validator {
	if sleeper == nil {
		sleeper = TimerSleeper{}
	}
	return &Validator{
		sleeper:   sleeper,
		delay:     delay,
		publisher: publisher,
		logger:    util.GetLogger(),
		inflight:  make(map[string]context.CancelFunc),
	}
}

// Validate checks the attempt's method-specific fields. A field failure
// returns immediately with the attempt marked FAILED and retryable. An
// accepted attempt moves to VALIDATING and resolves asynchronously after
// the confirmation delay; the result arrives on the returned channel.
// Calling Validate again while a confirmation is outstanding is rejected.
func (v *Validator) Validate(ctx context.Context, attempt *models.PaymentAttempt, amount int64) (<-chan Result, error) {
	ctx, span := util.StartSpan(ctx, "Validator.Validate")
	defer span.End()

	v.mu.Lock()
	defer v.mu.Unlock()

	if attempt.ID == "" {
		attempt.ID = uuid.New().String()
	}
	if _, ok := v.inflight[attempt.ID]; ok || attempt.Status == models.PaymentStatusValidating {
		return nil, apperrors.ErrValidationInFlight
	}

	util.PaymentAttemptsTotal.Inc()

	if verr := checkFields(attempt); verr != nil {
		attempt.Status = models.PaymentStatusFailed
		util.PaymentFailedTotal.WithLabelValues(verr.Field).Inc()
		v.logger.Warn("Payment attempt rejected",
			zap.String("attempt_id", attempt.ID),
			zap.String("field", verr.Field))
		v.publishFailed(ctx, attempt, verr.Error())
		return nil, verr
	}

	attempt.Status = models.PaymentStatusValidating

	confirmCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	v.inflight[attempt.ID] = cancel

	results := make(chan Result, 1)
	go v.confirm(confirmCtx, attempt, amount, results)

	return results, nil
}

// Cancel aborts an outstanding confirmation. Pending and Validating
// attempts end up Cancelled, never dangling.
func (v *Validator) Cancel(attemptID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	cancel, ok := v.inflight[attemptID]
	if ok {
		cancel()
	}
	return ok
}

func (v *Validator) confirm(ctx context.Context, attempt *models.PaymentAttempt, amount int64, results chan<- Result) {
	start := time.Now()
	err := v.sleeper.Sleep(ctx, v.delay)

	v.mu.Lock()
	delete(v.inflight, attempt.ID)

	if err != nil {
		attempt.Status = models.PaymentStatusCancelled
		v.mu.Unlock()

		util.PaymentCancelledTotal.Inc()
		v.logger.Info("Payment attempt cancelled", zap.String("attempt_id", attempt.ID))
		results <- Result{Err: apperrors.ErrPaymentCancelled}
		return
	}

	txID := fmt.Sprintf("TXN-%s", strings.ToUpper(uuid.New().String()[:8]))
	attempt.Status = models.PaymentStatusSucceeded
	attempt.TransactionID = txID
	record := redact(attempt, amount)
	v.mu.Unlock()

	util.PaymentSuccessTotal.Inc()
	util.PaymentConfirmLatency.Observe(time.Since(start).Seconds())

	v.logger.Info("Payment succeeded",
		zap.String("attempt_id", attempt.ID),
		zap.String("tx_id", txID))

	if v.publisher != nil {
		event := &models.PaymentSucceededEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypePaymentSucceeded,
				Timestamp: time.Now(),
			},
			AttemptID:     attempt.ID,
			Method:        string(attempt.Method),
			TransactionID: txID,
			Amount:        amount,
		}
		if err := v.publisher.PublishPaymentSucceeded(ctx, event); err != nil {
			v.logger.Error("Failed to publish PaymentSucceeded event", zap.Error(err))
		}
	}

	results <- Result{Record: record}
}

func (v *Validator) publishFailed(ctx context.Context, attempt *models.PaymentAttempt, reason string) {
	if v.publisher == nil {
		return
	}
	event := &models.PaymentFailedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypePaymentFailed,
			Timestamp: time.Now(),
		},
		AttemptID: attempt.ID,
		Method:    string(attempt.Method),
		Reason:    reason,
	}
	if err := v.publisher.PublishPaymentFailed(ctx, event); err != nil {
		v.logger.Error("Failed to publish PaymentFailed event", zap.Error(err))
	}
}

// checkFields applies the method-specific rules in order; the first
// failure wins.
func checkFields(attempt *models.PaymentAttempt) *apperrors.ValidationError {
	switch attempt.Method {
	case models.MethodCard:
		return checkCard(attempt.Card)
	case models.MethodWallet:
		return checkWallet(attempt.Wallet)
	default:
		return &apperrors.ValidationError{Field: "method", Message: "unknown payment method"}
	}
}

func checkCard(card *models.CardDetails) *apperrors.ValidationError {
	if card == nil || card.Number == "" {
		return &apperrors.ValidationError{Field: "card_number", Message: "card number is required"}
	}
	if card.Holder == "" {
		return &apperrors.ValidationError{Field: "card_holder", Message: "card holder name is required"}
	}
	if card.Expiry == "" {
		return &apperrors.ValidationError{Field: "card_expiry", Message: "expiry date is required"}
	}
	if card.CVV == "" {
		return &apperrors.ValidationError{Field: "card_cvv", Message: "cvv is required"}
	}
	if !cardNumberRe.MatchString(normalizeCardNumber(card.Number)) {
		return &apperrors.ValidationError{Field: "card_number", Message: "card number must be 16 digits"}
	}
	if !expiryRe.MatchString(card.Expiry) {
		return &apperrors.ValidationError{Field: "card_expiry", Message: "expiry date must be in MM/YY format"}
	}
	if !cvvRe.MatchString(card.CVV) {
		return &apperrors.ValidationError{Field: "card_cvv", Message: "cvv must be 3-4 digits"}
	}
	return nil
}

func checkWallet(wallet *models.WalletDetails) *apperrors.ValidationError {
	if wallet == nil || wallet.Email == "" {
		return &apperrors.ValidationError{Field: "wallet_email", Message: "wallet email is required"}
	}
	if !emailRe.MatchString(wallet.Email) {
		return &apperrors.ValidationError{Field: "wallet_email", Message: "must be a valid email address"}
	}
	return nil
}

// redact builds the record kept after validation. The transaction id is
// the only linkage; raw card and wallet values are dropped.
func redact(attempt *models.PaymentAttempt, amount int64) models.PaymentRecord {
	record := models.PaymentRecord{
		Method:        attempt.Method,
		TransactionID: attempt.TransactionID,
		Amount:        amount,
	}

	switch attempt.Method {
	case models.MethodCard:
		digits := normalizeCardNumber(attempt.Card.Number)
		if len(digits) >= 4 {
			record.CardLast4 = digits[len(digits)-4:]
		}
	case models.MethodWallet:
		record.WalletEmail = maskEmail(attempt.Wallet.Email)
	}

	return record
}

func normalizeCardNumber(number string) string {
	return whitespaceRe.ReplaceAllString(number, "")
}

func maskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
