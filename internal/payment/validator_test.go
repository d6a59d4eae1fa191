package payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"video-order-service/internal/apperrors"
	"video-order-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instantSleeper completes the confirmation delay immediately.
type instantSleeper struct{}

func (instantSleeper) Sleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}

// gatedSleeper blocks until released or cancelled.
type gatedSleeper struct {
	release chan struct{}
}

func (s *gatedSleeper) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-s.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func cardAttempt() *models.PaymentAttempt {
	return &models.PaymentAttempt{
		Method: models.MethodCard,
		Card: &models.CardDetails{
			Number: "4242 4242 4242 4242",
			Holder: "A B",
			Expiry: "12/30",
			CVV:    "123",
		},
		Status: models.PaymentStatusPending,
	}
}

func awaitResult(t *testing.T, results <-chan Result) Result {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for payment result")
		return Result{}
	}
}

func TestValidateCardSuccess(t *testing.T) {
	v := NewValidator(time.Second, instantSleeper{}, nil)
	attempt := cardAttempt()

	results, err := v.Validate(context.Background(), attempt, 7)
	require.NoError(t, err)

	res := awaitResult(t, results)
	require.NoError(t, res.Err)

	assert.Equal(t, models.PaymentStatusSucceeded, attempt.Status)
	assert.True(t, strings.HasPrefix(res.Record.TransactionID, "TXN-"))
	assert.Equal(t, attempt.TransactionID, res.Record.TransactionID)
	assert.Equal(t, models.MethodCard, res.Record.Method)
	assert.Equal(t, int64(7), res.Record.Amount)
	assert.Equal(t, "4242", res.Record.CardLast4)
	assert.Empty(t, res.Record.WalletEmail)
}

func TestTransactionIDsUnique(t *testing.T) {
	v := NewValidator(0, instantSleeper{}, nil)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		attempt := cardAttempt()
		results, err := v.Validate(context.Background(), attempt, 5)
		require.NoError(t, err)

		res := awaitResult(t, results)
		require.NoError(t, res.Err)
		assert.False(t, seen[res.Record.TransactionID], "duplicate tx id %s", res.Record.TransactionID)
		seen[res.Record.TransactionID] = true
	}
}

func TestValidateCardFieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.CardDetails)
		wantField string
	}{
		{"missing number", func(c *models.CardDetails) { c.Number = "" }, "card_number"},
		{"missing holder", func(c *models.CardDetails) { c.Holder = "" }, "card_holder"},
		{"missing expiry", func(c *models.CardDetails) { c.Expiry = "" }, "card_expiry"},
		{"missing cvv", func(c *models.CardDetails) { c.CVV = "" }, "card_cvv"},
		{"short number", func(c *models.CardDetails) { c.Number = "123" }, "card_number"},
		{"non-digit number", func(c *models.CardDetails) { c.Number = "4242 4242 4242 424x" }, "card_number"},
		{"bad expiry", func(c *models.CardDetails) { c.Expiry = "12/2030" }, "card_expiry"},
		{"bad cvv", func(c *models.CardDetails) { c.CVV = "12" }, "card_cvv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(0, instantSleeper{}, nil)
			attempt := cardAttempt()
			tt.mutate(attempt.Card)

			results, err := v.Validate(context.Background(), attempt, 5)
			assert.Nil(t, results)

			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, models.PaymentStatusFailed, attempt.Status)
			assert.Empty(t, attempt.TransactionID)
		})
	}
}

func TestMissingFieldsFirstFailureWins(t *testing.T) {
	v := NewValidator(0, instantSleeper{}, nil)
	attempt := &models.PaymentAttempt{
		Method: models.MethodCard,
		Card:   &models.CardDetails{},
	}

	_, err := v.Validate(context.Background(), attempt, 5)
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "card_number", ve.Field)
}

func TestValidateWallet(t *testing.T) {
	v := NewValidator(0, instantSleeper{}, nil)

	bad := &models.PaymentAttempt{
		Method: models.MethodWallet,
		Wallet: &models.WalletDetails{Email: "not-an-email"},
	}
	_, err := v.Validate(context.Background(), bad, 5)
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "wallet_email", ve.Field)
	assert.Equal(t, models.PaymentStatusFailed, bad.Status)

	good := &models.PaymentAttempt{
		Method: models.MethodWallet,
		Wallet: &models.WalletDetails{Email: "a@b.com"},
	}
	results, err := v.Validate(context.Background(), good, 5)
	require.NoError(t, err)

	res := awaitResult(t, results)
	require.NoError(t, res.Err)
	assert.NotEmpty(t, res.Record.TransactionID)
	assert.Equal(t, "a***@b.com", res.Record.WalletEmail)
	assert.Empty(t, res.Record.CardLast4)
}

func TestUnknownMethodRejected(t *testing.T) {
	v := NewValidator(0, instantSleeper{}, nil)
	attempt := &models.PaymentAttempt{Method: models.PaymentMethod("crypto")}

	_, err := v.Validate(context.Background(), attempt, 5)
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "method", ve.Field)
}

func TestReentrantValidateRejected(t *testing.T) {
	gate := &gatedSleeper{release: make(chan struct{})}
	v := NewValidator(time.Minute, gate, nil)
	attempt := cardAttempt()

	results, err := v.Validate(context.Background(), attempt, 5)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusValidating, attempt.Status)

	_, err = v.Validate(context.Background(), attempt, 5)
	assert.ErrorIs(t, err, apperrors.ErrValidationInFlight)

	close(gate.release)
	res := awaitResult(t, results)
	require.NoError(t, res.Err)
	assert.Equal(t, models.PaymentStatusSucceeded, attempt.Status)
}

func TestCancelDuringValidation(t *testing.T) {
	gate := &gatedSleeper{release: make(chan struct{})}
	v := NewValidator(time.Minute, gate, nil)
	attempt := cardAttempt()

	results, err := v.Validate(context.Background(), attempt, 5)
	require.NoError(t, err)

	require.True(t, v.Cancel(attempt.ID))

	res := awaitResult(t, results)
	assert.ErrorIs(t, res.Err, apperrors.ErrPaymentCancelled)
	assert.Equal(t, models.PaymentStatusCancelled, attempt.Status)
	assert.Empty(t, attempt.TransactionID)

	// attempt is no longer in flight; a retry is allowed
	attempt.Status = models.PaymentStatusPending
	_, err = v.Validate(context.Background(), attempt, 5)
	require.NoError(t, err)
}

func TestCancelUnknownAttempt(t *testing.T) {
	v := NewValidator(0, instantSleeper{}, nil)
	assert.False(t, v.Cancel("nope"))
}
