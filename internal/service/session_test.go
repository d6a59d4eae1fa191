package service

import (
	"context"
	"testing"
	"time"

	"video-order-service/internal/apperrors"
	"video-order-service/internal/models"
	"video-order-service/internal/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	m := NewSessionManager(nil, time.Minute)
	ctx := context.Background()

	session := m.Open(ctx)
	require.NotEmpty(t, session.ID)
	assert.Equal(t, wizard.StepDetails, session.Wizard.Step())
	assert.Equal(t, int64(5), session.Draft.Price())

	got, err := m.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)

	m.Discard(ctx, session.ID)
	_, err = m.Get(ctx, session.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestSessionSummaryAndAttempt(t *testing.T) {
	m := NewSessionManager(nil, time.Minute)
	session := m.Open(context.Background())

	_, ok := session.Summary()
	assert.False(t, ok)
	assert.Nil(t, session.Attempt())

	session.SetSummary(models.OrderSummary{Price: 7, ImageCount: 3})
	summary, ok := session.Summary()
	require.True(t, ok)
	assert.Equal(t, int64(7), summary.Price)

	attempt := &models.PaymentAttempt{Method: models.MethodCard}
	session.SetAttempt(attempt)
	assert.Same(t, attempt, session.Attempt())
}

func TestSessionsAreIndependent(t *testing.T) {
	m := NewSessionManager(nil, time.Minute)
	ctx := context.Background()

	a := m.Open(ctx)
	b := m.Open(ctx)
	require.NotEqual(t, a.ID, b.ID)

	require.NoError(t, a.Draft.SetDuration(35))
	assert.Equal(t, int64(10), a.Draft.Price())
	assert.Equal(t, int64(5), b.Draft.Price())
}
