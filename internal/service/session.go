package service

import (
	"context"
	"sync"
	"time"

	"video-order-service/internal/apperrors"
	"video-order-service/internal/draft"
	"video-order-service/internal/models"
	"video-order-service/internal/redisclient"
	"video-order-service/internal/util"
	"video-order-service/internal/wizard"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DraftSession ties one customer's draft, wizard and payment attempt
// together. One draft at a time; the session is discarded on submission
// or abandonment.
type DraftSession struct {
	ID        string
	Draft     *draft.Store
	Wizard    *wizard.Controller
	CreatedAt time.Time

	mu      sync.Mutex
	summary *models.OrderSummary
	attempt *models.PaymentAttempt
}

// SetSummary stores the frozen order summary produced by submission.
func (s *DraftSession) SetSummary(summary models.OrderSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = &summary
}

// Summary returns the submitted summary, or false before submission.
func (s *DraftSession) Summary() (models.OrderSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary == nil {
		return models.OrderSummary{}, false
	}
	return *s.summary, true
}

// SetAttempt stores the active payment attempt.
func (s *DraftSession) SetAttempt(attempt *models.PaymentAttempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt = attempt
}

// Attempt returns the active payment attempt, if any.
func (s *DraftSession) Attempt() *models.PaymentAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}

// SessionManager tracks open draft sessions. Redis keeps a liveness key
// per session so abandoned drafts age out; the manager itself is the
// in-process owner of the draft state.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*DraftSession
	redis    *redisclient.Client
	ttl      time.Duration
	logger   *zap.Logger
}

// NewSessionManager creates a session manager. redis may be nil in tests.
func NewSessionManager(redis *redisclient.Client, ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*DraftSession),
		redis:    redis,
		ttl:      ttl,
		logger:   util.GetLogger(),
	}
}

// Open creates a draft session with default wizard state.
func (m *SessionManager) Open(ctx context.Context) *DraftSession {
	d := draft.NewStore()
	session := &DraftSession{
		ID:        uuid.New().String(),
		Draft:     d,
		Wizard:    wizard.NewController(d, m.logger),
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	if m.redis != nil {
		if err := m.redis.TouchDraftSession(ctx, session.ID, m.ttl); err != nil {
			m.logger.Warn("Failed to set session TTL", zap.Error(err))
		}
	}

	util.DraftsStartedTotal.Inc()
	m.logger.Info("Draft session opened", zap.String("session_id", session.ID))
	return session
}

// Get returns an open session and refreshes its TTL.
func (m *SessionManager) Get(ctx context.Context, id string) (*DraftSession, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}

	if m.redis != nil {
		alive, err := m.redis.DraftSessionAlive(ctx, id)
		if err != nil {
			m.logger.Warn("Failed to check session liveness", zap.Error(err))
		} else if !alive {
			m.mu.Lock()
			delete(m.sessions, id)
			m.mu.Unlock()
			m.logger.Info("Draft session expired", zap.String("session_id", id))
			return nil, apperrors.ErrSessionNotFound
		}
		if err := m.redis.TouchDraftSession(ctx, id, m.ttl); err != nil {
			m.logger.Warn("Failed to refresh session TTL", zap.Error(err))
		}
	}

	return session, nil
}

// Discard drops a session on submission or abandonment.
func (m *SessionManager) Discard(ctx context.Context, id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	if m.redis != nil {
		if err := m.redis.DeleteDraftSession(ctx, id); err != nil {
			m.logger.Warn("Failed to delete session key", zap.Error(err))
		}
	}

	m.logger.Info("Draft session discarded", zap.String("session_id", id))
}
