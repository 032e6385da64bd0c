package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storefront-be/internal/kv"
	"storefront-be/internal/logger"
	"storefront-be/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserKey is where a session's signed-in user lives in the mirror.
const UserKey = "fd_user"

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    kv.Store
	newID    func() string
}

func NewManager(store kv.Store) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		newID:    uuid.NewString,
	}
}

func (m *Manager) scoped(id string) kv.Store {
	return kv.Prefixed(m.store, "session/"+id)
}

// Create opens a fresh guest session.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := newSession(m.newID())
	m.sessions[s.ID] = s
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Resume returns the live session for id or rebuilds it from the mirror, the way a
// page reload brings the shopper back. An empty id opens a new session.
func (m *Manager) Resume(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return m.Create(), nil
	}

	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		s = newSession(id)
		m.sessions[id] = s
	}
	m.mu.Unlock()

	if ok {
		return s, nil
	}
	if err := m.Restore(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Login signs u into s and persists the identity.
func (m *Manager) Login(ctx context.Context, s *Session, u user.User) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "session"),
		zap.String("method", "Login"),
	)
	if u.ID == "" {
		return ErrInvalidUser
	}

	if err := kv.SetJSON(ctx, m.scoped(s.ID), UserKey, u); err != nil {
		log.Error("failed to persist user", zap.String("session_id", s.ID), zap.Error(err))
		return fmt.Errorf("persist session user: %w", err)
	}
	s.setUser(&u)

	log.Info("session signed in", zap.String("session_id", s.ID), zap.String("user_id", u.ID))
	return nil
}

// Restore reloads the persisted user, if any, into s.
func (m *Manager) Restore(ctx context.Context, s *Session) error {
	var u user.User
	found, err := kv.GetJSON(ctx, m.scoped(s.ID), UserKey, &u)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to restore session user",
			zap.String("layer", "session"),
			zap.String("session_id", s.ID),
			zap.Error(err),
		)
		return fmt.Errorf("restore session user: %w", err)
	}
	if found {
		s.setUser(&u)
	}
	return nil
}

// Logout drops the user, empties the cart and removes the persisted identity.
func (m *Manager) Logout(ctx context.Context, s *Session) error {
	s.mu.Lock()
	s.user = nil
	s.cart.Clear()
	s.mu.Unlock()

	err := m.scoped(s.ID).Delete(ctx, UserKey)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("clear session user: %w", err)
	}

	logger.FromCtx(ctx).Info("session signed out",
		zap.String("layer", "session"),
		zap.String("session_id", s.ID),
	)
	return nil
}
