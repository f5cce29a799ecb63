package session

import (
	"context"
	"sync"
)

// Store is the per-visitor key/value backing for session state.
// An absent key reads as the empty string, not an error.
type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
}

// Session is an explicit capability handle for one visitor's session.
// Operations that may run without a session context accept a nil *Session.
type Session struct {
	id    string
	store Store
}

func New(store Store, id string) *Session {
	return &Session{id: id, store: store}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Get(ctx context.Context, key string) (string, error) {
	return s.store.Get(ctx, s.id, key)
}

func (s *Session) Set(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.id, key, value)
}

// MemoryStore keeps session values in process memory; used in tests and
// when no Redis is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, sessionID, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[sessionID][key], nil
}

func (m *MemoryStore) Set(_ context.Context, sessionID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[sessionID] == nil {
		m.sessions[sessionID] = make(map[string]string)
	}
	m.sessions[sessionID][key] = value
	return nil
}
