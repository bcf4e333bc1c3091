package session

import (
	"context"
	"sync"
)

// MemoryStore keeps the session in process memory. It has no cross-process
// visibility and forgets everything on exit.
type MemoryStore struct {
	mu        sync.RWMutex
	current   Session
	listeners listeners
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(_ context.Context) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Session{Token: m.current.Token, User: cloneProfile(m.current.User)}
}

func (m *MemoryStore) Set(ctx context.Context, s Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.current = Session{Token: s.Token, User: cloneProfile(s.User)}
	m.mu.Unlock()

	m.listeners.emit(m.Get(ctx))
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.current = Session{}
	m.mu.Unlock()

	m.listeners.emit(Session{})
	return nil
}

func (m *MemoryStore) Subscribe(fn func(Session)) func() {
	return m.listeners.add(fn)
}
