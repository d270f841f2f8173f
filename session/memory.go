package session

import (
	"context"
	"fmt"
	"sync"

	delegate "github.com/armatrix/delegate-go"
)

// MemoryStore is an in-memory session store backed by a sync.RWMutex-protected
// map. Sessions are deep-copied on save and load to prevent external mutation.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*delegate.Session
}

var _ delegate.SessionStore = (*MemoryStore)(nil)

// NewMemoryStore creates a new empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*delegate.Session),
	}
}

// Save persists a session by deep-copying it into the store.
func (m *MemoryStore) Save(_ context.Context, s *delegate.Session) error {
	if s == nil {
		return fmt.Errorf("session is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.ID] = deepCopy(s)
	return nil
}

// Load retrieves a session by ID. Returns a deep copy so callers cannot
// mutate store state. Returns an error if the session is not found.
func (m *MemoryStore) Load(_ context.Context, id string) (*delegate.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	return deepCopy(s), nil
}

// Delete removes a session by ID. Returns an error if not found.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session not found: %s", id)
	}
	delete(m.sessions, id)
	return nil
}

// List returns all sessions in the store as deep copies.
func (m *MemoryStore) List(_ context.Context) ([]*delegate.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*delegate.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		result = append(result, deepCopy(s))
	}
	return result, nil
}

// deepCopy creates a deep copy of a session.
func deepCopy(s *delegate.Session) *delegate.Session {
	turns := make([]delegate.Turn, len(s.Turns))
	copy(turns, s.Turns)

	return &delegate.Session{
		ID:        s.ID,
		Turns:     turns,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
