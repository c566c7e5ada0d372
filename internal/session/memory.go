package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Sessions are stored encoded
// so callers never share mutable state across requests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

var (
	_ Store   = (*MemoryStore)(nil)
	_ Sweeper = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

// Get returns the session with id.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	entry, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || m.now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	return decode(entry.data)
}

// Save stores s, replacing any previous version.
func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.sessions[s.ID] = memoryEntry{data: data, expiresAt: s.ExpiresAt}
	m.mu.Unlock()
	return nil
}

// Delete removes the session with id. Deleting a missing session is not an error.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// DeleteExpired removes every expired session and returns how many were removed.
func (m *MemoryStore) DeleteExpired(ctx context.Context) (int64, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, entry := range m.sessions {
		if now.After(entry.expiresAt) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
