package quota

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps counters in process. It is used in tests and when no
// shared backend is configured.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[int64]Counter
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[int64]Counter)}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, userID int64) (Counter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.counters[userID]
	if !ok {
		now := time.Now()
		c = Counter{UserID: userID, CreatedAt: now, UpdatedAt: now}
		m.counters[userID] = c
	}
	return c, nil
}

// CompareAndSwap implements Store.
func (m *MemoryStore) CompareAndSwap(_ context.Context, old, next Counter) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.counters[old.UserID]
	if !ok || current.Version != old.Version {
		return false, nil
	}
	next.UserID = old.UserID
	next.Version = old.Version + 1
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = time.Now()
	m.counters[old.UserID] = next
	return true, nil
}
