package checkpoint

import (
	"context"
	"sync"
)

// MemoryStore keeps completion marks in process memory. It satisfies the
// same contract as the Redis store but marks do not survive a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	done map[string]struct{}
}

// NewMemoryStore creates an in-memory checkpoint store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{done: make(map[string]struct{})}
}

func (m *MemoryStore) Done(_ context.Context, target string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.done[target]
	return ok, nil
}

func (m *MemoryStore) MarkDone(_ context.Context, target string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.done[target] = struct{}{}
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
