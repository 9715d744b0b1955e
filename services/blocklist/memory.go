package blocklist

import (
	"sync"
	"time"
)

// MemoryStore implements Store with an in-process map. Used when no memcache
// address is configured; markers then only live for the current run.
type MemoryStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		expires: make(map[string]time.Time),
	}
}

// Blocked reports whether the host has a live block marker
func (m *MemoryStore) Blocked(host string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deadline, ok := m.expires[host]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(m.expires, host)
		return false, nil
	}
	return true, nil
}

// Block sets a block marker for the host
func (m *MemoryStore) Block(host string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expires[host] = time.Now().Add(ttl)
	return nil
}
