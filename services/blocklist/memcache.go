package blocklist

import (
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

const keyPrefix = "blocked:"

// MemcacheStore implements Store using memcache
type MemcacheStore struct {
	client *memcache.Client
}

// NewMemcacheStore creates a new memcache-backed store
func NewMemcacheStore(serverAddr string) *MemcacheStore {
	return &MemcacheStore{
		client: memcache.New(serverAddr),
	}
}

// Blocked reports whether the host has a live block marker
func (m *MemcacheStore) Blocked(host string) (bool, error) {
	_, err := m.client.Get(keyPrefix + host)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Block sets a block marker for the host
func (m *MemcacheStore) Block(host string, ttl time.Duration) error {
	return m.client.Set(&memcache.Item{
		Key:        keyPrefix + host,
		Value:      []byte("1"),
		Expiration: int32(ttl.Seconds()),
	})
}
