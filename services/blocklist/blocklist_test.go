package blocklist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	blocked, err := store.Blocked("www.farfetch.com")
	assert.NoError(t, err)
	assert.False(t, blocked)

	err = store.Block("www.farfetch.com", time.Minute)
	assert.NoError(t, err)

	blocked, err = store.Blocked("www.farfetch.com")
	assert.NoError(t, err)
	assert.True(t, blocked)

	// Other hosts are unaffected
	blocked, err = store.Blocked("other.example.com")
	assert.NoError(t, err)
	assert.False(t, blocked)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()

	err := store.Block("www.farfetch.com", 10*time.Millisecond)
	assert.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	blocked, err := store.Blocked("www.farfetch.com")
	assert.NoError(t, err)
	assert.False(t, blocked)
}

func TestMemcacheStore(t *testing.T) {
	store := NewMemcacheStore("localhost:11211")

	if err := store.Block("test_host", time.Minute); err != nil {
		t.Skip("Memcache is not available, skipping test")
	}

	blocked, err := store.Blocked("test_host")
	assert.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = store.Blocked("test_host_missing")
	assert.NoError(t, err)
	assert.False(t, blocked)
}
