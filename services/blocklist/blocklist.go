// Package blocklist tracks origins that are actively blocking us, so a batch
// stops hammering a host that has already answered with persistent 403s.
package blocklist

import "time"

// Store represents a block marker store with TTL semantics
type Store interface {
	// Blocked reports whether the host currently has a block marker
	Blocked(host string) (bool, error)

	// Block sets a block marker for the host that expires after ttl
	Block(host string, ttl time.Duration) error
}
