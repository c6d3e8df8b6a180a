package auth

import (
	"sync"
	"time"
)

// CacheConfig configures the secure auth cache.
type CacheConfig struct {
	// TTL is how long a validated principal is trusted, measured from
	// insertion. Expiry is independent of access so revoked credentials
	// are re-checked within a bounded window.
	// Default: 5 minutes
	TTL time.Duration
}

// SecureCache maps (session id, credential fingerprint) to a validated
// principal. Entries under the same session id but different fingerprints
// are independent, so a credential rotation invalidates trust without an
// explicit delete.
//
// Contract:
// - Concurrency: safe for arbitrary concurrent readers and writers.
// - Errors: Get never fails; it reports ("", false) on miss or expiry.
// - Clear is safe to call concurrently with in-flight Get/Set.
type SecureCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
}

type cacheKey struct {
	sessionID string
	credHash  string
}

type cacheEntry struct {
	principal string
	expiresAt time.Time
}

// NewSecureCache creates a secure auth cache.
func NewSecureCache(config CacheConfig) *SecureCache {
	if config.TTL <= 0 {
		config.TTL = 5 * time.Minute
	}
	return &SecureCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     config.TTL,
	}
}

// Get returns the trusted principal for the key, or ("", false) on miss or
// expiry. Expired entries are removed lazily.
func (c *SecureCache) Get(sessionID, credHash string) (string, bool) {
	if sessionID == "" || credHash == "" {
		return "", false
	}
	key := cacheKey{sessionID: sessionID, credHash: credHash}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if time.Now().After(entry.expiresAt) {
		c.deleteExpired(key)
		return "", false
	}
	return entry.principal, true
}

// deleteExpired removes the entry only if it is still expired when the write
// lock is held. A Set racing between the read and the delete refreshes the
// entry, and that fresh entry must survive.
func (c *SecureCache) deleteExpired(key cacheKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || !time.Now().After(entry.expiresAt) {
		return
	}
	delete(c.entries, key)
}

// Set stores a validated principal under the key. The TTL clock starts now.
func (c *SecureCache) Set(sessionID, principal, credHash string) {
	if sessionID == "" || credHash == "" {
		return
	}
	key := cacheKey{sessionID: sessionID, credHash: credHash}

	c.mu.Lock()
	c.entries[key] = cacheEntry{
		principal: principal,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Clear drops every entry. Used on process shutdown.
func (c *SecureCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[cacheKey]cacheEntry)
	c.mu.Unlock()
}

// Len returns the number of entries, including any not yet lazily expired.
func (c *SecureCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
