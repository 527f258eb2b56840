package cache

import (
	"time"
)

// Entry represents a cached lookup result. The value payload is opaque to
// the cache; callers marshal and unmarshal it themselves.
type Entry struct {
	// Value is the cached result payload
	Value []byte `json:"value"`

	// CreatedAt is when the entry was inserted. Never mutated.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is CreatedAt plus the configured TTL
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired returns true if the entry has passed its expiry time.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.ExpiresAt)
	if ttl < 0 {
		return 0
	}
	return ttl
}
