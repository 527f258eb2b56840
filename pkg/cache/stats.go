package cache

// Stats is a snapshot of a single store's lifetime counters. Each store
// instance owns its own counters; two stores never share them.
type Stats struct {
	// Hits is the number of lookups that returned a resident, fresh entry.
	Hits uint64 `json:"hits"`

	// Misses is the number of lookups that found nothing usable.
	Misses uint64 `json:"misses"`

	// Evictions is the number of entries removed to make room at capacity.
	Evictions uint64 `json:"evictions"`

	// Expirations is the number of entries removed because their TTL passed,
	// whether lazily on access or by an explicit prune pass.
	Expirations uint64 `json:"expirations"`

	// Size is the number of entries resident at snapshot time.
	Size int `json:"size"`
}

// HitRate returns hits / (hits + misses), or 0 when no lookups have occurred.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
