// Package cache provides result caching for idempotent media lookups.
//
// The in-memory store bounds both memory use and staleness:
//
//   - LRU eviction at a fixed capacity (default 500 entries)
//   - Per-entry TTL (default 1 hour), checked lazily on access and
//     reclaimed actively by Prune
//   - Per-instance hit/miss/eviction/expiration counters; two stores
//     never share counters
//   - Prometheus metrics for observability
//
// A Redis-backed store implements the same Store interface for
// deployments that share cache state across instances.
//
// # Basic Usage
//
//	store := cache.NewMemory(cache.DefaultMemoryConfig())
//
//	key := cache.SearchKey{Kind: "movie", Query: "The Matrix"}.String()
//
//	data, err := store.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch from upstream, then:
//		_ = store.Set(ctx, key, fetched)
//	}
//
// # Key Normalization
//
// The store performs no domain-specific parsing; callers fold
// semantically equivalent requests into one fingerprint first. SearchKey
// does this for search requests: queries are trimmed and lower-cased, so
// "The Matrix" and "the matrix " share one entry.
//
// # Accounting
//
// Snapshot returns lifetime counters plus current size. For any sequence
// of lookups, Hits+Misses equals the number of Get calls made, and
// HitRate is Hits/(Hits+Misses). Clear drops entries but keeps counters.
//
// # Metrics
//
//   - bridge_cache_hits_total{layer} - Cache hits
//   - bridge_cache_misses_total{layer} - Cache misses
//   - bridge_cache_evictions_total{layer} - LRU evictions
//   - bridge_cache_expirations_total{layer} - TTL removals
//   - bridge_cache_entries{layer} - Resident entries
//   - bridge_cache_errors_total{operation} - Backend errors
package cache
