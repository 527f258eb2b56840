package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Backend layer labels.
const (
	layerMemory = "memory"
	layerRedis  = "redis"
)

var (
	// cacheHits tracks cache hits by backend layer
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_cache_hits_total",
			Help: "Total number of result cache hits",
		},
		[]string{"layer"}, // "memory", "redis"
	)

	// cacheMisses tracks cache misses by backend layer
	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_cache_misses_total",
			Help: "Total number of result cache misses",
		},
		[]string{"layer"},
	)

	// cacheEvictions tracks LRU evictions at capacity
	cacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_cache_evictions_total",
			Help: "Total number of entries evicted to make room at capacity",
		},
		[]string{"layer"},
	)

	// cacheExpirations tracks TTL removals (lazy and pruned)
	cacheExpirations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_cache_expirations_total",
			Help: "Total number of entries removed because their TTL passed",
		},
		[]string{"layer"},
	)

	// cacheEntries tracks the current number of resident entries
	cacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bridge_cache_entries",
			Help: "Current number of resident cache entries",
		},
		[]string{"layer"},
	)

	// cacheErrors tracks backend operation errors
	cacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_cache_errors_total",
			Help: "Total number of cache backend operation errors",
		},
		[]string{"operation"}, // "get", "set", "clear"
	)
)
