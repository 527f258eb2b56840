package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Default sizing for the in-memory store. Deployments tune both through
// configuration.
const (
	// DefaultCapacity is the maximum number of resident entries.
	DefaultCapacity = 500

	// DefaultTTL is how long an entry stays fresh after insertion.
	DefaultTTL = 1 * time.Hour
)

// Memory is a bounded in-memory Store with LRU eviction and per-entry TTL.
// It is safe for concurrent use by multiple goroutines.
type Memory struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration

	// order tracks recency: front is most recently used, back is the
	// eviction candidate. Elements hold *memoryEntry.
	order   *list.List
	entries map[string]*list.Element

	stats Stats

	// now is swapped out in tests to control expiry.
	now func() time.Time
}

// memoryEntry pairs a key with its cached payload so eviction from the
// list tail can also remove the map slot.
type memoryEntry struct {
	key   string
	entry Entry
}

// MemoryConfig holds the in-memory store configuration.
type MemoryConfig struct {
	// Capacity is the maximum number of resident entries (default 500).
	Capacity int

	// TTL is the freshness window for each entry (default 1h).
	TTL time.Duration
}

// DefaultMemoryConfig returns the default in-memory store configuration.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Capacity: DefaultCapacity,
		TTL:      DefaultTTL,
	}
}

// NewMemory creates a new in-memory store. Zero or negative config fields
// fall back to the defaults.
func NewMemory(cfg MemoryConfig) *Memory {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	return &Memory{
		capacity: cfg.Capacity,
		ttl:      cfg.TTL,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
		now:      time.Now,
	}
}

// Get retrieves the payload for key.
// Returns ErrCacheMiss if the key is absent or its entry has expired; an
// expired entry is removed as a side effect. A hit marks the entry as most
// recently used.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.entries[key]
	if !ok {
		m.stats.Misses++
		cacheMisses.WithLabelValues(layerMemory).Inc()
		return nil, ErrCacheMiss
	}

	me := elem.Value.(*memoryEntry)
	if m.now().After(me.entry.ExpiresAt) {
		// Lazy expiry
		m.removeElement(elem)
		m.stats.Expirations++
		m.stats.Misses++
		cacheExpirations.WithLabelValues(layerMemory).Inc()
		cacheMisses.WithLabelValues(layerMemory).Inc()
		return nil, ErrCacheMiss
	}

	m.order.MoveToFront(elem)
	m.stats.Hits++
	cacheHits.WithLabelValues(layerMemory).Inc()

	return me.entry.Value, nil
}

// Set inserts or overwrites the payload for key with a fresh CreatedAt and
// ExpiresAt. When the store is at capacity and key is new, the least
// recently used entry is evicted first.
func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrInvalidKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	entry := Entry{
		Value:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if elem, ok := m.entries[key]; ok {
		elem.Value.(*memoryEntry).entry = entry
		m.order.MoveToFront(elem)
		return nil
	}

	if m.order.Len() >= m.capacity {
		if tail := m.order.Back(); tail != nil {
			m.removeElement(tail)
			m.stats.Evictions++
			cacheEvictions.WithLabelValues(layerMemory).Inc()
		}
	}

	elem := m.order.PushFront(&memoryEntry{key: key, entry: entry})
	m.entries[key] = elem
	cacheEntries.WithLabelValues(layerMemory).Set(float64(m.order.Len()))

	return nil
}

// Prune scans all entries and removes those whose TTL has passed. It exists
// so memory is reclaimed even for keys nobody re-queries; run it on a
// periodic cadence.
func (m *Memory) Prune(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0

	for elem := m.order.Front(); elem != nil; {
		next := elem.Next()
		if now.After(elem.Value.(*memoryEntry).entry.ExpiresAt) {
			m.removeElement(elem)
			m.stats.Expirations++
			cacheExpirations.WithLabelValues(layerMemory).Inc()
			removed++
		}
		elem = next
	}

	return removed, nil
}

// Snapshot returns the store's lifetime counters plus current size.
func (m *Memory) Snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.stats
	s.Size = m.order.Len()
	return s
}

// Clear removes all entries. Counters are lifetime metrics and survive.
func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.order.Init()
	m.entries = make(map[string]*list.Element)
	cacheEntries.WithLabelValues(layerMemory).Set(0)
	return nil
}

// Len returns the current number of resident entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// removeElement drops an element from both the recency list and the key map.
// Caller must hold m.mu.
func (m *Memory) removeElement(elem *list.Element) {
	m.order.Remove(elem)
	delete(m.entries, elem.Value.(*memoryEntry).key)
	cacheEntries.WithLabelValues(layerMemory).Set(float64(m.order.Len()))
}
