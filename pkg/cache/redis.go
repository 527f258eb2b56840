package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces bridge entries so Clear never touches keys
// owned by other applications sharing the instance.
const redisKeyPrefix = "bridge:cache:"

// Redis is a Store backed by a shared Redis instance. Expiry is delegated
// to Redis native TTLs, so Prune is a no-op and the Expirations counter
// stays zero; hit/miss counters reflect lookups made through this instance.
type Redis struct {
	client *redis.Client
	ttl    time.Duration

	mu    sync.Mutex
	stats Stats
}

// NewRedis creates a Redis-backed store. A zero or negative TTL falls back
// to DefaultTTL.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the payload for key.
// Returns ErrCacheMiss if the key doesn't exist or Redis already expired it.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			r.count(func(s *Stats) { s.Misses++ })
			cacheMisses.WithLabelValues(layerRedis).Inc()
			return nil, ErrCacheMiss
		}
		cacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		cacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("unmarshal cache entry: %w", err)
	}

	r.count(func(s *Stats) { s.Hits++ })
	cacheHits.WithLabelValues(layerRedis).Inc()

	return entry.Value, nil
}

// Set stores the payload for key with the store's TTL. Redis removes the
// key itself once the TTL elapses.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrInvalidKey
	}

	now := time.Now()
	entry := Entry{
		Value:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		cacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := r.client.Set(ctx, redisKeyPrefix+key, data, r.ttl).Err(); err != nil {
		cacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Prune is a no-op for the Redis backend; expiry is native.
func (r *Redis) Prune(ctx context.Context) (int, error) {
	return 0, nil
}

// Snapshot returns lookup counters observed through this instance. Size is
// the number of bridge-owned keys currently resident.
func (r *Redis) Snapshot() Stats {
	r.mu.Lock()
	s := r.stats
	r.mu.Unlock()

	// Size is best effort; a scan failure leaves it at zero.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	keys, err := r.scanKeys(ctx)
	if err == nil {
		s.Size = len(keys)
	}
	return s
}

// Clear removes all bridge-owned entries. Counters survive.
func (r *Redis) Clear(ctx context.Context) error {
	keys, err := r.scanKeys(ctx)
	if err != nil {
		cacheErrors.WithLabelValues("clear").Inc()
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		cacheErrors.WithLabelValues("clear").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// scanKeys lists all keys under the bridge prefix.
func (r *Redis) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *Redis) count(fn func(*Stats)) {
	r.mu.Lock()
	fn(&r.stats)
	r.mu.Unlock()
}
