//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedisContainer starts a Redis container and returns a client
func setupRedisContainer(t *testing.T) (*redis.Client, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	endpoint, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get Redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}

	cleanup := func() {
		client.Close()
		redisContainer.Terminate(ctx)
	}

	return client, cleanup
}

func TestRedis_Integration_NativeExpiry(t *testing.T) {
	client, cleanup := setupRedisContainer(t)
	defer cleanup()

	store := NewRedis(client, 1*time.Second)
	ctx := context.Background()

	if err := store.Set(ctx, "short-lived", []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, err := store.Get(ctx, "short-lived"); err != nil {
		t.Fatalf("Get before expiry failed: %v", err)
	}

	time.Sleep(1500 * time.Millisecond)

	if _, err := store.Get(ctx, "short-lived"); err != ErrCacheMiss {
		t.Errorf("Get after native expiry: expected ErrCacheMiss, got %v", err)
	}
}

func TestRedis_Integration_SnapshotSize(t *testing.T) {
	client, cleanup := setupRedisContainer(t)
	defer cleanup()

	store := NewRedis(client, time.Minute)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		if err := store.Set(ctx, k, []byte(k)); err != nil {
			t.Fatalf("Set(%q) failed: %v", k, err)
		}
	}

	if got := store.Snapshot().Size; got != 3 {
		t.Errorf("Snapshot().Size = %d, want 3", got)
	}
}
