// trakt-bridge exposes a media-tracking API as JSON tool endpoints with
// caching, bounded-concurrency bulk operations, and rate-limit awareness.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/showbridge/trakt-bridge/internal/config"
	"github.com/showbridge/trakt-bridge/internal/tools"
	"github.com/showbridge/trakt-bridge/pkg/batch"
	"github.com/showbridge/trakt-bridge/pkg/cache"
	"github.com/showbridge/trakt-bridge/pkg/logging"
	"github.com/showbridge/trakt-bridge/pkg/trakt"
)

func main() {
	cfg := config.MustLoad()

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
	})
	logger := logging.NewLogger("main")
	logger.Info().Str("addr", cfg.Server.Address()).Msg("Starting trakt-bridge")

	store := buildStore(cfg)

	traktCfg := trakt.DefaultConfig(cfg.Trakt.ClientID)
	traktCfg.BaseURL = cfg.Trakt.BaseURL
	traktCfg.Timeout = cfg.Trakt.Timeout
	traktCfg.Store = store

	client, err := trakt.New(traktCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create upstream client")
	}

	batchCfg := batch.Config{
		MaxConcurrency:  cfg.Batch.MaxConcurrency,
		BatchSize:       cfg.Batch.BatchSize,
		InterBatchDelay: cfg.Batch.InterBatchDelay,
	}
	if err := batchCfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid batch configuration")
	}

	handler := tools.New(client, store, batchCfg)
	router := tools.NewRouter(handler)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	go runJanitor(janitorCtx, store, cfg.Cache.PruneInterval)

	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down")

	stopJanitor()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown error")
	}

	logger.Info().Msg("Server stopped")
}

// buildStore creates the configured cache backend. A failed Redis ping
// falls back to the in-memory store so the bridge still comes up.
func buildStore(cfg *config.Config) cache.Store {
	logger := logging.NewLogger("main")

	memory := func() cache.Store {
		return cache.NewMemory(cache.MemoryConfig{
			Capacity: cfg.Cache.Capacity,
			TTL:      cfg.Cache.TTL,
		})
	}

	if cfg.Cache.Backend != "redis" {
		logger.Info().Int("capacity", cfg.Cache.Capacity).Dur("ttl", cfg.Cache.TTL).Msg("Using in-memory cache")
		return memory()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddress(),
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory cache")
		return memory()
	}

	logger.Info().Str("addr", cfg.Cache.RedisAddress()).Msg("Using Redis cache")
	return cache.NewRedis(client, cfg.Cache.TTL)
}

// runJanitor periodically removes expired entries from the store.
func runJanitor(ctx context.Context, store cache.Store, interval time.Duration) {
	if interval <= 0 {
		return
	}
	logger := logging.NewLogger("janitor")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := store.Prune(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("Cache prune failed")
				continue
			}
			if removed > 0 {
				logger.Debug().Int("removed", removed).Msg("Pruned expired cache entries")
			}
		}
	}
}
