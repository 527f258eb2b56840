// Package config loads bridge configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all bridge configuration loaded from environment variables.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Cache  CacheConfig
	Batch  BatchConfig
	Trakt  TraktConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Backend       string        `envconfig:"CACHE_BACKEND" default:"memory"` // memory or redis
	Capacity      int           `envconfig:"CACHE_CAPACITY" default:"500"`
	TTL           time.Duration `envconfig:"CACHE_TTL" default:"1h"`
	PruneInterval time.Duration `envconfig:"CACHE_PRUNE_INTERVAL" default:"5m"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// BatchConfig holds bulk execution settings.
type BatchConfig struct {
	MaxConcurrency  int           `envconfig:"BATCH_MAX_CONCURRENCY" default:"5"`
	BatchSize       int           `envconfig:"BATCH_SIZE" default:"10"`
	InterBatchDelay time.Duration `envconfig:"BATCH_INTER_BATCH_DELAY" default:"100ms"`
}

// TraktConfig holds upstream API settings.
type TraktConfig struct {
	BaseURL  string        `envconfig:"TRAKT_BASE_URL" default:"https://api.trakt.tv"`
	ClientID string        `envconfig:"TRAKT_CLIENT_ID" default:""`
	Timeout  time.Duration `envconfig:"TRAKT_TIMEOUT" default:"15s"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
