// Package trakt provides the HTTP client for the upstream media-tracking
// API, with rate limit gating, result caching for searches, retries and
// error classification.
package trakt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/showbridge/trakt-bridge/pkg/cache"
	"github.com/showbridge/trakt-bridge/pkg/logging"
	"github.com/showbridge/trakt-bridge/pkg/ratelimit"
)

// Prometheus metrics for upstream requests.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_upstream_requests_total",
		Help: "Total upstream requests by endpoint and status",
	}, []string{"endpoint", "status"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bridge_upstream_request_duration_seconds",
		Help:    "Upstream request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	upstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_upstream_errors_total",
		Help: "Total upstream errors by class",
	}, []string{"class"})
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.trakt.tv"

// apiVersion is the value of the trakt-api-version header.
const apiVersion = "2"

// Client is the upstream API client.
type Client struct {
	httpClient *http.Client
	store      cache.Store
	limiter    *ratelimit.Tracker
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root (default: DefaultBaseURL).
	BaseURL string

	// ClientID is the application's API key, sent as trakt-api-key.
	ClientID string

	// Store caches search results. Nil disables caching.
	Store cache.Store

	// Timeout bounds each HTTP call so one hung request cannot stall a
	// whole batch group.
	Timeout time.Duration

	// Retry controls backoff for server/rate-limit/network failures.
	Retry RetryConfig
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(clientID string) Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		ClientID: clientID,
		Timeout:  15 * time.Second,
		Retry:    DefaultRetryConfig(),
	}
}

// New creates a new upstream client.
func New(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client id is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Retry.MaxAttempts < 1 {
		cfg.Retry = DefaultRetryConfig()
	}

	logger := logging.NewLogger("trakt-client")

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		store:   cfg.Store,
		limiter: ratelimit.NewTracker(logger),
		config:  cfg,
		logger:  logger,
	}, nil
}

// RateLimitState returns a snapshot of the tracked upstream window.
func (c *Client) RateLimitState() ratelimit.State {
	return c.limiter.State()
}

// do performs one API call with rate limit gating, retries and error
// classification, decoding the response into out when it is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	// Metrics are labeled by the bare endpoint, never by query parameters.
	endpoint := path
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}

	startTime := time.Now()
	defer func() {
		upstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	if !c.limiter.ShouldAllow(ctx) {
		upstreamRequestsTotal.WithLabelValues(endpoint, "rate_limited").Inc()
		return ErrRateLimited
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	var respBody []byte

	err := retryWithBackoff(ctx, c.logger, c.config.Retry, func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("trakt-api-version", apiVersion)
		req.Header.Set("trakt-api-key", c.config.ClientID)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Error().Err(err).Str("endpoint", path).Msg("HTTP request failed")
			upstreamErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			upstreamRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
			return err
		}
		defer resp.Body.Close()

		if err := c.limiter.UpdateFromHeaders(resp.Header); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to update rate limit from headers")
		}

		if resp.StatusCode >= 400 {
			errClass := classifyStatus(resp.StatusCode)
			upstreamErrorsTotal.WithLabelValues(string(errClass)).Inc()
			upstreamRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

			c.logger.Warn().
				Str("endpoint", path).
				Int("status", resp.StatusCode).
				Str("error_class", string(errClass)).
				Msg("Upstream request error")

			return &APIError{
				StatusCode: resp.StatusCode,
				ErrorClass: errClass,
				Message:    resp.Status,
			}
		}

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response body: %w", err)
		}

		upstreamRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return nil
	})
	if err != nil {
		return err
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
