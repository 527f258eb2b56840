package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for rate limit tracking.
var (
	rateLimitRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bridge_ratelimit_remaining",
		Help: "Requests remaining in the current upstream rate limit window",
	})

	rateLimitBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_ratelimit_blocks_total",
		Help: "Total number of requests blocked due to critical rate limit",
	})

	rateLimitThrottlesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_ratelimit_throttles_total",
		Help: "Total number of requests throttled due to low rate limit budget",
	})
)

// throttleDelay is the pause applied per request while in the warning band.
const throttleDelay = 1 * time.Second

// Tracker monitors the upstream rate limit window and gates requests.
// State lives in process memory; every client instance owns one tracker.
type Tracker struct {
	mu     sync.Mutex
	state  State
	logger zerolog.Logger
}

// NewTracker creates a tracker assuming a healthy window until the first
// header update arrives.
func NewTracker(logger zerolog.Logger) *Tracker {
	now := time.Now()
	return &Tracker{
		state: State{
			Remaining:  RemainingHealthy * 2, // assume healthy until real data
			ResetAt:    now.Add(5 * time.Minute),
			LastUpdate: now,
			IsHealthy:  true,
		},
		logger: logger,
	}
}

// State returns a snapshot of the current window.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// UpdateFromHeaders parses the X-Ratelimit JSON header (and Retry-After,
// when present) and refreshes the tracked state. A response without the
// header leaves the state untouched.
func (t *Tracker) UpdateFromHeaders(headers http.Header) error {
	raw := headers.Get("X-Ratelimit")
	if raw == "" {
		// Header not present - fine for endpoints that don't report it
		return t.applyRetryAfter(headers)
	}

	var payload struct {
		Name      string `json:"name"`
		Period    int    `json:"period"`
		Limit     int    `json:"limit"`
		Remaining int    `json:"remaining"`
		Until     string `json:"until"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return fmt.Errorf("parse X-Ratelimit header: %w", err)
	}

	now := time.Now()
	state := State{
		Name:       payload.Name,
		Limit:      payload.Limit,
		Remaining:  payload.Remaining,
		ResetAt:    now.Add(time.Duration(payload.Period) * time.Second),
		LastUpdate: now,
	}
	if payload.Until != "" {
		if until, err := time.Parse(time.RFC3339, payload.Until); err == nil {
			state.ResetAt = until
		}
	}
	state.UpdateHealth()

	t.mu.Lock()
	t.state = state
	t.mu.Unlock()

	rateLimitRemaining.Set(float64(state.Remaining))

	logEvent := t.logger.Info().
		Str("bucket", state.Name).
		Int("remaining", state.Remaining).
		Time("reset_at", state.ResetAt).
		Bool("is_healthy", state.IsHealthy)

	if state.NeedsCriticalBlock() {
		logEvent = t.logger.Error().Int("remaining", state.Remaining)
		logEvent.Msg("Upstream rate limit CRITICAL - requests will be blocked")
	} else if state.NeedsThrottling() {
		logEvent = t.logger.Warn().Int("remaining", state.Remaining)
		logEvent.Msg("Upstream rate limit WARNING - requests will be throttled")
	} else {
		logEvent.Msg("Upstream rate limit state updated")
	}

	return nil
}

// applyRetryAfter handles a 429 that carries only Retry-After: treat the
// window as drained until the given offset passes.
func (t *Tracker) applyRetryAfter(headers http.Header) error {
	retryAfter := headers.Get("Retry-After")
	if retryAfter == "" {
		return nil
	}

	seconds, err := strconv.Atoi(retryAfter)
	if err != nil {
		return fmt.Errorf("parse Retry-After header: %w", err)
	}

	now := time.Now()
	t.mu.Lock()
	t.state.Remaining = 0
	t.state.ResetAt = now.Add(time.Duration(seconds) * time.Second)
	t.state.LastUpdate = now
	t.state.UpdateHealth()
	t.mu.Unlock()

	rateLimitRemaining.Set(0)
	t.logger.Warn().
		Int("retry_after_seconds", seconds).
		Msg("Upstream requested backoff - blocking until window resets")

	return nil
}

// ShouldAllow checks if a request should be sent under the current window.
// Returns false while the budget is critical and the window has not reset;
// in the warning band it sleeps throttleDelay before allowing.
func (t *Tracker) ShouldAllow(ctx context.Context) bool {
	t.mu.Lock()
	state := t.state
	// A passed reset means a fresh window; stop blocking on stale data.
	if state.NeedsCriticalBlock() && state.TimeUntilReset() == 0 {
		t.state.Remaining = RemainingHealthy
		t.state.UpdateHealth()
		state = t.state
	}
	t.mu.Unlock()

	if state.NeedsCriticalBlock() {
		t.logger.Error().
			Int("remaining", state.Remaining).
			Dur("wait_duration", state.TimeUntilReset()).
			Msg("Upstream rate limit critical - blocking request")

		rateLimitBlocksTotal.Inc()
		return false
	}

	if state.NeedsThrottling() {
		t.logger.Warn().
			Int("remaining", state.Remaining).
			Msg("Upstream rate limit warning - throttling request")

		rateLimitThrottlesTotal.Inc()
		select {
		case <-ctx.Done():
			return false
		case <-time.After(throttleDelay):
		}
	}

	return true
}
