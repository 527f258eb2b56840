// Package ratelimit tracks the upstream API's request budget and gates
// outgoing calls. The API reports its window in an X-Ratelimit JSON header
// and a Retry-After header on 429 responses; running the budget down to
// zero gets the client locked out for the rest of the window.
package ratelimit

import (
	"time"
)

// Thresholds for rate limit decisions.
const (
	// RemainingCritical blocks all requests when the remaining budget falls
	// below this value, so the window never fully drains.
	RemainingCritical = 5

	// RemainingWarning applies throttling when the remaining budget falls
	// below this value.
	RemainingWarning = 20

	// RemainingHealthy indicates normal operation. At or above this value
	// no restrictions apply.
	RemainingHealthy = 50
)

// State is a snapshot of the upstream rate limit window.
type State struct {
	// Name is the limit bucket reported by the API
	// (e.g. "UNAUTHED_API_GET_LIMIT").
	Name string `json:"name"`

	// Limit is the total number of requests allowed per window.
	Limit int `json:"limit"`

	// Remaining is the number of requests left in the current window.
	Remaining int `json:"remaining"`

	// ResetAt is when the window resets, from the header's "until" field
	// or a Retry-After offset.
	ResetAt time.Time `json:"reset_at"`

	// LastUpdate is when this state was last refreshed from headers.
	LastUpdate time.Time `json:"last_update"`

	// IsHealthy is true when Remaining >= RemainingHealthy.
	IsHealthy bool `json:"is_healthy"`
}

// IsStale returns true if the state is older than the given duration.
func (s *State) IsStale(maxAge time.Duration) bool {
	return time.Since(s.LastUpdate) > maxAge
}

// NeedsCriticalBlock returns true if requests should be blocked until the
// window resets.
func (s *State) NeedsCriticalBlock() bool {
	return s.Remaining < RemainingCritical
}

// NeedsThrottling returns true if requests should be slowed down.
func (s *State) NeedsThrottling() bool {
	return s.Remaining < RemainingWarning && !s.NeedsCriticalBlock()
}

// TimeUntilReset returns the duration until the window resets.
// Returns 0 if the reset time has already passed.
func (s *State) TimeUntilReset() time.Duration {
	duration := time.Until(s.ResetAt)
	if duration < 0 {
		return 0
	}
	return duration
}

// UpdateHealth updates the IsHealthy field from the current Remaining.
func (s *State) UpdateHealth() {
	s.IsHealthy = s.Remaining >= RemainingHealthy
}
