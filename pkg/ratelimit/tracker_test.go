package ratelimit

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).Level(zerolog.Disabled)
}

func TestNewTracker_DefaultHealthy(t *testing.T) {
	tracker := NewTracker(testLogger())

	state := tracker.State()
	if !state.IsHealthy {
		t.Error("fresh tracker should assume a healthy window")
	}
	if !tracker.ShouldAllow(context.Background()) {
		t.Error("fresh tracker should allow requests")
	}
}

func TestTracker_UpdateFromHeaders(t *testing.T) {
	tracker := NewTracker(testLogger())

	headers := http.Header{}
	headers.Set("X-Ratelimit",
		`{"name":"UNAUTHED_API_GET_LIMIT","period":300,"limit":1000,"remaining":250,"until":"2030-10-10T00:24:00Z"}`)

	if err := tracker.UpdateFromHeaders(headers); err != nil {
		t.Fatalf("UpdateFromHeaders failed: %v", err)
	}

	state := tracker.State()
	if state.Name != "UNAUTHED_API_GET_LIMIT" {
		t.Errorf("Name = %q, want bucket name from header", state.Name)
	}
	if state.Limit != 1000 {
		t.Errorf("Limit = %d, want 1000", state.Limit)
	}
	if state.Remaining != 250 {
		t.Errorf("Remaining = %d, want 250", state.Remaining)
	}
	if state.ResetAt.Year() != 2030 {
		t.Errorf("ResetAt = %v, want the header's until timestamp", state.ResetAt)
	}
	if !state.IsHealthy {
		t.Error("250 remaining should be healthy")
	}
}

func TestTracker_UpdateFromHeaders_Missing(t *testing.T) {
	tracker := NewTracker(testLogger())
	before := tracker.State()

	if err := tracker.UpdateFromHeaders(http.Header{}); err != nil {
		t.Fatalf("UpdateFromHeaders with no headers failed: %v", err)
	}

	after := tracker.State()
	if after.Remaining != before.Remaining {
		t.Error("missing header should leave state untouched")
	}
}

func TestTracker_UpdateFromHeaders_Malformed(t *testing.T) {
	tracker := NewTracker(testLogger())

	headers := http.Header{}
	headers.Set("X-Ratelimit", "not json")

	if err := tracker.UpdateFromHeaders(headers); err == nil {
		t.Error("malformed header should return an error")
	}
}

func TestTracker_RetryAfter(t *testing.T) {
	tracker := NewTracker(testLogger())

	headers := http.Header{}
	headers.Set("Retry-After", "30")

	if err := tracker.UpdateFromHeaders(headers); err != nil {
		t.Fatalf("UpdateFromHeaders failed: %v", err)
	}

	state := tracker.State()
	if state.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0 after Retry-After", state.Remaining)
	}
	if !state.NeedsCriticalBlock() {
		t.Error("Retry-After should put the tracker in the critical band")
	}
	if tracker.ShouldAllow(context.Background()) {
		t.Error("request should be blocked while backoff is active")
	}
}

func TestTracker_BlocksWhenCritical(t *testing.T) {
	tracker := NewTracker(testLogger())

	headers := http.Header{}
	headers.Set("X-Ratelimit",
		`{"name":"UNAUTHED_API_GET_LIMIT","period":300,"limit":1000,"remaining":2,"until":"2030-01-01T00:00:00Z"}`)
	if err := tracker.UpdateFromHeaders(headers); err != nil {
		t.Fatalf("UpdateFromHeaders failed: %v", err)
	}

	if tracker.ShouldAllow(context.Background()) {
		t.Error("request should be blocked with 2 remaining")
	}
}

func TestTracker_RecoversAfterReset(t *testing.T) {
	tracker := NewTracker(testLogger())

	// Drained window whose reset is already in the past.
	tracker.mu.Lock()
	tracker.state = State{
		Remaining:  0,
		ResetAt:    time.Now().Add(-1 * time.Second),
		LastUpdate: time.Now().Add(-1 * time.Minute),
	}
	tracker.mu.Unlock()

	if !tracker.ShouldAllow(context.Background()) {
		t.Error("a passed reset should unblock requests")
	}
}
