package ratelimit

import (
	"testing"
	"time"
)

func TestState_NeedsCriticalBlock(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		want      bool
	}{
		{"healthy", 100, false},
		{"warning band", 15, false},
		{"at critical threshold", RemainingCritical, false},
		{"below critical threshold", RemainingCritical - 1, true},
		{"drained", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &State{Remaining: tt.remaining}
			if got := s.NeedsCriticalBlock(); got != tt.want {
				t.Errorf("NeedsCriticalBlock() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestState_NeedsThrottling(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		want      bool
	}{
		{"healthy", 100, false},
		{"at warning threshold", RemainingWarning, false},
		{"in warning band", RemainingWarning - 1, true},
		{"critical takes precedence", RemainingCritical - 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &State{Remaining: tt.remaining}
			if got := s.NeedsThrottling(); got != tt.want {
				t.Errorf("NeedsThrottling() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestState_TimeUntilReset(t *testing.T) {
	s := &State{ResetAt: time.Now().Add(30 * time.Second)}
	got := s.TimeUntilReset()
	if got < 29*time.Second || got > 31*time.Second {
		t.Errorf("TimeUntilReset() = %v, want ~30s", got)
	}

	past := &State{ResetAt: time.Now().Add(-1 * time.Minute)}
	if got := past.TimeUntilReset(); got != 0 {
		t.Errorf("TimeUntilReset() for past reset = %v, want 0", got)
	}
}

func TestState_UpdateHealth(t *testing.T) {
	s := &State{Remaining: RemainingHealthy}
	s.UpdateHealth()
	if !s.IsHealthy {
		t.Error("expected healthy at threshold")
	}

	s.Remaining = RemainingHealthy - 1
	s.UpdateHealth()
	if s.IsHealthy {
		t.Error("expected unhealthy below threshold")
	}
}

func TestState_IsStale(t *testing.T) {
	s := &State{LastUpdate: time.Now().Add(-2 * time.Minute)}
	if !s.IsStale(1 * time.Minute) {
		t.Error("expected state older than maxAge to be stale")
	}
	if s.IsStale(5 * time.Minute) {
		t.Error("expected state younger than maxAge to be fresh")
	}
}
