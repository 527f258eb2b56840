package trakt

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "without wrapped error",
			err: &APIError{
				StatusCode: 500,
				ErrorClass: ErrorClassServer,
				Message:    "500 Internal Server Error",
			},
			want: "trakt server error (status 500): 500 Internal Server Error",
		},
		{
			name: "with wrapped error",
			err: &APIError{
				StatusCode: 429,
				ErrorClass: ErrorClassRateLimit,
				Message:    "slow down",
				Err:        errors.New("window drained"),
			},
			want: "trakt rate_limit error (status 429): slow down: window drained",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &APIError{StatusCode: 500, ErrorClass: ErrorClassServer, Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}

	var apiErr *APIError
	wrapped := fmt.Errorf("request failed: %w", err)
	if !errors.As(wrapped, &apiErr) {
		t.Error("errors.As should find APIError through wrapping")
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorClass
	}{
		{400, ErrorClassClient},
		{404, ErrorClassClient},
		{429, ErrorClassRateLimit},
		{500, ErrorClassServer},
		{503, ErrorClassServer},
		{200, ""},
	}

	for _, tt := range tests {
		if got := classifyStatus(tt.status); got != tt.want {
			t.Errorf("classifyStatus(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestClassOf(t *testing.T) {
	apiErr := &APIError{StatusCode: 429, ErrorClass: ErrorClassRateLimit}
	if got := classOf(apiErr); got != ErrorClassRateLimit {
		t.Errorf("classOf(APIError) = %q, want rate_limit", got)
	}

	wrapped := fmt.Errorf("outer: %w", apiErr)
	if got := classOf(wrapped); got != ErrorClassRateLimit {
		t.Errorf("classOf(wrapped APIError) = %q, want rate_limit", got)
	}

	if got := classOf(errors.New("dial tcp: timeout")); got != ErrorClassNetwork {
		t.Errorf("classOf(plain error) = %q, want network", got)
	}
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		class ErrorClass
		want  bool
	}{
		{ErrorClassClient, false},
		{ErrorClassServer, true},
		{ErrorClassRateLimit, true},
		{ErrorClassNetwork, true},
		{"", false},
	}

	for _, tt := range tests {
		if got := shouldRetry(tt.class); got != tt.want {
			t.Errorf("shouldRetry(%q) = %v, want %v", tt.class, got, tt.want)
		}
	}
}
