// Package testutil provides testing utilities for the bridge.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock upstream endpoint.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockTrakt is a configurable mock of the upstream media-tracking API.
type MockTrakt struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	PathCounts        map[string]int
	LastRequestHeader http.Header
	LastRequestBody   []byte
}

// NewMockTrakt creates a new mock upstream server.
func NewMockTrakt() *MockTrakt {
	mock := &MockTrakt{
		handlers:   make(map[string]func(w http.ResponseWriter, r *http.Request)),
		PathCounts: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.PathCounts[r.URL.Path]++
		mock.LastRequestHeader = r.Header.Clone()
		if r.Body != nil {
			body, _ := io.ReadAll(r.Body)
			mock.LastRequestBody = body
		}
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockTrakt) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockTrakt) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockTrakt) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.PathCounts = make(map[string]int)
	m.LastRequestHeader = nil
	m.LastRequestBody = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockTrakt) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a canned response for a path.
func (m *MockTrakt) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockTrakt) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetPathCount returns the number of requests made to one path.
func (m *MockTrakt) GetPathCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.PathCounts[path]
}

// defaultHandler provides an API-shaped empty response.
func (m *MockTrakt) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Ratelimit", RateLimitHeader(1000, 900))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`[]`))
}

// RateLimitHeader builds the upstream's X-Ratelimit JSON header value.
func RateLimitHeader(limit, remaining int) string {
	return fmt.Sprintf(
		`{"name":"UNAUTHED_API_GET_LIMIT","period":300,"limit":%d,"remaining":%d,"until":%q}`,
		limit, remaining, time.Now().Add(5*time.Minute).Format(time.RFC3339))
}

// MovieSearchBody builds a search response body with one movie result.
func MovieSearchBody(title string, year, traktID int) string {
	body, _ := json.Marshal([]map[string]any{
		{
			"type":  "movie",
			"score": 100.0,
			"movie": map[string]any{
				"title": title,
				"year":  year,
				"ids":   map[string]any{"trakt": traktID, "slug": "slug-" + title},
			},
		},
	})
	return string(body)
}

// ShowSearchBody builds a search response body with one show result.
func ShowSearchBody(title string, year, traktID int) string {
	body, _ := json.Marshal([]map[string]any{
		{
			"type":  "show",
			"score": 100.0,
			"show": map[string]any{
				"title": title,
				"year":  year,
				"ids":   map[string]any{"trakt": traktID},
			},
		},
	})
	return string(body)
}

// NewSearchResponse creates a 200 response with one movie result and
// healthy rate limit headers.
func NewSearchResponse(title string, year, traktID int) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       MovieSearchBody(title, year, traktID),
		Headers: map[string]string{
			"Content-Type": "application/json",
			"X-Ratelimit":  RateLimitHeader(1000, 900),
		},
	}
}

// NewEmptySearchResponse creates a 200 response with no results.
func NewEmptySearchResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `[]`,
		Headers: map[string]string{
			"Content-Type": "application/json",
			"X-Ratelimit":  RateLimitHeader(1000, 900),
		},
	}
}

// NewSyncResponse creates a 201 response for a sync write.
func NewSyncResponse(addedMovies int) MockResponse {
	body, _ := json.Marshal(map[string]any{
		"added":     map[string]int{"movies": addedMovies, "shows": 0, "episodes": 0},
		"existing":  map[string]int{"movies": 0, "shows": 0, "episodes": 0},
		"deleted":   map[string]int{"movies": 0, "shows": 0, "episodes": 0},
		"not_found": map[string]any{"movies": []any{}},
	})
	return MockResponse{
		StatusCode: http.StatusCreated,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
			"X-Ratelimit":  RateLimitHeader(1000, 900),
		},
	}
}

// NewRateLimitResponse creates a 429 Too Many Requests response.
func NewRateLimitResponse(retryAfter int) MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"error": "rate limit exceeded"}`,
		Headers: map[string]string{
			"Content-Type": "application/json",
			"Retry-After":  fmt.Sprintf("%d", retryAfter),
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}
