package cache

import (
	"fmt"
	"strings"
)

// SearchKey identifies a cacheable search request. Two requests that differ
// only in case or surrounding whitespace produce the same fingerprint.
type SearchKey struct {
	// Kind is the media type filter (e.g. "movie", "show")
	Kind string

	// Query is the raw search query as supplied by the caller
	Query string

	// Year is an optional release-year filter (0 means unset)
	Year int
}

// String generates a deterministic cache key string.
// Format: trakt:search:kind:query[:year=YYYY]
//
// Example:
//
//	trakt:search:movie:the matrix:year=1999
func (k SearchKey) String() string {
	parts := []string{"trakt", "search"}

	kind := strings.ToLower(strings.TrimSpace(k.Kind))
	if kind != "" {
		parts = append(parts, kind)
	}

	parts = append(parts, Normalize(k.Query))

	if k.Year > 0 {
		parts = append(parts, fmt.Sprintf("year=%d", k.Year))
	}

	return strings.Join(parts, ":")
}

// Normalize folds a query string into its canonical form: trimmed and
// lower-cased. Callers are responsible for folding semantically equivalent
// requests into one fingerprint before hitting the store.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
