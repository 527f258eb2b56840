package cache

import (
	"testing"
)

func TestSearchKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  SearchKey
		want string
	}{
		{
			name: "movie search",
			key:  SearchKey{Kind: "movie", Query: "The Matrix"},
			want: "trakt:search:movie:the matrix",
		},
		{
			name: "show search",
			key:  SearchKey{Kind: "show", Query: "Breaking Bad"},
			want: "trakt:search:show:breaking bad",
		},
		{
			name: "no kind filter",
			key:  SearchKey{Query: "Dune"},
			want: "trakt:search:dune",
		},
		{
			name: "year filter",
			key:  SearchKey{Kind: "movie", Query: "Dune", Year: 2021},
			want: "trakt:search:movie:dune:year=2021",
		},
		{
			name: "surrounding whitespace folded",
			key:  SearchKey{Kind: " Movie ", Query: "  The Matrix  "},
			want: "trakt:search:movie:the matrix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.key.String()
			if got != tt.want {
				t.Errorf("SearchKey.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestSearchKey_CaseInsensitive ensures case-differing queries share a key.
func TestSearchKey_CaseInsensitive(t *testing.T) {
	a := SearchKey{Kind: "movie", Query: "INCEPTION"}.String()
	b := SearchKey{Kind: "movie", Query: "inception"}.String()
	if a != b {
		t.Errorf("case-differing queries produced different keys: %q vs %q", a, b)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Matrix", "the matrix"},
		{"  padded  ", "padded"},
		{"already lower", "already lower"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
