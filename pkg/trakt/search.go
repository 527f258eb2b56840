package trakt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/showbridge/trakt-bridge/pkg/cache"
)

// SearchMovie resolves a movie by title, optionally filtered by release
// year. Results are cached by normalized fingerprint, so repeated lookups
// for case- or whitespace-differing queries hit the cache instead of the
// upstream. Returns ErrNoResults when nothing matches.
func (c *Client) SearchMovie(ctx context.Context, query string, year int) (*Movie, error) {
	key := cache.SearchKey{Kind: "movie", Query: query, Year: year}

	if c.store != nil {
		if data, err := c.store.Get(ctx, key.String()); err == nil {
			var movie Movie
			if err := json.Unmarshal(data, &movie); err == nil {
				c.logger.Debug().Str("query", query).Msg("Search served from cache")
				return &movie, nil
			}
		}
	}

	results, err := c.search(ctx, "movie", query, year)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if r.Movie == nil {
			continue
		}
		c.cacheResult(ctx, key.String(), r.Movie)
		return r.Movie, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNoResults, query)
}

// SearchShow resolves a show by title. Same caching behavior as SearchMovie.
func (c *Client) SearchShow(ctx context.Context, query string, year int) (*Show, error) {
	key := cache.SearchKey{Kind: "show", Query: query, Year: year}

	if c.store != nil {
		if data, err := c.store.Get(ctx, key.String()); err == nil {
			var show Show
			if err := json.Unmarshal(data, &show); err == nil {
				c.logger.Debug().Str("query", query).Msg("Search served from cache")
				return &show, nil
			}
		}
	}

	results, err := c.search(ctx, "show", query, year)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if r.Show == nil {
			continue
		}
		c.cacheResult(ctx, key.String(), r.Show)
		return r.Show, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNoResults, query)
}

// search performs a text search against /search/{type}.
func (c *Client) search(ctx context.Context, kind, query string, year int) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	if year > 0 {
		params.Set("years", fmt.Sprintf("%d", year))
	}

	var results []SearchResult
	path := fmt.Sprintf("/search/%s?%s", kind, params.Encode())
	if err := c.do(ctx, "GET", path, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// cacheResult stores a resolved search result. The set happens as the last
// step after the fetch; two concurrent misses for one key may both fetch
// and overwrite, which is benign (last write wins, identical payloads).
func (c *Client) cacheResult(ctx context.Context, key string, value any) {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, data); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache search result")
	}
}
