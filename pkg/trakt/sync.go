package trakt

import (
	"context"
	"time"
)

// AddMoviesToHistory records the given movies as watched. A zero watchedAt
// lets the upstream default to the time of the request.
func (c *Client) AddMoviesToHistory(ctx context.Context, movies []Movie, watchedAt time.Time) (*SyncResponse, error) {
	req := SyncRequest{}
	for _, m := range movies {
		hm := HistoryMovie{IDs: m.IDs}
		if !watchedAt.IsZero() {
			t := watchedAt
			hm.WatchedAt = &t
		}
		req.Movies = append(req.Movies, hm)
	}

	var resp SyncResponse
	if err := c.do(ctx, "POST", "/sync/history", req, &resp); err != nil {
		return nil, err
	}

	c.logger.Info().
		Int("added", resp.Added.Movies).
		Int("not_found", len(resp.NotFound.Movies)).
		Msg("History sync complete")

	return &resp, nil
}

// AddMoviesToWatchlist adds the given movies to the user's watchlist.
func (c *Client) AddMoviesToWatchlist(ctx context.Context, movies []Movie) (*SyncResponse, error) {
	req := SyncRequest{}
	for _, m := range movies {
		req.Movies = append(req.Movies, HistoryMovie{IDs: m.IDs})
	}

	var resp SyncResponse
	if err := c.do(ctx, "POST", "/sync/watchlist", req, &resp); err != nil {
		return nil, err
	}

	c.logger.Info().
		Int("added", resp.Added.Movies).
		Int("existing", resp.Existing.Movies).
		Msg("Watchlist sync complete")

	return &resp, nil
}

// RemoveMoviesFromWatchlist removes the given movies from the watchlist.
func (c *Client) RemoveMoviesFromWatchlist(ctx context.Context, movies []Movie) (*SyncResponse, error) {
	req := SyncRequest{}
	for _, m := range movies {
		req.Movies = append(req.Movies, HistoryMovie{IDs: m.IDs})
	}

	var resp SyncResponse
	if err := c.do(ctx, "POST", "/sync/watchlist/remove", req, &resp); err != nil {
		return nil, err
	}

	c.logger.Info().
		Int("deleted", resp.Deleted.Movies).
		Msg("Watchlist removal complete")

	return &resp, nil
}
