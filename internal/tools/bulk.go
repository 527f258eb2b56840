package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/showbridge/trakt-bridge/pkg/batch"
	"github.com/showbridge/trakt-bridge/pkg/trakt"
)

// BulkRequest is the body shared by the bulk tools. Each title is resolved
// via search before the single sync write.
type BulkRequest struct {
	Titles    []string `json:"titles"`
	WatchedAt string   `json:"watched_at,omitempty"` // RFC3339, history only
}

// BulkItemSuccess is one resolved and synced input title.
type BulkItemSuccess struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	TraktID int    `json:"trakt_id"`
	Year    int    `json:"year,omitempty"`
}

// BulkItemFailure is one input title that could not be resolved or synced.
type BulkItemFailure struct {
	Index  int    `json:"index"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// SyncSummary echoes the upstream's sync counts.
type SyncSummary struct {
	Added    int `json:"added"`
	Existing int `json:"existing"`
	Deleted  int `json:"deleted"`
	NotFound int `json:"not_found"`
}

// BulkResponse reports the per-title outcome of a bulk tool call. A call
// with at least one success is reported as a partial success, never as a
// total failure.
type BulkResponse struct {
	Succeeded []BulkItemSuccess `json:"succeeded"`
	Failed    []BulkItemFailure `json:"failed"`
	Sync      *SyncSummary      `json:"sync,omitempty"`
}

// BulkAddHistory handles POST /tools/bulk_add_history.
func (h *Handler) BulkAddHistory(w http.ResponseWriter, r *http.Request) {
	req, watchedAt, ok := h.decodeBulkRequest(w, r, true)
	if !ok {
		return
	}

	h.runBulk(w, r, req, func(ctx context.Context, movies []trakt.Movie) (*trakt.SyncResponse, error) {
		return h.client.AddMoviesToHistory(ctx, movies, watchedAt)
	})
}

// BulkAddWatchlist handles POST /tools/bulk_add_watchlist.
func (h *Handler) BulkAddWatchlist(w http.ResponseWriter, r *http.Request) {
	req, _, ok := h.decodeBulkRequest(w, r, false)
	if !ok {
		return
	}

	h.runBulk(w, r, req, func(ctx context.Context, movies []trakt.Movie) (*trakt.SyncResponse, error) {
		return h.client.AddMoviesToWatchlist(ctx, movies)
	})
}

func (h *Handler) decodeBulkRequest(w http.ResponseWriter, r *http.Request, allowWatchedAt bool) (*BulkRequest, time.Time, bool) {
	var req BulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, time.Time{}, false
	}
	if len(req.Titles) == 0 {
		writeError(w, http.StatusBadRequest, "titles is required")
		return nil, time.Time{}, false
	}

	var watchedAt time.Time
	if req.WatchedAt != "" {
		if !allowWatchedAt {
			writeError(w, http.StatusBadRequest, "watched_at is not supported for this tool")
			return nil, time.Time{}, false
		}
		t, err := time.Parse(time.RFC3339, req.WatchedAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "watched_at must be RFC3339")
			return nil, time.Time{}, false
		}
		watchedAt = t
	}

	return &req, watchedAt, true
}

// runBulk resolves every title in parallel, then issues one sync write for
// the resolved set. Resolution failures never abort the sync for the titles
// that did resolve.
func (h *Handler) runBulk(w http.ResponseWriter, r *http.Request, req *BulkRequest, sync func(context.Context, []trakt.Movie) (*trakt.SyncResponse, error)) {
	worker := func(ctx context.Context, title string) (*trakt.Movie, error) {
		return h.client.SearchMovie(ctx, title, 0)
	}

	result, err := batch.Run(r.Context(), req.Titles, batch.NormalizedKey, worker, h.batchCfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := BulkResponse{
		Succeeded: []BulkItemSuccess{},
		Failed:    []BulkItemFailure{},
	}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, BulkItemFailure{
			Index:  f.Index,
			Title:  f.Input,
			Reason: f.Reason,
		})
	}

	if len(result.Succeeded) == 0 {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	// Deduplicated inputs share one resolved movie; sync each distinct
	// movie once.
	seen := make(map[int]bool)
	var movies []trakt.Movie
	for _, s := range result.Succeeded {
		if seen[s.Value.IDs.Trakt] {
			continue
		}
		seen[s.Value.IDs.Trakt] = true
		movies = append(movies, *s.Value)
	}

	syncResp, err := sync(r.Context(), movies)
	if err != nil {
		// The resolution succeeded but the write did not; report every
		// resolved title as failed with the sync error.
		reason := fmt.Sprintf("sync failed: %v", err)
		for _, s := range result.Succeeded {
			resp.Failed = append(resp.Failed, BulkItemFailure{
				Index:  s.Index,
				Title:  s.Input,
				Reason: reason,
			})
		}
		h.logger.Error().Err(err).Int("resolved", len(movies)).Msg("Bulk sync write failed")
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}

	for _, s := range result.Succeeded {
		resp.Succeeded = append(resp.Succeeded, BulkItemSuccess{
			Index:   s.Index,
			Title:   s.Input,
			TraktID: s.Value.IDs.Trakt,
			Year:    s.Value.Year,
		})
	}
	resp.Sync = &SyncSummary{
		Added:    syncResp.Added.Movies,
		Existing: syncResp.Existing.Movies,
		Deleted:  syncResp.Deleted.Movies,
		NotFound: len(syncResp.NotFound.Movies),
	}

	h.logger.Info().
		Int("succeeded", len(resp.Succeeded)).
		Int("failed", len(resp.Failed)).
		Msg("Bulk tool call complete")

	writeJSON(w, http.StatusOK, resp)
}
