// Package tools exposes the bridge's operations as JSON tool endpoints.
package tools

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/showbridge/trakt-bridge/pkg/batch"
	"github.com/showbridge/trakt-bridge/pkg/cache"
	"github.com/showbridge/trakt-bridge/pkg/logging"
	"github.com/showbridge/trakt-bridge/pkg/trakt"
)

// Handler holds the tool endpoints and their dependencies.
type Handler struct {
	client   *trakt.Client
	store    cache.Store
	batchCfg batch.Config
	logger   zerolog.Logger
}

// New creates a tool handler. The store may be nil when caching is disabled.
func New(client *trakt.Client, store cache.Store, batchCfg batch.Config) *Handler {
	return &Handler{
		client:   client,
		store:    store,
		batchCfg: batchCfg,
		logger:   logging.NewLogger("tools"),
	}
}

// SearchRequest is the body for the search tool.
type SearchRequest struct {
	Query string `json:"query"`
	Type  string `json:"type,omitempty"` // movie (default) or show
	Year  int    `json:"year,omitempty"`
}

// SearchResponse is the search tool result.
type SearchResponse struct {
	Type  string       `json:"type"`
	Movie *trakt.Movie `json:"movie,omitempty"`
	Show  *trakt.Show  `json:"show,omitempty"`
}

// Search handles POST /tools/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	kind := req.Type
	if kind == "" {
		kind = "movie"
	}

	switch kind {
	case "movie":
		movie, err := h.client.SearchMovie(r.Context(), req.Query, req.Year)
		if err != nil {
			h.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, SearchResponse{Type: "movie", Movie: movie})
	case "show":
		show, err := h.client.SearchShow(r.Context(), req.Query, req.Year)
		if err != nil {
			h.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, SearchResponse{Type: "show", Show: show})
	default:
		writeError(w, http.StatusBadRequest, "type must be movie or show")
	}
}

// CacheStatsResponse is the cache_stats tool result.
type CacheStatsResponse struct {
	Hits        uint64  `json:"hits"`
	Misses      uint64  `json:"misses"`
	Evictions   uint64  `json:"evictions"`
	Expirations uint64  `json:"expirations"`
	Size        int     `json:"size"`
	HitRate     float64 `json:"hit_rate"`
}

// CacheStats handles GET /tools/cache_stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "cache is disabled")
		return
	}

	stats := h.store.Snapshot()
	writeJSON(w, http.StatusOK, CacheStatsResponse{
		Hits:        stats.Hits,
		Misses:      stats.Misses,
		Evictions:   stats.Evictions,
		Expirations: stats.Expirations,
		Size:        stats.Size,
		HitRate:     stats.HitRate(),
	})
}

// CacheClear handles POST /tools/cache_clear.
func (h *Handler) CacheClear(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "cache is disabled")
		return
	}

	if err := h.store.Clear(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("Cache clear failed")
		writeError(w, http.StatusInternalServerError, "cache clear failed")
		return
	}

	h.logger.Info().Msg("Cache cleared")
	writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

// writeUpstreamError maps client errors onto tool status codes.
func (h *Handler) writeUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, trakt.ErrNoResults):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, trakt.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Upstream request failed")
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
