package trakt

import "time"

// IDs holds the identifier set the API reports for a movie or show. The
// numeric Trakt ID is what sync endpoints key on.
type IDs struct {
	Trakt int    `json:"trakt,omitempty"`
	Slug  string `json:"slug,omitempty"`
	IMDB  string `json:"imdb,omitempty"`
	TMDB  int    `json:"tmdb,omitempty"`
}

// Movie is the wire representation of a movie.
type Movie struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
	IDs   IDs    `json:"ids"`
}

// Show is the wire representation of a show.
type Show struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
	IDs   IDs    `json:"ids"`
}

// SearchResult is one entry of a search response. Exactly one of Movie or
// Show is set, matching the Type field.
type SearchResult struct {
	Type  string  `json:"type"`
	Score float64 `json:"score"`
	Movie *Movie  `json:"movie,omitempty"`
	Show  *Show   `json:"show,omitempty"`
}

// HistoryMovie is a movie plus the timestamp it was watched, as sent to
// the history sync endpoint.
type HistoryMovie struct {
	WatchedAt *time.Time `json:"watched_at,omitempty"`
	Title     string     `json:"title,omitempty"`
	Year      int        `json:"year,omitempty"`
	IDs       IDs        `json:"ids"`
}

// SyncRequest is the request body shared by the history and watchlist
// sync endpoints.
type SyncRequest struct {
	Movies []HistoryMovie `json:"movies,omitempty"`
	Shows  []Show         `json:"shows,omitempty"`
}

// SyncCount breaks a sync outcome down by media type.
type SyncCount struct {
	Movies   int `json:"movies"`
	Shows    int `json:"shows"`
	Episodes int `json:"episodes"`
}

// SyncNotFound echoes back the items the API could not match.
type SyncNotFound struct {
	Movies []HistoryMovie `json:"movies,omitempty"`
	Shows  []Show         `json:"shows,omitempty"`
}

// SyncResponse is the upstream's report for a sync write.
type SyncResponse struct {
	Added    SyncCount    `json:"added"`
	Existing SyncCount    `json:"existing"`
	Deleted  SyncCount    `json:"deleted"`
	NotFound SyncNotFound `json:"not_found"`
}
