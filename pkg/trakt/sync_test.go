package trakt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/showbridge/trakt-bridge/internal/testutil"
)

func TestAddMoviesToHistory(t *testing.T) {
	mock := testutil.NewMockTrakt()
	defer mock.Close()
	mock.SetResponse("/sync/history", testutil.NewSyncResponse(2))

	client := newTestClient(t, mock, nil)

	movies := []Movie{
		{Title: "Dune", Year: 2021, IDs: IDs{Trakt: 1}},
		{Title: "Arrival", Year: 2016, IDs: IDs{Trakt: 2}},
	}
	watchedAt := time.Date(2026, 8, 20, 21, 0, 0, 0, time.UTC)

	resp, err := client.AddMoviesToHistory(context.Background(), movies, watchedAt)
	if err != nil {
		t.Fatalf("AddMoviesToHistory failed: %v", err)
	}
	if resp.Added.Movies != 2 {
		t.Errorf("Added.Movies = %d, want 2", resp.Added.Movies)
	}

	body := string(mock.LastRequestBody)
	if !strings.Contains(body, `"trakt":1`) || !strings.Contains(body, `"trakt":2`) {
		t.Errorf("request body missing movie ids: %s", body)
	}
	if !strings.Contains(body, "2026-08-20T21:00:00Z") {
		t.Errorf("request body missing watched_at: %s", body)
	}
}

func TestAddMoviesToHistory_ZeroWatchedAtOmitted(t *testing.T) {
	mock := testutil.NewMockTrakt()
	defer mock.Close()
	mock.SetResponse("/sync/history", testutil.NewSyncResponse(1))

	client := newTestClient(t, mock, nil)

	_, err := client.AddMoviesToHistory(context.Background(),
		[]Movie{{Title: "Moon", IDs: IDs{Trakt: 3}}}, time.Time{})
	if err != nil {
		t.Fatalf("AddMoviesToHistory failed: %v", err)
	}

	if strings.Contains(string(mock.LastRequestBody), "watched_at") {
		t.Errorf("zero watchedAt should be omitted: %s", mock.LastRequestBody)
	}
}

func TestAddMoviesToWatchlist(t *testing.T) {
	mock := testutil.NewMockTrakt()
	defer mock.Close()
	mock.SetResponse("/sync/watchlist", testutil.NewSyncResponse(1))

	client := newTestClient(t, mock, nil)

	resp, err := client.AddMoviesToWatchlist(context.Background(),
		[]Movie{{Title: "Primer", IDs: IDs{Trakt: 4}}})
	if err != nil {
		t.Fatalf("AddMoviesToWatchlist failed: %v", err)
	}
	if resp.Added.Movies != 1 {
		t.Errorf("Added.Movies = %d, want 1", resp.Added.Movies)
	}
	if got := mock.GetPathCount("/sync/watchlist"); got != 1 {
		t.Errorf("watchlist posts = %d, want 1", got)
	}
}

func TestRemoveMoviesFromWatchlist(t *testing.T) {
	mock := testutil.NewMockTrakt()
	defer mock.Close()
	mock.SetResponse("/sync/watchlist/remove", testutil.MockResponse{
		StatusCode: 200,
		Body:       `{"deleted":{"movies":1,"shows":0,"episodes":0},"not_found":{"movies":[]}}`,
		Headers:    map[string]string{"Content-Type": "application/json"},
	})

	client := newTestClient(t, mock, nil)

	resp, err := client.RemoveMoviesFromWatchlist(context.Background(),
		[]Movie{{Title: "Primer", IDs: IDs{Trakt: 4}}})
	if err != nil {
		t.Fatalf("RemoveMoviesFromWatchlist failed: %v", err)
	}
	if resp.Deleted.Movies != 1 {
		t.Errorf("Deleted.Movies = %d, want 1", resp.Deleted.Movies)
	}
}
