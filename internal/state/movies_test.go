package state

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/cinedeck/internal/tmdb"
)

func TestMovies_FetchTrendingSuccessReplacesList(t *testing.T) {
	api := &fakeMovieService{replies: []movieReply{
		{movies: []tmdb.Movie{movie(1, "a"), movie(2, "b")}},
		{movies: []tmdb.Movie{movie(3, "c")}},
	}}
	m := NewMovies(api, nil)
	if !m.NeedsInitialFetch() {
		t.Fatalf("NeedsInitialFetch = false on a new slice")
	}

	if err := m.FetchTrending(context.Background()); err != nil {
		t.Fatalf("FetchTrending returned error: %v", err)
	}
	if m.NeedsInitialFetch() {
		t.Fatalf("NeedsInitialFetch = true after a fetch")
	}
	if err := m.FetchTrending(context.Background()); err != nil {
		t.Fatalf("FetchTrending returned error: %v", err)
	}
	st := m.State()
	if st.Status != StatusSucceeded || !reflect.DeepEqual(ids(st.Trending), []int64{3}) {
		t.Fatalf("state = %#v, want succeeded with [3]", st)
	}
}

func TestMovies_FailureKeepsPreviousList(t *testing.T) {
	api := &fakeMovieService{replies: []movieReply{
		{movies: []tmdb.Movie{movie(1, "a")}},
		{err: &tmdb.APIError{Status: 401, Message: "Invalid API key"}},
		{err: errors.New(`Get "https://api.themoviedb.org/3/trending?api_key=secret": dial tcp`)},
	}}
	m := NewMovies(api, nil)
	_ = m.FetchTrending(context.Background())

	err := m.FetchTrending(context.Background())
	if Message(err) != "Invalid API key" {
		t.Fatalf("message = %q, want service message", Message(err))
	}
	st := m.State()
	if st.Status != StatusFailed || st.Error != "Invalid API key" || len(st.Trending) != 1 {
		t.Fatalf("state = %#v, want failed keeping previous list", st)
	}

	_ = m.FetchTrending(context.Background())
	if got := m.State().Error; got != msgMoviesFailed {
		t.Fatalf("error = %q, want %q", got, msgMoviesFailed)
	}
}

func TestMovies_MissingAPIKeyMakesNoRequest(t *testing.T) {
	client, err := tmdb.NewClient(tmdb.Options{BaseURL: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	m := NewMovies(client, nil)

	err = m.FetchTrending(context.Background())
	if !errors.Is(err, tmdb.ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
	if got := m.State().Error; got != tmdb.ErrMissingAPIKey.Error() {
		t.Fatalf("error = %q, want configuration message", got)
	}
}

func TestMovies_StaleCompletionIsDropped(t *testing.T) {
	slow := make(chan struct{})
	api := &fakeMovieService{replies: []movieReply{
		{movies: []tmdb.Movie{movie(1, "old")}, gate: slow},
		{movies: []tmdb.Movie{movie(2, "new")}},
	}}
	m := NewMovies(api, nil)

	first := make(chan error, 1)
	go func() { first <- m.FetchTrending(context.Background()) }()

	// Wait for the first call to reach the service before starting the second.
	deadline := time.Now().Add(2 * time.Second)
	for {
		api.mu.Lock()
		calls := api.calls
		api.mu.Unlock()
		if calls == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("first fetch never started")
		}
		time.Sleep(time.Millisecond)
	}

	if err := m.FetchTrending(context.Background()); err != nil {
		t.Fatalf("second FetchTrending returned error: %v", err)
	}
	close(slow)
	if err := <-first; err != nil {
		t.Fatalf("first FetchTrending returned error: %v", err)
	}

	st := m.State()
	if !reflect.DeepEqual(ids(st.Trending), []int64{2}) || st.Status != StatusSucceeded {
		t.Fatalf("state = %#v, want newer result kept", st)
	}
}

func TestMovies_FetchDetails(t *testing.T) {
	details := tmdb.MovieDetails{Movie: movie(9, "x"), Runtime: 120}
	api := &fakeMovieService{details: details}
	m := NewMovies(api, nil)

	got, err := m.FetchDetails(context.Background(), 9)
	if err != nil || got.Runtime != 120 {
		t.Fatalf("FetchDetails = %#v, %v", got, err)
	}

	api.detErr = errors.New("boom")
	if _, err := m.FetchDetails(context.Background(), 9); Message(err) != msgDetailsFailed {
		t.Fatalf("message = %q, want %q", Message(err), msgDetailsFailed)
	}
	if m.State().Status != StatusIdle {
		t.Fatalf("FetchDetails should not touch slice status")
	}
}
