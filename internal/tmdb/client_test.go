package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("example.com/3?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Path != "/3" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func newTestClient(t *testing.T, baseURL, key string) *Client {
	t.Helper()
	c, err := NewClient(Options{BaseURL: baseURL, APIKey: key, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestClient_FetchTrendingEncodesKeyAndKeepsBasePath(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey, gotRequestID, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TrendingResponse{
			Page: 1,
			Results: []Movie{
				{ID: 1, Title: "Dune", PosterPath: "/dune.jpg", Popularity: 512.5},
				{ID: 2, Title: "Heat"},
			},
		})
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL+"/3", "secret")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	movies, err := c.FetchTrending(ctx)
	if err != nil {
		t.Fatalf("FetchTrending returned error: %v", err)
	}
	if len(movies) != 2 || movies[0].Title != "Dune" || movies[1].ID != 2 {
		t.Fatalf("FetchTrending = %#v, want Dune and Heat", movies)
	}
	if gotPath != "/3/trending/movie/week" {
		t.Fatalf("path = %q, want /3/trending/movie/week", gotPath)
	}
	if gotKey != "secret" {
		t.Fatalf("api_key = %q, want secret", gotKey)
	}
	if gotRequestID == "" {
		t.Fatalf("expected X-Request-ID header")
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("user agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
}

func TestClient_FetchMovieDetailsDecodesGenres(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"id":603,"title":"The Matrix","runtime":136,"tagline":"Welcome to the Real World.",
			"genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}],"poster_path":null}`))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, "k")
	details, err := c.FetchMovieDetails(context.Background(), 603)
	if err != nil {
		t.Fatalf("FetchMovieDetails returned error: %v", err)
	}
	if details.ID != 603 || details.Runtime != 136 || details.Tagline == "" {
		t.Fatalf("details = %#v", details)
	}
	names := details.GenreNames()
	if len(names) != 2 || names[1] != "Science Fiction" {
		t.Fatalf("GenreNames = %v, want [Action Science Fiction]", names)
	}
	if details.PosterPath != "" {
		t.Fatalf("PosterPath = %q, want empty for null", details.PosterPath)
	}

	if _, err := c.FetchMovieDetails(context.Background(), 0); err == nil {
		t.Fatalf("expected error for zero id")
	}
}

func TestClient_MissingKeyFailsBeforeRequest(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, "   ")
	if c.HasAPIKey() {
		t.Fatalf("HasAPIKey = true, want false for blank key")
	}
	if _, err := c.FetchTrending(context.Background()); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("FetchTrending err = %v, want ErrMissingAPIKey", err)
	}
	if _, err := c.FetchMovieDetails(context.Background(), 7); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("FetchMovieDetails err = %v, want ErrMissingAPIKey", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("server hits = %d, want 0", hits.Load())
	}
}

func TestClient_ErrorStatusUsesStatusMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/trending/movie/week":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key."}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, "bad")
	_, err := c.FetchTrending(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", apiErr.Status)
	}
	if err.Error() != "Invalid API key: You must be granted a valid key." {
		t.Fatalf("message = %q", err.Error())
	}

	_, err = c.FetchMovieDetails(context.Background(), 1)
	if err == nil || err.Error() != "api /movie/1 returned status 500" {
		t.Fatalf("err = %v, want generic status error", err)
	}
}

func TestClient_MalformedJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[`))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, "k")
	if _, err := c.FetchTrending(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, "k")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.FetchTrending(ctx); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestPosterURL(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", PlaceholderPosterURL},
		{"blank", "  ", PlaceholderPosterURL},
		{"leading slash", "/abc.jpg", "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"no slash", "abc.jpg", "https://image.tmdb.org/t/p/w500/abc.jpg"},
	}
	var c *Client
	for _, tt := range tests {
		if got := c.PosterURL(tt.path); got != tt.want {
			t.Fatalf("%s: PosterURL(%q) = %q, want %q", tt.name, tt.path, got, tt.want)
		}
	}

	client := newTestClient(t, "", "k")
	client.imageBase = "https://img.example/w300/"
	if got := client.PosterURL("/x.png"); got != "https://img.example/w300/x.png" {
		t.Fatalf("PosterURL = %q", got)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		popularity float64
		want       string
	}{
		{0, LabelRecommended},
		{200, LabelRecommended},
		{200.1, LabelPopular},
		{400, LabelPopular},
		{400.5, LabelTrending},
		{1200, LabelTrending},
	}
	for _, tt := range tests {
		if got := StatusLabel(Movie{Popularity: tt.popularity}); got != tt.want {
			t.Fatalf("StatusLabel(%v) = %q, want %q", tt.popularity, got, tt.want)
		}
	}
}

func TestClient_TransportErrorHidesKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	c := newTestClient(t, base, "super-secret")
	_, err := c.FetchTrending(context.Background())
	if err == nil {
		t.Fatalf("expected error from closed server")
	}
	if strings.Contains(err.Error(), "super-secret") {
		t.Fatalf("error leaks api key: %v", err)
	}
	if !strings.Contains(err.Error(), "REDACTED") {
		t.Fatalf("error = %v, want redacted url", err)
	}
}

func TestRedactKey(t *testing.T) {
	got := redactKey("https://api.themoviedb.org/3/movie/1?api_key=abc&language=en")
	if strings.Contains(got, "abc") || !strings.Contains(got, "language=en") {
		t.Fatalf("redactKey = %q", got)
	}
	if got := redactKey("https://example.com/x"); got != "https://example.com/x" {
		t.Fatalf("redactKey without key = %q, want unchanged", got)
	}
}
