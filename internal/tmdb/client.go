package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/five82/cinedeck/internal/logging"
)

// ErrMissingAPIKey is returned before any request when no API key is configured.
var ErrMissingAPIKey = errors.New("TMDb API key missing. Create an API key and expose it as TMDB_API_KEY before fetching movies.")

// MovieFetcher is implemented by *Client and faked in tests.
type MovieFetcher interface {
	FetchTrending(ctx context.Context) ([]Movie, error)
	FetchMovieDetails(ctx context.Context, id int64) (MovieDetails, error)
}

var _ MovieFetcher = (*Client)(nil)

// APIError is a non-2xx reply from the service.
type APIError struct {
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
}

// Options configure NewClient.
type Options struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
	Timeout      time.Duration
	RateLimit    float64 // requests per second; zero disables limiting
	HTTPClient   *http.Client
	Logger       *zap.Logger
}

// Client talks to the TMDB v3 API.
type Client struct {
	baseURL   *url.URL
	imageBase string
	apiKey    string
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	log       *zap.Logger
}

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	defaultUserAgent    = "cinedeck/0.1"
	defaultTimeout      = 10 * time.Second

	// PlaceholderPosterURL is used when a movie has no poster.
	PlaceholderPosterURL = "https://via.placeholder.com/300x450?text=No+Image"
)

// NewClient builds a Client. A blank API key is accepted here and reported
// by every fetch.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(1, int(opts.RateLimit)))
	}
	imageBase := strings.TrimRight(strings.TrimSpace(opts.ImageBaseURL), "/")
	if imageBase == "" {
		imageBase = defaultImageBaseURL
	}
	return &Client{
		baseURL:   base,
		imageBase: imageBase,
		apiKey:    strings.TrimSpace(opts.APIKey),
		http:      httpClient,
		limiter:   limiter,
		userAgent: defaultUserAgent,
		log:       logging.OrNop(opts.Logger).Named("tmdb"),
	}, nil
}

// HasAPIKey reports whether fetches can be attempted.
func (c *Client) HasAPIKey() bool {
	return c != nil && c.apiKey != ""
}

// FetchTrending returns this week's trending movies.
func (c *Client) FetchTrending(ctx context.Context) ([]Movie, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload TrendingResponse
	if err := c.get(ctx, "/trending/movie/week", &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// FetchMovieDetails returns the full record for one movie.
func (c *Client) FetchMovieDetails(ctx context.Context, id int64) (MovieDetails, error) {
	if c == nil {
		return MovieDetails{}, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return MovieDetails{}, fmt.Errorf("movie id required")
	}
	var payload MovieDetails
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), &payload); err != nil {
		return MovieDetails{}, err
	}
	return payload, nil
}

// PosterURL returns the full image URL for a poster path, or the placeholder.
func (c *Client) PosterURL(posterPath string) string {
	base := defaultImageBaseURL
	if c != nil {
		base = c.imageBase
	}
	return PosterURL(base, posterPath)
}

// PosterURL joins an image base URL and a poster path.
func PosterURL(imageBase, posterPath string) string {
	posterPath = strings.TrimSpace(posterPath)
	if posterPath == "" {
		return PlaceholderPosterURL
	}
	if !strings.HasPrefix(posterPath, "/") {
		posterPath = "/" + posterPath
	}
	return strings.TrimRight(imageBase, "/") + posterPath
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	reqURL := *c.baseURL
	reqURL.Path = strings.TrimRight(c.baseURL.Path, "/") + path
	reqURL.RawQuery = url.Values{"api_key": []string{c.apiKey}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redactKey(urlErr.URL)
		}
		c.log.Warn("request failed", zap.String("path", path), zap.String("request_id", requestID), zap.Error(err))
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("request",
		zap.String("method", http.MethodGet),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", requestID),
	)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Path: path, Status: resp.StatusCode}
		var body struct {
			StatusMessage string `json:"status_message"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) == nil {
			apiErr.Message = strings.TrimSpace(body.StatusMessage)
		}
		return apiErr
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// redactKey hides the api_key query value in a request URL.
func redactKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse tmdb base url %q: %w", raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
