// Package tmdb provides an HTTP client for The Movie Database v3 API.
//
// # Overview
//
// The client covers the two read-only endpoints cinedeck needs:
//
//   - GET /trending/movie/week: the home list
//   - GET /movie/{id}: the details view
//
// Both authenticate with the api_key query parameter. A client built without
// a key is still usable as a value; every fetch returns ErrMissingAPIKey
// before a request is built so the caller can surface a configuration error
// instead of a network failure.
//
// # Request Handling
//
// All requests:
//   - Pass through a token bucket limiter (rate.Limiter)
//   - Set Accept, User-Agent and X-Request-ID headers
//   - Log method, path, status, duration and request id at debug level
//
// Non-2xx replies become *APIError. TMDB's status_message is used as the
// error text when the body carries one.
//
// # Helpers
//
// PosterURL joins an image base with a poster path and falls back to a
// placeholder image. StatusLabel buckets a movie by popularity into
// Trending, Popular or Recommended.
package tmdb
