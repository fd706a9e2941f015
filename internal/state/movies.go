package state

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/cinedeck/internal/logging"
	"github.com/five82/cinedeck/internal/tmdb"
)

// MoviesState is a copy of the movies slice.
type MoviesState struct {
	Trending []tmdb.Movie
	Status   AsyncStatus
	Error    string
}

const (
	msgMoviesFailed  = "Unable to fetch trending movies. Please try again later."
	msgDetailsFailed = "Unable to load movie details."
)

// Movies holds the trending list. Overlapping fetches both run; a result
// older than one already applied is dropped.
type Movies struct {
	mu      sync.RWMutex
	state   MoviesState
	started uint64
	applied uint64

	api tmdb.MovieFetcher
	log *zap.Logger
}

// NewMovies builds an idle slice.
func NewMovies(api tmdb.MovieFetcher, logger *zap.Logger) *Movies {
	return &Movies{
		state: MoviesState{Status: StatusIdle},
		api:   api,
		log:   logging.OrNop(logger).Named("state.movies"),
	}
}

// State returns a copy of the slice.
func (m *Movies) State() MoviesState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st := m.state
	st.Trending = cloneMovies(m.state.Trending)
	return st
}

// NeedsInitialFetch reports whether no fetch has been dispatched yet.
func (m *Movies) NeedsInitialFetch() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Status == StatusIdle
}

// FetchTrending replaces the list on success and keeps it on failure.
func (m *Movies) FetchTrending(ctx context.Context) error {
	m.mu.Lock()
	m.started++
	gen := m.started
	m.state.Status = StatusLoading
	m.state.Error = ""
	m.mu.Unlock()

	movies, err := m.api.FetchTrending(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen < m.applied {
		m.log.Debug("dropping stale trending result", zap.Uint64("generation", gen), zap.Uint64("applied", m.applied))
		if err != nil {
			return &OpError{Message: movieMessage(err, msgMoviesFailed), Err: err}
		}
		return nil
	}
	m.applied = gen

	if err != nil {
		msg := movieMessage(err, msgMoviesFailed)
		m.state.Status = StatusFailed
		m.state.Error = msg
		m.log.Warn("fetch trending failed", zap.String("message", msg), zap.Error(err))
		return &OpError{Message: msg, Err: err}
	}
	m.state.Status = StatusSucceeded
	m.state.Trending = cloneMovies(movies)
	m.log.Info("fetched trending", zap.Int("count", len(movies)))
	return nil
}

// FetchDetails loads one movie. It does not touch slice state.
func (m *Movies) FetchDetails(ctx context.Context, id int64) (tmdb.MovieDetails, error) {
	details, err := m.api.FetchMovieDetails(ctx, id)
	if err != nil {
		msg := movieMessage(err, msgDetailsFailed)
		m.log.Warn("fetch details failed", zap.Int64("movie_id", id), zap.Error(err))
		return tmdb.MovieDetails{}, &OpError{Message: msg, Err: err}
	}
	return details, nil
}

// movieMessage keeps configuration and service messages and hides transport
// errors behind fallback.
func movieMessage(err error, fallback string) string {
	if errors.Is(err, tmdb.ErrMissingAPIKey) {
		return tmdb.ErrMissingAPIKey.Error()
	}
	var apiErr *tmdb.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return fallback
}
