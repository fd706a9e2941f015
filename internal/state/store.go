package state

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/cinedeck/internal/dummyjson"
	"github.com/five82/cinedeck/internal/kv"
	"github.com/five82/cinedeck/internal/logging"
	"github.com/five82/cinedeck/internal/tmdb"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Auth       AuthState
	Favourites FavouritesState
	Theme      ThemeState
	Movies     MoviesState
	Ready      bool
}

// Options wire a Store.
type Options struct {
	KV               kv.Store
	AuthService      dummyjson.Authenticator
	MovieService     tmdb.MovieFetcher
	Logger           *zap.Logger
	BootstrapTimeout time.Duration
}

const defaultBootstrapTimeout = 5 * time.Second

// Store is the application state: four slices plus readiness.
type Store struct {
	Auth       *Auth
	Favourites *Favourites
	Theme      *Theme
	Movies     *Movies

	log      *zap.Logger
	timeout  time.Duration
	initOnce sync.Once
	ready    atomic.Bool
}

// NewStore builds every slice up front.
func NewStore(opts Options) *Store {
	logger := logging.OrNop(opts.Logger)
	timeout := opts.BootstrapTimeout
	if timeout <= 0 {
		timeout = defaultBootstrapTimeout
	}
	return &Store{
		Auth:       NewAuth(opts.KV, opts.AuthService, logger),
		Favourites: NewFavourites(opts.KV, logger),
		Theme:      NewTheme(opts.KV, logger),
		Movies:     NewMovies(opts.MovieService, logger),
		log:        logger.Named("state.bootstrap"),
		timeout:    timeout,
	}
}

// Initialize hydrates auth, favourites and theme concurrently and marks the
// store ready when all three settle or the bootstrap timeout passes. Slices
// still pending at the deadline keep their defaults. Later calls return
// immediately.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() { s.initialize(ctx) })
}

func (s *Store) initialize(ctx context.Context) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error { s.Auth.Hydrate(ctx); return nil })
	g.Go(func() error { s.Favourites.Hydrate(ctx); return nil })
	g.Go(func() error { s.Theme.Hydrate(ctx); return nil })

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("hydrated", zap.Duration("duration", time.Since(start)))
	case <-ctx.Done():
		s.log.Warn("hydration did not finish; continuing with defaults",
			zap.Duration("timeout", s.timeout),
			zap.Error(ctx.Err()),
		)
	}

	s.Auth.markHydrated()
	s.Favourites.markHydrated()
	s.Theme.markHydrated()
	s.ready.Store(true)
}

// Ready reports whether Initialize has completed.
func (s *Store) Ready() bool {
	return s.ready.Load()
}

// Snapshot returns a copy of every slice.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Auth:       s.Auth.State(),
		Favourites: s.Favourites.State(),
		Theme:      s.Theme.State(),
		Movies:     s.Movies.State(),
		Ready:      s.Ready(),
	}
}
