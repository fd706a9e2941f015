package state

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/cinedeck/internal/kv"
	"github.com/five82/cinedeck/internal/logging"
	"github.com/five82/cinedeck/internal/tmdb"
)

// FavouritesState is a copy of the favourites slice.
type FavouritesState struct {
	Movies   []tmdb.Movie
	Hydrated bool
}

// Contains reports whether a movie with id is present.
func (s FavouritesState) Contains(id int64) bool {
	return indexOf(s.Movies, id) >= 0
}

const (
	msgFavouriteAddFailed    = "Unable to save favourites right now."
	msgFavouriteRemoveFailed = "Unable to update favourites."
)

// Favourites is an ordered, id-unique movie list persisted under
// KeyFavourites. Memory is only updated after a successful write.
type Favourites struct {
	mu    sync.RWMutex
	state FavouritesState

	// writer serialises read-modify-persist-commit.
	writer sync.Mutex
	kv     kv.Store
	log    *zap.Logger
}

// NewFavourites builds an empty, unhydrated slice.
func NewFavourites(store kv.Store, logger *zap.Logger) *Favourites {
	return &Favourites{
		kv:  store,
		log: logging.OrNop(logger).Named("state.favourites"),
	}
}

// State returns a copy of the slice.
func (f *Favourites) State() FavouritesState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return FavouritesState{Movies: cloneMovies(f.state.Movies), Hydrated: f.state.Hydrated}
}

// Contains reports whether id is a favourite.
func (f *Favourites) Contains(id int64) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return indexOf(f.state.Movies, id) >= 0
}

// Hydrate loads the persisted list. Absent, unreadable or corrupt values
// hydrate as empty. Only the first hydration is applied.
func (f *Favourites) Hydrate(ctx context.Context) {
	movies, err := f.load(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Hydrated {
		return
	}
	f.state.Hydrated = true
	if err != nil {
		f.log.Warn("hydrate failed; starting empty", zap.String("key", KeyFavourites), zap.Error(err))
		return
	}
	f.state.Movies = movies
}

func (f *Favourites) load(ctx context.Context) ([]tmdb.Movie, error) {
	raw, ok, err := f.kv.Get(ctx, KeyFavourites)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var movies []tmdb.Movie
	if err := json.Unmarshal([]byte(raw), &movies); err != nil {
		return nil, fmt.Errorf("decode favourites: %w", err)
	}
	return dedupe(movies), nil
}

func (f *Favourites) markHydrated() {
	f.mu.Lock()
	f.state.Hydrated = true
	f.mu.Unlock()
}

// Add appends movie unless its id is already present. The list is written
// either way.
func (f *Favourites) Add(ctx context.Context, movie tmdb.Movie) error {
	f.writer.Lock()
	defer f.writer.Unlock()

	current := f.State().Movies
	updated := current
	if indexOf(current, movie.ID) < 0 {
		updated = append(current, movie)
	}
	if err := f.commit(ctx, updated); err != nil {
		f.log.Warn("add failed", zap.Int64("movie_id", movie.ID), zap.Error(err))
		return persistError(msgFavouriteAddFailed, err)
	}
	return nil
}

// Remove drops every entry with id. Removing an absent id still writes.
func (f *Favourites) Remove(ctx context.Context, id int64) error {
	f.writer.Lock()
	defer f.writer.Unlock()

	current := f.State().Movies
	updated := make([]tmdb.Movie, 0, len(current))
	for _, m := range current {
		if m.ID != id {
			updated = append(updated, m)
		}
	}
	if err := f.commit(ctx, updated); err != nil {
		f.log.Warn("remove failed", zap.Int64("movie_id", id), zap.Error(err))
		return persistError(msgFavouriteRemoveFailed, err)
	}
	return nil
}

// Toggle adds movie when absent and removes it otherwise. It reports whether
// the movie is a favourite afterwards.
func (f *Favourites) Toggle(ctx context.Context, movie tmdb.Movie) (bool, error) {
	if f.Contains(movie.ID) {
		if err := f.Remove(ctx, movie.ID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := f.Add(ctx, movie); err != nil {
		return false, err
	}
	return true, nil
}

// commit persists movies and, only on success, publishes them.
func (f *Favourites) commit(ctx context.Context, movies []tmdb.Movie) error {
	if movies == nil {
		movies = []tmdb.Movie{}
	}
	data, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("encode favourites: %w", err)
	}
	if err := f.kv.Set(ctx, KeyFavourites, string(data)); err != nil {
		return err
	}
	f.mu.Lock()
	f.state.Movies = movies
	f.mu.Unlock()
	return nil
}

func indexOf(movies []tmdb.Movie, id int64) int {
	for i, m := range movies {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func dedupe(movies []tmdb.Movie) []tmdb.Movie {
	seen := make(map[int64]struct{}, len(movies))
	out := movies[:0]
	for _, m := range movies {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}

func cloneMovies(movies []tmdb.Movie) []tmdb.Movie {
	if len(movies) == 0 {
		return nil
	}
	dup := make([]tmdb.Movie, len(movies))
	copy(dup, movies)
	return dup
}
