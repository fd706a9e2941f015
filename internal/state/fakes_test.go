package state

import (
	"context"
	"errors"
	"sync"

	"github.com/five82/cinedeck/internal/dummyjson"
	"github.com/five82/cinedeck/internal/kv"
	"github.com/five82/cinedeck/internal/tmdb"
)

var errDisk = errors.New("disk on fire")

// faultStore wraps a memory store and fails or blocks on demand.
type faultStore struct {
	*kv.Memory

	mu        sync.Mutex
	getErr    error
	setErr    error
	removeErr error
	getBlock  chan struct{}
	sets      int
}

func newFaultStore() *faultStore {
	return &faultStore{Memory: kv.NewMemory()}
}

func (s *faultStore) failGets(err error) {
	s.mu.Lock()
	s.getErr = err
	s.mu.Unlock()
}

func (s *faultStore) failSets(err error) {
	s.mu.Lock()
	s.setErr = err
	s.mu.Unlock()
}

func (s *faultStore) failRemoves(err error) {
	s.mu.Lock()
	s.removeErr = err
	s.mu.Unlock()
}

func (s *faultStore) setCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

func (s *faultStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	err, block := s.getErr, s.getBlock
	s.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	}
	if err != nil {
		return "", false, err
	}
	return s.Memory.Get(ctx, key)
}

func (s *faultStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.sets++
	err := s.setErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Memory.Set(ctx, key, value)
}

func (s *faultStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	err := s.removeErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Memory.Remove(ctx, key)
}

var _ kv.Store = (*faultStore)(nil)

type fakeAuthService struct {
	login    dummyjson.LoginResponse
	loginErr error
	add      dummyjson.AddUserResponse
	addErr   error

	gotUsername string
	gotPassword string
	gotAdd      dummyjson.AddUserRequest
}

func (f *fakeAuthService) Login(_ context.Context, username, password string) (dummyjson.LoginResponse, error) {
	f.gotUsername, f.gotPassword = username, password
	return f.login, f.loginErr
}

func (f *fakeAuthService) AddUser(_ context.Context, req dummyjson.AddUserRequest) (dummyjson.AddUserResponse, error) {
	f.gotAdd = req
	return f.add, f.addErr
}

// fakeMovieService answers FetchTrending from a queue of replies. A reply
// with a non-nil gate waits for it to close first.
type fakeMovieService struct {
	mu      sync.Mutex
	replies []movieReply
	calls   int
	details tmdb.MovieDetails
	detErr  error
}

type movieReply struct {
	movies []tmdb.Movie
	err    error
	gate   chan struct{}
}

func (f *fakeMovieService) FetchTrending(ctx context.Context) ([]tmdb.Movie, error) {
	f.mu.Lock()
	var r movieReply
	if f.calls < len(f.replies) {
		r = f.replies[f.calls]
	}
	f.calls++
	f.mu.Unlock()
	if r.gate != nil {
		select {
		case <-r.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return r.movies, r.err
}

func (f *fakeMovieService) FetchMovieDetails(context.Context, int64) (tmdb.MovieDetails, error) {
	return f.details, f.detErr
}

func movie(id int64, title string) tmdb.Movie {
	return tmdb.Movie{ID: id, Title: title, ReleaseDate: "2024-01-01", VoteAverage: 7.5}
}

func ids(movies []tmdb.Movie) []int64 {
	out := make([]int64, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.ID)
	}
	return out
}
