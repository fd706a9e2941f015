package state

import (
	"context"
	"testing"
	"time"

	"github.com/five82/cinedeck/internal/tmdb"
)

func newTestStore(kvStore *faultStore, timeout time.Duration) *Store {
	return NewStore(Options{
		KV:               kvStore,
		AuthService:      &fakeAuthService{},
		MovieService:     &fakeMovieService{},
		BootstrapTimeout: timeout,
	})
}

func TestStore_InitializeOnEmptyStorage(t *testing.T) {
	s := newTestStore(newFaultStore(), time.Second)
	if s.Ready() {
		t.Fatalf("Ready = true before Initialize")
	}

	s.Initialize(context.Background())

	snap := s.Snapshot()
	if !snap.Ready {
		t.Fatalf("Ready = false after Initialize")
	}
	if !snap.Auth.Hydrated || snap.Auth.IsLoggedIn || snap.Auth.User != nil {
		t.Fatalf("auth = %#v, want hydrated and logged out", snap.Auth)
	}
	if !snap.Favourites.Hydrated || len(snap.Favourites.Movies) != 0 {
		t.Fatalf("favourites = %#v, want hydrated and empty", snap.Favourites)
	}
	if !snap.Theme.Hydrated || snap.Theme.Mode != ThemeLight {
		t.Fatalf("theme = %#v, want hydrated light", snap.Theme)
	}
	if snap.Movies.Status != StatusIdle {
		t.Fatalf("movies status = %q, want idle", snap.Movies.Status)
	}
}

func TestStore_InitializeLoadsPersistedSlices(t *testing.T) {
	ctx := context.Background()
	kvStore := newFaultStore()
	_ = kvStore.Set(ctx, KeyAuth, `{"id":1,"name":"Emily Johnson","email":"emilys@dummy.com","token":"abc"}`)
	_ = kvStore.Set(ctx, KeyFavourites, `[{"id":10,"title":"Heat","overview":"","release_date":"1995-12-15","vote_average":7.9}]`)
	_ = kvStore.Set(ctx, KeyTheme, "dark")

	s := newTestStore(kvStore, time.Second)
	s.Initialize(ctx)
	snap := s.Snapshot()
	if snap.Auth.User == nil || snap.Auth.User.Name != "Emily Johnson" {
		t.Fatalf("auth user = %#v", snap.Auth.User)
	}
	if len(snap.Favourites.Movies) != 1 || snap.Favourites.Movies[0].Title != "Heat" {
		t.Fatalf("favourites = %#v", snap.Favourites.Movies)
	}
	if snap.Theme.Mode != ThemeDark {
		t.Fatalf("theme = %q, want dark", snap.Theme.Mode)
	}
}

func TestStore_InitializeTimesOutWithDefaults(t *testing.T) {
	ctx := context.Background()
	kvStore := newFaultStore()
	_ = kvStore.Set(ctx, KeyTheme, "dark")
	block := make(chan struct{})
	kvStore.getBlock = block
	t.Cleanup(func() { close(block) })

	s := newTestStore(kvStore, 50*time.Millisecond)
	start := time.Now()
	s.Initialize(ctx)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("Initialize took %v, want close to the timeout", elapsed)
	}

	snap := s.Snapshot()
	if !snap.Ready {
		t.Fatalf("Ready = false after timeout")
	}
	if !snap.Auth.Hydrated || !snap.Favourites.Hydrated || !snap.Theme.Hydrated {
		t.Fatalf("slices not marked hydrated: %#v", snap)
	}
	if snap.Theme.Mode != ThemeLight {
		t.Fatalf("theme = %q, want default light", snap.Theme.Mode)
	}
}

func TestStore_InitializeRunsOnce(t *testing.T) {
	ctx := context.Background()
	kvStore := newFaultStore()
	s := newTestStore(kvStore, time.Second)
	s.Initialize(ctx)

	_ = kvStore.Set(ctx, KeyTheme, "dark")
	s.Initialize(ctx)
	if s.Theme.Mode() != ThemeLight {
		t.Fatalf("second Initialize re-hydrated theme")
	}
}

func TestStore_SnapshotIsIndependent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(newFaultStore(), time.Second)
	s.Initialize(ctx)
	_ = s.Favourites.Add(ctx, tmdb.Movie{ID: 1, Title: "a"})

	snap := s.Snapshot()
	snap.Favourites.Movies[0].Title = "changed"
	if s.Snapshot().Favourites.Movies[0].Title != "a" {
		t.Fatalf("Snapshot should clone slices")
	}
	if !snap.Favourites.Contains(1) {
		t.Fatalf("FavouritesState.Contains(1) = false")
	}
}
