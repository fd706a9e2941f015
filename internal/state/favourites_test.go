package state

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/five82/cinedeck/internal/tmdb"
)

func TestFavourites_AddKeepsFirstInsertionOrderWithoutDuplicates(t *testing.T) {
	ctx := context.Background()
	f := NewFavourites(newFaultStore(), nil)

	for _, m := range []tmdb.Movie{movie(3, "c"), movie(1, "a"), movie(3, "c again"), movie(2, "b"), movie(1, "a")} {
		if err := f.Add(ctx, m); err != nil {
			t.Fatalf("Add(%d) returned error: %v", m.ID, err)
		}
	}
	got := f.State().Movies
	if !reflect.DeepEqual(ids(got), []int64{3, 1, 2}) {
		t.Fatalf("ids = %v, want [3 1 2]", ids(got))
	}
	if got[0].Title != "c" {
		t.Fatalf("first title = %q, want original entry kept", got[0].Title)
	}
}

func TestFavourites_AddIsIdempotentButStillWrites(t *testing.T) {
	ctx := context.Background()
	store := newFaultStore()
	f := NewFavourites(store, nil)

	if err := f.Add(ctx, movie(7, "x")); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	first := f.State()
	if err := f.Add(ctx, movie(7, "x")); err != nil {
		t.Fatalf("second Add returned error: %v", err)
	}
	if !reflect.DeepEqual(f.State(), first) {
		t.Fatalf("state after duplicate add = %#v, want %#v", f.State(), first)
	}
	if store.setCount() != 2 {
		t.Fatalf("writes = %d, want 2", store.setCount())
	}
}

func TestFavourites_RemoveMissingIDLeavesSequence(t *testing.T) {
	ctx := context.Background()
	f := NewFavourites(newFaultStore(), nil)
	_ = f.Add(ctx, movie(1, "a"))
	_ = f.Add(ctx, movie(2, "b"))

	if err := f.Remove(ctx, 99); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if got := ids(f.State().Movies); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Fatalf("ids = %v, want [1 2]", got)
	}

	if err := f.Remove(ctx, 1); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if got := ids(f.State().Movies); !reflect.DeepEqual(got, []int64{2}) {
		t.Fatalf("ids = %v, want [2]", got)
	}
	if f.Contains(1) || !f.Contains(2) {
		t.Fatalf("Contains mismatch after remove")
	}
}

func TestFavourites_PersistFailureLeavesMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newFaultStore()
	f := NewFavourites(store, nil)
	_ = f.Add(ctx, movie(1, "a"))

	store.failSets(errDisk)

	err := f.Add(ctx, movie(2, "b"))
	if !errors.Is(err, ErrPersist) || !errors.Is(err, errDisk) {
		t.Fatalf("Add err = %v, want ErrPersist wrapping cause", err)
	}
	if Message(err) != msgFavouriteAddFailed {
		t.Fatalf("Add message = %q, want %q", Message(err), msgFavouriteAddFailed)
	}

	err = f.Remove(ctx, 1)
	if Message(err) != msgFavouriteRemoveFailed {
		t.Fatalf("Remove message = %q, want %q", Message(err), msgFavouriteRemoveFailed)
	}
	if got := ids(f.State().Movies); !reflect.DeepEqual(got, []int64{1}) {
		t.Fatalf("ids = %v, want [1]", got)
	}

	// Storage still holds the last successful write.
	fresh := NewFavourites(store.Memory, nil)
	fresh.Hydrate(ctx)
	if got := ids(fresh.State().Movies); !reflect.DeepEqual(got, []int64{1}) {
		t.Fatalf("persisted ids = %v, want [1]", got)
	}
}

func TestFavourites_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFaultStore()
	f := NewFavourites(store, nil)
	want := []tmdb.Movie{movie(5, "e"), movie(4, "d"), movie(9, "i")}
	for _, m := range want {
		_ = f.Add(ctx, m)
	}

	fresh := NewFavourites(store, nil)
	fresh.Hydrate(ctx)
	st := fresh.State()
	if !st.Hydrated {
		t.Fatalf("Hydrated = false, want true")
	}
	if !reflect.DeepEqual(st.Movies, want) {
		t.Fatalf("hydrated = %#v, want %#v", st.Movies, want)
	}
}

func TestFavourites_HydrateFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(*faultStore)
	}{
		{"absent", func(*faultStore) {}},
		{"read error", func(s *faultStore) { s.failGets(errDisk) }},
		{"corrupt", func(s *faultStore) { _ = s.Memory.Set(ctx, KeyFavourites, "{not json") }},
	}
	for _, tt := range tests {
		store := newFaultStore()
		tt.setup(store)
		f := NewFavourites(store, nil)
		f.Hydrate(ctx)
		st := f.State()
		if !st.Hydrated || len(st.Movies) != 0 {
			t.Fatalf("%s: state = %#v, want hydrated and empty", tt.name, st)
		}
	}
}

func TestFavourites_Toggle(t *testing.T) {
	ctx := context.Background()
	f := NewFavourites(newFaultStore(), nil)

	added, err := f.Toggle(ctx, movie(1, "a"))
	if err != nil || !added {
		t.Fatalf("Toggle = %v, %v, want true, nil", added, err)
	}
	added, err = f.Toggle(ctx, movie(1, "a"))
	if err != nil || added {
		t.Fatalf("Toggle = %v, %v, want false, nil", added, err)
	}
	if f.Contains(1) {
		t.Fatalf("Contains(1) = true after second toggle")
	}
}

func TestFavourites_ConcurrentAddsAreNotLost(t *testing.T) {
	ctx := context.Background()
	store := newFaultStore()
	f := NewFavourites(store, nil)

	const n = 50
	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if err := f.Add(ctx, movie(id, fmt.Sprint(id))); err != nil {
				t.Errorf("Add(%d) returned error: %v", id, err)
			}
		}(int64(i))
	}
	wg.Wait()

	if got := len(f.State().Movies); got != n {
		t.Fatalf("len = %d, want %d", got, n)
	}
	fresh := NewFavourites(store, nil)
	fresh.Hydrate(ctx)
	if got := len(fresh.State().Movies); got != n {
		t.Fatalf("persisted len = %d, want %d", got, n)
	}
}

func TestFavourites_StateIsACopy(t *testing.T) {
	ctx := context.Background()
	f := NewFavourites(newFaultStore(), nil)
	_ = f.Add(ctx, movie(1, "a"))

	st := f.State()
	st.Movies[0].Title = "mutated"
	if f.State().Movies[0].Title != "a" {
		t.Fatalf("State should clone movies")
	}
}
