// Package state holds cinedeck's application state.
//
// # Overview
//
// State is split into four slices, each owning one concern and at most one
// persisted key:
//
//   - Auth: the signed-in user (KeyAuth), login/register/logout
//   - Favourites: ordered, id-unique movie list (KeyFavourites)
//   - Theme: light or dark (KeyTheme)
//   - Movies: the trending list, never persisted
//
// Store composes the slices. It is built once by the app package and handed
// to the UI; there is no package-level store.
//
// # Concurrency Model
//
// Every slice guards its state with a sync.RWMutex that is held only while
// copying. Slices that write to storage also hold a writer mutex for the
// whole read-modify-persist-commit sequence, so two mutations of the same
// slice never interleave:
//
//	Add(m1) ──┐                      ┌── commit [m1]
//	          ├── writer.Lock ──────►│
//	Add(m2) ──┘   (waits)            └── commit [m1 m2]
//
// Slices touch disjoint keys, so no lock spans slices.
//
// # Persist, Then Commit
//
// Mutations write to kv.Store first and update memory only on success. A
// failed write returns *OpError wrapping ErrPersist and leaves memory as it
// was. Reads during hydration never fail: absent, unreadable or corrupt
// values hydrate as the slice's default.
//
// # Bootstrap
//
// Initialize runs the three Hydrate calls on an errgroup and waits for them
// or the bootstrap timeout. Slices still pending at the deadline are marked
// hydrated with defaults and any late result is discarded. Ready flips to
// true once.
//
// # Errors
//
// Operations return *OpError whose Message is fit for display. Message(err)
// extracts it. The underlying cause stays available through errors.Is and
// errors.As.
package state
