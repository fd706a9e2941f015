package ui

import (
	"context"
	"image"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cinedeck/internal/logtail"
	"github.com/five82/cinedeck/internal/poster"
	"github.com/five82/cinedeck/internal/state"
	"github.com/five82/cinedeck/internal/tmdb"
)

// Message types
type (
	tickMsg     time.Time
	snapshotMsg state.Snapshot
	readyMsg    struct{}

	authDoneMsg     struct{ err error }
	loggedOutMsg    struct{}
	trendingDoneMsg struct{ err error }
	themeDoneMsg    struct{ err error }

	favouriteDoneMsg struct {
		title string
		added bool
		err   error
	}

	detailsMsg struct {
		id      int64
		details tmdb.MovieDetails
		err     error
	}

	posterMsg struct {
		id  int64
		img image.Image
		err error
	}

	logsMsg struct {
		entries []logtail.Entry
		err     error
	}
)

// tickCmd returns a command that sends a tick after the interval.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchSnapshotCmd returns a command that copies the store state.
func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// initializeCmd runs the bootstrap coordinator. It resolves once the store
// is ready.
func initializeCmd(ctx context.Context, store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		store.Initialize(ctx)
		return readyMsg{}
	}
}

func loginCmd(ctx context.Context, store *state.Store, creds state.Credentials) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		return authDoneMsg{err: store.Auth.Login(ctx, creds)}
	}
}

func registerCmd(ctx context.Context, store *state.Store, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		return authDoneMsg{err: store.Auth.Register(ctx, name, email, password)}
	}
}

func logoutCmd(ctx context.Context, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		store.Auth.Logout(ctx)
		return loggedOutMsg{}
	}
}

func fetchTrendingCmd(ctx context.Context, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		return trendingDoneMsg{err: store.Movies.FetchTrending(ctx)}
	}
}

func toggleFavouriteCmd(ctx context.Context, store *state.Store, movie tmdb.Movie) tea.Cmd {
	return func() tea.Msg {
		added, err := store.Favourites.Toggle(ctx, movie)
		return favouriteDoneMsg{title: movie.Title, added: added, err: err}
	}
}

func removeFavouriteCmd(ctx context.Context, store *state.Store, movie tmdb.Movie) tea.Cmd {
	return func() tea.Msg {
		return favouriteDoneMsg{title: movie.Title, err: store.Favourites.Remove(ctx, movie.ID)}
	}
}

func setThemeCmd(ctx context.Context, store *state.Store, mode state.ThemeMode) tea.Cmd {
	return func() tea.Msg {
		return themeDoneMsg{err: store.Theme.SetMode(ctx, mode)}
	}
}

func fetchDetailsCmd(ctx context.Context, store *state.Store, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		details, err := store.Movies.FetchDetails(ctx, id)
		return detailsMsg{id: id, details: details, err: err}
	}
}

func fetchPosterCmd(ctx context.Context, fetcher *poster.Fetcher, id int64, url string) tea.Cmd {
	if fetcher == nil || url == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		img, err := fetcher.Fetch(ctx, url)
		return posterMsg{id: id, img: img, err: err}
	}
}

func readLogsCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := logtail.ReadEntries(path, LogTailLines)
		return logsMsg{entries: entries, err: err}
	}
}
