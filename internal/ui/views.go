package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cinedeck/internal/media"
	"github.com/five82/cinedeck/internal/state"
	"github.com/five82/cinedeck/internal/tmdb"
)

var (
	songs    = media.Songs()
	podcasts = media.Podcasts()
)

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.moveSelection(msg, len(m.snapshot.Movies.Trending)) {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.autoFetched = true
		return m, fetchTrendingCmd(m.ctx, m.store)
	case key.Matches(msg, m.keys.ToggleFavourite):
		if mv, ok := m.selectedMovie(); ok {
			return m, toggleFavouriteCmd(m.ctx, m.store, mv)
		}
	case key.Matches(msg, m.keys.Confirm):
		if mv, ok := m.selectedMovie(); ok {
			return m.openDetails(mv)
		}
	}
	return m, nil
}

func (m Model) handleFavouritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.moveSelection(msg, len(m.snapshot.Favourites.Movies)) {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.RemoveFavourite):
		if mv, ok := m.selectedMovie(); ok {
			return m, removeFavouriteCmd(m.ctx, m.store, mv)
		}
	case key.Matches(msg, m.keys.Confirm):
		if mv, ok := m.selectedMovie(); ok {
			return m.openDetails(mv)
		}
	}
	return m, nil
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleTheme):
		return m, setThemeCmd(m.ctx, m.store, m.snapshot.Theme.Mode.Toggled())
	case key.Matches(msg, m.keys.Logout):
		return m, logoutCmd(m.ctx, m.store)
	}
	return m, nil
}

// selectedMovie returns the highlighted movie on Home or Favourites.
func (m Model) selectedMovie() (tmdb.Movie, bool) {
	var movies []tmdb.Movie
	switch m.tab {
	case TabHome:
		movies = m.snapshot.Movies.Trending
	case TabFavourites:
		movies = m.snapshot.Favourites.Movies
	}
	idx := m.selected[m.tab]
	if idx < 0 || idx >= len(movies) {
		return tmdb.Movie{}, false
	}
	return movies[idx], true
}

func (m Model) renderHome() (string, string) {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	mv := m.snapshot.Movies

	var header []string
	switch {
	case mv.Status == state.StatusFailed:
		header = append(header, bg.Space()+bg.Render(mv.Error, styles.DangerText))
		header = append(header, bg.Space()+bg.Render("Press r to try again.", styles.MutedText))
	case mv.Status == state.StatusLoading:
		header = append(header, bg.Space()+m.spinner.View()+bg.Space()+bg.Render("Loading trending movies...", styles.MutedText))
	default:
		header = append(header, bg.Space()+bg.Render("Discover what's trending this week", styles.Text.Bold(true)))
	}

	if len(mv.Trending) == 0 {
		if mv.Status == state.StatusSucceeded {
			header = append(header, bg.Space()+bg.Render("No movies found", styles.MutedText))
		}
		return "Trending", strings.Join(header, "\n")
	}

	preview := ""
	if sel, ok := m.selectedMovie(); ok {
		preview = overview(sel)
	}
	return "Trending", m.renderListPage(header, m.movieRows(mv.Trending), m.selected[TabHome], preview)
}

func (m Model) renderFavourites() (string, string) {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	favs := m.snapshot.Favourites.Movies

	if len(favs) == 0 {
		return "Your favourites", strings.Join([]string{
			bg.Space() + bg.Render("No favourites yet", styles.Text.Bold(true)),
			bg.Space() + bg.Render("Save movies you like to access them quickly.", styles.MutedText),
		}, "\n")
	}

	header := []string{
		bg.Space() + bg.Render(fmt.Sprintf("%d saved", len(favs)), styles.MutedText),
	}
	preview := ""
	if sel, ok := m.selectedMovie(); ok {
		preview = overview(sel)
	}
	return "Your favourites", m.renderListPage(header, m.movieRows(favs), m.selected[TabFavourites], preview)
}

func (m Model) renderCatalogue(c media.Catalogue) (string, string) {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	rows := make([]listRow, len(c.Items))
	for i, item := range c.Items {
		rows[i] = listRow{title: item.Title, meta: item.Meta(), badge: item.Mood}
	}
	header := []string{bg.Space() + bg.Render(c.Subtitle, styles.MutedText)}

	sel := m.selected[m.tab]
	preview := ""
	if sel >= 0 && sel < len(c.Items) {
		preview = c.Items[sel].Description
	}
	return c.Title, m.renderListPage(header, rows, sel, preview)
}

func (m Model) renderProfile() (string, string) {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	name, email := "Guest", "No email"
	if u := m.snapshot.Auth.User; u != nil {
		if u.Name != "" {
			name = u.Name
		}
		if u.Email != "" {
			email = u.Email
		}
	}

	darkLabel := "off"
	if m.snapshot.Theme.Mode == state.ThemeDark {
		darkLabel = "on"
	}

	row := func(label, value string) string {
		return bg.Spaces(3) + bg.Render(padRight(label, 14), styles.MutedText) + bg.Render(value, styles.Text)
	}
	section := func(title string) string {
		return bg.Space() + bg.Render(title, styles.AccentText.Bold(true))
	}
	hint := func(k, desc string) string {
		return bg.Spaces(3) + bg.Render(k, styles.AccentText) + bg.Render(":", styles.FaintText) + bg.Render(desc, styles.MutedText)
	}

	lines := []string{
		bg.Space() + bg.Render(name, styles.Text.Bold(true)),
		bg.Space() + bg.Render(email, styles.MutedText),
		"",
		row("Favourites", fmt.Sprintf("%d", len(m.snapshot.Favourites.Movies))),
		row("Data source", "TMDB"),
		"",
		section("Appearance"),
		row("Dark mode", darkLabel),
		hint("t", "Toggle theme"),
		"",
		section("Account"),
		bg.Spaces(3) + bg.Render("Your data is stored locally on this machine", styles.MutedText),
		hint("L", "Logout"),
	}
	return "Profile", strings.Join(lines, "\n")
}
