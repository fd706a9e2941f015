package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/five82/cinedeck/internal/poster"
	"github.com/five82/cinedeck/internal/state"
	"github.com/five82/cinedeck/internal/tmdb"
)

// openDetails switches to the details screen and starts the details and
// poster requests.
func (m Model) openDetails(mv tmdb.Movie) (tea.Model, tea.Cmd) {
	m.screen = ScreenDetails
	m.details = detailState{movie: mv, loading: true}
	m.detailViewport.GotoTop()
	m.refreshDetailViewport()

	cmds := []tea.Cmd{fetchDetailsCmd(m.ctx, m.store, mv.ID)}
	if mv.PosterPath != "" {
		cmds = append(cmds, fetchPosterCmd(m.ctx, m.posters, mv.ID, tmdb.PosterURL(m.imageBase, mv.PosterPath)))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.screen = ScreenMain
		m.details = detailState{}
		return m, nil
	case key.Matches(msg, m.keys.ToggleFavourite):
		return m, toggleFavouriteCmd(m.ctx, m.store, m.details.movie)
	case key.Matches(msg, m.keys.Refresh):
		if m.details.err != "" {
			return m.openDetails(m.details.movie)
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m Model) handleDetails(msg detailsMsg) (tea.Model, tea.Cmd) {
	if m.screen != ScreenDetails || msg.id != m.details.movie.ID {
		return m, nil
	}
	m.details.loading = false
	if msg.err != nil {
		m.details.err = state.Message(msg.err)
		m.refreshDetailViewport()
		return m, nil
	}
	d := msg.details
	if d.ID == 0 {
		d.ID = msg.id
	}
	m.details.data = &d
	m.details.err = ""
	posterPath := m.details.movie.PosterPath
	m.details.movie = d.Movie
	m.refreshDetailViewport()

	// The list entry may have lacked a poster the full record carries.
	if posterPath == "" && d.PosterPath != "" && m.details.image == nil {
		return m, fetchPosterCmd(m.ctx, m.posters, d.ID, tmdb.PosterURL(m.imageBase, d.PosterPath))
	}
	return m, nil
}

func (m Model) handlePoster(msg posterMsg) (tea.Model, tea.Cmd) {
	if m.screen != ScreenDetails || msg.id != m.details.movie.ID {
		return m, nil
	}
	if msg.err != nil {
		m.log.Debug("poster unavailable", zap.Int64("movie_id", msg.id), zap.Error(msg.err))
		return m, nil
	}
	m.details.image = msg.img
	m.renderPoster()
	return m, nil
}

// renderPoster rescales the poster for the current terminal size.
func (m *Model) renderPoster() {
	if m.details.image == nil {
		m.details.poster = ""
		return
	}
	maxRows := min(PosterMaxRows, max(m.bodyHeight()-2, 1))
	cols, rows := poster.Size(m.details.image.Bounds(), PosterMaxCols, maxRows)
	m.details.poster = poster.Render(m.details.image, cols, rows)
}

func (m Model) showPoster() bool {
	return m.width >= LayoutPosterWidth
}

// detailTextWidth is the inner width of the details text box.
func (m Model) detailTextWidth() int {
	if m.showPoster() {
		return max(m.width-PosterMaxCols-4-2, 10)
	}
	return max(m.width-2, 10)
}

// refreshDetailViewport rebuilds the details text.
func (m *Model) refreshDetailViewport() {
	if m.details.movie.ID == 0 {
		m.detailViewport.SetContent("")
		return
	}
	m.renderPoster()
	m.detailViewport.SetContent(m.detailContent(m.detailTextWidth()))
}

func (m Model) detailContent(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	mv := m.details.movie
	textWidth := max(width-2, 10)

	var lines []string
	add := func(s string) { lines = append(lines, s) }
	field := func(label, value string) {
		add(bg.Space() + bg.Render(padRight(label, 12), styles.MutedText) + bg.Render(value, styles.Text))
	}

	for _, l := range wrap(mv.Title, textWidth) {
		add(bg.Space() + bg.Render(l, styles.Text.Bold(true)))
	}
	if d := m.details.data; d != nil && d.Tagline != "" {
		for _, l := range wrap(d.Tagline, textWidth) {
			add(bg.Space() + bg.Render(l, styles.MutedText.Italic(true)))
		}
	}
	label := tmdb.StatusLabel(mv)
	add(bg.Space() + styles.StatusStyle(label).Render(label))
	add("")

	field("Release", formatRelease(mv.ReleaseDate))
	field("Rating", fmt.Sprintf("⭐ %.1f", mv.VoteAverage))
	field("Popularity", humanize.Comma(int64(mv.Popularity)))
	if d := m.details.data; d != nil {
		if d.Runtime > 0 {
			field("Runtime", formatRuntime(d.Runtime))
		}
		if d.Homepage != "" {
			field("Homepage", truncate(d.Homepage, max(textWidth-12, 10)))
		}
	}
	add("")

	if m.snapshot.Favourites.Contains(mv.ID) {
		add(bg.Space() + bg.Render("★ Added to favourites", styles.SuccessText))
	} else {
		add(bg.Space() + bg.Render("☆ Add to favourites", styles.AccentText) + bg.Space() + bg.Render("(f)", styles.FaintText))
	}
	add("")

	if d := m.details.data; d != nil && len(d.Genres) > 0 {
		add(bg.Space() + bg.Render("Genres", styles.AccentText.Bold(true)))
		for _, l := range wrap(strings.Join(d.GenreNames(), " · "), textWidth) {
			add(bg.Space() + bg.Render(l, styles.Text))
		}
		add("")
	}

	add(bg.Space() + bg.Render("Overview", styles.AccentText.Bold(true)))
	for _, l := range wrap(overview(mv), textWidth) {
		add(bg.Space() + bg.Render(l, styles.Text))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDetails(height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	status := ""
	switch {
	case m.details.loading:
		status = bg.Space() + m.spinner.View() + bg.Space() + bg.Render("Loading details...", styles.MutedText)
	case m.details.err != "":
		status = bg.Space() + bg.Render(m.details.err, styles.DangerText) + bg.Spaces(2) +
			bg.Render("r", styles.AccentText) + bg.Render(":", styles.FaintText) + bg.Render("Retry", styles.MutedText)
	}
	content := m.detailViewport.View()
	if status != "" {
		content = status + "\n" + content
	}

	textBox := m.renderTitledBox("Movie details", content, m.detailTextWidth()+2, height, true)
	if !m.showPoster() {
		return textBox
	}

	posterContent := m.details.poster
	if posterContent == "" {
		posterContent = bg.Space() + bg.Render("No Image", styles.FaintText)
	}
	posterBox := m.renderTitledBox("Poster", posterContent, PosterMaxCols+4, height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, posterBox, textBox)
}

// formatRelease renders a YYYY-MM-DD date with a relative hint.
func formatRelease(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return "N/A"
	}
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return date + " (" + humanize.Time(t) + ")"
}

func formatRuntime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
