package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/cinedeck/internal/logging"
	"github.com/five82/cinedeck/internal/logtail"
	"github.com/five82/cinedeck/internal/poster"
	"github.com/five82/cinedeck/internal/state"
	"github.com/five82/cinedeck/internal/tmdb"
)

// Screen is the top-level view.
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenLogin
	ScreenRegister
	ScreenMain
	ScreenDetails
)

// Tab is a section of the signed-in main screen.
type Tab int

const (
	TabHome Tab = iota
	TabFavourites
	TabSongs
	TabPodcasts
	TabProfile
	TabLogs
	tabCount
)

var tabNames = [tabCount]string{"Home", "Favourites", "Songs", "Podcasts", "Profile", "Logs"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return ""
	}
	return tabNames[t]
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Store        *state.Store
	Posters      *poster.Fetcher
	ImageBaseURL string
	LogPath      string
	Tick         time.Duration
	Logger       *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	posters   *poster.Fetcher
	imageBase string
	logPath   string
	tick      time.Duration
	log       *zap.Logger

	// UI state
	theme    Theme
	keys     keyMap
	spinner  spinner.Model
	screen   Screen
	tab      Tab
	width    int
	height   int
	ready    bool
	showHelp bool

	// Data state
	snapshot    state.Snapshot
	autoFetched bool

	// Forms
	loginInputs    []textinput.Model
	registerInputs []textinput.Model
	focusIdx       int
	formErr        string
	busy           bool

	// Lists
	selected [tabCount]int

	// Details
	details        detailState
	detailViewport viewport.Model

	// Logs
	logViewport viewport.Model
	logEntries  []logtail.Entry
	logErr      string

	// Transient header messages
	flash    string
	flashErr bool
	flashAt  time.Time
}

// detailState holds the movie being shown on the details screen.
type detailState struct {
	movie   tmdb.Movie
	data    *tmdb.MovieDetails
	loading bool
	err     string
	image   image.Image
	poster  string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		posters:   opts.Posters,
		imageBase: opts.ImageBaseURL,
		logPath:   opts.LogPath,
		tick:      tick,
		log:       logging.OrNop(opts.Logger).Named("ui"),
		theme:     ThemeFor(state.ThemeLight),
		keys:      DefaultKeyMap(),
		spinner:   sp,
		screen:    ScreenLoading,
		tab:       TabHome,
	}
	m.initForms()
	m.detailViewport = viewport.New(0, 0)
	m.logViewport = viewport.New(0, 0)
	m.applyThemeToWidgets()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(m.tick),
		initializeCmd(m.ctx, m.store),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeViewports()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		return m.handleTick()

	case readyMsg:
		return m.applySnapshot(m.store.Snapshot())

	case snapshotMsg:
		return m.applySnapshot(state.Snapshot(msg))

	case authDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.formErr = state.Message(msg.err)
			return m.applySnapshot(m.store.Snapshot())
		}
		m.formErr = ""
		m.resetForms()
		m.screen = ScreenMain
		m.tab = TabHome
		return m.applySnapshot(m.store.Snapshot())

	case loggedOutMsg:
		m.screen = ScreenLogin
		m.tab = TabHome
		m.selected = [tabCount]int{}
		m.resetForms()
		return m.applySnapshot(m.store.Snapshot())

	case trendingDoneMsg:
		if msg.err != nil {
			m.log.Debug("trending fetch failed", zap.Error(msg.err))
		}
		return m.applySnapshot(m.store.Snapshot())

	case favouriteDoneMsg:
		switch {
		case msg.err != nil:
			m.setFlash(state.Message(msg.err), true)
		case msg.added:
			m.setFlash("Added "+msg.title+" to favourites", false)
		default:
			m.setFlash("Removed "+msg.title+" from favourites", false)
		}
		next, cmd := m.applySnapshot(m.store.Snapshot())
		next.refreshDetailViewport()
		return next, cmd

	case themeDoneMsg:
		if msg.err != nil {
			m.setFlash(state.Message(msg.err), true)
		}
		return m.applySnapshot(m.store.Snapshot())

	case detailsMsg:
		return m.handleDetails(msg)

	case posterMsg:
		return m.handlePoster(msg)

	case logsMsg:
		m.handleLogs(msg)
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	cmdBar := m.renderCommandBar()
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(cmdBar), 1)

	var body string
	switch m.activeScreen() {
	case ScreenLoading:
		body = m.renderLoading(bodyHeight)
	case ScreenLogin, ScreenRegister:
		body = m.renderAuth(bodyHeight)
	case ScreenDetails:
		body = m.renderDetails(bodyHeight)
	default:
		body = m.renderMain(bodyHeight)
	}

	bodyStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		Background(lipgloss.Color(m.theme.Background))

	return lipgloss.JoinVertical(lipgloss.Left, header, bodyStyle.Render(body), cmdBar)
}

// activeScreen derives the screen to draw from the store: nothing is
// interactive before bootstrap, and the auth forms replace everything while
// logged out.
func (m Model) activeScreen() Screen {
	if !m.snapshot.Ready {
		return ScreenLoading
	}
	if !m.snapshot.Auth.IsLoggedIn {
		if m.screen == ScreenRegister {
			return ScreenRegister
		}
		return ScreenLogin
	}
	if m.screen == ScreenDetails {
		return ScreenDetails
	}
	return ScreenMain
}

// applySnapshot stores the latest store state, follows the theme slice and
// dispatches the one automatic trending fetch when Home is first shown.
func (m Model) applySnapshot(snap state.Snapshot) (Model, tea.Cmd) {
	m.snapshot = snap
	if theme := ThemeFor(snap.Theme.Mode); theme.Mode != m.theme.Mode {
		m.theme = theme
		m.applyThemeToWidgets()
	}
	m.clampSelections()
	if m.activeScreen() == ScreenMain {
		m.screen = ScreenMain
	}
	cmd := m.maybeAutoFetch()
	return m, cmd
}

func (m *Model) maybeAutoFetch() tea.Cmd {
	if m.autoFetched || m.store == nil {
		return nil
	}
	if m.activeScreen() != ScreenMain || m.tab != TabHome {
		return nil
	}
	if !m.store.Movies.NeedsInitialFetch() {
		return nil
	}
	m.autoFetched = true
	return fetchTrendingCmd(m.ctx, m.store)
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.store != nil && m.snapshot.Ready {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.activeScreen() == ScreenMain && m.tab == TabLogs {
		cmds = append(cmds, readLogsCmd(m.logPath))
	}
	if m.flash != "" && time.Since(m.flashAt) > FlashDuration {
		m.flash = ""
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashErr = isErr
	m.flashAt = time.Now()
}

// handleKey dispatches a key press to the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) {
			m.showHelp = false
		}
		return m, nil
	}

	switch m.activeScreen() {
	case ScreenLoading:
		return m, nil
	case ScreenLogin, ScreenRegister:
		return m.handleAuthKey(msg)
	case ScreenDetails:
		if key.Matches(msg, m.keys.Help) {
			m.showHelp = true
			return m, nil
		}
		return m.handleDetailsKey(msg)
	}

	if key.Matches(msg, m.keys.Help) {
		m.showHelp = true
		return m, nil
	}
	return m.handleMainKey(msg)
}

func (m Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		return m.switchTab((m.tab + 1) % tabCount)
	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchTab((m.tab + tabCount - 1) % tabCount)
	case key.Matches(msg, m.keys.TabHome):
		return m.switchTab(TabHome)
	case key.Matches(msg, m.keys.TabFavourites):
		return m.switchTab(TabFavourites)
	case key.Matches(msg, m.keys.TabSongs):
		return m.switchTab(TabSongs)
	case key.Matches(msg, m.keys.TabPodcasts):
		return m.switchTab(TabPodcasts)
	case key.Matches(msg, m.keys.TabProfile):
		return m.switchTab(TabProfile)
	case key.Matches(msg, m.keys.TabLogs):
		return m.switchTab(TabLogs)
	}

	switch m.tab {
	case TabHome:
		return m.handleHomeKey(msg)
	case TabFavourites:
		return m.handleFavouritesKey(msg)
	case TabSongs, TabPodcasts:
		m.moveSelection(msg, m.tabLen(m.tab))
		return m, nil
	case TabProfile:
		return m.handleProfileKey(msg)
	case TabLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.tab = tab
	var cmds []tea.Cmd
	if tab == TabLogs {
		cmds = append(cmds, readLogsCmd(m.logPath))
	}
	cmds = append(cmds, m.maybeAutoFetch())
	return m, tea.Batch(cmds...)
}

// moveSelection applies navigation keys to the current tab's selection.
func (m *Model) moveSelection(msg tea.KeyMsg, n int) bool {
	if n == 0 {
		m.selected[m.tab] = 0
		return false
	}
	page := max(m.listHeight()-1, 1)
	cur := m.selected[m.tab]
	switch {
	case key.Matches(msg, m.keys.Up):
		cur--
	case key.Matches(msg, m.keys.Down):
		cur++
	case key.Matches(msg, m.keys.Top):
		cur = 0
	case key.Matches(msg, m.keys.Bottom):
		cur = n - 1
	case key.Matches(msg, m.keys.PageUp):
		cur -= page
	case key.Matches(msg, m.keys.PageDown):
		cur += page
	default:
		return false
	}
	m.selected[m.tab] = min(max(cur, 0), n-1)
	return true
}

func (m *Model) clampSelections() {
	for t := Tab(0); t < tabCount; t++ {
		n := m.tabLen(t)
		if m.selected[t] >= n {
			m.selected[t] = max(n-1, 0)
		}
	}
}

func (m Model) tabLen(t Tab) int {
	switch t {
	case TabHome:
		return len(m.snapshot.Movies.Trending)
	case TabFavourites:
		return len(m.snapshot.Favourites.Movies)
	case TabSongs:
		return len(songs.Items)
	case TabPodcasts:
		return len(podcasts.Items)
	}
	return 0
}

func (m *Model) resizeViewports() {
	w, h := m.contentSize()
	m.logViewport.Width = w
	m.logViewport.Height = h
	m.detailViewport.Width = m.detailTextWidth()
	m.detailViewport.Height = max(m.bodyHeight()-2, 1)
	m.refreshDetailViewport()
	m.refreshLogViewport()
}

func (m *Model) applyThemeToWidgets() {
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	for _, inputs := range [][]textinput.Model{m.loginInputs, m.registerInputs} {
		for i := range inputs {
			styleInput(&inputs[i], m.theme)
		}
	}
	m.refreshDetailViewport()
	m.refreshLogViewport()
}

// bodyHeight is the space between header and command bar.
func (m Model) bodyHeight() int {
	return max(m.height-2, 1)
}

// contentSize is the inner size of the main screen's tab box.
func (m Model) contentSize() (int, int) {
	return max(m.width-2, 1), max(m.bodyHeight()-3, 1)
}

// listHeight is the number of list rows visible in the tab box.
func (m Model) listHeight() int {
	_, h := m.contentSize()
	return max(h-listHeaderLines-listPreviewLines, 1)
}

func (m Model) renderLoading(height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	text := m.spinner.View() + bg.Space() + bg.Render("Preparing cinedeck...", styles.MutedText)
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, text,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}

// renderMain draws the tab strip and the active tab in a titled box.
func (m Model) renderMain(height int) string {
	strip := m.renderTabStrip()
	boxHeight := max(height-lipgloss.Height(strip), 3)

	var title, content string
	switch m.tab {
	case TabHome:
		title, content = m.renderHome()
	case TabFavourites:
		title, content = m.renderFavourites()
	case TabSongs:
		title, content = m.renderCatalogue(songs)
	case TabPodcasts:
		title, content = m.renderCatalogue(podcasts)
	case TabProfile:
		title, content = m.renderProfile()
	case TabLogs:
		title, content = m.renderLogs()
	}
	return strip + "\n" + m.renderTitledBox(title, content, m.width, boxHeight, true)
}

func (m Model) renderTabStrip() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	active := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Bold(true).
		Padding(0, 1)
	parts := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		label := string(rune('1'+int(t))) + " " + t.String()
		if t == m.tab {
			parts = append(parts, active.Render(label))
			continue
		}
		parts = append(parts, bg.Space()+bg.Render(label, styles.MutedText)+bg.Space())
	}
	return bg.FillLine(strings.Join(parts, bg.Space()), m.width)
}

// Run launches the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	if opts.Context == nil {
		opts.Context = ctx
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
