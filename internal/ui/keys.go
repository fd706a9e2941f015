package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit     key.Binding
	Help     key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Escape   key.Binding
	Confirm  key.Binding

	// Tabs
	TabHome       key.Binding
	TabFavourites key.Binding
	TabSongs      key.Binding
	TabPodcasts   key.Binding
	TabProfile    key.Binding
	TabLogs       key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Movie actions
	Refresh         key.Binding
	ToggleFavourite key.Binding
	RemoveFavourite key.Binding

	// Profile actions
	ToggleTheme key.Binding
	Logout      key.Binding

	// Forms
	SwitchForm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next tab / field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous tab / field"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open / submit"),
		),

		TabHome:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "Home")),
		TabFavourites: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "Favourites")),
		TabSongs:      key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "Songs")),
		TabPodcasts:   key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "Podcasts")),
		TabProfile:    key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "Profile")),
		TabLogs:       key.NewBinding(key.WithKeys("6"), key.WithHelp("6", "Logs")),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh trending"),
		),
		ToggleFavourite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle favourite"),
		),
		RemoveFavourite: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Remove favourite"),
		),

		ToggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Toggle theme"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Log out"),
		),

		SwitchForm: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Login / register"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.TabHome, k.TabFavourites, k.TabSongs, k.TabPodcasts, k.TabProfile, k.TabLogs},
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Confirm, k.Escape, k.Refresh, k.ToggleFavourite, k.RemoveFavourite},
		{k.ToggleTheme, k.Logout, k.SwitchForm},
		{k.Help, k.Quit},
	}
}
