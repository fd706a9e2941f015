package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cinedeck/internal/state"
	"github.com/five82/cinedeck/internal/tmdb"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string
	Mode state.ThemeMode

	// Base colors
	Background string // Outermost background
	Surface    string // Header and command bar
	SurfaceAlt string // Cards and content boxes
	FocusBg    string // Focused box

	// List colors
	SelectionBg   string
	SelectionText string

	// Border colors
	Border      string
	BorderMuted string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Badge colors keyed by movie status label
	StatusColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		SurfaceAlt: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		statusColors: t.StatusColors,
		background:   t.SurfaceAlt,
		muted:        t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Base
	Background lipgloss.Style
	Surface    lipgloss.Style
	SurfaceAlt lipgloss.Style

	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	statusColors map[string]string
	background   string
	muted        string
}

// StatusStyle returns a badge style for a movie status label.
func (s Styles) StatusStyle(label string) lipgloss.Style {
	color := s.statusColors[label]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles with every text style given an
// explicit background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)

	return Styles{
		Background: s.Background.Background(bg),
		Surface:    s.Surface.Background(bg),
		SurfaceAlt: s.SurfaceAlt.Background(bg),

		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),
		InfoText:    s.InfoText.Background(bg),

		Header:   s.Header.Background(bg),
		Logo:     s.Logo.Background(bg),
		Selected: s.Selected,

		statusColors: s.statusColors,
		background:   s.background,
		muted:        s.muted,
	}
}

// ThemeFor returns the palette for a theme mode. Unknown modes get light.
func ThemeFor(mode state.ThemeMode) Theme {
	if mode == state.ThemeDark {
		return darkTheme()
	}
	return lightTheme()
}

func lightTheme() Theme {
	// Tailwind slate and sky.
	return Theme{
		Name: "Light",
		Mode: state.ThemeLight,

		Background: "#f8fafc", // background
		Surface:    "#e2e8f0", // border colour used as bar fill
		SurfaceAlt: "#ffffff", // card
		FocusBg:    "#f0f9ff", // sky-50

		SelectionBg:   "#0284c7", // accent
		SelectionText: "#f8fafc",

		Border:      "#cbd5e1", // slate-300
		BorderMuted: "#e2e8f0", // border
		BorderFocus: "#0284c7", // accent

		Text:    "#0f172a", // text
		Muted:   "#475569", // secondaryText
		Faint:   "#94a3b8", // slate-400
		Accent:  "#0284c7", // accent
		Success: "#22c55e", // success
		Warning: "#f97316", // warning
		Danger:  "#dc2626", // red-600
		Info:    "#0891b2", // cyan-600

		StatusColors: map[string]string{
			tmdb.LabelTrending:    "#f97316",
			tmdb.LabelPopular:     "#0284c7",
			tmdb.LabelRecommended: "#22c55e",
		},
	}
}

func darkTheme() Theme {
	return Theme{
		Name: "Dark",
		Mode: state.ThemeDark,

		Background: "#020617", // background
		Surface:    "#1e293b", // border colour used as bar fill
		SurfaceAlt: "#0f172a", // card
		FocusBg:    "#172033",

		SelectionBg:   "#38bdf8", // accent
		SelectionText: "#020617",

		Border:      "#334155", // slate-700
		BorderMuted: "#1e293b", // border
		BorderFocus: "#38bdf8", // accent

		Text:    "#f8fafc", // text
		Muted:   "#cbd5f5", // secondaryText
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // accent
		Success: "#34d399", // success
		Warning: "#fb8a24", // warning
		Danger:  "#f87171", // red-400
		Info:    "#22d3ee", // cyan-400

		StatusColors: map[string]string{
			tmdb.LabelTrending:    "#fb8a24",
			tmdb.LabelPopular:     "#38bdf8",
			tmdb.LabelRecommended: "#34d399",
		},
	}
}
