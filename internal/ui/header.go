package ui

import (
	"fmt"
	"strings"

	"github.com/five82/cinedeck/internal/state"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("cinedeck", styles.Logo)}

	switch m.activeScreen() {
	case ScreenLoading:
		parts = append(parts, bg.Render("Starting...", styles.WarningText.Bold(true)))
	case ScreenLogin, ScreenRegister:
		parts = append(parts, bg.Render("Signed out", styles.MutedText))
	default:
		parts = append(parts, bg.Render("Hi, "+m.greetingName(), styles.Text.Bold(true)))
		parts = append(parts,
			bg.Render("★", styles.WarningText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(m.snapshot.Favourites.Movies)), styles.Text))
		if m.snapshot.Movies.Status == state.StatusLoading {
			parts = append(parts, m.spinner.View())
		}
	}

	if m.flash != "" {
		flashStyle := styles.SuccessText
		if m.flashErr {
			flashStyle = styles.DangerText
		}
		maxFlash := 60
		if m.width < LayoutCompactWidth {
			maxFlash = 30
		}
		parts = append(parts, bg.Render(truncate(m.flash, maxFlash), flashStyle))
	}

	return styles.Header.Width(m.width).MaxHeight(1).Render(bg.Join(parts, "  "))
}

// greetingName is the first word of the signed-in user's name.
func (m Model) greetingName() string {
	if u := m.snapshot.Auth.User; u != nil {
		if first := u.FirstName(); first != "" {
			return first
		}
	}
	return "Movie Fan"
}

// renderCommandBar renders the command hints bar for the active screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.activeScreen() {
	case ScreenLoading:
		commands = []cmd{{"ctrl+c", "Quit"}}
	case ScreenLogin:
		commands = []cmd{
			{"tab", "Next field"},
			{"enter", "Login"},
			{"ctrl+r", "Register"},
			{"ctrl+c", "Quit"},
		}
	case ScreenRegister:
		commands = []cmd{
			{"tab", "Next field"},
			{"enter", "Register"},
			{"ctrl+r", "Login"},
			{"ctrl+c", "Quit"},
		}
	case ScreenDetails:
		commands = []cmd{
			{"f", "Favourite"},
			{"j/k", "Scroll"},
			{"esc", "Back"},
			{"?", "More"},
		}
	default:
		commands = []cmd{{"tab", "Next tab"}}
		switch m.tab {
		case TabHome:
			commands = append(commands,
				cmd{"j/k", "Navigate"},
				cmd{"enter", "Details"},
				cmd{"f", "Favourite"},
				cmd{"r", "Refresh"},
			)
		case TabFavourites:
			commands = append(commands,
				cmd{"j/k", "Navigate"},
				cmd{"enter", "Details"},
				cmd{"x", "Remove"},
			)
		case TabSongs, TabPodcasts:
			commands = append(commands, cmd{"j/k", "Navigate"})
		case TabProfile:
			commands = append(commands,
				cmd{"t", "Theme"},
				cmd{"L", "Logout"},
			)
		case TabLogs:
			commands = append(commands,
				cmd{"j/k", "Scroll"},
				cmd{"g/G", "Top/Bottom"},
			)
		}
		commands = append(commands, cmd{"?", "More"})
	}

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments, bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxHeight(1).Render(strings.Join(segments, bg.Spaces(2)))
}
