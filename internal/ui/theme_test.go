package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cinedeck/internal/state"
	"github.com/five82/cinedeck/internal/tmdb"
)

func TestThemeFor(t *testing.T) {
	tests := []struct {
		mode     state.ThemeMode
		wantName string
		wantBg   string
	}{
		{state.ThemeLight, "Light", "#f8fafc"},
		{state.ThemeDark, "Dark", "#020617"},
		{state.ThemeMode("sepia"), "Light", "#f8fafc"},
		{"", "Light", "#f8fafc"},
	}
	for _, tt := range tests {
		th := ThemeFor(tt.mode)
		if th.Name != tt.wantName || th.Background != tt.wantBg {
			t.Fatalf("ThemeFor(%q) = %s/%s, want %s/%s", tt.mode, th.Name, th.Background, tt.wantName, tt.wantBg)
		}
	}
}

func TestStatusColorsCoverEveryLabel(t *testing.T) {
	for _, mode := range []state.ThemeMode{state.ThemeLight, state.ThemeDark} {
		th := ThemeFor(mode)
		for _, label := range []string{tmdb.LabelTrending, tmdb.LabelPopular, tmdb.LabelRecommended} {
			if th.StatusColors[label] == "" {
				t.Fatalf("%s theme has no colour for %q", th.Name, label)
			}
		}
	}
}

func TestStatusStyleFallsBackToMuted(t *testing.T) {
	th := ThemeFor(state.ThemeDark)
	styles := th.Styles()

	if got := styles.StatusStyle(tmdb.LabelTrending).GetBackground(); got != lipgloss.Color(th.StatusColors[tmdb.LabelTrending]) {
		t.Fatalf("StatusStyle(Trending) background = %v, want %v", got, th.StatusColors[tmdb.LabelTrending])
	}
	if got := styles.StatusStyle("Unknown").GetBackground(); got != lipgloss.Color(th.Muted) {
		t.Fatalf("StatusStyle(Unknown) background = %v, want %v", got, th.Muted)
	}

	// WithBackground must keep the badge palette.
	bgStyles := styles.WithBackground(th.Surface)
	if got := bgStyles.StatusStyle("Unknown").GetBackground(); got != lipgloss.Color(th.Muted) {
		t.Fatalf("WithBackground StatusStyle(Unknown) background = %v, want %v", got, th.Muted)
	}
	if got := bgStyles.Text.GetBackground(); got != lipgloss.Color(th.Surface) {
		t.Fatalf("WithBackground Text background = %v, want %v", got, th.Surface)
	}
}
