package state

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/cinedeck/internal/kv"
	"github.com/five82/cinedeck/internal/logging"
)

// ThemeMode is the colour scheme preference.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// ParseThemeMode accepts exactly "light" or "dark".
func ParseThemeMode(s string) (ThemeMode, bool) {
	switch ThemeMode(strings.TrimSpace(s)) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

// Toggled returns the other mode.
func (m ThemeMode) Toggled() ThemeMode {
	if m == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeState is a copy of the theme slice.
type ThemeState struct {
	Mode     ThemeMode
	Hydrated bool
}

const msgThemePersistFailed = "Unable to persist theme"

// Theme holds the light/dark preference, persisted under KeyTheme as the
// bare mode string.
type Theme struct {
	mu    sync.RWMutex
	state ThemeState

	writer sync.Mutex
	kv     kv.Store
	log    *zap.Logger
}

// NewTheme builds an unhydrated slice in light mode.
func NewTheme(store kv.Store, logger *zap.Logger) *Theme {
	return &Theme{
		state: ThemeState{Mode: ThemeLight},
		kv:    store,
		log:   logging.OrNop(logger).Named("state.theme"),
	}
}

// State returns a copy of the slice.
func (t *Theme) State() ThemeState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Mode returns the committed mode.
func (t *Theme) Mode() ThemeMode {
	return t.State().Mode
}

// Hydrate loads the persisted mode, defaulting to light when absent,
// unreadable or unrecognised. Only the first hydration is applied.
func (t *Theme) Hydrate(ctx context.Context) {
	mode := ThemeLight
	raw, ok, err := t.kv.Get(ctx, KeyTheme)
	switch {
	case err != nil:
		t.log.Warn("hydrate failed; using light", zap.String("key", KeyTheme), zap.Error(err))
	case ok:
		if parsed, valid := ParseThemeMode(raw); valid {
			mode = parsed
		} else {
			t.log.Warn("ignoring unknown stored theme", zap.String("value", raw))
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Hydrated {
		return
	}
	t.state = ThemeState{Mode: mode, Hydrated: true}
}

func (t *Theme) markHydrated() {
	t.mu.Lock()
	t.state.Hydrated = true
	t.mu.Unlock()
}

// SetMode persists mode and then commits it. On failure the prior mode stays.
func (t *Theme) SetMode(ctx context.Context, mode ThemeMode) error {
	if _, ok := ParseThemeMode(string(mode)); !ok {
		return fmt.Errorf("invalid theme mode %q", mode)
	}

	t.writer.Lock()
	defer t.writer.Unlock()

	if err := t.kv.Set(ctx, KeyTheme, string(mode)); err != nil {
		t.log.Warn("set mode failed", zap.String("mode", string(mode)), zap.Error(err))
		return persistError(msgThemePersistFailed, err)
	}
	t.mu.Lock()
	t.state.Mode = mode
	t.mu.Unlock()
	return nil
}

// Toggle flips the mode in memory only.
func (t *Theme) Toggle() ThemeMode {
	t.writer.Lock()
	defer t.writer.Unlock()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Mode = t.state.Mode.Toggled()
	return t.state.Mode
}
