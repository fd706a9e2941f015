package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/cinedeck/internal/config"
	"github.com/five82/cinedeck/internal/logging"
	"github.com/five82/cinedeck/internal/state"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvTMDBAPIKey, config.EnvExpoTMDBAPIKey, config.EnvStorageDriver, config.EnvLogLevel} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigAppliesOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	body := "[storage]\ndriver = \"file\"\n[log]\nlevel = \"info\"\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(Options{
		ConfigPath:    cfgPath,
		EnvFile:       filepath.Join(dir, "missing.env"),
		StorageDriver: "memory",
		LogLevel:      "DEBUG",
	})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage.Driver != config.DriverMemory {
		t.Fatalf("driver = %q, want %q", cfg.Storage.Driver, config.DriverMemory)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadConfigReadsEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("EXPO_PUBLIC_TMDB_API_KEY=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	// godotenv never overrides a variable that is already set, even to "".
	os.Unsetenv(config.EnvExpoTMDBAPIKey)
	t.Cleanup(func() { os.Unsetenv(config.EnvExpoTMDBAPIKey) })

	cfg, err := LoadConfig(Options{ConfigPath: filepath.Join(dir, "none.toml"), EnvFile: envPath})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TMDBAPIKey != "from-dotenv" {
		t.Fatalf("TMDBAPIKey = %q, want from-dotenv", cfg.TMDBAPIKey)
	}
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	_, err := LoadConfig(Options{
		ConfigPath:    filepath.Join(dir, "none.toml"),
		EnvFile:       filepath.Join(dir, "none.env"),
		StorageDriver: "floppy",
	})
	if err == nil || !strings.Contains(err.Error(), "floppy") {
		t.Fatalf("LoadConfig error = %v, want unknown driver", err)
	}
}

func TestWireBuildsStoreOnFileStorage(t *testing.T) {
	clearEnv(t)
	cfg := config.Default()
	cfg.Storage.Driver = config.DriverFile
	cfg.Storage.Path = filepath.Join(t.TempDir(), "store.toml")

	comps, err := Wire(context.Background(), cfg, logging.Nop())
	if err != nil {
		t.Fatalf("Wire: %v", err)
	}
	defer comps.Close()

	if comps.Movies.HasAPIKey() {
		t.Fatalf("HasAPIKey() = true with no key configured")
	}

	ctx := context.Background()
	comps.Store.Initialize(ctx)
	if !comps.Store.Ready() {
		t.Fatalf("store not ready after Initialize")
	}
	if err := comps.Store.Theme.SetMode(ctx, state.ThemeDark); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if v, ok, err := comps.KV.Get(ctx, state.KeyTheme); err != nil || !ok || v != "dark" {
		t.Fatalf("stored theme = %q, %v, %v; want dark", v, ok, err)
	}

	err = comps.Store.Movies.FetchTrending(ctx)
	if err == nil || state.Message(err) != "TMDb API key missing. Create an API key and expose it as TMDB_API_KEY before fetching movies." {
		t.Fatalf("FetchTrending error = %v, want missing key message", err)
	}
}

func TestWireFailsOnUnreachableSQLitePath(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = config.DriverSQLite
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	cfg.Storage.Path = filepath.Join(blocker, "nested", "store.db")

	if _, err := Wire(context.Background(), cfg, nil); err == nil {
		t.Fatalf("Wire succeeded with a path under a regular file")
	}
}
