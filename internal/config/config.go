package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Storage drivers understood by kv.Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config captures everything cinedeck needs at startup.
type Config struct {
	TMDBBaseURL      string
	TMDBImageBaseURL string
	TMDBAPIKey       string
	TMDBRateLimit    float64
	AuthBaseURL      string

	Storage StorageConfig

	LogPath  string
	LogLevel string

	BootstrapTimeout time.Duration
	RequestTimeout   time.Duration
}

// StorageConfig selects and locates the persistent key-value backend.
type StorageConfig struct {
	Driver      string
	Path        string
	RedisAddr   string
	RedisPrefix string
}

const (
	defaultConfigPath       = "~/.config/cinedeck/config.toml"
	defaultDataDir          = "~/.local/share/cinedeck"
	defaultLogPath          = "~/.local/state/cinedeck/cinedeck.log"
	defaultTMDBBaseURL      = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL = "https://image.tmdb.org/t/p/w500"
	defaultAuthBaseURL      = "https://dummyjson.com"
	defaultRedisAddr        = "127.0.0.1:6379"
	defaultRedisPrefix      = "cinedeck:"
	defaultLogLevel         = "info"
	defaultBootstrapTimeout = 5 * time.Second
	defaultRequestTimeout   = 10 * time.Second
	defaultTMDBRateLimit    = 20
)

// Environment variables consulted after the config file.
const (
	EnvTMDBAPIKey     = "TMDB_API_KEY"
	EnvExpoTMDBAPIKey = "EXPO_PUBLIC_TMDB_API_KEY"
	EnvStorageDriver  = "CINEDECK_STORAGE"
	EnvLogLevel       = "CINEDECK_LOG_LEVEL"
)

const (
	defaultEnvFileName  = ".env"
	defaultFilePathName = "store.toml"
	defaultDBPathName   = "store.db"
)

type rawConfig struct {
	TMDBBaseURL      string  `toml:"tmdb_base_url"`
	TMDBImageBaseURL string  `toml:"tmdb_image_base_url"`
	TMDBAPIKey       string  `toml:"tmdb_api_key"`
	TMDBRateLimit    float64 `toml:"tmdb_rate_limit"`
	AuthBaseURL      string  `toml:"auth_base_url"`
	BootstrapTimeout int     `toml:"bootstrap_timeout"`
	RequestTimeout   int     `toml:"request_timeout"`
	Storage          struct {
		Driver      string `toml:"driver"`
		Path        string `toml:"path"`
		RedisAddr   string `toml:"redis_addr"`
		RedisPrefix string `toml:"redis_prefix"`
	} `toml:"storage"`
	Log struct {
		Path  string `toml:"path"`
		Level string `toml:"level"`
	} `toml:"log"`
}

// LoadEnvFile loads KEY=value pairs from path into the process environment.
// Existing variables win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		path = defaultEnvFileName
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load locates and parses the cinedeck config, falling back to defaults when
// missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw rawConfig
	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	cfg := fromRaw(raw)
	applyEnv(&cfg)
	if err := cfg.finish(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file or environment is present.
func Default() Config {
	cfg := fromRaw(rawConfig{})
	_ = cfg.finish()
	return cfg
}

// WithStorageDriver returns a copy with the storage driver replaced. The
// storage path is re-derived when it still points at the previous default.
func (c Config) WithStorageDriver(driver string) (Config, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "" || driver == c.Storage.Driver {
		return c, nil
	}
	if c.Storage.Path == mustExpand(defaultStoragePath(c.Storage.Driver)) {
		c.Storage.Path = ""
	}
	c.Storage.Driver = driver
	if err := c.finish(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func fromRaw(raw rawConfig) Config {
	cfg := Config{
		TMDBBaseURL:      strings.TrimRight(orDefault(raw.TMDBBaseURL, defaultTMDBBaseURL), "/"),
		TMDBImageBaseURL: strings.TrimRight(orDefault(raw.TMDBImageBaseURL, defaultTMDBImageBaseURL), "/"),
		TMDBAPIKey:       strings.TrimSpace(raw.TMDBAPIKey),
		TMDBRateLimit:    raw.TMDBRateLimit,
		AuthBaseURL:      strings.TrimRight(orDefault(raw.AuthBaseURL, defaultAuthBaseURL), "/"),
		Storage: StorageConfig{
			Driver:      strings.ToLower(orDefault(raw.Storage.Driver, DriverFile)),
			Path:        strings.TrimSpace(raw.Storage.Path),
			RedisAddr:   orDefault(raw.Storage.RedisAddr, defaultRedisAddr),
			RedisPrefix: orDefault(raw.Storage.RedisPrefix, defaultRedisPrefix),
		},
		LogPath:          orDefault(raw.Log.Path, defaultLogPath),
		LogLevel:         strings.ToLower(orDefault(raw.Log.Level, defaultLogLevel)),
		BootstrapTimeout: time.Duration(raw.BootstrapTimeout) * time.Second,
		RequestTimeout:   time.Duration(raw.RequestTimeout) * time.Second,
	}
	if cfg.TMDBRateLimit <= 0 {
		cfg.TMDBRateLimit = defaultTMDBRateLimit
	}
	if cfg.BootstrapTimeout <= 0 {
		cfg.BootstrapTimeout = defaultBootstrapTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	return cfg
}

func applyEnv(cfg *Config) {
	if key := strings.TrimSpace(os.Getenv(EnvTMDBAPIKey)); key != "" {
		cfg.TMDBAPIKey = key
	} else if key := strings.TrimSpace(os.Getenv(EnvExpoTMDBAPIKey)); key != "" {
		cfg.TMDBAPIKey = key
	}
	if driver := strings.TrimSpace(os.Getenv(EnvStorageDriver)); driver != "" {
		cfg.Storage.Driver = strings.ToLower(driver)
	}
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
}

// finish validates the driver and expands paths.
func (c *Config) finish() error {
	switch c.Storage.Driver {
	case DriverFile, DriverSQLite, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaultStoragePath(c.Storage.Driver)
	}
	c.Storage.Path = mustExpand(c.Storage.Path)
	c.LogPath = mustExpand(c.LogPath)
	return nil
}

func defaultStoragePath(driver string) string {
	if driver == DriverSQLite {
		return defaultDataDir + "/" + defaultDBPathName
	}
	return defaultDataDir + "/" + defaultFilePathName
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
