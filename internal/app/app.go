package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/cinedeck/internal/config"
	"github.com/five82/cinedeck/internal/dummyjson"
	"github.com/five82/cinedeck/internal/kv"
	"github.com/five82/cinedeck/internal/logging"
	"github.com/five82/cinedeck/internal/poster"
	"github.com/five82/cinedeck/internal/state"
	"github.com/five82/cinedeck/internal/tmdb"
	"github.com/five82/cinedeck/internal/ui"
)

// Options configure the cinedeck application.
type Options struct {
	ConfigPath    string // empty uses ~/.config/cinedeck/config.toml
	EnvFile       string // empty uses .env in the working directory
	StorageDriver string // overrides [storage] driver when set
	LogLevel      string // overrides [log] level when set
}

// Components are the wired services the UI runs on.
type Components struct {
	Config  config.Config
	KV      kv.Store
	Movies  *tmdb.Client
	Auth    *dummyjson.Client
	Posters *poster.Fetcher
	Store   *state.Store
}

// Close releases the storage backend.
func (c *Components) Close() error {
	if c == nil || c.KV == nil {
		return nil
	}
	return c.KV.Close()
}

// Run boots the cinedeck TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{Path: cfg.LogPath, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()

	logger.Info("starting cinedeck",
		zap.String("storage", cfg.Storage.Driver),
		zap.String("tmdb_base_url", cfg.TMDBBaseURL),
		zap.Bool("tmdb_api_key", cfg.TMDBAPIKey != ""),
	)

	comps, err := Wire(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}
	defer func() {
		if err := comps.Close(); err != nil {
			logger.Warn("close storage", zap.Error(err))
		}
	}()

	if !comps.Movies.HasAPIKey() {
		logger.Warn("no TMDB API key configured; trending will report it",
			zap.String("env", config.EnvTMDBAPIKey))
	}

	err = ui.Run(ctx, ui.Options{
		Context:      ctx,
		Store:        comps.Store,
		Posters:      comps.Posters,
		ImageBaseURL: cfg.TMDBImageBaseURL,
		LogPath:      cfg.LogPath,
		Logger:       logger,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("cinedeck stopped")
	return nil
}

// LoadConfig reads .env, the config file and the command-line overrides.
func LoadConfig(opts Options) (config.Config, error) {
	if err := config.LoadEnvFile(opts.EnvFile); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err = cfg.WithStorageDriver(opts.StorageDriver)
	if err != nil {
		return config.Config{}, fmt.Errorf("storage override: %w", err)
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	return cfg, nil
}

// Wire opens storage, builds the API clients and the root store. The store
// is not initialised; the UI starts bootstrap so the loading view can show.
func Wire(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Components, error) {
	logger = logging.OrNop(logger)

	store, err := kv.Open(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}

	movies, err := tmdb.NewClient(tmdb.Options{
		BaseURL:      cfg.TMDBBaseURL,
		ImageBaseURL: cfg.TMDBImageBaseURL,
		APIKey:       cfg.TMDBAPIKey,
		Timeout:      cfg.RequestTimeout,
		RateLimit:    cfg.TMDBRateLimit,
		Logger:       logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init tmdb client: %w", err)
	}

	auth, err := dummyjson.NewClient(cfg.AuthBaseURL, cfg.RequestTimeout, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init auth client: %w", err)
	}

	return &Components{
		Config:  cfg,
		KV:      store,
		Movies:  movies,
		Auth:    auth,
		Posters: poster.NewFetcher(cfg.RequestTimeout, logger),
		Store: state.NewStore(state.Options{
			KV:               store,
			AuthService:      auth,
			MovieService:     movies,
			Logger:           logger,
			BootstrapTimeout: cfg.BootstrapTimeout,
		}),
	}, nil
}
