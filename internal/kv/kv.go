package kv

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/cinedeck/internal/config"
)

// Store is string-keyed persistent storage. Each call is atomic for its key.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// Open builds the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemory(), nil
	case config.DriverFile, "":
		return NewFile(cfg.Path, logger), nil
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.Path, logger)
	case config.DriverRedis:
		return OpenRedis(ctx, RedisOptions{Addr: cfg.RedisAddr, Prefix: cfg.RedisPrefix}, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
