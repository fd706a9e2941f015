package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/cinedeck/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/cinedeck/config.toml)")
	envFile := flag.String("env-file", "", ".env file to load (optional, defaults to ./.env)")
	storage := flag.String("storage", "", "storage driver: file, sqlite, redis or memory (optional)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:    *configPath,
		EnvFile:       *envFile,
		StorageDriver: *storage,
		LogLevel:      *logLevel,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "cinedeck: %v\n", err)
		return 1
	}
	return 0
}
