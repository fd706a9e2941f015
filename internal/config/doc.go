// Package config loads cinedeck's startup configuration.
//
// # Overview
//
// Configuration comes from three layers, later layers winning:
//
//  1. Built-in defaults (TMDB and DummyJSON endpoints, file storage, info logging)
//  2. ~/.config/cinedeck/config.toml, or the path passed to Load
//  3. Environment variables, optionally seeded from a .env file via LoadEnvFile
//
// A missing config file is NOT an error. cinedeck starts with defaults and
// fails only when the file exists but cannot be read or parsed.
//
// # TOML Format
//
//	tmdb_api_key = "..."
//	tmdb_rate_limit = 20
//	bootstrap_timeout = 5
//	request_timeout = 10
//
//	[storage]
//	driver = "sqlite"            # file | sqlite | redis | memory
//	path = "~/.local/share/cinedeck/store.db"
//
//	[log]
//	path = "~/.local/state/cinedeck/cinedeck.log"
//	level = "debug"
//
// # Environment
//
//   - TMDB_API_KEY (or EXPO_PUBLIC_TMDB_API_KEY): movie metadata API key
//   - CINEDECK_STORAGE: storage driver override
//   - CINEDECK_LOG_LEVEL: log level override
//
// An empty API key is accepted here. The tmdb client reports it as a
// configuration error the first time movies are requested.
//
// # Path Expansion
//
// Storage and log paths support a leading tilde and are made absolute.
package config
