// Package kv provides the persistent key-value storage behind cinedeck's
// state slices.
//
// Every slice owns exactly one key and stores a JSON (or plain string) value
// under it, so the interface stays as small as the device storage the state
// layer was designed around: Get, Set and Remove by key.
//
// # Backends
//
//   - File: a single TOML document of key = "value" entries, rewritten
//     through a temp file and rename. The default; needs nothing installed.
//   - SQLite: a kv table in a modernc.org/sqlite database.
//   - Redis: prefixed string keys on a Redis server.
//   - Memory: process-local map, for tests and throwaway sessions.
//
// Lookups return (value, found, err). A missing key is found=false with a nil
// error; err is reserved for storage that could not be read.
package kv
