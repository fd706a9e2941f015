// Package app is cinedeck's composition root.
//
// Run loads configuration (.env, config.toml, environment, flags), opens the
// log file, then Wire builds the pieces in dependency order:
//
//	config.Load ─> logging.New ─> kv.Open ─> tmdb.NewClient
//	                                      ─> dummyjson.NewClient
//	                                      ─> poster.NewFetcher
//	                                      ─> state.NewStore ─> ui.Run
//
// Startup errors (bad config, unreachable Redis, unopenable SQLite file) are
// returned from Run. Everything after the UI starts is reported in the UI and
// the log file instead.
package app
