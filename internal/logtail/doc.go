// Package logtail reads the end of cinedeck's own log file for the logs view.
//
// # Reading
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays O(maxLines) however large the log grows. Lines come back
// in file order. A missing file is not an error; the logger may not have
// written anything yet.
//
// # Parsing
//
// cinedeck logs zap JSON records:
//
//	{"level":"warn","ts":"2026-01-02T15:04:05.000Z","logger":"state.movies","msg":"fetch trending failed","error":"..."}
//
// Parse maps ts, level, logger and msg onto Entry and keeps every other key
// in Fields as a string. caller and stacktrace are dropped. Anything that is
// not a JSON object is returned with only Raw set so the view can still show
// it verbatim.
package logtail
