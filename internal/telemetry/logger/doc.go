// Package logger provides structured logging for echotls-server.
//
// It wraps the standard library log/slog:
//
//   - Text (default) and JSON output formats
//   - Log level filtering with runtime adjustment
//   - Context-aware logging
//
// Per-request observability (the request counter and request line) is
// emitted through this package at info level; echo body diagnostics are
// emitted at debug level.
//
// @req RQ-0104
package logger
