// Package logging provides structured logging utilities for the prereq CLI.
//
// It wraps the standard library slog package with project defaults: JSON
// records to stderr, module/version context on every record, LOG_LEVEL
// environment configuration, and source location tracking for debug logs.
//
// Setting the default logger:
//
//	logging.SetDefaultStructuredLoggerWithLevel("prereq", "v1.0.0", "info")
//	slog.Info("probing", "probe", "network")
//
// Supported levels (case-insensitive): debug, info, warn/warning, error.
// Unknown values fall back to info.
package logging
