// Package logger provides structured logging functionality for the application.
//
// It builds on the standard library log/slog package: JSON output, a configurable
// level, and a request-scoped logger carried in the context.
package logger
