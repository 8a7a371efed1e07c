// Package logger constructs slog loggers with environment-driven
// configuration and provides attribute helpers shared by the rest of
// the module so log field names stay consistent.
package logger
