// Package logging configures structured logging for quotaprobe.
//
// Loggers are built on log/slog with two output formats: a pretty console
// handler for interactive runs and a JSON handler for machine consumption.
// All diagnostics go to stderr so the report on stdout stays clean. A per-run
// correlation id ties every line of a single probe run together.
package logging
