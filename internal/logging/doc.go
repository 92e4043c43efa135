// Package logging assembles the structured slog loggers used across the
// exporter.
//
// It owns level and output plumbing for the console and JSON handlers,
// exposes typed attribute helpers so pipeline code logs with consistent
// field shapes, and provides a no-op logger for tests and wiring code that
// cannot fail. Prefer these constructors over hand-rolled slog setup.
package logging
