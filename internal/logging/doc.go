// Package logging assembles the structured slog loggers used across
// ComboCode commands.
//
// It owns the configurable console/JSON handlers and centralizes level
// and output plumbing, so modeling code can tag log lines with stars,
// model ids, and parameters in one consistent shape. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
