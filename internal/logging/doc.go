// Package logging constructs the application's slog loggers and provides
// shared attribute helpers so log fields stay consistently named across
// components.
package logging
