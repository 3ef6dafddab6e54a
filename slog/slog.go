// Package slog provides logging decorators for zhextract services.
package slog
