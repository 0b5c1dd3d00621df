// Package logging defines the structured-logging interface used across
// GoMate, with implementations over log/slog and zap. Attributes shared by a
// whole request or command travel in the context, see ContextWith.
package logging

import "context"

// Logger is a context-aware, structured logger. Args are alternating keys
// and values:
//
//	log.Info(ctx, "favourite added", "route_id", id)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every entry.
	With(args ...any) Logger
}
