// Package logging is the structured logger every server component receives.
package logging

import "context"

// Logger takes a message plus alternating key/value args:
//
//	logger.Info(ctx, "request", "method", "GET", "status", 200)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every record,
	// e.g. With("module", "http_server").
	With(args ...any) Logger
}
