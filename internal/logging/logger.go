// Package logging is the structured logging contract shared by the server,
// the client services and the CLI. The server logs JSON or text through
// log/slog; the interactive client writes colored console lines through
// charmbracelet/log. Both sit behind the same Logger.
package logging

import "context"

// Logger is a context-aware, structured logger. Trailing args are key/value
// pairs:
//
//	logger.Info(ctx, "timer started", "user", userID, "timer", t.ID)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every record, e.g. the
	// module name of a background loop.
	With(args ...any) Logger
}
