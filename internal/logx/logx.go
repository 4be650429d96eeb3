// Package logx configures the process-wide slog logger from CLI verbosity
// flags.
package logx

import (
	"io"
	"log/slog"
	"os"
)

// UserLevel is the verbosity selected by the user. Setup keeps it in sync.
var UserLevel = new(slog.LevelVar)

func init() {
	UserLevel.Set(slog.LevelWarn)
}

// LevelFromFlags maps verbosity flags to a level:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [slog.LevelWarn])
//
// Flags are checked in that order, so vv wins over q.
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Setup installs a text handler on stderr as the default logger.
func Setup(level slog.Level) *slog.Logger {
	return SetupWriter(os.Stderr, level)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, level slog.Level) *slog.Logger {
	UserLevel.Set(level)
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: UserLevel}))
	slog.SetDefault(logger)
	return logger
}
