package logger

import (
	"log/slog"
	"os"
)

// Log is the shared structured logger. It defaults to a JSON handler at info
// level so packages can log before main wires configuration; Init replaces it
// with the configured level.
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

func Init(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
