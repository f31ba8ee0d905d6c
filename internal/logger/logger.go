package logger

import (
	"log/slog"
	"os"
)

// New builds the process logger. Format is "json" for log aggregation or
// "text" for local development; anything else falls back to text.
func New(format string) *slog.Logger {
	var h slog.Handler
	switch format {
	case "json":
		h = slog.NewJSONHandler(os.Stdout, nil)
	default:
		h = slog.NewTextHandler(os.Stdout, nil)
	}
	l := slog.New(h)
	slog.SetDefault(l)
	return l
}
