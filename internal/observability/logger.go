package observability

import (
	"log/slog"
	"os"
)

// NewLogger returns a JSON slog logger. Records carry trace/span IDs when a
// span is active on the context.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(NewTraceHandler(handler))
}
