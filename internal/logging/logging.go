package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default logger writing to the given file path.
// The TUI owns the terminal, so diagnostics (clipboard failures, history
// write errors) go to a log file instead of stdout. Returns a closer for
// the underlying file.
func Setup(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	handler := tint.NewHandler(f, &tint.Options{
		Level:      level(),
		TimeFormat: time.Kitchen,
		NoColor:    true,
	})
	slog.SetDefault(slog.New(handler))

	return f, nil
}

// SetupStderr installs a colorized stderr logger for CLI one-shot mode.
func SetupStderr() {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level(),
		TimeFormat: time.Kitchen,
	})
	slog.SetDefault(slog.New(handler))
}

func level() slog.Level {
	if os.Getenv("REDDITMOOD_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
