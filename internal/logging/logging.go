package logging

import (
	"log/slog"
	"os"
)

// Init configures the default slog logger on stderr. Verbose enables debug
// output; otherwise only warnings and errors are shown.
func Init(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}
