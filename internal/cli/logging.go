package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/idilsaglam/jiraglance/internal/config"
)

// newLogger writes to log_file when configured. Otherwise the popup logs
// nowhere (stderr would tear the alt screen) and commands log to stderr.
func newLogger(cfg config.Config, stderr io.Writer, interactive bool) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }, nil
	}

	w := stderr
	if interactive {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, opts)), func() {}, nil
}
