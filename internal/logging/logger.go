package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options tune the application logger.
type Options struct {
	// File, when set, receives a JSON copy of every record.
	File io.Writer
	// Writer overrides the text sink (default: os.Stderr).
	Writer io.Writer
}

// New creates a configured application logger.
// It writes to Stderr (to keep Stdout for command output such as timelines or diagrams).
// It standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level, opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}

	handlers := []slog.Handler{slog.NewTextHandler(w, handlerOpts)}
	if opts.File != nil {
		handlers = append(handlers, slog.NewJSONHandler(opts.File, handlerOpts))
	}
	if len(handlers) == 1 {
		return slog.New(handlers[0])
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel parses a slog level name such as "debug" or "warn+2".
// An empty name is info.
func ParseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}
