package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/carousel"
	"github.com/aretw0/carousel/internal/logging"
	"github.com/aretw0/carousel/internal/validator"
	"github.com/aretw0/carousel/pkg/config"
	"github.com/aretw0/carousel/pkg/domain"
	"github.com/aretw0/carousel/pkg/transition"
)

// LogOptions selects the application logger.
type LogOptions struct {
	Level slog.Level
	// File, when set, receives a JSON copy of every record.
	File string
}

// CreateLogger configures the application logger. The returned close
// function releases the log file, if any.
func CreateLogger(opts LogOptions) (*slog.Logger, func() error, error) {
	if opts.File == "" {
		return logging.New(opts.Level, logging.Options{}), func() error { return nil }, nil
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logging.New(opts.Level, logging.Options{File: f}), f.Close, nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// loadShow reads and validates a show file. Warnings are logged; errors
// abort with every problem listed.
func loadShow(path string, logger *slog.Logger) (*config.ShowFile, error) {
	f, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	issues := validator.ValidateShow(f, transition.Default())
	for _, i := range issues {
		if i.Severity == validator.SeverityWarning {
			logger.Warn("show file warning", "field", i.Field, "msg", i.Message)
		}
	}
	if err := validator.Errors(issues); err != nil {
		return nil, fmt.Errorf("invalid show %s: %w", path, err)
	}
	return f, nil
}

// resolve returns the effective configuration and slots of a valid show file.
func resolve(f *config.ShowFile) (domain.Config, []domain.Slot, error) {
	cfg, err := domain.Resolve(f.Partial())
	if err != nil {
		return domain.Config{}, nil, err
	}
	slots, err := domain.NewSlots(f.URLs)
	if err != nil {
		return domain.Config{}, nil, err
	}
	return cfg, slots, nil
}

// showOptions maps a show file onto library options.
func showOptions(f *config.ShowFile, logger *slog.Logger, hooks domain.LifecycleHooks) []carousel.Option {
	return []carousel.Option{
		carousel.WithName(f.Name),
		carousel.WithConfig(f.Partial()),
		carousel.WithTransitionOptions(f.TransitionOptions()),
		carousel.WithLogger(logger),
		carousel.WithLifecycleHooks(hooks),
	}
}
