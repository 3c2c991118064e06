package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/carousel/pkg/adapters/memory"
	"github.com/aretw0/carousel/pkg/config"
	"github.com/aretw0/carousel/pkg/domain"
	"github.com/aretw0/carousel/pkg/transition"
)

// Severity of an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding about a show file.
type Issue struct {
	Severity Severity
	Field    string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Field, i.Message)
}

// Error aggregates the error-level issues of a show file.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	lines := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		lines = append(lines, i.String())
	}
	return fmt.Sprintf("%d problem(s):\n  %s", len(e.Issues), strings.Join(lines, "\n  "))
}

// ValidateShow reports every problem in f instead of stopping at the first,
// which is what the show constructor does.
func ValidateShow(f *config.ShowFile, registry *transition.Registry) []Issue {
	var issues []Issue
	add := func(sev Severity, field, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if len(f.URLs) == 0 {
		add(SeverityError, "urls", "at least one URL is required")
	}
	seen := make(map[string]int)
	for i, u := range f.URLs {
		field := fmt.Sprintf("urls[%d]", i)
		if err := domain.ValidateURL(u); err != nil {
			add(SeverityError, field, "%v", err)
			continue
		}
		if first, dup := seen[u]; dup {
			add(SeverityWarning, field, "duplicates urls[%d]", first)
		} else {
			seen[u] = i
		}
	}

	// Resolve field by field so that every invalid value is reported.
	p := f.Partial()
	cfg := domain.DefaultConfig()
	if p.Interval != nil {
		cfg.Interval = *p.Interval
		if cfg.Interval <= 0 {
			add(SeverityError, "interval", "must be positive, got %d", cfg.Interval)
		}
	}
	if p.Duration != nil {
		cfg.Duration = *p.Duration
		if cfg.Duration <= 0 {
			add(SeverityError, "duration", "must be positive, got %d", cfg.Duration)
		}
	}
	if p.TransitionName != nil {
		cfg.TransitionName = *p.TransitionName
	}
	if p.OverlapGuard != nil {
		cfg.OverlapGuard = *p.OverlapGuard
	}

	if !registry.Has(cfg.TransitionName) {
		add(SeverityError, "transition", "unknown transition %q (available: %s)",
			cfg.TransitionName, strings.Join(registry.Names(), ", "))
		return issues
	}

	if cfg.Interval > 0 && cfg.Duration > 0 && cfg.Overlaps() && !cfg.OverlapGuard {
		add(SeverityWarning, "duration", "%dms is not shorter than the %dms interval; transitions will overlap", cfg.Duration, cfg.Interval)
	}

	if err := dryRun(registry, cfg, f.TransitionOptions()); err != nil {
		var cfgErr *domain.ConfigurationError
		if errors.As(err, &cfgErr) && cfgErr.Field != "options" {
			add(SeverityError, "options."+cfgErr.Field, "%s", cfgErr.Reason)
		} else if cfgErr != nil {
			add(SeverityError, "options", "%s", cfgErr.Reason)
		} else {
			add(SeverityError, "options", "%v", err)
		}
	}
	return issues
}

// dryRun dispatches the configured transition once on a headless surface,
// which surfaces option errors (e.g. fade "out" outside [0, 1]).
func dryRun(registry *transition.Registry, cfg domain.Config, opts transition.Options) error {
	ctx := context.Background()
	surface := memory.NewSurface(memory.NewClock(time.Unix(0, 0)))
	c, err := surface.Mount(ctx)
	if err != nil {
		return err
	}
	out, err := c.Embed(ctx, 0, "about:blank")
	if err != nil {
		return err
	}
	in, err := c.Embed(ctx, 1, "about:blank")
	if err != nil {
		return err
	}
	base := transition.Options{transition.KeyDuration: max(cfg.Duration, 0)}
	return registry.Dispatch(ctx, cfg.TransitionName, out, in, base, opts)
}

// Errors filters the error-level issues; nil when there are none.
func Errors(issues []Issue) error {
	var errs []Issue
	for _, i := range issues {
		if i.Severity == SeverityError {
			errs = append(errs, i)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &Error{Issues: errs}
}
