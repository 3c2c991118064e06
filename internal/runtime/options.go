package runtime

import (
	"log/slog"

	"github.com/aretw0/carousel/pkg/domain"
	"github.com/aretw0/carousel/pkg/ports"
	"github.com/aretw0/carousel/pkg/transition"
)

// Option configures a Controller.
type Option func(*Controller)

// WithName labels the show in logs, hooks and snapshots.
func WithName(name string) Option {
	return func(c *Controller) {
		c.name = name
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithClock sets the timer primitive (default: wall clock).
func WithClock(clock ports.Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithRegistry sets the transition table (default: built-ins only).
func WithRegistry(r *transition.Registry) Option {
	return func(c *Controller) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithTransitionOptions sets the per-call override passed on every advance.
func WithTransitionOptions(opts transition.Options) Option {
	return func(c *Controller) {
		c.override = opts
	}
}
