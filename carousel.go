package carousel

import (
	"context"
	"log/slog"

	"github.com/aretw0/carousel/internal/runtime"
	"github.com/aretw0/carousel/pkg/adapters/clock"
	"github.com/aretw0/carousel/pkg/adapters/memory"
	"github.com/aretw0/carousel/pkg/domain"
	"github.com/aretw0/carousel/pkg/ports"
	"github.com/aretw0/carousel/pkg/transition"
)

// Show is the high-level entry point of the library.
// It wraps the internal controller and provides a simplified API for consumers.
type Show struct {
	ctrl *runtime.Controller
}

type settings struct {
	name        string
	partial     domain.Partial
	surface     ports.Surface
	clock       ports.Clock
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	transitions []transition.Transition
	options     transition.Options
}

// Option defines a functional option for configuring a Show.
type Option func(*settings)

// WithName labels the show in logs, hooks, metrics and the kiosk stream.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithConfig merges a partial configuration over what previous options set.
func WithConfig(p domain.Partial) Option {
	return func(s *settings) {
		s.partial = s.partial.Merge(p)
	}
}

// WithInterval sets the tick period in milliseconds (default 3000).
func WithInterval(ms int) Option {
	return WithConfig(domain.Partial{Interval: &ms})
}

// WithTransition selects the transition run on every advance (default "crossfade").
func WithTransition(name string) Option {
	return WithConfig(domain.Partial{TransitionName: &name})
}

// WithDuration sets the transition duration in milliseconds (default 1000).
func WithDuration(ms int) Option {
	return WithConfig(domain.Partial{Duration: &ms})
}

// WithOverlapGuard skips ticks that arrive while the previous transition still runs.
func WithOverlapGuard(enabled bool) Option {
	return WithConfig(domain.Partial{OverlapGuard: &enabled})
}

// WithTransitionOptions sets per-call options (e.g. {"out": 0.3} for fade).
// They take precedence over transition defaults and the configured duration.
func WithTransitionOptions(opts transition.Options) Option {
	return func(s *settings) {
		s.options = opts
	}
}

// WithTransitions registers additional named transitions for this show.
func WithTransitions(extra ...transition.Transition) Option {
	return func(s *settings) {
		s.transitions = append(s.transitions, extra...)
	}
}

// WithSurface injects the rendering surface. Without it the show renders
// on a headless memory surface.
func WithSurface(surface ports.Surface) Option {
	return func(s *settings) {
		s.surface = surface
	}
}

// WithClock injects the timer primitive (default: wall clock).
func WithClock(clock ports.Clock) Option {
	return func(s *settings) {
		s.clock = clock
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = hooks
	}
}

// New builds a show for urls. Configuration and render errors are returned
// here; nothing is left mounted when New fails.
func New(urls []string, opts ...Option) (*Show, error) {
	return NewContext(context.Background(), urls, opts...)
}

// NewContext is New with a context for the surface mount and embed calls.
func NewContext(ctx context.Context, urls []string, opts ...Option) (*Show, error) {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}

	cfg, err := domain.Resolve(s.partial)
	if err != nil {
		return nil, err
	}

	registry, err := transition.New(s.transitions...)
	if err != nil {
		return nil, &domain.ConfigurationError{Field: "transitions", Reason: err.Error()}
	}

	if s.surface == nil {
		var surfaceClock ports.Clock = clock.New()
		if s.clock != nil {
			surfaceClock = s.clock
		}
		s.surface = memory.NewSurface(surfaceClock)
	}

	ctrl, err := runtime.New(ctx, s.surface, urls, cfg,
		runtime.WithName(s.name),
		runtime.WithLogger(s.logger),
		runtime.WithClock(s.clock),
		runtime.WithLifecycleHooks(s.hooks),
		runtime.WithRegistry(registry),
		runtime.WithTransitionOptions(s.options),
	)
	if err != nil {
		return nil, err
	}
	return &Show{ctrl: ctrl}, nil
}

// Run shows the first slot and starts the rotation. It returns once the
// timer is armed; cancel ctx or call Stop to halt the rotation.
func (s *Show) Run(ctx context.Context) error {
	return s.ctrl.Run(ctx)
}

// Stop halts the rotation, leaving the current slot on screen.
func (s *Show) Stop() {
	s.ctrl.Stop()
}

// Close stops the rotation and removes every slot from the surface.
func (s *Show) Close(ctx context.Context) error {
	return s.ctrl.Close(ctx)
}

// CurrentIndex returns the visible slot; ok is false until Run.
func (s *Show) CurrentIndex() (index int, ok bool) {
	return s.ctrl.CurrentIndex()
}

// Status returns the lifecycle state.
func (s *Show) Status() domain.Status {
	return s.ctrl.Status()
}

// Slots returns the slot sequence in rotation order.
func (s *Show) Slots() []domain.Slot {
	return s.ctrl.Slots()
}

// Config returns the effective configuration.
func (s *Show) Config() domain.Config {
	return s.ctrl.Config()
}

// Snapshot returns a consistent view for status endpoints.
func (s *Show) Snapshot() domain.Snapshot {
	return s.ctrl.Snapshot()
}
