package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/carousel/internal/logging"
	"github.com/aretw0/carousel/pkg/adapters/clock"
	"github.com/aretw0/carousel/pkg/domain"
	"github.com/aretw0/carousel/pkg/ports"
	"github.com/aretw0/carousel/pkg/transition"
	"go.uber.org/atomic"
)

// Controller owns the slot sequence, the rotation index and the timer.
//
// Ticks, Stop and Close are serialised by mu: within one advance the index
// update completes before the transition is dispatched, and advances happen
// in tick order. Transitions return once dispatched; their animations may
// still be running when the next tick fires.
type Controller struct {
	name     string
	cfg      domain.Config
	slots    []domain.Slot
	registry *transition.Registry
	override transition.Options
	clock    ports.Clock
	hooks    domain.LifecycleHooks
	logger   *slog.Logger

	status   *atomic.String
	advances *atomic.Uint64
	detached *atomic.Bool

	mu           sync.Mutex
	container    ports.Container
	rects        []ports.Rect
	current      int
	lastDispatch time.Time
	stopTimer    ports.StopFunc
	cancel       context.CancelFunc
	closed       bool
}

// New builds the slots for urls on surface. It fails fast: on any error
// everything already mounted is torn down again.
func New(ctx context.Context, surface ports.Surface, urls []string, cfg domain.Config, opts ...Option) (*Controller, error) {
	c := &Controller{
		cfg:      cfg,
		clock:    clock.New(),
		logger:   logging.NewNop(),
		status:   atomic.NewString(string(domain.StatusUninitialized)),
		advances: atomic.NewUint64(0),
		detached: atomic.NewBool(false),
		current:  -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = transition.Default()
	}
	if c.name != "" {
		c.logger = c.logger.With("show", c.name)
	}

	slots, err := domain.NewSlots(urls)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !c.registry.Has(cfg.TransitionName) {
		return nil, &domain.UnknownTransitionError{Name: cfg.TransitionName}
	}
	if surface == nil {
		return nil, &domain.ConfigurationError{Field: "surface", Reason: "no rendering surface provided"}
	}
	c.slots = slots

	container, err := surface.Mount(ctx)
	if err != nil {
		return nil, &domain.RenderError{Op: "mount", Slot: -1, Err: err}
	}
	c.container = container

	for _, s := range slots {
		rect, err := container.Embed(ctx, s.Index, s.URL)
		if err != nil {
			c.teardown(ctx)
			return nil, &domain.RenderError{Op: "embed", Slot: s.Index, URL: s.URL, Err: err}
		}
		c.rects = append(c.rects, &liveRect{Rect: rect, detached: c.detached})
	}

	if cfg.Overlaps() {
		c.logger.Warn("transition duration is not shorter than the interval; transitions may overlap",
			"interval_ms", cfg.Interval, "duration_ms", cfg.Duration, "overlap_guard", cfg.OverlapGuard)
	}
	c.logger.Debug("show constructed", "slots", len(slots), "transition", cfg.TransitionName)
	return c, nil
}

// Run shows slot 0 and starts the rotation timer. It returns once the timer
// is armed. Cancelling ctx stops the rotation.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch domain.Status(c.status.Load()) {
	case domain.StatusRotating:
		return domain.ErrAlreadyRotating
	case domain.StatusStopped:
		return domain.ErrStopped
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.current = 0
	if err := c.dispatch(runCtx, transition.Show, 0, 0, nil); err != nil {
		cancel()
		c.current = -1
		return fmt.Errorf("initial show: %w", err)
	}

	c.cancel = cancel
	c.status.Store(string(domain.StatusRotating))
	c.stopTimer = c.clock.Every(c.cfg.IntervalDuration(), func() {
		c.tick(runCtx)
	})
	c.logger.Info("rotation started", "slots", len(c.slots), "interval_ms", c.cfg.Interval, "transition", c.cfg.TransitionName)

	if c.hooks.OnRun != nil {
		c.hooks.OnRun(runCtx, &domain.RotationEvent{EventBase: c.event(domain.EventRun), From: -1, To: 0})
	}

	go func() {
		<-runCtx.Done()
		c.Stop()
	}()
	return nil
}

// tick is the timer callback. A failing transition is logged and leaves the
// current frame on screen; the next tick tries again.
func (c *Controller) tick(ctx context.Context) {
	if err := c.advance(ctx); err != nil && !errors.Is(err, domain.ErrNotRotating) {
		c.logger.Error("advance failed", "err", err)
	}
}

func (c *Controller) advance(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if domain.Status(c.status.Load()) != domain.StatusRotating {
		return domain.ErrNotRotating
	}
	if c.cfg.OverlapGuard && !c.lastDispatch.IsZero() &&
		c.clock.Now().Sub(c.lastDispatch) < c.cfg.DurationDuration() {
		c.logger.Debug("tick skipped, previous transition still running", "current", c.current)
		return nil
	}

	last := c.current
	c.current = (c.current + 1) % len(c.slots)
	c.advances.Inc()

	if c.hooks.OnAdvance != nil {
		c.hooks.OnAdvance(ctx, &domain.RotationEvent{EventBase: c.event(domain.EventAdvance), From: last, To: c.current})
	}
	if err := c.dispatch(ctx, c.cfg.TransitionName, last, c.current, c.override); err != nil {
		return err
	}
	c.lastDispatch = c.clock.Now()
	return nil
}

// dispatch runs one transition. Panics are turned into errors so a broken
// transition cannot take the timer goroutine down with it.
func (c *Controller) dispatch(ctx context.Context, name string, from, to int, override transition.Options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transition %q panicked: %v", name, r)
		}
		ev := &domain.TransitionEvent{EventBase: c.event(domain.EventTransition), Name: name, From: from, To: to, Err: err}
		if err != nil {
			ev.Type = domain.EventTransitionError
			if c.hooks.OnTransitionError != nil {
				c.hooks.OnTransitionError(ctx, ev)
			}
			return
		}
		if c.hooks.OnTransition != nil {
			c.hooks.OnTransition(ctx, ev)
		}
	}()

	base := transition.Options{transition.KeyDuration: c.cfg.Duration}
	if err := c.registry.Dispatch(ctx, name, c.rects[from], c.rects[to], base, override); err != nil {
		return err
	}
	c.logger.Debug("transition dispatched", "transition", name, "from", from, "to", to)
	return nil
}

// Stop cancels the rotation timer. The current frame stays on screen.
// It is a no-op unless the show is rotating.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	if domain.Status(c.status.Load()) != domain.StatusRotating {
		return
	}
	c.status.Store(string(domain.StatusStopped))
	if c.stopTimer != nil {
		c.stopTimer()
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.logger.Info("rotation stopped", "current", c.current, "advances", c.advances.Load())
	if c.hooks.OnStop != nil {
		c.hooks.OnStop(context.Background(), &domain.RotationEvent{EventBase: c.event(domain.EventStop), From: c.current, To: c.current})
	}
}

// Close stops the rotation, removes every slot and unmounts the container.
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.stopLocked()
	c.status.Store(string(domain.StatusStopped))
	return c.teardown(ctx)
}

func (c *Controller) teardown(ctx context.Context) error {
	c.closed = true
	for _, r := range c.rects {
		r.Remove()
	}
	c.rects = nil
	// Completions still pending on the clock must not reach the surface.
	c.detached.Store(true)
	if c.container == nil {
		return nil
	}
	if err := c.container.Unmount(ctx); err != nil {
		return fmt.Errorf("unmount: %w", err)
	}
	return nil
}

// CurrentIndex returns the visible slot. ok is false until Run.
func (c *Controller) CurrentIndex() (index int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.current >= 0
}

// Status can be read without waiting for an in-flight transition.
func (c *Controller) Status() domain.Status {
	return domain.Status(c.status.Load())
}

// Advances returns the number of index advances since Run.
func (c *Controller) Advances() uint64 {
	return c.advances.Load()
}

// Slots returns a copy of the slot sequence.
func (c *Controller) Slots() []domain.Slot {
	return append([]domain.Slot(nil), c.slots...)
}

// Config returns the effective configuration.
func (c *Controller) Config() domain.Config {
	return c.cfg
}

// Name returns the show label.
func (c *Controller) Name() string {
	return c.name
}

// Snapshot returns a consistent view of the show.
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Snapshot{
		Name:         c.name,
		Status:       domain.Status(c.status.Load()),
		CurrentIndex: c.current,
		Advances:     c.advances.Load(),
		Slots:        append([]domain.Slot(nil), c.slots...),
		Config:       c.cfg,
	}
}

func (c *Controller) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: c.clock.Now(), Type: t, Show: c.name}
}
