package runtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/carousel/pkg/adapters/memory"
	"github.com/aretw0/carousel/pkg/domain"
	"github.com/aretw0/carousel/pkg/ports"
	"github.com/aretw0/carousel/pkg/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	clock   *memory.Clock
	surface *memory.Surface
}

func newFixture() *fixture {
	clock := memory.NewClock(time.Unix(0, 0))
	return &fixture{clock: clock, surface: memory.NewSurface(clock)}
}

func (f *fixture) controller(t *testing.T, urls []string, cfg domain.Config, opts ...Option) *Controller {
	t.Helper()
	opts = append([]Option{WithClock(f.clock)}, opts...)
	c, err := New(context.Background(), f.surface, urls, cfg, opts...)
	require.NoError(t, err)
	return c
}

func config(interval int, name string, duration int) domain.Config {
	return domain.Config{Interval: interval, TransitionName: name, Duration: duration}
}

func TestNew_BuildsSlotsInOrder(t *testing.T) {
	f := newFixture()
	urls := []string{"https://a.example", "https://b.example", "https://c.example"}
	c := f.controller(t, urls, domain.DefaultConfig())

	slots := c.Slots()
	require.Len(t, slots, 3)
	for i, s := range slots {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, urls[i], s.URL)
	}

	rects := f.surface.Rects()
	require.Len(t, rects, 3)
	for i, r := range rects {
		assert.Equal(t, urls[i], r.URL())
	}
	assert.True(t, f.surface.Mounted())
	assert.Empty(t, f.surface.Visible(), "slots start hidden")
	assert.Equal(t, domain.StatusUninitialized, c.Status())

	_, ok := c.CurrentIndex()
	assert.False(t, ok, "index is undefined before Run")
}

func TestNew_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty URL list", func(t *testing.T) {
		f := newFixture()
		_, err := New(ctx, f.surface, nil, domain.DefaultConfig(), WithClock(f.clock))
		var cfgErr *domain.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "urls", cfgErr.Field)
		assert.False(t, f.surface.Mounted(), "nothing mounted on configuration error")
	})

	t.Run("Malformed URL", func(t *testing.T) {
		f := newFixture()
		_, err := New(ctx, f.surface, []string{"https://ok.example", "http://"}, domain.DefaultConfig(), WithClock(f.clock))
		var cfgErr *domain.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "urls[1]", cfgErr.Field)
	})

	t.Run("Non-positive interval", func(t *testing.T) {
		f := newFixture()
		_, err := New(ctx, f.surface, []string{"a.html"}, config(0, "show", 10), WithClock(f.clock))
		var cfgErr *domain.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "interval", cfgErr.Field)
	})

	t.Run("Unknown transition", func(t *testing.T) {
		f := newFixture()
		_, err := New(ctx, f.surface, []string{"a.html"}, config(100, "spin", 10), WithClock(f.clock))
		var unknown *domain.UnknownTransitionError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "spin", unknown.Name)
	})

	t.Run("Mount failure", func(t *testing.T) {
		f := newFixture()
		boom := errors.New("document root is read-only")
		f.surface.FailMount(boom)
		_, err := New(ctx, f.surface, []string{"a.html"}, domain.DefaultConfig(), WithClock(f.clock))
		var renderErr *domain.RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, "mount", renderErr.Op)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Embed failure leaves no partial show", func(t *testing.T) {
		f := newFixture()
		boom := errors.New("frame blocked")
		f.surface.FailEmbed(2, boom)
		_, err := New(ctx, f.surface, []string{"a.html", "b.html", "c.html"}, domain.DefaultConfig(), WithClock(f.clock))
		var renderErr *domain.RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, 2, renderErr.Slot)
		assert.Equal(t, "c.html", renderErr.URL)
		assert.False(t, f.surface.Mounted())

		events := f.surface.Events()
		var removed int
		for _, e := range events {
			if e.Op == domain.OpRemove {
				removed++
			}
		}
		assert.Equal(t, 2, removed, "already embedded slots are removed")
	})
}

func TestRun_ShowsFirstSlot(t *testing.T) {
	f := newFixture()
	c := f.controller(t, []string{"a.html", "b.html", "c.html"}, domain.DefaultConfig())

	require.NoError(t, c.Run(context.Background()))

	idx, ok := c.CurrentIndex()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, []int{0}, f.surface.Visible())
	assert.Equal(t, domain.StatusRotating, c.Status())
	assert.Equal(t, 1, f.clock.Pending(), "exactly one rotation timer armed")
}

func TestRun_Guarded(t *testing.T) {
	f := newFixture()
	c := f.controller(t, []string{"a.html", "b.html"}, domain.DefaultConfig())

	require.NoError(t, c.Run(context.Background()))
	assert.ErrorIs(t, c.Run(context.Background()), domain.ErrAlreadyRotating)
	assert.Equal(t, 1, f.clock.Pending(), "second Run must not arm a competing timer")

	c.Stop()
	assert.ErrorIs(t, c.Run(context.Background()), domain.ErrStopped)
}

func TestAdvance_IndexArithmetic(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		urls := make([]string, n)
		for i := range urls {
			urls[i] = "https://example.com/" + string(rune('a'+i))
		}

		f := newFixture()
		c := f.controller(t, urls, config(1000, transition.Show, 1))
		ctx := context.Background()
		require.NoError(t, c.Run(ctx))

		for k := 1; k <= 2*n+1; k++ {
			require.NoError(t, c.advance(ctx))
			idx, _ := c.CurrentIndex()
			assert.Equal(t, k%n, idx, "n=%d k=%d", n, k)
			assert.Equal(t, []int{k % n}, f.surface.Visible(), "n=%d k=%d", n, k)
		}
		assert.Equal(t, uint64(2*n+1), c.Advances())
	}
}

func TestAdvance_Wraps(t *testing.T) {
	f := newFixture()
	c := f.controller(t, []string{"a.html", "b.html", "c.html"}, config(1000, transition.Show, 1))
	ctx := context.Background()
	require.NoError(t, c.Run(ctx))

	require.NoError(t, c.advance(ctx))
	require.NoError(t, c.advance(ctx))
	idx, _ := c.CurrentIndex()
	require.Equal(t, 2, idx)

	require.NoError(t, c.advance(ctx))
	idx, _ = c.CurrentIndex()
	assert.Equal(t, 0, idx)
}

func TestAdvance_RequiresRun(t *testing.T) {
	f := newFixture()
	c := f.controller(t, []string{"a.html"}, domain.DefaultConfig())
	assert.ErrorIs(t, c.advance(context.Background()), domain.ErrNotRotating)
}

func TestRotation_EndToEndWithShow(t *testing.T) {
	f := newFixture()
	c := f.controller(t, []string{"a", "b"}, config(100, transition.Show, domain.DefaultDuration))
	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, []int{0}, f.surface.Visible())

	f.clock.Advance(100 * time.Millisecond)
	assert.Equal(t, []int{1}, f.surface.Visible())

	f.clock.Advance(100 * time.Millisecond)
	assert.Equal(t, []int{0}, f.surface.Visible())
}

func TestRotation_FadeSplitsDuration(t *testing.T) {
	f := newFixture()
	c := f.controller(t, []string{"a", "b"}, config(3000, transition.Fade, 1000),
		WithTransitionOptions(transition.Options{"out": 0.3}))
	require.NoError(t, c.Run(context.Background()))

	f.clock.Advance(3000 * time.Millisecond)
	f.clock.Advance(1000 * time.Millisecond)

	var fades []memory.Event
	for _, e := range f.surface.Events() {
		if e.Op == domain.OpFadeOut || e.Op == domain.OpFadeIn {
			fades = append(fades, e)
		}
	}
	require.Len(t, fades, 2)

	assert.Equal(t, domain.OpFadeOut, fades[0].Op)
	assert.Equal(t, 0, fades[0].Slot)
	assert.Equal(t, 3000*time.Millisecond, fades[0].At)
	assert.Equal(t, 300*time.Millisecond, fades[0].Duration)

	assert.Equal(t, domain.OpFadeIn, fades[1].Op)
	assert.Equal(t, 1, fades[1].Slot)
	assert.Equal(t, 3300*time.Millisecond, fades[1].At)
	assert.Equal(t, 700*time.Millisecond, fades[1].Duration)

	assert.Equal(t, []int{1}, f.surface.Visible())
}

func TestRotation_FailingTransitionDoesNotStopTimer(t *testing.T) {
	calls := 0
	flaky := transition.Transition{
		Name: "flaky",
		Run: func(ctx context.Context, out, in ports.Rect, opts transition.Options) error {
			calls++
			switch calls {
			case 1:
				return errors.New("animation backend unavailable")
			case 2:
				panic("bad frame")
			}
			out.Hide()
			in.Show()
			return nil
		},
	}
	registry, err := transition.New(flaky)
	require.NoError(t, err)

	var failures []*domain.TransitionEvent
	hooks := domain.LifecycleHooks{
		OnTransitionError: func(_ context.Context, e *domain.TransitionEvent) {
			failures = append(failures, e)
		},
	}

	f := newFixture()
	c := f.controller(t, []string{"a", "b", "c"}, config(100, "flaky", 10),
		WithRegistry(registry), WithLifecycleHooks(hooks))
	require.NoError(t, c.Run(context.Background()))

	f.clock.Advance(300 * time.Millisecond)

	assert.Equal(t, 3, calls)
	require.Len(t, failures, 2)
	assert.Equal(t, domain.EventTransitionError, failures[0].Type)
	assert.ErrorContains(t, failures[1].Err, "panicked")

	idx, _ := c.CurrentIndex()
	assert.Equal(t, 0, idx, "index keeps advancing across failures")
	assert.Equal(t, []int{0}, f.surface.Visible())
	assert.Equal(t, domain.StatusRotating, c.Status())
}

func TestRotation_OverlapGuard(t *testing.T) {
	cfg := config(100, transition.Crossfade, 250)

	t.Run("Off by default", func(t *testing.T) {
		f := newFixture()
		c := f.controller(t, []string{"a", "b", "c"}, cfg)
		require.NoError(t, c.Run(context.Background()))
		f.clock.Advance(300 * time.Millisecond)
		assert.Equal(t, uint64(3), c.Advances())
	})

	t.Run("Skips busy ticks", func(t *testing.T) {
		guarded := cfg
		guarded.OverlapGuard = true
		f := newFixture()
		c := f.controller(t, []string{"a", "b", "c"}, guarded)
		require.NoError(t, c.Run(context.Background()))

		// Dispatches at 100 and 400; the ticks at 200 and 300 fall inside the 250ms window.
		f.clock.Advance(400 * time.Millisecond)
		assert.Equal(t, uint64(2), c.Advances())
		idx, _ := c.CurrentIndex()
		assert.Equal(t, 2, idx)
	})
}

func TestStop_HaltsRotation(t *testing.T) {
	var stops int
	f := newFixture()
	c := f.controller(t, []string{"a", "b"}, config(100, transition.Show, 1),
		WithLifecycleHooks(domain.LifecycleHooks{
			OnStop: func(context.Context, *domain.RotationEvent) { stops++ },
		}))
	require.NoError(t, c.Run(context.Background()))

	f.clock.Advance(100 * time.Millisecond)
	c.Stop()
	c.Stop()
	f.clock.Advance(time.Second)

	assert.Equal(t, uint64(1), c.Advances())
	assert.Equal(t, []int{1}, f.surface.Visible(), "current frame stays on screen")
	assert.Equal(t, domain.StatusStopped, c.Status())
	assert.Equal(t, 1, stops)
	assert.Equal(t, 0, f.clock.Pending())
}

func TestRun_ContextCancelStops(t *testing.T) {
	f := newFixture()
	c := f.controller(t, []string{"a", "b"}, config(100, transition.Show, 1))
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, c.Run(ctx))

	cancel()
	assert.Eventually(t, func() bool { return c.Status() == domain.StatusStopped }, time.Second, time.Millisecond)
}

func TestClose_TearsDown(t *testing.T) {
	f := newFixture()
	c := f.controller(t, []string{"a", "b"}, domain.DefaultConfig())
	require.NoError(t, c.Run(context.Background()))

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))

	assert.False(t, f.surface.Mounted())
	assert.Empty(t, f.surface.Visible())
	assert.Equal(t, domain.StatusStopped, c.Status())
}

func TestClose_DropsPendingCompletions(t *testing.T) {
	f := newFixture()
	c := f.controller(t, []string{"a", "b"}, config(100, transition.Fade, 80))
	require.NoError(t, c.Run(context.Background()))

	// The fade out of slot 0 is still running when the show closes.
	f.clock.Advance(110 * time.Millisecond)
	require.NoError(t, c.Close(context.Background()))
	f.clock.Advance(time.Second)

	events := f.surface.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, domain.OpUnmount, events[len(events)-1].Op, "nothing reaches the surface after unmount")
	for _, e := range events {
		assert.NotEqual(t, domain.OpFadeIn, e.Op)
	}
	assert.Equal(t, 0, f.clock.Pending())
}

func TestHooks_ReportRotation(t *testing.T) {
	var (
		runs        int
		advances    [][2]int
		transitions []string
	)
	hooks := domain.LifecycleHooks{
		OnRun: func(context.Context, *domain.RotationEvent) { runs++ },
		OnAdvance: func(_ context.Context, e *domain.RotationEvent) {
			advances = append(advances, [2]int{e.From, e.To})
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			transitions = append(transitions, e.Name)
		},
	}

	f := newFixture()
	c := f.controller(t, []string{"a", "b"}, config(100, transition.FadeIn, 50),
		WithLifecycleHooks(hooks), WithName("lobby"))
	require.NoError(t, c.Run(context.Background()))
	f.clock.Advance(200 * time.Millisecond)

	assert.Equal(t, 1, runs)
	assert.Equal(t, [][2]int{{0, 1}, {1, 0}}, advances)
	assert.Equal(t, []string{transition.Show, transition.FadeIn, transition.FadeIn}, transitions)
	assert.Equal(t, "lobby", c.Snapshot().Name)
}
