package carousel_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/carousel"
	"github.com/aretw0/carousel/pkg/adapters/memory"
	"github.com/aretw0/carousel/pkg/domain"
	"github.com/aretw0/carousel/pkg/ports"
	"github.com/aretw0/carousel/pkg/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headless() (*memory.Clock, *memory.Surface) {
	clock := memory.NewClock(time.Unix(0, 0))
	return clock, memory.NewSurface(clock)
}

func TestShow_EndToEnd(t *testing.T) {
	clock, surface := headless()
	show, err := carousel.New([]string{"a", "b"},
		carousel.WithInterval(100),
		carousel.WithTransition("show"),
		carousel.WithClock(clock),
		carousel.WithSurface(surface),
	)
	require.NoError(t, err)
	defer show.Close(context.Background())

	require.NoError(t, show.Run(context.Background()))
	assert.Equal(t, []int{0}, surface.Visible())

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, []int{1}, surface.Visible())

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, []int{0}, surface.Visible())
}

func TestShow_DefaultConfig(t *testing.T) {
	clock, surface := headless()
	show, err := carousel.New([]string{"a"}, carousel.WithClock(clock), carousel.WithSurface(surface))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultConfig(), show.Config())
	assert.Equal(t, domain.StatusUninitialized, show.Status())
}

func TestShow_OptionsMergeInOrder(t *testing.T) {
	clock, surface := headless()
	show, err := carousel.New([]string{"a"},
		carousel.WithConfig(domain.Partial{Interval: domain.Ptr(500), Duration: domain.Ptr(200)}),
		carousel.WithInterval(800),
		carousel.WithOverlapGuard(true),
		carousel.WithClock(clock),
		carousel.WithSurface(surface),
	)
	require.NoError(t, err)

	cfg := show.Config()
	assert.Equal(t, 800, cfg.Interval)
	assert.Equal(t, 200, cfg.Duration)
	assert.True(t, cfg.OverlapGuard)
}

func TestShow_ConstructionErrors(t *testing.T) {
	_, err := carousel.New(nil)
	var cfgErr *domain.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = carousel.New([]string{"a"}, carousel.WithDuration(-1))
	assert.ErrorAs(t, err, &cfgErr)

	_, err = carousel.New([]string{"a"}, carousel.WithTransition("dissolve"))
	var unknown *domain.UnknownTransitionError
	assert.ErrorAs(t, err, &unknown)

	_, err = carousel.New([]string{"a"}, carousel.WithTransitions(transition.Transition{Name: "broken"}))
	assert.ErrorAs(t, err, &cfgErr)
}

func TestShow_CustomTransition(t *testing.T) {
	var seen []float64
	blink := transition.Transition{
		Name:     "blink",
		Defaults: transition.Options{"rate": 2.0},
		Run: func(ctx context.Context, out, in ports.Rect, opts transition.Options) error {
			seen = append(seen, opts["rate"].(float64))
			out.Hide()
			in.Show()
			return nil
		},
	}

	clock, surface := headless()
	show, err := carousel.New([]string{"a", "b", "c"},
		carousel.WithInterval(50),
		carousel.WithTransitions(blink),
		carousel.WithTransition("blink"),
		carousel.WithTransitionOptions(transition.Options{"rate": 4.0}),
		carousel.WithClock(clock),
		carousel.WithSurface(surface),
	)
	require.NoError(t, err)
	require.NoError(t, show.Run(context.Background()))

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, []float64{4.0, 4.0}, seen)

	idx, ok := show.CurrentIndex()
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
	assert.Equal(t, uint64(2), show.Snapshot().Advances)
}

func TestShow_StopAndClose(t *testing.T) {
	clock, surface := headless()
	show, err := carousel.New([]string{"a", "b"},
		carousel.WithInterval(100),
		carousel.WithClock(clock),
		carousel.WithSurface(surface),
	)
	require.NoError(t, err)
	require.NoError(t, show.Run(context.Background()))

	show.Stop()
	clock.Advance(time.Second)
	idx, _ := show.CurrentIndex()
	assert.Equal(t, 0, idx)
	assert.Equal(t, domain.StatusStopped, show.Status())

	require.NoError(t, show.Close(context.Background()))
	assert.False(t, surface.Mounted())
}

func TestShow_HeadlessDefaultSurface(t *testing.T) {
	show, err := carousel.New([]string{"a", "b"}, carousel.WithInterval(10), carousel.WithDuration(5))
	require.NoError(t, err)
	defer show.Close(context.Background())

	require.NoError(t, show.Run(context.Background()))
	assert.Eventually(t, func() bool {
		return show.Snapshot().Advances >= 2
	}, 2*time.Second, 5*time.Millisecond)
}
