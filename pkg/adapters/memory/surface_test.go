package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/carousel/pkg/adapters/memory"
	"github.com/aretw0/carousel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurface_RecordsAndCompletesAnimations(t *testing.T) {
	clock := memory.NewClock(time.Unix(0, 0))
	surface := memory.NewSurface(clock)
	ctx := context.Background()

	c, err := surface.Mount(ctx)
	require.NoError(t, err)
	a, err := c.Embed(ctx, 0, "https://a.example")
	require.NoError(t, err)
	b, err := c.Embed(ctx, 1, "https://b.example")
	require.NoError(t, err)

	assert.Empty(t, surface.Visible(), "rects start hidden")

	a.Show()
	assert.Equal(t, []int{0}, surface.Visible())

	doneCalled := false
	a.FadeOut(300*time.Millisecond, func() {
		doneCalled = true
		b.FadeIn(700*time.Millisecond, nil)
	})
	assert.Equal(t, []int{0}, surface.Visible(), "fading out rect stays visible until done")

	clock.Advance(300 * time.Millisecond)
	assert.True(t, doneCalled)
	assert.Equal(t, []int{1}, surface.Visible())

	events := surface.Events()
	require.Len(t, events, 6)
	assert.Equal(t, domain.OpFadeIn, events[5].Op)
	assert.Equal(t, 300*time.Millisecond, events[5].At)
	assert.Equal(t, 700*time.Millisecond, events[5].Duration)
}

func TestSurface_LastWriterWins(t *testing.T) {
	clock := memory.NewClock(time.Unix(0, 0))
	surface := memory.NewSurface(clock)
	ctx := context.Background()

	c, err := surface.Mount(ctx)
	require.NoError(t, err)
	a, err := c.Embed(ctx, 0, "https://a.example")
	require.NoError(t, err)

	a.FadeOut(time.Second, nil)
	a.Show()
	clock.Advance(time.Second)

	assert.Equal(t, []int{0}, surface.Visible(), "stale fade-out must not hide a newer show")
}

func TestSurface_Failures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	t.Run("Mount", func(t *testing.T) {
		surface := memory.NewSurface(memory.NewClock(time.Unix(0, 0)))
		surface.FailMount(boom)
		_, err := surface.Mount(ctx)
		assert.ErrorIs(t, err, boom)
		assert.False(t, surface.Mounted())
	})

	t.Run("Embed", func(t *testing.T) {
		surface := memory.NewSurface(memory.NewClock(time.Unix(0, 0)))
		surface.FailEmbed(1, boom)
		c, err := surface.Mount(ctx)
		require.NoError(t, err)
		_, err = c.Embed(ctx, 0, "https://a.example")
		assert.NoError(t, err)
		_, err = c.Embed(ctx, 1, "https://b.example")
		assert.ErrorIs(t, err, boom)
	})
}

func TestSurface_RemoveAndUnmount(t *testing.T) {
	clock := memory.NewClock(time.Unix(0, 0))
	surface := memory.NewSurface(clock)
	ctx := context.Background()

	c, err := surface.Mount(ctx)
	require.NoError(t, err)
	a, err := c.Embed(ctx, 0, "https://a.example")
	require.NoError(t, err)
	a.Show()
	a.Remove()
	require.NoError(t, c.Unmount(ctx))

	assert.Empty(t, surface.Visible())
	assert.False(t, surface.Mounted())
}
