package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/carousel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCommandBusContract runs a suite of tests to verify that a CommandBus implementation
// adheres to the defined interface contract.
func RunCommandBusContract(t *testing.T, bus CommandBus) {
	ctx := context.Background()

	t.Run("Publish reaches every subscriber in order", func(t *testing.T) {
		ch1, cancel1, err := bus.Subscribe(ctx)
		require.NoError(t, err)
		defer cancel1()
		ch2, cancel2, err := bus.Subscribe(ctx)
		require.NoError(t, err)
		defer cancel2()

		cmds := []domain.Command{
			{Seq: 1, Op: domain.OpEmbed, Slot: 0, URL: "https://a.example"},
			{Seq: 2, Op: domain.OpShow, Slot: 0},
			{Seq: 3, Op: domain.OpFadeOut, Slot: 0, Duration: 500},
		}
		for _, c := range cmds {
			require.NoError(t, bus.Publish(ctx, c))
		}

		for _, ch := range []<-chan domain.Command{ch1, ch2} {
			for _, want := range cmds {
				select {
				case got := <-ch:
					assert.Equal(t, want, got)
				case <-time.After(2 * time.Second):
					t.Fatalf("timed out waiting for command %d", want.Seq)
				}
			}
		}
	})

	t.Run("Cancel closes the channel", func(t *testing.T) {
		ch, cancel, err := bus.Subscribe(ctx)
		require.NoError(t, err)
		cancel()

		select {
		case _, ok := <-ch:
			assert.False(t, ok, "channel should be closed after cancel")
		case <-time.After(2 * time.Second):
			t.Fatal("channel was not closed")
		}
	})

	t.Run("Publish without subscribers", func(t *testing.T) {
		assert.NoError(t, bus.Publish(ctx, domain.Command{Seq: 99, Op: domain.OpHide}))
	})
}
