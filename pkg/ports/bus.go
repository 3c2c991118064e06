package ports

import (
	"context"

	"github.com/aretw0/carousel/pkg/domain"
)

// CommandSink receives rendering commands produced by a remote surface.
type CommandSink interface {
	Publish(ctx context.Context, cmd domain.Command) error
}

// CommandBus fans commands out to every subscriber.
type CommandBus interface {
	CommandSink

	// Subscribe returns a channel of commands published after the call returns,
	// and a cancel function that closes the channel.
	Subscribe(ctx context.Context) (<-chan domain.Command, func(), error)
}
