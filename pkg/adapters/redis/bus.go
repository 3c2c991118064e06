package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/carousel/pkg/domain"
	"github.com/aretw0/carousel/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultBufferSize is the per-subscriber channel capacity.
const DefaultBufferSize = 64

// Bus implements ports.CommandBus over Redis pub/sub. Every replica
// subscribed to the same show receives the leader's commands in publish order.
type Bus struct {
	client      *backend.Client
	channel     string
	snapshotKey string
	logger      *slog.Logger
}

// NewBus creates a bus for show. Commands travel on "<prefix>commands:<show>";
// the settled page state lives under "<prefix>snapshot:<show>".
func NewBus(client *backend.Client, prefix, show string) *Bus {
	return &Bus{
		client:      client,
		channel:     prefix + "commands:" + show,
		snapshotKey: prefix + "snapshot:" + show,
		logger:      slog.Default(),
	}
}

// WithLogger sets the logger used for decode errors and dropped commands.
func (b *Bus) WithLogger(logger *slog.Logger) *Bus {
	b.logger = logger
	return b
}

// Channel returns the Redis channel name.
func (b *Bus) Channel() string {
	return b.channel
}

// Publish sends cmd to every replica.
func (b *Bus) Publish(ctx context.Context, cmd domain.Command) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal command: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish command %d: %w", cmd.Seq, err)
	}
	return nil
}

// Subscribe returns once Redis has confirmed the subscription, so commands
// published afterwards are never missed.
func (b *Bus) Subscribe(ctx context.Context) (<-chan domain.Command, func(), error) {
	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", b.channel, err)
	}

	out := make(chan domain.Command, DefaultBufferSize)
	msgs := pubsub.Channel()
	go func() {
		defer close(out)
		for msg := range msgs {
			var cmd domain.Command
			if err := json.Unmarshal([]byte(msg.Payload), &cmd); err != nil {
				b.logger.Warn("Bus: invalid command payload", "channel", msg.Channel, "err", err)
				continue
			}
			select {
			case out <- cmd:
			default:
				b.logger.Warn("Bus: subscriber buffer full, dropping command", "seq", cmd.Seq, "op", cmd.Op)
			}
		}
	}()

	var once sync.Once
	return out, func() {
		once.Do(func() {
			// Closing the pubsub closes msgs, which ends the forwarding goroutine.
			_ = pubsub.Close()
		})
	}, nil
}

// SaveSnapshot stores the settled page state so that replicas starting
// mid-show can catch up.
func (b *Bus) SaveSnapshot(ctx context.Context, cmds []domain.Command) error {
	payload, err := json.Marshal(cmds)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return b.client.Set(ctx, b.snapshotKey, payload, 0).Err()
}

// LoadSnapshot returns the last saved page state, or nil when there is none.
func (b *Bus) LoadSnapshot(ctx context.Context) ([]domain.Command, error) {
	payload, err := b.client.Get(ctx, b.snapshotKey).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	var cmds []domain.Command
	if err := json.Unmarshal(payload, &cmds); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return cmds, nil
}

// Relay subscribes, replays the saved snapshot into sink, then forwards
// every live command newer than the snapshot until ctx is done. It returns
// once the subscription is active; done is closed when forwarding ends.
func (b *Bus) Relay(ctx context.Context, sink ports.CommandSink) (done <-chan struct{}, err error) {
	ch, cancel, err := b.Subscribe(ctx)
	if err != nil {
		return nil, err
	}
	snapshot, err := b.LoadSnapshot(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	var after uint64
	for _, cmd := range snapshot {
		after = cmd.Seq
		if err := sink.Publish(ctx, cmd); err != nil {
			b.logger.Warn("Bus: snapshot replay failed", "seq", cmd.Seq, "err", err)
		}
	}

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case cmd, ok := <-ch:
				if !ok {
					return
				}
				if cmd.Seq <= after {
					continue
				}
				if err := sink.Publish(ctx, cmd); err != nil {
					b.logger.Warn("Bus: relay failed", "seq", cmd.Seq, "err", err)
				}
			}
		}
	}()
	return finished, nil
}

var _ ports.CommandBus = (*Bus)(nil)
