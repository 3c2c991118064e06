package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/carousel/pkg/domain"
)

// DefaultBufferSize is the per-subscriber channel capacity.
const DefaultBufferSize = 64

// Bus implements ports.CommandBus in memory.
// Safe for concurrent use.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[chan domain.Command]struct{}
	bufferSize  int
	logger      *slog.Logger
}

// NewBus creates a new in-memory bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[chan domain.Command]struct{}),
		bufferSize:  DefaultBufferSize,
		logger:      slog.Default(),
	}
}

// Publish delivers cmd to every subscriber. A subscriber whose buffer is full
// misses the command rather than blocking the rotation.
func (b *Bus) Publish(ctx context.Context, cmd domain.Command) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- cmd:
		default:
			// Drop message if channel is full (slow client)
			b.logger.Warn("Bus: subscriber buffer full, dropping command", "seq", cmd.Seq, "op", cmd.Op)
		}
	}
	return nil
}

// Subscribe registers a new subscriber.
func (b *Bus) Subscribe(ctx context.Context) (<-chan domain.Command, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan domain.Command, b.bufferSize)
	b.subscribers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subscribers, ch)
			close(ch)
		})
	}, nil
}

// Len returns the number of active subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
