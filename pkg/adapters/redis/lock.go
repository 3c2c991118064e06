package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/carousel/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

var (
	// ErrLockAcquire is returned when the lock cannot be acquired.
	ErrLockAcquire = errors.New("failed to acquire distributed lock")
)

// DefaultRetryInterval is how often Lock polls a lock held by someone else.
const DefaultRetryInterval = 100 * time.Millisecond

const (
	unlockScript = `
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		else
			return 0
		end
	`
	refreshScript = `
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("pexpire", KEYS[1], ARGV[2])
		else
			return 0
		end
	`
)

// Locker implements ports.DistributedLocker using Redis.
// A held lock is refreshed every ttl/3 until it is released, so a leader
// keeps it for as long as it runs and loses it within ttl when it dies.
type Locker struct {
	client *backend.Client
	prefix string
	retry  time.Duration
	logger *slog.Logger
}

// NewLocker creates a new Redis locker.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
		retry:  DefaultRetryInterval,
		logger: slog.Default(),
	}
}

// WithLogger sets the logger used for refresh failures.
func (l *Locker) WithLogger(logger *slog.Logger) *Locker {
	l.logger = logger
	return l
}

// Lock acquires a distributed lock for the given key using Redis SET NX PX.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: ttl must be positive", ErrLockAcquire)
	}
	lockKey := l.prefix + "lock:" + key
	// Token identifying this holder, checked on refresh and release.
	val := fmt.Sprintf("%d", time.Now().UnixNano())

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		success, err := l.client.SetNX(ctx, lockKey, val, ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("redis error acquiring lock: %w", err)
		}
		if success {
			return l.hold(lockKey, val, ttl), nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *Locker) hold(lockKey, val string, ttl time.Duration) ports.UnlockFunc {
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		t := time.NewTicker(max(ttl/3, time.Millisecond))
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				ok, err := l.client.Eval(context.Background(), refreshScript, []string{lockKey}, val, ttl.Milliseconds()).Int()
				if err != nil {
					l.logger.Warn("lock refresh failed", "key", lockKey, "err", err)
					continue
				}
				if ok == 0 {
					l.logger.Error("lock lost", "key", lockKey)
					return
				}
			}
		}
	}()

	var once sync.Once
	return func(ctx context.Context) error {
		var err error
		once.Do(func() {
			close(done)
			<-stopped
			err = l.client.Eval(ctx, unlockScript, []string{lockKey}, val).Err()
		})
		return err
	}
}
