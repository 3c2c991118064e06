package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/carousel"
	"github.com/aretw0/carousel/pkg/adapters/clock"
	kiosk "github.com/aretw0/carousel/pkg/adapters/http"
	"github.com/aretw0/carousel/pkg/adapters/redis"
	"github.com/aretw0/carousel/pkg/config"
	"github.com/aretw0/carousel/pkg/domain"
	"github.com/aretw0/carousel/pkg/metrics"
	"github.com/aretw0/carousel/pkg/observability"
	"github.com/aretw0/carousel/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	backend "github.com/redis/go-redis/v9"
	"go.uber.org/atomic"
)

const (
	// DefaultLockTTL bounds how long a dead leader blocks failover.
	DefaultLockTTL = 10 * time.Second
	// DefaultRedisPrefix namespaces every Redis key and channel.
	DefaultRedisPrefix = "carousel:"

	shutdownTimeout  = 5 * time.Second
	snapshotInterval = time.Second
)

// ServeOptions configures the kiosk server.
type ServeOptions struct {
	Path        string
	Addr        string
	RedisAddr   string
	RedisPrefix string
	LockTTL     time.Duration
	Logger      *slog.Logger
	// Out receives operator messages (default: discarded).
	Out io.Writer
}

// Kiosk serves one show to browsers. With Redis, every replica serves the
// page but only the lock holder rotates; the others relay its commands.
type Kiosk struct {
	file    *config.ShowFile
	cfg     domain.Config
	slots   []domain.Slot
	logger  *slog.Logger
	hub     *kiosk.Hub
	sink    ports.CommandSink
	clock   ports.Clock
	metrics *metrics.Collector
	reg     *prometheus.Registry

	bus     *redis.Bus
	locker  ports.DistributedLocker
	lockTTL time.Duration

	leader *atomic.Bool
	mu     sync.Mutex
	show   *carousel.Show
}

// NewKiosk prepares the kiosk for file without touching the network.
// Call UseRedis before Lead to coordinate replicas.
func NewKiosk(file *config.ShowFile, logger *slog.Logger) (*Kiosk, error) {
	cfg, slots, err := resolve(file)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	m.SetSlots(file.Name, len(slots))

	hub := kiosk.NewHub()
	return &Kiosk{
		file:    file,
		cfg:     cfg,
		slots:   slots,
		logger:  logger,
		hub:     hub,
		sink:    hub,
		clock:   clock.New(),
		metrics: m,
		reg:     reg,
		lockTTL: DefaultLockTTL,
		leader:  atomic.NewBool(false),
	}, nil
}

// UseRedis routes commands through bus and gates rotation on locker.
func (k *Kiosk) UseRedis(bus *redis.Bus, locker ports.DistributedLocker, ttl time.Duration) {
	k.bus = bus
	k.sink = bus
	k.locker = locker
	if ttl > 0 {
		k.lockTTL = ttl
	}
}

// Handler returns the kiosk HTTP handler.
func (k *Kiosk) Handler() http.Handler {
	return kiosk.NewHandler(k.hub, kiosk.Options{
		Snapshot: k.Snapshot,
		Leader:   k.leader.Load,
		Gatherer: k.reg,
		Logger:   k.logger,
	})
}

// Snapshot reports the rotating show, or the configured one while this
// replica is not the leader.
func (k *Kiosk) Snapshot() domain.Snapshot {
	k.mu.Lock()
	show := k.show
	k.mu.Unlock()
	if show != nil {
		return show.Snapshot()
	}
	return domain.Snapshot{
		Name:         k.file.Name,
		Status:       domain.StatusUninitialized,
		CurrentIndex: -1,
		Slots:        append([]domain.Slot(nil), k.slots...),
		Config:       k.cfg,
	}
}

// Lead waits for leadership (immediately without Redis), then rotates the
// show until ctx is done. The show is torn down before Lead returns.
func (k *Kiosk) Lead(ctx context.Context) error {
	if k.locker != nil {
		k.logger.Info("waiting for leadership", "show", k.file.Name)
		unlock, err := k.locker.Lock(ctx, k.file.Name, k.lockTTL)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to acquire leadership: %w", err)
		}
		defer func() {
			if err := unlock(context.Background()); err != nil {
				k.logger.Warn("failed to release leadership", "err", err)
			}
		}()
		k.logger.Info("leadership acquired", "show", k.file.Name)
	}

	surface := kiosk.NewSurface(k.file.Name, k.sink, k.clock, k.logger)
	if k.bus != nil {
		cmds, err := k.bus.LoadSnapshot(ctx)
		if err != nil {
			return err
		}
		if len(cmds) > 0 {
			surface.ResumeAfter(cmds[0].Seq)
		}
	}

	hooks := observability.Combine(observability.LogHooks(k.logger), k.metrics.Hooks())
	opts := append(showOptions(k.file, k.logger, hooks),
		carousel.WithSurface(surface),
		carousel.WithClock(k.clock),
	)
	show, err := carousel.NewContext(ctx, k.file.URLs, opts...)
	if err != nil {
		return err
	}
	defer func() {
		k.leader.Store(false)
		if err := show.Close(context.Background()); err != nil {
			k.logger.Warn("failed to close show", "err", err)
		}
	}()

	k.mu.Lock()
	k.show = show
	k.mu.Unlock()
	k.leader.Store(true)

	if err := show.Run(ctx); err != nil {
		return err
	}
	if k.bus == nil {
		<-ctx.Done()
		return nil
	}
	k.persistSnapshots(ctx)
	return nil
}

// persistSnapshots saves the settled page state for late replicas
// whenever it has changed.
func (k *Kiosk) persistSnapshots(ctx context.Context) {
	ticker := time.NewTicker(snapshotInterval)
	defer ticker.Stop()

	var saved uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cmds := k.hub.Snapshot()
			if len(cmds) == 0 || cmds[0].Seq == saved {
				continue
			}
			if err := k.bus.SaveSnapshot(ctx, cmds); err != nil {
				k.logger.Warn("failed to save snapshot", "err", err)
				continue
			}
			saved = cmds[0].Seq
		}
	}
}

// RunServe starts the kiosk server for the show at opts.Path and blocks
// until ctx is done or the server fails.
func RunServe(ctx context.Context, opts ServeOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	file, err := loadShow(opts.Path, logger)
	if err != nil {
		return err
	}
	k, err := NewKiosk(file, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.RedisAddr != "" {
		prefix := opts.RedisPrefix
		if prefix == "" {
			prefix = DefaultRedisPrefix
		}
		client := backend.NewClient(&backend.Options{Addr: opts.RedisAddr})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", opts.RedisAddr, err)
		}
		bus := redis.NewBus(client, prefix, file.Name).WithLogger(logger)
		k.UseRedis(bus, redis.NewLocker(client, prefix).WithLogger(logger), opts.LockTTL)

		// Relay before leading so this replica's own commands reach its hub.
		if _, err := bus.Relay(ctx, k.hub); err != nil {
			return err
		}
		printSystemMessage(out, "Coordinating replicas through redis %s", opts.RedisAddr)
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end with ctx instead of holding up Shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(out, "Serving show %q on %s", file.Name, opts.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	leadErrors := make(chan error, 1)
	leadDone := make(chan struct{})
	go func() {
		defer close(leadDone)
		if err := k.Lead(ctx); err != nil {
			leadErrors <- err
		}
	}()

	var runErr error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("server error: %w", err)
		}
	case err := <-leadErrors:
		runErr = err
	case <-ctx.Done():
	}

	// Stop rotating first so browsers receive the teardown commands.
	cancel()
	<-leadDone

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
		if err := srv.Close(); err != nil {
			logger.Error("failed to close server", "err", err)
		}
	}
	printSystemMessage(out, "Kiosk stopped")
	return runErr
}
