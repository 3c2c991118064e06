package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/carousel/pkg/domain"
	"github.com/aretw0/carousel/pkg/ports"
	"go.uber.org/atomic"
)

// Surface implements ports.Surface for browsers: every rect operation becomes
// a domain.Command published to sink. The browser runs the animation; the
// completion callback fires after the same duration on clock.
type Surface struct {
	show   string
	sink   ports.CommandSink
	clock  ports.Clock
	seq    *atomic.Uint64
	logger *slog.Logger
}

// NewSurface creates a remote surface for show.
func NewSurface(show string, sink ports.CommandSink, clock ports.Clock, logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	return &Surface{
		show:   show,
		sink:   sink,
		clock:  clock,
		seq:    atomic.NewUint64(0),
		logger: logger,
	}
}

// ResumeAfter continues numbering after seq, so replicas that already
// applied commands up to seq accept the new ones.
func (s *Surface) ResumeAfter(seq uint64) {
	s.seq.Store(seq)
}

func (s *Surface) publish(ctx context.Context, op domain.Op, slot int, url string, d time.Duration) error {
	return s.sink.Publish(ctx, domain.Command{
		Seq:      s.seq.Inc(),
		Show:     s.show,
		Op:       op,
		Slot:     slot,
		URL:      url,
		Duration: int(d.Milliseconds()),
	})
}

// Mount publishes the container.
func (s *Surface) Mount(ctx context.Context) (ports.Container, error) {
	if err := s.publish(ctx, domain.OpMount, -1, "", 0); err != nil {
		return nil, err
	}
	return &container{surface: s}, nil
}

type container struct {
	surface *Surface
}

func (c *container) Embed(ctx context.Context, slot int, url string) (ports.Rect, error) {
	if err := c.surface.publish(ctx, domain.OpEmbed, slot, url, 0); err != nil {
		return nil, err
	}
	return &rect{surface: c.surface, slot: slot}, nil
}

func (c *container) Unmount(ctx context.Context) error {
	return c.surface.publish(ctx, domain.OpUnmount, -1, "", 0)
}

type rect struct {
	surface *Surface
	slot    int
}

// Rect operations cannot fail from the controller's point of view; a sink
// error is logged and the browser catches up from the next snapshot.
func (r *rect) send(op domain.Op, d time.Duration) {
	if err := r.surface.publish(context.Background(), op, r.slot, "", d); err != nil {
		r.surface.logger.Warn("Surface: publish failed", "op", op, "slot", r.slot, "err", err)
	}
}

func (r *rect) animate(op domain.Op, d time.Duration, done func()) {
	r.send(op, d)
	if done != nil {
		r.surface.clock.AfterFunc(d, done)
	}
}

func (r *rect) Show()                                  { r.send(domain.OpShow, 0) }
func (r *rect) Hide()                                  { r.send(domain.OpHide, 0) }
func (r *rect) Remove()                                { r.send(domain.OpRemove, 0) }
func (r *rect) FadeIn(d time.Duration, done func())    { r.animate(domain.OpFadeIn, d, done) }
func (r *rect) FadeOut(d time.Duration, done func())   { r.animate(domain.OpFadeOut, d, done) }
func (r *rect) SlideDown(d time.Duration, done func()) { r.animate(domain.OpSlideDown, d, done) }
