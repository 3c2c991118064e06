package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/carousel/pkg/domain"
	"github.com/aretw0/carousel/pkg/ports"
)

// Event is one recorded rect operation. At is relative to the surface creation.
type Event struct {
	At       time.Duration
	Slot     int
	Op       domain.Op
	Duration time.Duration
	URL      string
}

func (e Event) String() string {
	s := fmt.Sprintf("t=%-8s slot=%d %s", e.At, e.Slot, e.Op)
	if e.Op.Animated() {
		s += fmt.Sprintf(" over %s", e.Duration)
	}
	if e.URL != "" {
		s += " " + e.URL
	}
	return s
}

// Surface is a headless ports.Surface. It records every operation on a
// timeline and tracks which rects are visible, completing animations on clock.
// Safe for concurrent use.
type Surface struct {
	clock ports.Clock
	start time.Time

	mu        sync.Mutex
	events    []Event
	rects     []*Rect
	mounted   bool
	mountErr  error
	embedErrs map[int]error
}

// NewSurface creates a recording surface whose animations complete on clock.
func NewSurface(clock ports.Clock) *Surface {
	return &Surface{
		clock:     clock,
		start:     clock.Now(),
		embedErrs: make(map[int]error),
	}
}

// FailMount makes the next Mount fail with err.
func (s *Surface) FailMount(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mountErr = err
}

// FailEmbed makes Embed fail with err for the given slot.
func (s *Surface) FailEmbed(slot int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.embedErrs[slot] = err
}

// Mount implements ports.Surface.
func (s *Surface) Mount(ctx context.Context) (ports.Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mountErr != nil {
		return nil, s.mountErr
	}
	s.mounted = true
	s.recordLocked(Event{Slot: -1, Op: domain.OpMount})
	return &container{s: s}, nil
}

// Mounted reports whether the container is attached.
func (s *Surface) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounted
}

// Events returns a copy of the timeline.
func (s *Surface) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

// Rects returns the embedded rects in slot order, removed ones included.
func (s *Surface) Rects() []*Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Rect(nil), s.rects...)
}

// Visible returns the slots currently visible, in slot order.
func (s *Surface) Visible() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int
	for _, r := range s.rects {
		if r.visible && !r.removed {
			out = append(out, r.slot)
		}
	}
	return out
}

func (s *Surface) recordLocked(e Event) {
	e.At = s.clock.Now().Sub(s.start)
	s.events = append(s.events, e)
}

type container struct {
	s *Surface
}

func (c *container) Embed(ctx context.Context, slot int, url string) (ports.Rect, error) {
	s := c.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.embedErrs[slot]; ok {
		return nil, err
	}
	r := &Rect{s: s, slot: slot, url: url}
	s.rects = append(s.rects, r)
	s.recordLocked(Event{Slot: slot, Op: domain.OpEmbed, URL: url})
	return r, nil
}

func (c *container) Unmount(ctx context.Context) error {
	s := c.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted = false
	s.recordLocked(Event{Slot: -1, Op: domain.OpUnmount})
	return nil
}

// Rect is a recorded slot rectangle. Operations are last-writer-wins: an
// animation that completes after a newer operation on the same rect still
// calls its done callback but leaves the visibility alone.
type Rect struct {
	s       *Surface
	slot    int
	url     string
	visible bool
	removed bool
	gen     uint64
}

// Slot returns the slot index the rect was embedded for.
func (r *Rect) Slot() int { return r.slot }

// URL returns the embedded URL.
func (r *Rect) URL() string { return r.url }

// IsVisible reports the current visibility.
func (r *Rect) IsVisible() bool {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.visible && !r.removed
}

func (r *Rect) Show() {
	r.instant(domain.OpShow, true)
}

func (r *Rect) Hide() {
	r.instant(domain.OpHide, false)
}

func (r *Rect) FadeIn(d time.Duration, done func()) {
	r.animate(domain.OpFadeIn, d, true, true, done)
}

func (r *Rect) FadeOut(d time.Duration, done func()) {
	r.animate(domain.OpFadeOut, d, true, false, done)
}

func (r *Rect) SlideDown(d time.Duration, done func()) {
	r.animate(domain.OpSlideDown, d, true, true, done)
}

func (r *Rect) Remove() {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.gen++
	r.removed = true
	r.visible = false
	r.s.recordLocked(Event{Slot: r.slot, Op: domain.OpRemove})
}

func (r *Rect) instant(op domain.Op, visible bool) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.gen++
	r.visible = visible
	r.s.recordLocked(Event{Slot: r.slot, Op: op})
}

// animate records op, applies the starting visibility and schedules the final one.
func (r *Rect) animate(op domain.Op, d time.Duration, startVisible, endVisible bool, done func()) {
	r.s.mu.Lock()
	r.gen++
	gen := r.gen
	r.visible = startVisible
	r.s.recordLocked(Event{Slot: r.slot, Op: op, Duration: d})
	r.s.mu.Unlock()

	r.s.clock.AfterFunc(d, func() {
		r.s.mu.Lock()
		if r.gen == gen {
			r.visible = endVisible
		}
		r.s.mu.Unlock()
		if done != nil {
			done()
		}
	})
}
