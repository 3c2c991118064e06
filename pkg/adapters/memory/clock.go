package memory

import (
	"sync"
	"time"

	"github.com/aretw0/carousel/pkg/ports"
)

// Clock is a virtual ports.Clock. Time only moves when Advance is called,
// and due callbacks fire inline, in time order, on the caller's goroutine.
// Safe for concurrent use.
type Clock struct {
	mu     sync.Mutex
	start  time.Time
	now    time.Time
	seq    uint64
	timers map[uint64]*timer
}

type timer struct {
	at     time.Time
	period time.Duration
	seq    uint64
	f      func()
}

// NewClock creates a virtual clock starting at start.
func NewClock(start time.Time) *Clock {
	return &Clock{
		start:  start,
		now:    start,
		timers: make(map[uint64]*timer),
	}
}

// Now returns the virtual time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Elapsed returns the virtual time since the clock was created.
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Sub(c.start)
}

// Every schedules f every d. It panics if d is not positive, like time.NewTicker.
func (c *Clock) Every(d time.Duration, f func()) ports.StopFunc {
	if d <= 0 {
		panic("memory: non-positive interval for Clock.Every")
	}
	return c.schedule(d, d, f)
}

// AfterFunc schedules f once after d.
func (c *Clock) AfterFunc(d time.Duration, f func()) ports.StopFunc {
	if d < 0 {
		d = 0
	}
	return c.schedule(d, 0, f)
}

func (c *Clock) schedule(after, period time.Duration, f func()) ports.StopFunc {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	id := c.seq
	c.timers[id] = &timer{at: c.now.Add(after), period: period, seq: id, f: f}
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.timers, id)
	}
}

// Pending returns the number of armed timers.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Advance moves time forward by d, firing every callback that falls due.
// Callbacks scheduled while advancing fire too if they are due before the target.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		id, next := c.nextDue(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.at
		f := next.f
		if next.period > 0 {
			// Re-queue behind anything already due at the same instant.
			c.seq++
			delete(c.timers, id)
			next.at = next.at.Add(next.period)
			next.seq = c.seq
			c.timers[id] = next
		} else {
			delete(c.timers, id)
		}
		c.mu.Unlock()

		f()
	}
}

func (c *Clock) nextDue(target time.Time) (uint64, *timer) {
	var (
		bestID uint64
		best   *timer
	)
	for id, t := range c.timers {
		if t.at.After(target) {
			continue
		}
		if best == nil || t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			bestID, best = id, t
		}
	}
	return bestID, best
}
