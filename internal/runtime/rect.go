package runtime

import (
	"time"

	"github.com/aretw0/carousel/pkg/ports"
	"go.uber.org/atomic"
)

// liveRect forwards to the surface rect until the controller detaches.
// After that every operation is dropped, including the ones issued from
// animation completions scheduled before Close.
type liveRect struct {
	ports.Rect
	detached *atomic.Bool
}

func (r *liveRect) Show() {
	if !r.detached.Load() {
		r.Rect.Show()
	}
}

func (r *liveRect) Hide() {
	if !r.detached.Load() {
		r.Rect.Hide()
	}
}

func (r *liveRect) Remove() {
	if !r.detached.Load() {
		r.Rect.Remove()
	}
}

func (r *liveRect) FadeIn(d time.Duration, done func()) {
	if !r.detached.Load() {
		r.Rect.FadeIn(d, r.guard(done))
	}
}

func (r *liveRect) FadeOut(d time.Duration, done func()) {
	if !r.detached.Load() {
		r.Rect.FadeOut(d, r.guard(done))
	}
}

func (r *liveRect) SlideDown(d time.Duration, done func()) {
	if !r.detached.Load() {
		r.Rect.SlideDown(d, r.guard(done))
	}
}

func (r *liveRect) guard(done func()) func() {
	if done == nil {
		return nil
	}
	return func() {
		if !r.detached.Load() {
			done()
		}
	}
}
