package clock

import (
	"sync"
	"time"

	"github.com/aretw0/carousel/pkg/ports"
)

// Real implements ports.Clock on top of the runtime timers.
type Real struct{}

// New returns the wall clock.
func New() Real {
	return Real{}
}

func (Real) Now() time.Time {
	return time.Now()
}

// Every runs f on a dedicated goroutine, so consecutive calls never overlap.
// Ticks that arrive while f is still running are coalesced, as with time.Ticker.
func (Real) Every(d time.Duration, f func()) ports.StopFunc {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// Stop may race with a pending tick.
				select {
				case <-done:
					return
				default:
				}
				f()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

func (Real) AfterFunc(d time.Duration, f func()) ports.StopFunc {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}
