package ports

import "time"

// StopFunc cancels a timer. It is safe to call more than once.
type StopFunc func()

// Clock is the timing primitive used by the controller and the surfaces.
type Clock interface {
	Now() time.Time

	// Every invokes f every d until stopped. Invocations are sequential:
	// f is never called again before the previous call returned.
	Every(d time.Duration, f func()) StopFunc

	// AfterFunc invokes f once after d.
	AfterFunc(d time.Duration, f func()) StopFunc
}
