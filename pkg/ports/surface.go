package ports

import (
	"context"
	"time"
)

// Surface is the host-provided rendering collaborator.
type Surface interface {
	// Mount creates one full-viewport container and attaches it to the document root.
	Mount(ctx context.Context) (Container, error)
}

// Container holds the rectangles of a show.
type Container interface {
	// Embed materializes an isolated, initially hidden, full-container rectangle bound to url.
	Embed(ctx context.Context, slot int, url string) (Rect, error)

	// Unmount detaches the container from the document root.
	Unmount(ctx context.Context) error
}

// Rect is the rendered rectangle of one slot.
//
// Animated operations return as soon as the animation is dispatched. done, when
// non-nil, is invoked once the animation completes, possibly on another goroutine.
type Rect interface {
	Show()
	Hide()
	FadeIn(d time.Duration, done func())
	FadeOut(d time.Duration, done func())
	SlideDown(d time.Duration, done func())
	Remove()
}
