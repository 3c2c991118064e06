package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/carousel"
	"github.com/aretw0/carousel/pkg/adapters/memory"
	"github.com/aretw0/carousel/pkg/observability"
)

// RunSimulate runs the show at path on a headless surface and a virtual
// clock for ticks timer firings, then prints the recorded timeline.
func RunSimulate(w io.Writer, path string, ticks int, logger *slog.Logger) error {
	if ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", ticks)
	}
	f, err := loadShow(path, logger)
	if err != nil {
		return err
	}

	clock := memory.NewClock(time.Unix(0, 0).UTC())
	surface := memory.NewSurface(clock)
	opts := append(showOptions(f, logger, observability.LogHooks(logger)),
		carousel.WithSurface(surface),
		carousel.WithClock(clock),
	)

	ctx := context.Background()
	show, err := carousel.NewContext(ctx, f.URLs, opts...)
	if err != nil {
		return err
	}
	if err := show.Run(ctx); err != nil {
		return err
	}

	cfg := show.Config()
	for range ticks {
		clock.Advance(cfg.IntervalDuration())
	}
	// Let the last transition finish.
	clock.Advance(cfg.DurationDuration())

	printSystemMessage(w, "show %q: %d slots, %s every %dms over %dms", f.Name, len(f.URLs), cfg.TransitionName, cfg.Interval, cfg.Duration)
	for _, e := range surface.Events() {
		fmt.Fprintln(w, e.String())
	}

	snap := show.Snapshot()
	visible := surface.Visible()
	if err := show.Close(ctx); err != nil {
		return err
	}
	printSystemMessage(w, "slot %d on screen after %d advances, visible %v", snap.CurrentIndex, snap.Advances, visible)
	return nil
}
