package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/carousel/internal/presentation/tui"
)

// InspectOptions tune the inspect output.
type InspectOptions struct {
	// Plain prints the raw markdown instead of rendering it.
	Plain bool
	Width int
}

// RunInspect prints a summary of the show at path.
func RunInspect(w io.Writer, path string, opts InspectOptions, logger *slog.Logger) error {
	f, err := loadShow(path, logger)
	if err != nil {
		return err
	}
	cfg, slots, err := resolve(f)
	if err != nil {
		return err
	}

	md := tui.ShowMarkdown(f.Name, slots, cfg, f.TransitionOptions())
	if opts.Plain {
		fmt.Fprint(w, md)
		return nil
	}

	render, err := tui.NewRenderer(opts.Width)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	fmt.Fprint(w, out)
	return nil
}
