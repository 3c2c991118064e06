package transition

import (
	"context"
	"math"

	"github.com/aretw0/carousel/pkg/ports"
)

// Built-in transition names.
const (
	Crossfade = "crossfade"
	Fade      = "fade"
	FadeIn    = "fadeIn"
	FadeOut   = "fadeOut"
	Show      = "show"
	SlideDown = "slideDown"
)

// Builtins returns a fresh copy of the built-in transitions.
func Builtins() []Transition {
	return []Transition{
		{Name: Crossfade, Run: crossfade},
		{Name: Fade, Defaults: Options{"out": 0.5}, Run: fade},
		{Name: FadeIn, Run: fadeIn},
		{Name: FadeOut, Run: fadeOut},
		{Name: Show, Run: show},
		{Name: SlideDown, Run: slideDown},
	}
}

func durationOf(opts Options) (durationOptions, error) {
	var d durationOptions
	if err := opts.Decode(&d); err != nil {
		return d, err
	}
	return d, d.validate()
}

func crossfade(ctx context.Context, out, in ports.Rect, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d, err := durationOf(opts)
	if err != nil {
		return err
	}
	out.FadeOut(d.value(), nil)
	in.FadeIn(d.value(), nil)
	return nil
}

// fade splits the duration: out*duration fading out, the rest fading in.
func fade(ctx context.Context, out, in ports.Rect, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var f fadeOptions
	if err := opts.Decode(&f); err != nil {
		return err
	}
	if err := f.validate(); err != nil {
		return err
	}
	outMS := int(math.Round(float64(f.Duration) * f.Out))
	inMS := f.Duration - outMS
	out.FadeOut(ms(outMS), func() {
		in.FadeIn(ms(inMS), nil)
	})
	return nil
}

func fadeIn(ctx context.Context, out, in ports.Rect, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d, err := durationOf(opts)
	if err != nil {
		return err
	}
	out.Hide()
	in.FadeIn(d.value(), nil)
	return nil
}

func fadeOut(ctx context.Context, out, in ports.Rect, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d, err := durationOf(opts)
	if err != nil {
		return err
	}
	out.FadeOut(d.value(), in.Show)
	return nil
}

// show never reads the duration.
func show(ctx context.Context, out, in ports.Rect, _ Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out.Hide()
	in.Show()
	return nil
}

func slideDown(ctx context.Context, out, in ports.Rect, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d, err := durationOf(opts)
	if err != nil {
		return err
	}
	in.SlideDown(d.value(), func() {
		// A single-slot show slides onto itself; hiding would blank it.
		if out != in {
			out.Hide()
		}
	})
	return nil
}
