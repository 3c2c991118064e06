package transition

import (
	"fmt"
	"maps"
	"time"

	"github.com/aretw0/carousel/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// KeyDuration is the option every animated transition reads, in milliseconds.
const KeyDuration = "duration"

// Options is a loose option record, as found in show files.
type Options map[string]any

// Merge layers the given records left to right: later records win.
func Merge(layers ...Options) Options {
	out := Options{}
	for _, l := range layers {
		maps.Copy(out, l)
	}
	return out
}

// Decode copies opts into the struct pointed to by v using mapstructure tags.
func (o Options) Decode(v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           v,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any(o)); err != nil {
		return &domain.ConfigurationError{Field: "options", Reason: err.Error()}
	}
	return nil
}

type durationOptions struct {
	Duration int `mapstructure:"duration"`
}

func (d durationOptions) validate() error {
	if d.Duration < 0 {
		return &domain.ConfigurationError{Field: KeyDuration, Reason: fmt.Sprintf("must not be negative, got %d", d.Duration)}
	}
	return nil
}

func (d durationOptions) value() time.Duration {
	return ms(d.Duration)
}

type fadeOptions struct {
	Duration int     `mapstructure:"duration"`
	Out      float64 `mapstructure:"out"`
}

func (f fadeOptions) validate() error {
	if err := (durationOptions{Duration: f.Duration}).validate(); err != nil {
		return err
	}
	if f.Out < 0 || f.Out > 1 {
		return &domain.ConfigurationError{Field: "out", Reason: fmt.Sprintf("must be within [0, 1], got %g", f.Out)}
	}
	return nil
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
