package domain

import (
	"fmt"
	"time"
)

// Defaults applied by Resolve when the caller leaves a field unset.
const (
	DefaultInterval       = 3000
	DefaultTransitionName = "crossfade"
	DefaultDuration       = 1000
)

// Partial carries caller-supplied overrides. A nil field means "use the default".
type Partial struct {
	Interval       *int    `json:"interval,omitempty" yaml:"interval,omitempty"`
	TransitionName *string `json:"transition,omitempty" yaml:"transition,omitempty"`
	Duration       *int    `json:"duration,omitempty" yaml:"duration,omitempty"`
	OverlapGuard   *bool   `json:"overlap_guard,omitempty" yaml:"overlap_guard,omitempty"`
}

// Merge returns p with every non-nil field of other applied on top.
func (p Partial) Merge(other Partial) Partial {
	if other.Interval != nil {
		p.Interval = other.Interval
	}
	if other.TransitionName != nil {
		p.TransitionName = other.TransitionName
	}
	if other.Duration != nil {
		p.Duration = other.Duration
	}
	if other.OverlapGuard != nil {
		p.OverlapGuard = other.OverlapGuard
	}
	return p
}

// Config is the effective configuration of a show. Interval and Duration are milliseconds.
type Config struct {
	Interval       int    `json:"interval"`
	TransitionName string `json:"transition"`
	Duration       int    `json:"duration"`

	// OverlapGuard skips a tick that arrives before the previous transition's
	// duration has elapsed. Off by default: overlapping transitions are last-writer-wins.
	OverlapGuard bool `json:"overlap_guard"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Interval:       DefaultInterval,
		TransitionName: DefaultTransitionName,
		Duration:       DefaultDuration,
	}
}

// Resolve merges p over DefaultConfig and validates the result.
// It does not check that TransitionName is registered; the controller does.
func Resolve(p Partial) (Config, error) {
	cfg := DefaultConfig()
	if p.Interval != nil {
		cfg.Interval = *p.Interval
	}
	if p.TransitionName != nil {
		cfg.TransitionName = *p.TransitionName
	}
	if p.Duration != nil {
		cfg.Duration = *p.Duration
	}
	if p.OverlapGuard != nil {
		cfg.OverlapGuard = *p.OverlapGuard
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field as a *ConfigurationError.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return &ConfigurationError{Field: "interval", Reason: fmt.Sprintf("must be positive, got %d", c.Interval)}
	}
	if c.Duration <= 0 {
		return &ConfigurationError{Field: "duration", Reason: fmt.Sprintf("must be positive, got %d", c.Duration)}
	}
	if c.TransitionName == "" {
		return &ConfigurationError{Field: "transition", Reason: "must not be empty"}
	}
	return nil
}

// IntervalDuration returns the tick period.
func (c Config) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Millisecond
}

// DurationDuration returns the transition duration.
func (c Config) DurationDuration() time.Duration {
	return time.Duration(c.Duration) * time.Millisecond
}

// Overlaps reports whether a transition can still be animating when the next tick fires.
func (c Config) Overlaps() bool {
	return c.Duration >= c.Interval
}

// Ptr returns a pointer to v. Handy for building a Partial.
func Ptr[T any](v T) *T {
	return &v
}
