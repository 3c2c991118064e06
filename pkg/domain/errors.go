package domain

import (
	"errors"
	"fmt"
)

// ErrAlreadyRotating is returned by Run when the show has already been started.
var ErrAlreadyRotating = errors.New("show is already rotating")

// ErrNotRotating is returned when an operation requires a running show.
var ErrNotRotating = errors.New("show is not rotating")

// ErrStopped is returned by Run once the show has been stopped or closed.
var ErrStopped = errors.New("show has been stopped")

// ConfigurationError reports an invalid construction input.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// UnknownTransitionError is returned when a transition name is not registered.
type UnknownTransitionError struct {
	Name string
}

func (e *UnknownTransitionError) Error() string {
	return fmt.Sprintf("unknown transition %q", e.Name)
}

// RenderError reports that the rendering surface could not materialize the show.
type RenderError struct {
	Op   string // "mount" or "embed"
	Slot int    // -1 for the container
	URL  string
	Err  error
}

func (e *RenderError) Error() string {
	if e.Slot < 0 {
		return fmt.Sprintf("render error: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("render error: %s slot %d (%s): %v", e.Op, e.Slot, e.URL, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
