package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRun             EventType = "run"
	EventAdvance         EventType = "advance"
	EventTransition      EventType = "transition"
	EventTransitionError EventType = "transition_error"
	EventStop            EventType = "stop"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Show      string    `json:"show,omitempty"`
}

// RotationEvent marks a lifecycle change or an index advance.
type RotationEvent struct {
	EventBase
	From int `json:"from"`
	To   int `json:"to"`
}

// TransitionEvent represents one transition dispatch.
type TransitionEvent struct {
	EventBase
	Name string `json:"name"`
	From int    `json:"from"`
	To   int    `json:"to"`
	Err  error  `json:"-"`
}

// LifecycleHooks defines callbacks for show observability.
// Hooks run synchronously on the tick path: they must not block or call back into the show.
type LifecycleHooks struct {
	OnRun             func(context.Context, *RotationEvent)
	OnAdvance         func(context.Context, *RotationEvent)
	OnTransition      func(context.Context, *TransitionEvent)
	OnTransitionError func(context.Context, *TransitionEvent)
	OnStop            func(context.Context, *RotationEvent)
}
