// Package metrics exposes show activity as Prometheus collectors.
package metrics

import (
	"context"

	"github.com/aretw0/carousel/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the show metrics. Every series carries a "show" label so
// one registry can serve several shows.
type Collector struct {
	advances         *prometheus.CounterVec
	transitions      *prometheus.CounterVec
	transitionErrors *prometheus.CounterVec
	currentSlot      *prometheus.GaugeVec
	slots            *prometheus.GaugeVec
	rotating         *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		advances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carousel_advances_total",
			Help: "Total number of slot advances.",
		}, []string{"show"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carousel_transitions_total",
			Help: "Total number of transitions dispatched.",
		}, []string{"show", "transition"}),
		transitionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carousel_transition_errors_total",
			Help: "Total number of transitions that failed.",
		}, []string{"show", "transition"}),
		currentSlot: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "carousel_current_slot",
			Help: "Index of the slot currently on screen.",
		}, []string{"show"}),
		slots: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "carousel_slots",
			Help: "Number of slots in the show.",
		}, []string{"show"}),
		rotating: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "carousel_rotating",
			Help: "1 while the show is rotating.",
		}, []string{"show"}),
	}
	for _, col := range []prometheus.Collector{c.advances, c.transitions, c.transitionErrors, c.currentSlot, c.slots, c.rotating} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SetSlots records the slot count of show.
func (c *Collector) SetSlots(show string, n int) {
	c.slots.WithLabelValues(show).Set(float64(n))
}

// Hooks returns lifecycle hooks that update the collectors.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRun: func(_ context.Context, e *domain.RotationEvent) {
			c.rotating.WithLabelValues(e.Show).Set(1)
			c.currentSlot.WithLabelValues(e.Show).Set(float64(e.To))
		},
		OnAdvance: func(_ context.Context, e *domain.RotationEvent) {
			c.advances.WithLabelValues(e.Show).Inc()
			c.currentSlot.WithLabelValues(e.Show).Set(float64(e.To))
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			c.transitions.WithLabelValues(e.Show, e.Name).Inc()
		},
		OnTransitionError: func(_ context.Context, e *domain.TransitionEvent) {
			c.transitionErrors.WithLabelValues(e.Show, e.Name).Inc()
		},
		OnStop: func(_ context.Context, e *domain.RotationEvent) {
			c.rotating.WithLabelValues(e.Show).Set(0)
		},
	}
}
