package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/carousel/pkg/domain"
)

// Combine returns hooks that call every non-nil callback of each input in order.
func Combine(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	var (
		onRun, onAdvance, onStop        []func(context.Context, *domain.RotationEvent)
		onTransition, onTransitionError []func(context.Context, *domain.TransitionEvent)
	)
	for _, h := range all {
		if h.OnRun != nil {
			onRun = append(onRun, h.OnRun)
		}
		if h.OnAdvance != nil {
			onAdvance = append(onAdvance, h.OnAdvance)
		}
		if h.OnStop != nil {
			onStop = append(onStop, h.OnStop)
		}
		if h.OnTransition != nil {
			onTransition = append(onTransition, h.OnTransition)
		}
		if h.OnTransitionError != nil {
			onTransitionError = append(onTransitionError, h.OnTransitionError)
		}
	}
	return domain.LifecycleHooks{
		OnRun:             fanRotation(onRun),
		OnAdvance:         fanRotation(onAdvance),
		OnStop:            fanRotation(onStop),
		OnTransition:      fanTransition(onTransition),
		OnTransitionError: fanTransition(onTransitionError),
	}
}

func fanRotation(fns []func(context.Context, *domain.RotationEvent)) func(context.Context, *domain.RotationEvent) {
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, e *domain.RotationEvent) {
		for _, fn := range fns {
			fn(ctx, e)
		}
	}
}

func fanTransition(fns []func(context.Context, *domain.TransitionEvent)) func(context.Context, *domain.TransitionEvent) {
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, e *domain.TransitionEvent) {
		for _, fn := range fns {
			fn(ctx, e)
		}
	}
}

// LogHooks logs each lifecycle event. Advances and transitions are logged at
// debug level since they fire on every tick.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRun: func(ctx context.Context, e *domain.RotationEvent) {
			logger.InfoContext(ctx, "show_run", "show", e.Show, "slot", e.To)
		},
		OnAdvance: func(ctx context.Context, e *domain.RotationEvent) {
			logger.DebugContext(ctx, "show_advance", "show", e.Show, "from", e.From, "to", e.To)
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.DebugContext(ctx, "transition", "show", e.Show, "transition", e.Name, "from", e.From, "to", e.To)
		},
		OnTransitionError: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.WarnContext(ctx, "transition_failed", "show", e.Show, "transition", e.Name,
				"from", e.From, "to", e.To, "err", e.Err)
		},
		OnStop: func(ctx context.Context, e *domain.RotationEvent) {
			logger.InfoContext(ctx, "show_stop", "show", e.Show, "slot", e.To)
		},
	}
}
