package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/carousel/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnAdvance: func(context.Context, *domain.RotationEvent) { calls = append(calls, "a.advance") },
	}
	b := domain.LifecycleHooks{
		OnAdvance:    func(context.Context, *domain.RotationEvent) { calls = append(calls, "b.advance") },
		OnTransition: func(context.Context, *domain.TransitionEvent) { calls = append(calls, "b.transition") },
	}

	h := Combine(a, domain.LifecycleHooks{}, b)
	assert.Nil(t, h.OnRun)
	assert.Nil(t, h.OnStop)
	assert.Nil(t, h.OnTransitionError)

	h.OnAdvance(context.Background(), &domain.RotationEvent{})
	h.OnTransition(context.Background(), &domain.TransitionEvent{})
	assert.Equal(t, []string{"a.advance", "b.advance", "b.transition"}, calls)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := LogHooks(logger)
	ctx := context.Background()

	h.OnRun(ctx, &domain.RotationEvent{EventBase: domain.EventBase{Show: "lobby"}, From: -1, To: 0})
	h.OnTransitionError(ctx, &domain.TransitionEvent{
		EventBase: domain.EventBase{Show: "lobby"}, Name: "fade", From: 0, To: 1, Err: errors.New("boom"),
	})

	out := buf.String()
	assert.Contains(t, out, "msg=show_run show=lobby slot=0")
	assert.Contains(t, out, "level=WARN msg=transition_failed show=lobby transition=fade from=0 to=1 err=boom")
}
