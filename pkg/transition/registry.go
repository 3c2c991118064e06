package transition

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/carousel/pkg/domain"
	"github.com/aretw0/carousel/pkg/ports"
)

// Func animates the hand-off from out to in. out and in may be the same rect
// (single-slot shows and the initial show).
type Func func(ctx context.Context, out, in ports.Rect, opts Options) error

// Transition is a named Func with its own option defaults.
type Transition struct {
	Name     string
	Defaults Options
	Run      Func
}

// Registry is an immutable name -> Transition table.
type Registry struct {
	entries map[string]Transition
}

// New builds a registry holding the built-in transitions plus extra.
// An extra entry with a built-in name replaces the built-in.
func New(extra ...Transition) (*Registry, error) {
	r := &Registry{entries: make(map[string]Transition)}
	for _, t := range Builtins() {
		r.entries[t.Name] = t
	}
	for _, t := range extra {
		if t.Name == "" {
			return nil, fmt.Errorf("transition name must not be empty")
		}
		if t.Run == nil {
			return nil, fmt.Errorf("transition %q has no procedure", t.Name)
		}
		r.entries[t.Name] = Transition{Name: t.Name, Defaults: maps.Clone(t.Defaults), Run: t.Run}
	}
	return r, nil
}

// Default returns a registry holding only the built-ins.
func Default() *Registry {
	r, _ := New()
	return r
}

// Lookup returns the transition registered under name.
func (r *Registry) Lookup(name string) (Transition, error) {
	t, ok := r.entries[name]
	if !ok {
		return Transition{}, &domain.UnknownTransitionError{Name: name}
	}
	return t, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.entries))
}

// Dispatch resolves name, merges options (override > defaults > base) and runs it.
func (r *Registry) Dispatch(ctx context.Context, name string, out, in ports.Rect, base, override Options) error {
	t, err := r.Lookup(name)
	if err != nil {
		return err
	}
	return t.Run(ctx, out, in, Merge(base, t.Defaults, override))
}
