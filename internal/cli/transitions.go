package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aretw0/carousel/pkg/transition"
)

// RunTransitions lists the built-in transitions and their default options.
func RunTransitions(w io.Writer) error {
	registry := transition.Default()
	for _, name := range registry.Names() {
		t, err := registry.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-10s %s\n", name, formatDefaults(t.Defaults))
	}
	return nil
}

func formatDefaults(opts transition.Options) string {
	if len(opts) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, opts[k]))
	}
	return strings.Join(parts, " ")
}
