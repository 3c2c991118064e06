package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/carousel/pkg/domain"
	"github.com/aretw0/carousel/pkg/transition"
)

// ShowMarkdown describes a show as a markdown document.
func ShowMarkdown(name string, slots []domain.Slot, cfg domain.Config, opts transition.Options) string {
	var sb strings.Builder
	if name == "" {
		name = "show"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)

	sb.WriteString("| Setting | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Slots | %d |\n", len(slots))
	fmt.Fprintf(&sb, "| Interval | %d ms |\n", cfg.Interval)
	fmt.Fprintf(&sb, "| Transition | `%s` |\n", cfg.TransitionName)
	fmt.Fprintf(&sb, "| Duration | %d ms |\n", cfg.Duration)
	fmt.Fprintf(&sb, "| Overlap guard | %t |\n", cfg.OverlapGuard)
	if len(slots) > 0 {
		fmt.Fprintf(&sb, "| Full cycle | %d ms |\n", cfg.Interval*len(slots))
	}

	if len(opts) > 0 {
		sb.WriteString("\n## Transition options\n\n")
		keys := make([]string, 0, len(opts))
		for k := range opts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "- `%s`: %v\n", k, opts[k])
		}
	}

	sb.WriteString("\n## Slots\n\n")
	for _, s := range slots {
		fmt.Fprintf(&sb, "%d. %s\n", s.Index+1, s.URL)
	}

	if cfg.Overlaps() {
		sb.WriteString("\n> **Note:** the transition lasts at least as long as the interval, so transitions overlap.\n")
	}
	return sb.String()
}
