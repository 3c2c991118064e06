package graph

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aretw0/carousel/pkg/domain"
)

// Overlay contains runtime state to highlight on the graph.
type Overlay struct {
	// Current is the slot on screen, or -1.
	Current int
}

// GenerateMermaid produces a Mermaid flowchart of the rotation cycle:
// a start node showing slot 0, then one edge per advance labelled with the
// configured transition, the last slot wrapping back to the first.
func GenerateMermaid(slots []domain.Slot, cfg domain.Config, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	sb.WriteString("    start((\"start\"))\n")

	for _, s := range slots {
		sb.WriteString(fmt.Sprintf("    %s[\"%d: %s\"]\n", nodeID(s.Index), s.Index, label(s.URL)))
	}
	if len(slots) == 0 {
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("    start -- \"show\" --> %s\n", nodeID(0)))
	edge := fmt.Sprintf("%s %dms", cfg.TransitionName, cfg.Duration)
	for i := range slots {
		next := (i + 1) % len(slots)
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", nodeID(i), edge, nodeID(next)))
	}
	sb.WriteString(fmt.Sprintf("\n    %%%% every %dms\n", cfg.Interval))

	if overlay != nil && overlay.Current >= 0 && overlay.Current < len(slots) {
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(overlay.Current)))
	}
	return sb.String()
}

func nodeID(i int) string {
	return fmt.Sprintf("slot%d", i)
}

// label shortens a URL to host and path and strips characters Mermaid
// would read as syntax.
func label(raw string) string {
	s := raw
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		s = u.Host + u.Path
	}
	s = strings.TrimSuffix(s, "/")
	s = strings.ReplaceAll(s, "\"", "'")
	return s
}
