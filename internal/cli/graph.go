package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/carousel/internal/presentation/graph"
)

// RunGraph prints the rotation cycle of the show at path as a Mermaid diagram.
func RunGraph(w io.Writer, path string, logger *slog.Logger) error {
	f, err := loadShow(path, logger)
	if err != nil {
		return err
	}
	cfg, slots, err := resolve(f)
	if err != nil {
		return err
	}
	fmt.Fprint(w, graph.GenerateMermaid(slots, cfg, nil))
	return nil
}
