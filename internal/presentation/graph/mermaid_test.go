package graph_test

import (
	"testing"

	"github.com/aretw0/carousel/internal/presentation/graph"
	"github.com/aretw0/carousel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMermaid(t *testing.T) {
	slots, err := domain.NewSlots([]string{"https://a.example/", "https://b.example/news?id=1", "local.html"})
	require.NoError(t, err)
	cfg := domain.DefaultConfig()

	t.Run("Cycle", func(t *testing.T) {
		out := graph.GenerateMermaid(slots, cfg, nil)
		assert.Equal(t, `graph LR
    start(("start"))
    slot0["0: a.example"]
    slot1["1: b.example/news"]
    slot2["2: local.html"]
    start -- "show" --> slot0
    slot0 -- "crossfade 1000ms" --> slot1
    slot1 -- "crossfade 1000ms" --> slot2
    slot2 -- "crossfade 1000ms" --> slot0

    %% every 3000ms
`, out)
	})

	t.Run("Single slot loops on itself", func(t *testing.T) {
		out := graph.GenerateMermaid(slots[:1], cfg, nil)
		assert.Contains(t, out, `slot0 -- "crossfade 1000ms" --> slot0`)
	})

	t.Run("Overlay", func(t *testing.T) {
		out := graph.GenerateMermaid(slots, cfg, &graph.Overlay{Current: 1})
		assert.Contains(t, out, "class slot1 current;")

		out = graph.GenerateMermaid(slots, cfg, &graph.Overlay{Current: -1})
		assert.NotContains(t, out, "classDef")
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "graph LR\n    start((\"start\"))\n", graph.GenerateMermaid(nil, cfg, nil))
	})
}
