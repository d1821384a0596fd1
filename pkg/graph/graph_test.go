package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise/procure/pkg/domain/entities"
)

func TestGraph_TopologicalSort(t *testing.T) {
	g := New()
	g.AddEdge("FOUNDATION", "FRAME")
	g.AddEdge("FRAME", "ROOF")
	g.AddEdge("FRAME", "WIRING")
	g.AddEdge("WIRING", "PANELS")

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Len(t, order, 5)

	pos := make(map[entities.ItemCode]int, len(order))
	for i, code := range order {
		pos[code] = i
	}
	assert.Less(t, pos["FOUNDATION"], pos["FRAME"])
	assert.Less(t, pos["FRAME"], pos["ROOF"])
	assert.Less(t, pos["WIRING"], pos["PANELS"])
}

func TestGraph_TopologicalSort_Deterministic(t *testing.T) {
	build := func() *Graph {
		g := New()
		g.AddEdge("A", "C")
		g.AddEdge("B", "C")
		g.AddEdge("A", "D")
		return g
	}
	first, err := build().TopologicalSort()
	require.NoError(t, err)
	second, err := build().TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGraph_CycleDetection(t *testing.T) {
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	g.AddEdge("C", "A")

	_, err := g.TopologicalSort()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestGraph_DuplicateEdgesIgnored(t *testing.T) {
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("A", "B")
	assert.Len(t, g.Successors("A"), 1)
}
