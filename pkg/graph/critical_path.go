package graph

import (
	"sort"
	"time"

	"github.com/planwise/procure/pkg/domain/entities"
)

// PathNode represents one item along a dependency path with timing detail
type PathNode struct {
	ItemCode       entities.ItemCode
	Weight         int
	CumulativeTime int
	Level          int
}

// Path represents a complete dependency chain with timing information
type Path struct {
	TotalWeight int
	PathLength  int
	Items       []entities.ItemCode
	Details     []PathNode
	// Bottleneck is the item with the longest individual weight on this path
	Bottleneck entities.ItemCode
}

// Analysis contains the results of critical-path analysis over the dependency
// graph. Weights are typically each item's best feasible lead time, so the
// critical path is the dependency chain with the longest cumulative lead time.
type Analysis struct {
	AnalysisDate time.Time
	CriticalPath Path
	TopPaths     []Path
	TotalPaths   int
}

// AnalyzeCriticalPaths enumerates all source-to-sink paths through the graph,
// weighting each node with weights[code] (missing codes weigh zero), and
// returns the top N longest. Requires an acyclic graph.
func AnalyzeCriticalPaths(g *Graph, weights map[entities.ItemCode]int, topN int) (*Analysis, error) {
	if _, err := g.TopologicalSort(); err != nil {
		return nil, err
	}

	analysis := &Analysis{AnalysisDate: time.Now()}
	if g.Len() == 0 {
		return analysis, nil
	}

	var allPaths []Path
	for _, src := range g.sources() {
		allPaths = append(allPaths, findPaths(g, src, weights, 1)...)
	}

	sortPaths(allPaths)

	analysis.TotalPaths = len(allPaths)
	if len(allPaths) > 0 {
		analysis.CriticalPath = allPaths[0]
		if len(allPaths) > topN {
			analysis.TopPaths = allPaths[:topN]
		} else {
			analysis.TopPaths = allPaths
		}
	}
	return analysis, nil
}

// findPaths recursively builds every path from node to a sink
func findPaths(g *Graph, node int, weights map[entities.ItemCode]int, level int) []Path {
	code := g.nodes[node]
	weight := weights[code]
	self := PathNode{
		ItemCode:       code,
		Weight:         weight,
		CumulativeTime: weight,
		Level:          level,
	}

	if len(g.out[node]) == 0 {
		return []Path{{
			TotalWeight: weight,
			PathLength:  1,
			Items:       []entities.ItemCode{code},
			Details:     []PathNode{self},
			Bottleneck:  code,
		}}
	}

	var result []Path
	for _, succ := range g.out[node] {
		for _, childPath := range findPaths(g, succ, weights, level+1) {
			self.CumulativeTime = weight + childPath.TotalWeight

			bottleneck := code
			if weight < weightOf(childPath.Bottleneck, childPath.Details) {
				bottleneck = childPath.Bottleneck
			}

			result = append(result, Path{
				TotalWeight: weight + childPath.TotalWeight,
				PathLength:  1 + childPath.PathLength,
				Items:       append([]entities.ItemCode{code}, childPath.Items...),
				Details:     append([]PathNode{self}, childPath.Details...),
				Bottleneck:  bottleneck,
			})
		}
	}
	return result
}

// sortPaths orders paths longest first, with deterministic tie-breaking
func sortPaths(paths []Path) {
	sort.Slice(paths, func(i, j int) bool {
		if paths[i].TotalWeight != paths[j].TotalWeight {
			return paths[i].TotalWeight > paths[j].TotalWeight
		}
		if paths[i].PathLength != paths[j].PathLength {
			return paths[i].PathLength > paths[j].PathLength
		}
		return lessItems(paths[i].Items, paths[j].Items)
	})
}

func lessItems(a, b []entities.ItemCode) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func weightOf(code entities.ItemCode, details []PathNode) int {
	for _, n := range details {
		if n.ItemCode == code {
			return n.Weight
		}
	}
	return 0
}
