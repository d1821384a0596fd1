// Package graph implements the directed dependency graph over item codes used
// for critical-path reporting. Only the narrow subset the planner needs lives
// here: adjacency lists, topological ordering, and longest-path analysis.
package graph

import (
	"fmt"
	"sort"

	"github.com/planwise/procure/pkg/domain/entities"
)

// Graph is a directed graph over item codes with an adjacency-list
// representation. Nodes and edges are deduplicated on insert.
type Graph struct {
	nodes []entities.ItemCode
	index map[entities.ItemCode]int
	out   [][]int
	edges map[[2]int]bool
}

// New creates an empty graph
func New() *Graph {
	return &Graph{
		index: make(map[entities.ItemCode]int),
		edges: make(map[[2]int]bool),
	}
}

// AddNode adds a node if not already present and returns its index
func (g *Graph) AddNode(code entities.ItemCode) int {
	if idx, ok := g.index[code]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.index[code] = idx
	g.nodes = append(g.nodes, code)
	g.out = append(g.out, nil)
	return idx
}

// AddEdge adds a directed edge from -> to, creating nodes as needed
func (g *Graph) AddEdge(from, to entities.ItemCode) {
	f := g.AddNode(from)
	t := g.AddNode(to)
	key := [2]int{f, t}
	if g.edges[key] {
		return
	}
	g.edges[key] = true
	g.out[f] = append(g.out[f], t)
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns all node codes in insertion order
func (g *Graph) Nodes() []entities.ItemCode {
	return g.nodes
}

// Contains reports whether the code is a node of the graph
func (g *Graph) Contains(code entities.ItemCode) bool {
	_, ok := g.index[code]
	return ok
}

// Successors returns the direct successors of a node
func (g *Graph) Successors(code entities.ItemCode) []entities.ItemCode {
	idx, ok := g.index[code]
	if !ok {
		return nil
	}
	succ := make([]entities.ItemCode, 0, len(g.out[idx]))
	for _, t := range g.out[idx] {
		succ = append(succ, g.nodes[t])
	}
	return succ
}

// TopologicalSort returns a topological ordering of the nodes, or an error
// naming a node on a cycle. Ties are broken by item code so the ordering is
// deterministic.
func (g *Graph) TopologicalSort() ([]entities.ItemCode, error) {
	inDegree := make([]int, len(g.nodes))
	for _, targets := range g.out {
		for _, t := range targets {
			inDegree[t]++
		}
	}

	var ready []int
	for i, d := range inDegree {
		if d == 0 {
			ready = append(ready, i)
		}
	}
	g.sortByCode(ready)

	order := make([]entities.ItemCode, 0, len(g.nodes))
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		order = append(order, g.nodes[n])

		var unlocked []int
		for _, t := range g.out[n] {
			inDegree[t]--
			if inDegree[t] == 0 {
				unlocked = append(unlocked, t)
			}
		}
		g.sortByCode(unlocked)
		ready = append(ready, unlocked...)
		g.sortByCode(ready)
	}

	if len(order) != len(g.nodes) {
		for i, d := range inDegree {
			if d > 0 {
				return nil, fmt.Errorf("dependency cycle involving %s", g.nodes[i])
			}
		}
	}
	return order, nil
}

// sources returns indices of nodes with no incoming edges, sorted by code
func (g *Graph) sources() []int {
	inDegree := make([]int, len(g.nodes))
	for _, targets := range g.out {
		for _, t := range targets {
			inDegree[t]++
		}
	}
	var srcs []int
	for i, d := range inDegree {
		if d == 0 {
			srcs = append(srcs, i)
		}
	}
	g.sortByCode(srcs)
	return srcs
}

func (g *Graph) sortByCode(idxs []int) {
	sort.Slice(idxs, func(i, j int) bool {
		return g.nodes[idxs[i]] < g.nodes[idxs[j]]
	})
}
