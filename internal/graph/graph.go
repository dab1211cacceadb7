// Package graph holds the static fiber network topology: which node touches
// which, and where each node sits on the 2D layout. It is configuration
// data, never mutated by the simulation.
package graph

import (
	"fmt"
	"math"
)

// Point is a 2D layout position in key-grid units.
type Point struct {
	X float64
	Y float64
}

// Graph is an immutable adjacency map over single-letter node ids plus a
// parallel position map. Lookups of unknown ids yield no neighbors.
type Graph struct {
	order     []rune
	index     map[rune]int
	neighbors map[rune][]rune
	positions map[rune]Point
}

// New builds a graph from an ordered id string, a neighbor table and a
// layout. Neighbor entries must reference declared ids.
func New(order string, neighbors map[string][]string, positions map[string]Point) (*Graph, error) {
	g := &Graph{
		order:     []rune(order),
		index:     make(map[rune]int, len(order)),
		neighbors: make(map[rune][]rune, len(order)),
		positions: make(map[rune]Point, len(order)),
	}

	for i, r := range g.order {
		if _, ok := g.index[r]; ok {
			return nil, fmt.Errorf("duplicate node id %q", r)
		}
		g.index[r] = i
	}

	for id, nbs := range neighbors {
		r, err := singleRune(id)
		if err != nil {
			return nil, err
		}
		if _, ok := g.index[r]; !ok {
			return nil, fmt.Errorf("neighbor table references unknown node %q", r)
		}
		list := make([]rune, 0, len(nbs))
		for _, nb := range nbs {
			nr, err := singleRune(nb)
			if err != nil {
				return nil, err
			}
			if _, ok := g.index[nr]; !ok {
				return nil, fmt.Errorf("node %q lists unknown neighbor %q", r, nr)
			}
			list = append(list, nr)
		}
		g.neighbors[r] = list
	}

	for id, pos := range positions {
		r, err := singleRune(id)
		if err != nil {
			return nil, err
		}
		if _, ok := g.index[r]; !ok {
			return nil, fmt.Errorf("position table references unknown node %q", r)
		}
		g.positions[r] = pos
	}

	return g, nil
}

func singleRune(id string) (rune, error) {
	rs := []rune(id)
	if len(rs) != 1 {
		return 0, fmt.Errorf("node id %q must be a single letter", id)
	}
	return rs[0], nil
}

// Len reports the node count.
func (g *Graph) Len() int { return len(g.order) }

// Order returns the node ids in index order.
func (g *Graph) Order() []rune {
	out := make([]rune, len(g.order))
	copy(out, g.order)
	return out
}

// IndexOf maps a node id to its position in the ordered collection.
func (g *Graph) IndexOf(id rune) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Letter maps an index back to its node id.
func (g *Graph) Letter(i int) (rune, bool) {
	if i < 0 || i >= len(g.order) {
		return 0, false
	}
	return g.order[i], true
}

// Neighbors returns the neighbor ids of a node. Unknown ids return nil.
func (g *Graph) Neighbors(id rune) []rune {
	return g.neighbors[id]
}

// Position returns the layout position of a node.
func (g *Graph) Position(id rune) (Point, bool) {
	p, ok := g.positions[id]
	return p, ok
}

// Distance is the Euclidean layout distance between two nodes; ok is false
// when either node has no position.
func (g *Graph) Distance(a, b rune) (float64, bool) {
	pa, okA := g.positions[a]
	pb, okB := g.positions[b]
	if !okA || !okB {
		return 0, false
	}
	dx := pb.X - pa.X
	dy := pb.Y - pa.Y
	return math.Sqrt(dx*dx + dy*dy), true
}
