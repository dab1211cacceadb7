// Package propagate distributes injected energy across the fiber graph:
// breadth-first with geometric depth decay, realtime ceiling top-up, or
// layout-distance falloff.
package propagate

import (
	"math"

	"github.com/san-kum/fibersim/internal/graph"
)

// Network is the tissue surface the propagator drives. Implementations
// must treat out-of-range indexes as silent no-ops.
type Network interface {
	PumpEnergy(index int, amount float64)
	Force(index int) float64
}

// Propagator walks a fixed graph; it holds no per-run state, so one value
// serves any number of traversals.
type Propagator struct {
	g *graph.Graph
}

func New(g *graph.Graph) *Propagator {
	return &Propagator{g: g}
}

// Index maps a node id through the underlying graph.
func (p *Propagator) Index(id rune) (int, bool) {
	return p.g.IndexOf(id)
}

type queueItem struct {
	id    rune
	depth int
}

// ByNeighbors propagates from source outward, pumping each newly reached
// node once with baseForce*cap^depth (depth 1 at direct neighbors). A
// branch stops expanding when its next-depth amount falls below threshold.
// Unknown sources are a no-op; the source itself is never pumped.
func (p *Propagator) ByNeighbors(net Network, source rune, baseForce, capPercentage, threshold float64) {
	if _, ok := p.g.IndexOf(source); !ok {
		return
	}

	visited := map[rune]bool{source: true}
	queue := []queueItem{{source, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		propagated := baseForce * math.Pow(capPercentage, float64(cur.depth+1))
		if propagated < threshold {
			continue
		}

		for _, nb := range p.g.Neighbors(cur.id) {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			if idx, ok := p.g.IndexOf(nb); ok {
				net.PumpEnergy(idx, propagated)
			}
			queue = append(queue, queueItem{nb, cur.depth + 1})
		}
	}
}

// ByNeighborsRealtime tops every reachable node up to the depth ceiling
// centerForce*cap^depth. Nodes already at or above their ceiling receive
// nothing, so no force ever decreases. The whole reachable graph is
// visited; the finite node set and the visited set bound the walk.
func (p *Propagator) ByNeighborsRealtime(net Network, source rune, centerForce, capPercentage float64) {
	if _, ok := p.g.IndexOf(source); !ok {
		return
	}

	visited := map[rune]bool{source: true}
	queue := []queueItem{{source, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		target := centerForce * math.Pow(capPercentage, float64(cur.depth+1))

		for _, nb := range p.g.Neighbors(cur.id) {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			if idx, ok := p.g.IndexOf(nb); ok {
				if current := net.Force(idx); current < target {
					net.PumpEnergy(idx, target-current)
				}
			}
			queue = append(queue, queueItem{nb, cur.depth + 1})
		}
	}
}

// ByDistance pumps every other positioned node with baseForce/(1+d)*damping,
// where d is the Euclidean layout distance to the source. Graph topology
// is ignored; only the layout matters.
func (p *Propagator) ByDistance(net Network, source rune, baseForce, damping float64) {
	if _, ok := p.g.Position(source); !ok {
		return
	}

	for _, id := range p.g.Order() {
		if id == source {
			continue
		}
		d, ok := p.g.Distance(source, id)
		if !ok {
			continue
		}
		if idx, ok := p.g.IndexOf(id); ok {
			net.PumpEnergy(idx, baseForce/(1+d)*damping)
		}
	}
}
