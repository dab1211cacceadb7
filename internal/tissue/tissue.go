// Package tissue owns the ordered fiber collection and the per-tick network
// update: global drive distribution, local diffusion coupling and the
// aggregate force readout.
package tissue

import (
	"github.com/san-kum/fibersim/internal/muscle"
)

// Tissue is a fixed-size fiber network. Fibers are created once at
// construction and addressed by index; none are added or removed afterward.
type Tissue struct {
	muscles          []*muscle.Muscle
	globalActivation float64
	couplingStrength float64
}

// Result is the aggregate readout of one network update.
type Result struct {
	AverageForce float64
	TotalForce   float64
	Forces       []float64
	Snapshots    []muscle.Snapshot
}

func New(numMuscles int, couplingStrength float64, params muscle.Params) *Tissue {
	t := &Tissue{
		muscles:          make([]*muscle.Muscle, numMuscles),
		couplingStrength: couplingStrength,
	}
	for i := range t.muscles {
		t.muscles[i] = muscle.New(params)
	}
	return t
}

func (t *Tissue) Len() int                  { return len(t.muscles) }
func (t *Tissue) GlobalActivation() float64 { return t.globalActivation }
func (t *Tissue) Coupling() float64         { return t.couplingStrength }

// Muscle returns the fiber at index i, or nil when out of range.
func (t *Tissue) Muscle(i int) *muscle.Muscle {
	if i < 0 || i >= len(t.muscles) {
		return nil
	}
	return t.muscles[i]
}

// Force reports the current force of fiber i; out-of-range reads yield 0.
func (t *Tissue) Force(i int) float64 {
	if m := t.Muscle(i); m != nil {
		return m.Force()
	}
	return 0
}

// PumpEnergy injects energy into fiber i. Out-of-range indexes are a
// silent no-op.
func (t *Tissue) PumpEnergy(i int, amount float64) {
	if m := t.Muscle(i); m != nil {
		m.PumpEnergy(amount)
	}
}

// PumpEnergyToAll broadcasts the same energy boost to every fiber.
func (t *Tissue) PumpEnergyToAll(amount float64) {
	for _, m := range t.muscles {
		m.PumpEnergy(amount)
	}
}

// SetActivation stores a clamped global drive and pushes it to every fiber
// at 80%, the voluntary-control loss of the network abstraction.
func (t *Tissue) SetActivation(level float64) {
	t.globalActivation = clamp01(level)
	for _, m := range t.muscles {
		m.SetActivation(t.globalActivation * 0.8)
	}
}

// Stimulate broadcasts a calcium release scaled by the global drive.
func (t *Tissue) Stimulate(intensity float64) {
	for _, m := range t.muscles {
		m.ReleaseCalcium(intensity * t.globalActivation)
	}
}

// localCoupling nudges each fiber's activation toward its neighbors' force
// level. All adjustments are computed from the same force snapshot before
// any activation is written, so the pass is order-independent. Neighborhood
// is the 1-D chain: immediate predecessor and successor, edges one-sided.
func (t *Tissue) localCoupling() {
	forces := make([]float64, len(t.muscles))
	for i, m := range t.muscles {
		forces[i] = m.Force()
	}

	newActivations := make([]float64, len(t.muscles))
	for i, m := range t.muscles {
		var left, right float64
		if i > 0 {
			left = forces[i-1]
		}
		if i < len(forces)-1 {
			right = forces[i+1]
		}
		influence := (left + right) * 0.5
		adjustment := (influence - m.Force()) * t.couplingStrength
		newActivations[i] = clamp01(m.Activation() + adjustment)
	}

	for i, m := range t.muscles {
		m.SetActivation(newActivations[i])
	}
}

// UpdateNetwork runs one tick: the coupling pass, then every fiber's own
// update in sequence order. Fibers advance on their own activation, which
// the coupling pass has just adjusted.
func (t *Tissue) UpdateNetwork() Result {
	t.localCoupling()

	res := Result{
		Forces:    make([]float64, len(t.muscles)),
		Snapshots: make([]muscle.Snapshot, len(t.muscles)),
	}
	for i, m := range t.muscles {
		snap := m.UpdateSelf()
		res.Forces[i] = snap.Force
		res.Snapshots[i] = snap
		res.TotalForce += snap.Force
	}
	if len(t.muscles) > 0 {
		res.AverageForce = res.TotalForce / float64(len(t.muscles))
	}
	return res
}

// Snapshots returns the current per-fiber state without advancing the tick.
func (t *Tissue) Snapshots() []muscle.Snapshot {
	out := make([]muscle.Snapshot, len(t.muscles))
	for i, m := range t.muscles {
		out[i] = m.Snapshot()
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
