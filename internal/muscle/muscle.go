package muscle

import "math"

// Params holds the fixed per-fiber constants set at construction.
type Params struct {
	RestingForce     float64
	MaxForce         float64
	FatigueRate      float64
	RegenerationRate float64
	ActinLength      int
	MyosinHeads      int
}

func DefaultParams() Params {
	return Params{
		RestingForce:     0.2,
		MaxForce:         1.0,
		FatigueRate:      0.1,
		RegenerationRate: 0.002,
		ActinLength:      100,
		MyosinHeads:      100,
	}
}

// Muscle is a single contractile node. Force is derived each tick from
// calcium, activation and available ATP; atp, calcium and damage stay in
// [0,1] and force never drops below the resting baseline.
type Muscle struct {
	params Params

	activation   float64
	force        float64
	fatigueLevel float64
	calcium      float64
	atp          float64
	damage       float64
	alive        bool

	// Sliding-filament buffer. Shifted during contraction, read nowhere
	// else; kept for the renderer-facing contraction distance.
	actin []float64
}

// Snapshot is the per-tick read-only view handed to renderers.
type Snapshot struct {
	Force      float64
	ATP        float64
	Calcium    float64
	Damage     float64
	Activation float64
	Alive      bool
}

func New(p Params) *Muscle {
	return &Muscle{
		params:       p,
		force:        p.RestingForce,
		fatigueLevel: 1.0,
		atp:          p.RestingForce,
		alive:        true,
		actin:        make([]float64, p.ActinLength),
	}
}

func (m *Muscle) Force() float64      { return m.force }
func (m *Muscle) ATP() float64        { return m.atp }
func (m *Muscle) Calcium() float64    { return m.calcium }
func (m *Muscle) Damage() float64     { return m.damage }
func (m *Muscle) Activation() float64 { return m.activation }
func (m *Muscle) Alive() bool         { return m.alive }
func (m *Muscle) Params() Params      { return m.params }

// SetActivation stores a drive level, clamped to [0,1].
func (m *Muscle) SetActivation(level float64) {
	m.activation = clamp01(level)
}

func (m *Muscle) Snapshot() Snapshot {
	return Snapshot{
		Force:      m.force,
		ATP:        m.atp,
		Calcium:    m.calcium,
		Damage:     m.damage,
		Activation: m.activation,
		Alive:      m.alive,
	}
}

// PumpEnergy injects external energy: ATP rises by amount and calcium by
// half of it, both capped at 1.0.
func (m *Muscle) PumpEnergy(amount float64) {
	m.atp = math.Min(1.0, m.atp+amount)
	m.calcium = math.Min(1.0, m.calcium+amount*0.5)
}

// ReleaseCalcium raises calcium toward a sinusoidally shaped target when the
// fiber has energy and drive; otherwise calcium decays toward zero.
func (m *Muscle) ReleaseCalcium(intensity float64) {
	if m.atp > 0.01 && m.activation > 0 {
		sinusoidal := math.Sin(intensity*math.Pi)/2 + 0.5
		m.calcium = clamp01(m.params.RestingForce + intensity*sinusoidal)
		return
	}
	if m.calcium > 0.02 {
		m.calcium -= math.Min(0.04, m.calcium*0.05)
	} else {
		m.calcium = math.Max(0.0, m.calcium-0.02)
	}
}

// activate forms cross-bridges and converts ATP into force. Bound head
// count truncates like the source rule, so force steps are discrete.
func (m *Muscle) activate() {
	heads := float64(m.params.MyosinHeads)
	bound := float64(int(math.Min(heads, (m.calcium+m.activation)*heads/2)))

	m.force = m.params.RestingForce + m.atp*bound*0.01

	consumed := math.Min(0.002, 0.4*m.params.FatigueRate) * bound
	m.atp = math.Max(0.0, m.atp-consumed)

	m.slideActin(int(bound * 0.2))
}

// fatigueUpdate drains ATP toward its working equilibrium and, when energy
// runs low, bleeds calcium down to a 0.1 floor.
func (m *Muscle) fatigueUpdate() {
	if m.atp < 1.0 {
		m.atp = math.Max(0.0, m.atp-math.Min(0.005, (1.0-m.atp)*0.01))
	}
	if m.atp <= 0.2 && m.calcium > 0.0 {
		reduction := math.Max(0.01, math.Min(0.05, (m.fatigueLevel-1)*0.01))
		m.calcium = math.Max(0.1, m.calcium-reduction)
	}
}

// regenerateATP restores energy only while the fiber sits exactly at
// resting force.
func (m *Muscle) regenerateATP() {
	if m.force == m.params.RestingForce && m.atp < 1.0 {
		m.atp = math.Min(1.0, m.atp+math.Min(0.03, (1.0-m.atp)*m.params.RegenerationRate))
	}
}

// checkDamage accumulates damage under overload or energy starvation and
// heals it slowly otherwise. Damage caps at 1.0 and never kills the fiber.
func (m *Muscle) checkDamage() {
	overload := m.force > m.params.MaxForce*1.2 && m.activation > 0.8
	if overload || m.atp < 0.05 {
		m.damage += 0.001
	} else {
		m.damage = math.Max(0.0, m.damage-0.0005)
	}
	m.damage = math.Min(m.damage, 1.0)
}

// Update advances one tick with an external drive level.
func (m *Muscle) Update(externalActivation float64) Snapshot {
	m.activation = clamp01(externalActivation)
	return m.step()
}

// UpdateSelf advances one tick using the fiber's own current activation,
// typically set beforehand by tissue coupling.
func (m *Muscle) UpdateSelf() Snapshot {
	return m.step()
}

func (m *Muscle) step() Snapshot {
	m.ReleaseCalcium(m.activation)
	m.fatigueUpdate()

	if m.atp > 0.01 {
		m.activate()
	} else {
		m.force = m.params.RestingForce
		m.calcium = math.Max(0.0, m.calcium-0.02)
	}

	m.regenerateATP()
	m.checkDamage()

	// Idle decay: with no drive, surplus energy drains toward the resting
	// floor and calcium toward zero.
	if m.activation == 0.0 {
		const decay = 0.05
		if m.atp > m.params.RestingForce {
			m.atp = math.Max(m.params.RestingForce, m.atp-decay)
		}
		if m.calcium > 0.0 {
			m.calcium = math.Max(0.0, m.calcium-decay*0.5)
		}
	}

	// Baseline tone: force never reports below resting.
	m.force = math.Max(m.force, m.params.RestingForce)
	return m.Snapshot()
}

// slideActin rotates the filament buffer left by shift positions.
func (m *Muscle) slideActin(shift int) {
	n := len(m.actin)
	if n == 0 {
		return
	}
	shift = ((shift % n) + n) % n
	if shift == 0 {
		return
	}
	rotated := make([]float64, 0, n)
	rotated = append(rotated, m.actin[shift:]...)
	rotated = append(rotated, m.actin[:shift]...)
	m.actin = rotated
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
