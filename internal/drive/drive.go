// Package drive provides autonomous activation signals fed into the tissue
// each tick, in place of (or on top of) interactive input.
package drive

import (
	"math"
	"math/rand"
)

// Driver produces the global drive level for a given simulation time.
// Levels are expected in [0,1]; implementations clamp their own output.
type Driver interface {
	Name() string
	Level(t float64) float64
}

// None keeps the network at zero drive.
type None struct{}

func NewNone() *None { return &None{} }

func (*None) Name() string          { return "none" }
func (*None) Level(float64) float64 { return 0 }

// Breathing is a slow sinusoidal drive, the autonomous "resting breath"
// of the network.
type Breathing struct {
	Amplitude float64
	Period    float64
}

func NewBreathing(amplitude, period float64) *Breathing {
	if period <= 0 {
		period = 10.0
	}
	return &Breathing{Amplitude: amplitude, Period: period}
}

func (*Breathing) Name() string { return "breathing" }

func (b *Breathing) Level(t float64) float64 {
	level := b.Amplitude * (0.5 + 0.5*math.Sin(2*math.Pi*t/b.Period))
	return clamp01(level)
}

// Spasm fires random full-drive bursts from a seeded source, so runs with
// the same seed replay the same burst pattern.
type Spasm struct {
	Probability float64
	Burst       float64
	rng         *rand.Rand
}

func NewSpasm(seed int64, probability, burst float64) *Spasm {
	return &Spasm{
		Probability: probability,
		Burst:       burst,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (*Spasm) Name() string { return "spasm" }

func (s *Spasm) Level(float64) float64 {
	if s.rng.Float64() < s.Probability {
		return clamp01(s.Burst)
	}
	return 0
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
