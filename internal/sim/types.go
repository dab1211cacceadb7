package sim

import "github.com/san-kum/fibersim/internal/tissue"

// Event is a discrete stimulus scheduled for a tick: pump the named node
// and propagate the same amount across its neighborhood.
type Event struct {
	Tick   int
	Node   rune
	Amount float64
}

// Config drives one headless run.
type Config struct {
	Ticks          int
	Dt             float64
	Intensity      float64
	CapPercentage  float64
	ForceThreshold float64
	Seed           int64
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(res tissue.Result, t float64)
	Value() float64
	Reset()
}

// Observer sees every tick result as it happens.
type Observer interface {
	OnTick(res tissue.Result, t float64)
}

// Result collects the per-tick aggregate series of a run.
type Result struct {
	Times    []float64
	Averages []float64
	Totals   []float64
	Forces   [][]float64
	Metrics  map[string]float64
	TicksRun int
}
