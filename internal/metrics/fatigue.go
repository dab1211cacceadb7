package metrics

import (
	"github.com/san-kum/fibersim/internal/tissue"
)

// FatigueIndex measures how depleted the network ran on average: the mean
// ATP deficit below full reserve across all fibers and ticks. 0 means the
// network never drew down its reserves; values near 1 mean sustained
// exhaustion.
type FatigueIndex struct {
	name    string
	sum     float64
	samples int
}

func NewFatigueIndex() *FatigueIndex {
	return &FatigueIndex{
		name: "fatigue_index",
	}
}

func (f *FatigueIndex) Name() string {
	return f.name
}

func (f *FatigueIndex) Observe(res tissue.Result, t float64) {
	for _, snap := range res.Snapshots {
		deficit := 1.0 - snap.ATP
		if deficit < 0 {
			deficit = 0
		}
		f.sum += deficit
		f.samples++
	}
}

func (f *FatigueIndex) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return f.sum / float64(f.samples)
}

func (f *FatigueIndex) Reset() {
	f.sum = 0
	f.samples = 0
}
