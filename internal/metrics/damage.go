package metrics

import (
	"github.com/san-kum/fibersim/internal/tissue"
)

// DamageLoad tracks the worst accumulated damage seen on any fiber during
// the run.
type DamageLoad struct {
	name string
	peak float64
}

func NewDamageLoad() *DamageLoad {
	return &DamageLoad{
		name: "damage_load",
	}
}

func (d *DamageLoad) Name() string {
	return d.name
}

func (d *DamageLoad) Observe(res tissue.Result, t float64) {
	for _, snap := range res.Snapshots {
		if snap.Damage > d.peak {
			d.peak = snap.Damage
		}
	}
}

func (d *DamageLoad) Value() float64 {
	return d.peak
}

func (d *DamageLoad) Reset() {
	d.peak = 0
}
