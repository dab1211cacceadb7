// Package sim runs the tick loop: scheduled stimulus events in, drive level
// applied, tissue stimulated and updated, aggregate snapshots out.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/fibersim/internal/drive"
	"github.com/san-kum/fibersim/internal/propagate"
	"github.com/san-kum/fibersim/internal/tissue"
)

// Runner owns a tissue for the duration of a run. Everything is
// synchronous and single-owner; one tick fully completes before the next.
type Runner struct {
	tis       *tissue.Tissue
	prop      *propagate.Propagator
	driver    drive.Driver
	metrics   []Metric
	observers []Observer
	events    []Event
}

func New(tis *tissue.Tissue, prop *propagate.Propagator, driver drive.Driver) *Runner {
	return &Runner{
		tis:    tis,
		prop:   prop,
		driver: driver,
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Schedule queues a stimulus event for its tick. Events scheduled outside
// the run window simply never fire.
func (r *Runner) Schedule(ev Event) { r.events = append(r.events, ev) }

// Tissue exposes the underlying network for read-back between runs.
func (r *Runner) Tissue() *tissue.Tissue { return r.tis }

func (r *Runner) validate(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.CapPercentage < 0 || cfg.CapPercentage > 1 {
		return fmt.Errorf("cap percentage must be in [0,1], got %f", cfg.CapPercentage)
	}
	return nil
}

// Run executes cfg.Ticks ticks. Per tick: fire due events (pump source,
// then cap-propagate the same amount), apply the drive level, stimulate,
// then update the network. The context aborts between ticks.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := r.validate(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Times:    make([]float64, 0, cfg.Ticks),
		Averages: make([]float64, 0, cfg.Ticks),
		Totals:   make([]float64, 0, cfg.Ticks),
		Forces:   make([][]float64, 0, cfg.Ticks),
		Metrics:  make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	for tick := 0; tick < cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(tick) * cfg.Dt

		for _, ev := range r.events {
			if ev.Tick != tick {
				continue
			}
			r.fire(ev, cfg)
		}

		r.tis.SetActivation(r.driver.Level(t))
		r.tis.Stimulate(cfg.Intensity)
		res := r.tis.UpdateNetwork()

		for _, m := range r.metrics {
			m.Observe(res, t)
		}
		for _, obs := range r.observers {
			obs.OnTick(res, t)
		}

		forces := make([]float64, len(res.Forces))
		copy(forces, res.Forces)

		result.Times = append(result.Times, t)
		result.Averages = append(result.Averages, res.AverageForce)
		result.Totals = append(result.Totals, res.TotalForce)
		result.Forces = append(result.Forces, forces)
		result.TicksRun++
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// fire pumps the event's node at full amount and spreads the same amount
// across the neighborhood with the configured cap and threshold. Unknown
// nodes are dropped silently.
func (r *Runner) fire(ev Event, cfg Config) {
	idx, ok := r.prop.Index(ev.Node)
	if !ok {
		return
	}
	r.tis.PumpEnergy(idx, ev.Amount)
	r.prop.ByNeighbors(r.tis, ev.Node, ev.Amount, cfg.CapPercentage, cfg.ForceThreshold)
}
