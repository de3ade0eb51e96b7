// Package simulation runs the kinetic model over one or more time segments.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"ecoliccm/internal/integrator"
	"ecoliccm/internal/kinetics"
)

// Segment is one contiguous integration window. Override entries replace
// state components before the window starts (for example a glucose pulse).
type Segment struct {
	Start    float64            `json:"start" yaml:"start"`
	End      float64            `json:"end" yaml:"end"`
	Step     float64            `json:"step" yaml:"step"`
	Override map[string]float64 `json:"override,omitempty" yaml:"override,omitempty"`
}

// Grid returns Start + k*Step for k < ceil((End-Start)/Step). End itself is
// excluded.
func (s Segment) Grid() ([]float64, error) {
	return Grid(s.Start, s.End, s.Step)
}

// Grid returns the half-open sample grid [start, end) with the given step.
func Grid(start, end, step float64) ([]float64, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, errors.New("step must be > 0")
	}
	if !(end > start) {
		return nil, fmt.Errorf("segment end %g must be after start %g", end, start)
	}
	n := int(math.Ceil((end - start) / step))
	grid := make([]float64, n)
	for k := range grid {
		grid[k] = start + float64(k)*step
	}
	return grid, nil
}

// Trajectory is a time-ordered sequence of states. Segment boundaries are
// kept as produced, so a time may appear twice when adjacent segments both
// sample it.
type Trajectory struct {
	Times    []float64               `json:"times"`
	States   []kinetics.State        `json:"states"`
	Segments []integrator.Statistics `json:"segments,omitempty"`
}

func (t Trajectory) Len() int {
	return len(t.Times)
}

// Last returns the final state.
func (t Trajectory) Last() (kinetics.State, bool) {
	if len(t.States) == 0 {
		return kinetics.State{}, false
	}
	return t.States[len(t.States)-1], true
}

// Series returns one metabolite over time.
func (t Trajectory) Series(name string) ([]float64, error) {
	idx, ok := kinetics.StateIndex(name)
	if !ok {
		return nil, fmt.Errorf("unknown metabolite %q", name)
	}
	out := make([]float64, len(t.States))
	for i, s := range t.States {
		out[i] = s[idx]
	}
	return out, nil
}

// Fluxes evaluates the reaction rates at every sample.
func (t Trajectory) Fluxes(m kinetics.Model) []kinetics.Fluxes {
	out := make([]kinetics.Fluxes, len(t.States))
	for i, s := range t.States {
		out[i] = m.Fluxes(t.Times[i], s)
	}
	return out
}

// Driver integrates a model segment by segment.
type Driver struct {
	Integrator integrator.Integrator
	Logger     logrus.FieldLogger
}

// NewDriver builds a driver backed by the Rosenbrock integrator.
func NewDriver(cfg integrator.Config, logger logrus.FieldLogger) (*Driver, error) {
	ig, err := integrator.NewRosenbrock23(cfg)
	if err != nil {
		return nil, err
	}
	return &Driver{Integrator: ig, Logger: logger}, nil
}

func (d *Driver) logger() logrus.FieldLogger {
	if d.Logger != nil {
		return d.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Simulate integrates m from initial across segments. Each segment after the
// first starts from the last sample of the previous one.
func (d *Driver) Simulate(ctx context.Context, m kinetics.Model, initial kinetics.State, segments []Segment) (Trajectory, error) {
	if d == nil || d.Integrator == nil {
		return Trajectory{}, errors.New("integrator is required")
	}
	if len(segments) == 0 {
		return Trajectory{}, errors.New("at least one segment is required")
	}
	log := d.logger()

	var traj Trajectory
	current := initial
	for i, seg := range segments {
		grid, err := seg.Grid()
		if err != nil {
			return Trajectory{}, fmt.Errorf("segment %d: %w", i, err)
		}
		for name, v := range seg.Override {
			current, err = current.With(name, v)
			if err != nil {
				return Trajectory{}, fmt.Errorf("segment %d override: %w", i, err)
			}
		}

		sol, err := d.Integrator.Integrate(ctx, m.RHS, current[:], grid)
		if err != nil {
			return Trajectory{}, fmt.Errorf("segment %d [%g, %g): %w", i, seg.Start, seg.End, err)
		}
		for k, y := range sol.States {
			var s kinetics.State
			copy(s[:], y)
			traj.Times = append(traj.Times, sol.Times[k])
			traj.States = append(traj.States, s)
		}
		traj.Segments = append(traj.Segments, sol.Stats)
		current, _ = traj.Last()

		log.WithFields(logrus.Fields{
			"segment":     i,
			"start":       seg.Start,
			"end":         seg.End,
			"samples":     len(grid),
			"steps":       sol.Stats.Steps,
			"rejected":    sol.Stats.Rejected,
			"evaluations": sol.Stats.Evaluations,
		}).Debug("segment integrated")
	}
	return traj, nil
}
