package simulation

import (
	"context"
	"errors"

	"gonum.org/v1/gonum/floats"

	"ecoliccm/internal/kinetics"
)

// DefaultSteadyStateThreshold bounds the Euclidean norm of ds/dt (mM/s) for a
// state to count as steady.
const DefaultSteadyStateThreshold = 1e-3

// SteadyStateReport summarizes a pre-pulse relaxation run.
type SteadyStateReport struct {
	FirstNorm float64        `json:"first_norm"`
	LastNorm  float64        `json:"last_norm"`
	Final     kinetics.State `json:"final"`
	Reached   bool           `json:"reached"`
	Samples   int            `json:"samples"`
}

// SteadyState integrates s over [-50, 0) with step 0.1, where the cofactors
// sit at baseline, and compares the derivative norms at the first and last
// samples against threshold.
func SteadyState(ctx context.Context, d *Driver, m kinetics.Model, s kinetics.State, threshold float64) (SteadyStateReport, error) {
	if threshold <= 0 {
		threshold = DefaultSteadyStateThreshold
	}
	traj, err := d.Simulate(ctx, m, s, []Segment{{Start: -50, End: 0, Step: 0.1}})
	if err != nil {
		return SteadyStateReport{}, err
	}
	first := m.Derivatives(traj.Times[0], traj.States[0])
	lastIdx := traj.Len() - 1
	final := traj.States[lastIdx]
	last := m.Derivatives(traj.Times[lastIdx], final)

	report := SteadyStateReport{
		FirstNorm: floats.Norm(first[:], 2),
		LastNorm:  floats.Norm(last[:], 2),
		Final:     final,
		Samples:   traj.Len(),
	}
	report.Reached = report.LastNorm < threshold
	return report, nil
}

// PulseOptions configures the glucose pulse experiment.
type PulseOptions struct {
	Glucose   float64 `json:"glucose" yaml:"glucose"`
	RelaxFrom float64 `json:"relax_from" yaml:"relax_from"`
	Until     float64 `json:"until" yaml:"until"`
	Step      float64 `json:"step" yaml:"step"`
}

func DefaultPulseOptions() PulseOptions {
	return PulseOptions{
		Glucose:   kinetics.PulseGlucose,
		RelaxFrom: -10,
		Until:     350,
		Step:      0.1,
	}
}

// Segments lays out the relaxation window followed by the pulse window.
func (o PulseOptions) Segments() ([]Segment, error) {
	if o.RelaxFrom >= 0 {
		return nil, errors.New("relax_from must be < 0")
	}
	if o.Until <= 0 {
		return nil, errors.New("until must be > 0")
	}
	if o.Glucose < 0 {
		return nil, errors.New("glucose must be >= 0")
	}
	return []Segment{
		{Start: o.RelaxFrom, End: 0, Step: o.Step},
		{Start: 0, End: o.Until, Step: o.Step, Override: map[string]float64{"glcex": o.Glucose}},
	}, nil
}

// PulseResult is the trajectory of a glucose pulse and the fluxes along it.
type PulseResult struct {
	Trajectory Trajectory        `json:"trajectory"`
	Fluxes     []kinetics.Fluxes `json:"fluxes"`
}

// GlucosePulse relaxes s before t = 0, raises extracellular glucose and
// follows the response.
func GlucosePulse(ctx context.Context, d *Driver, m kinetics.Model, s kinetics.State, opts PulseOptions) (PulseResult, error) {
	segments, err := opts.Segments()
	if err != nil {
		return PulseResult{}, err
	}
	traj, err := d.Simulate(ctx, m, s, segments)
	if err != nil {
		return PulseResult{}, err
	}
	return PulseResult{Trajectory: traj, Fluxes: traj.Fluxes(m)}, nil
}
