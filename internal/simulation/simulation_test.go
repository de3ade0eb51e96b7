package simulation

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"ecoliccm/internal/integrator"
	"ecoliccm/internal/kinetics"
)

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	d, err := NewDriver(integrator.DefaultConfig(), nil)
	require.NoError(t, err)
	return d
}

func TestGridExcludesEnd(t *testing.T) {
	grid, err := Grid(0, 303, 0.05)
	require.NoError(t, err)
	require.Len(t, grid, 6060)
	require.Equal(t, 0.0, grid[0])
	require.InDelta(t, 302.95, grid[len(grid)-1], 1e-9)

	grid, err = Grid(-50, 0, 0.1)
	require.NoError(t, err)
	require.Len(t, grid, 500)
	require.Less(t, grid[len(grid)-1], 0.0)

	_, err = Grid(0, 1, 0)
	require.Error(t, err)
	_, err = Grid(1, 1, 0.1)
	require.Error(t, err)
}

func TestSteadyStateFromPublishedState(t *testing.T) {
	m := kinetics.BaselineModel()
	report, err := SteadyState(context.Background(), newTestDriver(t), m, kinetics.PublishedInitialState(), 0)
	require.NoError(t, err)
	require.Equal(t, 500, report.Samples)
	require.Less(t, report.FirstNorm, DefaultSteadyStateThreshold)
	require.Less(t, report.LastNorm, DefaultSteadyStateThreshold)
	require.True(t, report.Reached)

	published := kinetics.PublishedInitialState()
	for i := range published {
		require.InDelta(t, published[i], report.Final[i], 1e-6)
	}
}

func TestSteadyStateFlagsDisplacedState(t *testing.T) {
	m := kinetics.BaselineModel()
	s, err := kinetics.PublishedInitialState().With("pgp", 0.012)
	require.NoError(t, err)
	report, err := SteadyState(context.Background(), newTestDriver(t), m, s, 0)
	require.NoError(t, err)
	require.Greater(t, report.FirstNorm, DefaultSteadyStateThreshold)
	require.Less(t, report.LastNorm, report.FirstNorm)
}

func TestSimulateConcatenatesSegments(t *testing.T) {
	m := kinetics.BaselineModel()
	segments := []Segment{
		{Start: -1, End: 0, Step: 0.5},
		{Start: 0, End: 1, Step: 0.5, Override: map[string]float64{"cglcex": 2}},
	}
	traj, err := newTestDriver(t).Simulate(context.Background(), m, kinetics.PublishedInitialState(), segments)
	require.NoError(t, err)
	require.Equal(t, []float64{-1, -0.5, 0, 0.5}, traj.Times)
	require.Len(t, traj.Segments, 2)
	require.Equal(t, 2.0, traj.States[2][kinetics.GLCEX])
	require.Less(t, traj.States[1][kinetics.GLCEX], 0.06)

	glc, err := traj.Series("glcex")
	require.NoError(t, err)
	require.Len(t, glc, 4)
	_, err = traj.Series("atp")
	require.Error(t, err)
}

func TestSimulateKeepsDuplicateBoundarySamples(t *testing.T) {
	m := kinetics.BaselineModel().Unperturbed()
	segments := []Segment{
		{Start: 0, End: 1.5, Step: 0.5},
		{Start: 1, End: 2, Step: 0.5},
	}
	traj, err := newTestDriver(t).Simulate(context.Background(), m, kinetics.PublishedInitialState(), segments)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0.5, 1, 1, 1.5}, traj.Times)
}

func TestSimulateValidation(t *testing.T) {
	d := newTestDriver(t)
	m := kinetics.BaselineModel()
	_, err := d.Simulate(context.Background(), m, kinetics.PublishedInitialState(), nil)
	require.Error(t, err)

	_, err = d.Simulate(context.Background(), m, kinetics.PublishedInitialState(), []Segment{
		{Start: 0, End: 1, Step: 0.5, Override: map[string]float64{"atp": 1}},
	})
	require.Error(t, err)
}

func TestSimulateSurfacesDivergence(t *testing.T) {
	m := kinetics.BaselineModel()
	s := kinetics.PublishedInitialState()
	s[kinetics.PYR] = math.NaN()
	_, err := newTestDriver(t).Simulate(context.Background(), m, s, []Segment{{Start: 0, End: 1, Step: 0.5}})
	var diverged *integrator.SimulationDivergedError
	require.True(t, errors.As(err, &diverged))
}

// Reference pulse response: t, glcex, pyr, pep, g6p, fdp, vPDH.
var pulseReference = [][7]float64{
	{0, 2.000000, 2.669000, 2.824000, 3.307000, 0.334000, 0.188134},
	{1, 1.969335, 4.195228, 1.998963, 4.419566, 0.566929, 0.877272},
	{2, 1.954719, 4.370670, 2.037329, 4.583444, 0.654226, 0.996591},
	{5, 1.918371, 4.306115, 2.543820, 5.084555, 0.491375, 0.951812},
	{10, 1.865950, 4.164688, 3.154616, 5.511524, 0.647260, 0.857286},
	{20, 1.767685, 4.060422, 1.935343, 4.931846, 1.900892, 0.790864},
	{50, 1.426128, 4.282539, 1.126908, 3.739751, 1.620151, 0.935709},
	{100, 0.876336, 4.113805, 1.158828, 3.488276, 1.521030, 0.824517},
	{200, 0.197023, 3.352333, 2.194723, 3.572744, 0.999851, 0.418264},
	{300, 0.058541, 2.746299, 3.284585, 3.640689, 0.471690, 0.208261},
}

func TestGlucosePulseMatchesReference(t *testing.T) {
	m := kinetics.BaselineModel()
	res, err := GlucosePulse(context.Background(), newTestDriver(t), m, kinetics.PublishedInitialState(), DefaultPulseOptions())
	require.NoError(t, err)
	require.Equal(t, 100+3500, res.Trajectory.Len())
	require.Len(t, res.Fluxes, res.Trajectory.Len())

	const offset = 100
	for _, row := range pulseReference {
		k := offset + int(math.Round(row[0]/0.1))
		require.InDelta(t, row[0], res.Trajectory.Times[k], 1e-9)
		s := res.Trajectory.States[k]
		require.InEpsilonf(t, row[1], s[kinetics.GLCEX], 5e-3, "glcex at t=%g", row[0])
		require.InEpsilonf(t, row[2], s[kinetics.PYR], 5e-3, "pyr at t=%g", row[0])
		require.InEpsilonf(t, row[3], s[kinetics.PEP], 5e-3, "pep at t=%g", row[0])
		require.InEpsilonf(t, row[4], s[kinetics.G6P], 5e-3, "g6p at t=%g", row[0])
		require.InEpsilonf(t, row[5], s[kinetics.FDP], 5e-3, "fdp at t=%g", row[0])
		require.InEpsilonf(t, row[6], res.Fluxes[k].PDH, 5e-3, "vPDH at t=%g", row[0])
	}
}

func TestGlucosePulseTransientThenRelaxation(t *testing.T) {
	m := kinetics.BaselineModel()
	res, err := GlucosePulse(context.Background(), newTestDriver(t), m, kinetics.PublishedInitialState(), DefaultPulseOptions())
	require.NoError(t, err)

	const offset = 100
	before := res.Fluxes[offset].PDH
	peak, peakAt := 0.0, 0.0
	for k := offset; k < len(res.Fluxes); k++ {
		if res.Fluxes[k].PDH > peak {
			peak, peakAt = res.Fluxes[k].PDH, res.Trajectory.Times[k]
		}
	}
	final := res.Fluxes[len(res.Fluxes)-1].PDH

	require.Greater(t, peak, 4*before)
	require.Less(t, peakAt, 10.0)
	require.Less(t, final, 0.3)
	require.Less(t, final, peak/3)
}

func TestPulseOptionsValidation(t *testing.T) {
	opts := DefaultPulseOptions()
	opts.RelaxFrom = 1
	_, err := opts.Segments()
	require.Error(t, err)

	opts = DefaultPulseOptions()
	opts.Until = 0
	_, err = opts.Segments()
	require.Error(t, err)
}
