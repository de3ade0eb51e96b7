package integrator

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestIntegrator(t *testing.T) *Rosenbrock23 {
	t.Helper()
	r, err := NewRosenbrock23(DefaultConfig())
	require.NoError(t, err)
	return r
}

func TestRosenbrockStiffLinearProblem(t *testing.T) {
	// y1 relaxes onto cos(t) with rate 1000, y2 decays slowly.
	f := func(tm float64, y, dst []float64) {
		dst[0] = -1000*(y[0]-math.Cos(tm)) - math.Sin(tm)
		dst[1] = -0.5 * y[1]
	}
	times := make([]float64, 51)
	for i := range times {
		times[i] = 0.1 * float64(i)
	}

	sol, err := newTestIntegrator(t).Integrate(context.Background(), f, []float64{1, 1}, times)
	require.NoError(t, err)
	require.Len(t, sol.States, len(times))
	for i, tm := range times {
		require.InDelta(t, math.Cos(tm), sol.States[i][0], 1e-5)
		require.InDelta(t, math.Exp(-0.5*tm), sol.States[i][1], 1e-5)
	}
	require.Positive(t, sol.Stats.Steps)
	require.Equal(t, sol.Stats.Steps, sol.Stats.Jacobians)
}

func TestRosenbrockFirstOutputIsInitialState(t *testing.T) {
	y0 := []float64{2, 3}
	f := func(_ float64, y, dst []float64) {
		dst[0] = -y[0]
		dst[1] = 0
	}
	sol, err := newTestIntegrator(t).Integrate(context.Background(), f, y0, []float64{-1, 0, 1})
	require.NoError(t, err)
	require.Equal(t, y0, sol.States[0])
	require.InDelta(t, 2*math.Exp(-2), sol.States[2][0], 1e-5)
	require.Equal(t, 3.0, sol.States[2][1])

	y0[0] = 100
	require.Equal(t, 2.0, sol.States[0][0])
}

func TestRosenbrockGlobalErrorTracksTolerance(t *testing.T) {
	f := func(_ float64, y, dst []float64) {
		dst[0] = -y[0]
	}
	want := 2 * math.Exp(-2)

	loose := DefaultConfig()
	loose.RelTol = 1e-6
	errs := make([]float64, 0, 2)
	for _, cfg := range []Config{loose, DefaultConfig()} {
		r, err := NewRosenbrock23(cfg)
		require.NoError(t, err)
		sol, err := r.Integrate(context.Background(), f, []float64{2}, []float64{-1, 0, 1})
		require.NoError(t, err)

		rel := math.Abs(sol.States[2][0]-want) / want
		require.Lessf(t, rel, 500*cfg.RelTol, "rel_tol=%g", cfg.RelTol)
		errs = append(errs, rel)
	}
	require.Less(t, errs[1], errs[0]/10)
}

func TestRosenbrockBlowUpDiverges(t *testing.T) {
	f := func(_ float64, y, dst []float64) {
		dst[0] = y[0] * y[0]
	}
	_, err := newTestIntegrator(t).Integrate(context.Background(), f, []float64{1}, []float64{0, 2})
	var diverged *SimulationDivergedError
	require.ErrorAs(t, err, &diverged)
	require.Less(t, diverged.Time, 2.0)
}

func TestRosenbrockNonFiniteInitialState(t *testing.T) {
	f := func(_ float64, y, dst []float64) { dst[0] = 0 }
	_, err := newTestIntegrator(t).Integrate(context.Background(), f, []float64{math.NaN()}, []float64{0, 1})
	require.True(t, errors.Is(err, ErrNonFinite))
}

func TestRosenbrockRejectsBadTimes(t *testing.T) {
	f := func(_ float64, y, dst []float64) { dst[0] = 0 }
	r := newTestIntegrator(t)
	_, err := r.Integrate(context.Background(), f, []float64{0}, []float64{0, 1, 1})
	require.Error(t, err)
	_, err = r.Integrate(context.Background(), f, []float64{0}, nil)
	require.Error(t, err)
	_, err = r.Integrate(context.Background(), nil, []float64{0}, []float64{0, 1})
	require.Error(t, err)
}

func TestRosenbrockHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := func(_ float64, y, dst []float64) { dst[0] = -y[0] }
	_, err := newTestIntegrator(t).Integrate(ctx, f, []float64{1}, []float64{0, 1})
	require.ErrorIs(t, err, context.Canceled)
}

func TestStepBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSteps = 3
	r, err := NewRosenbrock23(cfg)
	require.NoError(t, err)
	f := func(tm float64, y, dst []float64) { dst[0] = math.Cos(50 * tm) }
	_, err = r.Integrate(context.Background(), f, []float64{0}, []float64{0, 100})
	require.ErrorIs(t, err, ErrStepBudget)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.RelTol = 0
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MinStep = 100
	require.Error(t, cfg.Validate())

	_, err := NewRosenbrock23(Config{})
	require.Error(t, err)
}
