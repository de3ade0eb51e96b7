// Package integrator solves initial value problems y' = f(t, y) and reports
// the solution at requested output times.
package integrator

import (
	"context"
	"errors"
)

// Func evaluates the right-hand side at (t, y) into dst. Implementations
// must not retain y or dst.
type Func func(t float64, y, dst []float64)

// Config controls step-size selection.
type Config struct {
	RelTol      float64 `json:"rel_tol" yaml:"rel_tol"`
	AbsTol      float64 `json:"abs_tol" yaml:"abs_tol"`
	InitialStep float64 `json:"initial_step" yaml:"initial_step"`
	MaxStep     float64 `json:"max_step" yaml:"max_step"`
	MinStep     float64 `json:"min_step" yaml:"min_step"`
	// MaxSteps bounds the accepted plus rejected steps of one Integrate call.
	MaxSteps int `json:"max_steps" yaml:"max_steps"`
	// MaxAbsState flags a solution whose magnitude exceeds it as diverged.
	MaxAbsState float64 `json:"max_abs_state" yaml:"max_abs_state"`
}

// DefaultConfig uses the LSODA relative tolerance of 1.49012e-8 (the square
// root of machine epsilon).
func DefaultConfig() Config {
	return Config{
		RelTol:      1.49012e-8,
		AbsTol:      1e-9,
		InitialStep: 1e-3,
		MaxStep:     10,
		MinStep:     1e-12,
		MaxSteps:    1_000_000,
		MaxAbsState: 1e9,
	}
}

func (c Config) Validate() error {
	if c.RelTol <= 0 || c.AbsTol <= 0 {
		return errors.New("tolerances must be > 0")
	}
	if c.InitialStep <= 0 {
		return errors.New("initial step must be > 0")
	}
	if c.MaxStep <= 0 || c.MinStep <= 0 || c.MinStep > c.MaxStep {
		return errors.New("step bounds must satisfy 0 < min step <= max step")
	}
	if c.MaxSteps <= 0 {
		return errors.New("max steps must be > 0")
	}
	if c.MaxAbsState <= 0 {
		return errors.New("max abs state must be > 0")
	}
	return nil
}

// Statistics summarizes the work done by one Integrate call.
type Statistics struct {
	Steps       int     `json:"steps"`
	Rejected    int     `json:"rejected"`
	Evaluations int     `json:"evaluations"`
	Jacobians   int     `json:"jacobians"`
	LastStep    float64 `json:"last_step"`
}

// Solution holds one state per requested output time.
type Solution struct {
	Times  []float64
	States [][]float64
	Stats  Statistics
}

// Integrator advances y0 from times[0] through every later entry of times.
// times must be strictly increasing; States[0] is a copy of y0.
type Integrator interface {
	Name() string
	Integrate(ctx context.Context, f Func, y0 []float64, times []float64) (Solution, error)
}

func checkTimes(times []float64) error {
	if len(times) == 0 {
		return errors.New("at least one output time is required")
	}
	for i := 1; i < len(times); i++ {
		if !(times[i] > times[i-1]) {
			return errors.New("output times must be strictly increasing")
		}
	}
	return nil
}
