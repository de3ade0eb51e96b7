package integrator

import (
	"errors"
	"fmt"
)

var (
	ErrNonFinite    = errors.New("state is not finite")
	ErrStepTooSmall = errors.New("step size below minimum")
	ErrStepBudget   = errors.New("step budget exhausted")
	ErrStateBound   = errors.New("state magnitude exceeds bound")
)

// SimulationDivergedError reports an integration that could not be carried
// to its final output time.
type SimulationDivergedError struct {
	Time   float64
	Step   float64
	Reason error
}

func (e *SimulationDivergedError) Error() string {
	return fmt.Sprintf("simulation diverged at t=%g (h=%g): %v", e.Time, e.Step, e.Reason)
}

func (e *SimulationDivergedError) Unwrap() error {
	return e.Reason
}
