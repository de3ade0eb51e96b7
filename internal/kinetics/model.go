package kinetics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Model binds a parameter set to the fixed constants. A Model is a value and
// is safe to share between goroutines.
type Model struct {
	Params Parameters
	Config Config
}

// NewModel validates the parameters and constants.
func NewModel(params Parameters, cfg Config) (Model, error) {
	if err := params.Validate(); err != nil {
		return Model{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Model{}, fmt.Errorf("model config: %w", err)
	}
	return Model{Params: params, Config: cfg}, nil
}

// BaselineModel returns the literature model with default constants.
func BaselineModel() Model {
	return Model{Params: BaselineParameters(), Config: DefaultConfig()}
}

// Cofactors evaluates the cofactor pools at t under the model's regime.
func (m Model) Cofactors(t float64) Cofactors {
	return CofactorsAt(t, m.Config.Perturbed)
}

// Fluxes evaluates every reaction rate at (t, s).
func (m Model) Fluxes(t float64, s State) Fluxes {
	return ComputeFluxes(s, m.Cofactors(t), &m.Params, m.Config)
}

// Derivatives returns ds/dt at (t, s).
func (m Model) Derivatives(t float64, s State) State {
	return Balance(m.Fluxes(t, s), m.Config)
}

// RHS adapts Derivatives to the slice form used by integrators. y and dst
// must have length StateSize.
func (m Model) RHS(t float64, y, dst []float64) {
	var s State
	copy(s[:], y)
	d := m.Derivatives(t, s)
	copy(dst, d[:])
}

// Unperturbed returns a copy of m with cofactors held at baseline.
func (m Model) Unperturbed() Model {
	m.Config.Perturbed = false
	return m
}

// Stoichiometry returns the StateSize x FluxCount matrix N with ds/dt = N v.
// Columns are obtained by balancing unit flux vectors, so N always agrees
// with Balance.
func (m Model) Stoichiometry() *mat.Dense {
	n := mat.NewDense(StateSize, FluxCount, nil)
	unit := make([]float64, FluxCount)
	for j := 0; j < FluxCount; j++ {
		unit[j] = 1
		f, _ := FluxesFromSlice(unit)
		col := Balance(f, m.Config)
		n.SetCol(j, col[:])
		unit[j] = 0
	}
	return n
}
