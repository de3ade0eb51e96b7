package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"ecoliccm/internal/kinetics"
)

// Gonum is the finite-difference Backend. Step zero uses the fd package
// default.
type Gonum struct {
	Step float64
}

func NewGonum() *Gonum {
	return &Gonum{}
}

func (g *Gonum) Name() string {
	return "gonum"
}

func (g *Gonum) settings(origin []float64) *fd.JacobianSettings {
	return &fd.JacobianSettings{
		Formula:     fd.Central,
		Step:        g.Step,
		OriginValue: origin,
	}
}

// Jacobian returns d(ds/dt)/ds, StateSize x StateSize.
func (g *Gonum) Jacobian(m kinetics.Model, s kinetics.State) (*mat.Dense, error) {
	m = m.Unperturbed()
	j := mat.NewDense(kinetics.StateSize, kinetics.StateSize, nil)
	fd.Jacobian(j, func(dst, x []float64) {
		m.RHS(0, x, dst)
	}, append([]float64(nil), s[:]...), g.settings(nil))
	if !finite(j) {
		return nil, errors.New("jacobian has non-finite entries")
	}
	return j, nil
}

// Elasticities returns dv/ds, FluxCount x StateSize.
func (g *Gonum) Elasticities(m kinetics.Model, s kinetics.State) (*mat.Dense, error) {
	m = m.Unperturbed()
	e := mat.NewDense(kinetics.FluxCount, kinetics.StateSize, nil)
	fd.Jacobian(e, func(dst, x []float64) {
		var st kinetics.State
		copy(st[:], x)
		copy(dst, m.Fluxes(0, st).Slice())
	}, append([]float64(nil), s[:]...), g.settings(nil))
	if !finite(e) {
		return nil, errors.New("elasticities have non-finite entries")
	}
	return e, nil
}

// ConcentrationControlCoefficients returns -(N eps)^-1 N, StateSize x
// FluxCount.
func (g *Gonum) ConcentrationControlCoefficients(m kinetics.Model, s kinetics.State) (*mat.Dense, error) {
	e, err := g.Elasticities(m, s)
	if err != nil {
		return nil, err
	}
	return concentrationControl(m.Stoichiometry(), e)
}

// FluxControlCoefficients returns I + eps Cs, FluxCount x FluxCount.
func (g *Gonum) FluxControlCoefficients(m kinetics.Model, s kinetics.State) (*mat.Dense, error) {
	e, err := g.Elasticities(m, s)
	if err != nil {
		return nil, err
	}
	cs, err := concentrationControl(m.Stoichiometry(), e)
	if err != nil {
		return nil, err
	}
	return fluxControl(e, cs), nil
}

func concentrationControl(n, e *mat.Dense) (*mat.Dense, error) {
	var ne mat.Dense
	ne.Mul(n, e)
	var cs mat.Dense
	if err := cs.Solve(&ne, n); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("solve control coefficients: %w", err)
		}
	}
	cs.Scale(-1, &cs)
	if !finite(&cs) {
		return nil, errors.New("jacobian is singular at this state")
	}
	return &cs, nil
}

func fluxControl(e, cs *mat.Dense) *mat.Dense {
	var cj mat.Dense
	cj.Mul(e, cs)
	r, _ := cj.Dims()
	for i := 0; i < r; i++ {
		cj.Set(i, i, cj.At(i, i)+1)
	}
	return &cj
}

func finite(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
