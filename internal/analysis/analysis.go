// Package analysis linearizes the model around a state: Jacobian and
// eigenvalues for local stability, and metabolic control analysis
// (elasticities and control coefficients).
package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"ecoliccm/internal/kinetics"
)

// Backend computes the linear sensitivities of a model at a state. All
// methods evaluate the model with cofactors held at baseline.
type Backend interface {
	Name() string
	Jacobian(m kinetics.Model, s kinetics.State) (*mat.Dense, error)
	Elasticities(m kinetics.Model, s kinetics.State) (*mat.Dense, error)
	ConcentrationControlCoefficients(m kinetics.Model, s kinetics.State) (*mat.Dense, error)
	FluxControlCoefficients(m kinetics.Model, s kinetics.State) (*mat.Dense, error)
}

// Eigenvalue is a JSON-friendly complex number.
type Eigenvalue struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
}

// Stability summarizes the Jacobian spectrum.
type Stability struct {
	Eigenvalues []Eigenvalue `json:"eigenvalues"`
	MinReal     float64      `json:"min_real"`
	MaxReal     float64      `json:"max_real"`
	Stable      bool         `json:"stable"`
}

// Eigen returns the eigenvalues of j sorted by ascending real part, then
// imaginary part.
func Eigen(j mat.Matrix) (Stability, error) {
	r, c := j.Dims()
	if r != c || r == 0 {
		return Stability{}, fmt.Errorf("eigenvalues need a non-empty square matrix, got %dx%d", r, c)
	}
	var eig mat.Eigen
	if ok := eig.Factorize(j, mat.EigenNone); !ok {
		return Stability{}, errors.New("eigen decomposition did not converge")
	}
	values := eig.Values(nil)
	sort.Slice(values, func(a, b int) bool {
		if real(values[a]) != real(values[b]) {
			return real(values[a]) < real(values[b])
		}
		return imag(values[a]) < imag(values[b])
	})

	out := Stability{
		Eigenvalues: make([]Eigenvalue, len(values)),
		MinReal:     math.Inf(1),
		MaxReal:     math.Inf(-1),
	}
	for i, v := range values {
		out.Eigenvalues[i] = Eigenvalue{Real: real(v), Imag: imag(v)}
		out.MinReal = math.Min(out.MinReal, real(v))
		out.MaxReal = math.Max(out.MaxReal, real(v))
	}
	out.Stable = out.MaxReal < 0
	return out, nil
}

// FluxEntry is one named reaction rate.
type FluxEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// FluxReport lists the reaction rates at s in canonical order, with
// cofactors at baseline.
func FluxReport(m kinetics.Model, s kinetics.State) []FluxEntry {
	f := m.Unperturbed().Fluxes(0, s)
	names := kinetics.FluxNames()
	out := make([]FluxEntry, len(names))
	for i, v := range f.Slice() {
		out[i] = FluxEntry{Name: names[i], Value: v}
	}
	return out
}

// ScaleElasticities returns eps_ij * s_j / v_i.
func ScaleElasticities(e *mat.Dense, v []float64, s kinetics.State) *mat.Dense {
	r, c := e.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, x float64) float64 {
		return ratio(x*s[j], v[i])
	}, e)
	return out
}

// ScaleConcentrationControl returns C_ij * v_j / s_i.
func ScaleConcentrationControl(cs *mat.Dense, v []float64, s kinetics.State) *mat.Dense {
	r, c := cs.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, x float64) float64 {
		return ratio(x*v[j], s[i])
	}, cs)
	return out
}

// ScaleFluxControl returns C_ij * v_j / v_i.
func ScaleFluxControl(cj *mat.Dense, v []float64) *mat.Dense {
	r, c := cj.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, x float64) float64 {
		return ratio(x*v[j], v[i])
	}, cj)
	return out
}

// ratio returns 0 for a zero denominator.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
