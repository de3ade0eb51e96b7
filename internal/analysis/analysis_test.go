package analysis

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"ecoliccm/internal/kinetics"
)

func TestPublishedStateIsStable(t *testing.T) {
	m := kinetics.BaselineModel()
	j, err := NewGonum().Jacobian(m, kinetics.PublishedInitialState())
	require.NoError(t, err)

	st, err := Eigen(j)
	require.NoError(t, err)
	require.Len(t, st.Eigenvalues, kinetics.StateSize)
	require.True(t, st.Stable)
	require.Less(t, st.MinReal, -1000.0)
	require.Less(t, st.MaxReal, 0.0)
	require.Greater(t, st.MaxReal, -0.1)
	for i := 1; i < len(st.Eigenvalues); i++ {
		require.LessOrEqual(t, st.Eigenvalues[i-1].Real, st.Eigenvalues[i].Real)
	}
}

func TestEigenSmallMatrices(t *testing.T) {
	st, err := Eigen(mat.NewDense(2, 2, []float64{-1, 0, 0, -2}))
	require.NoError(t, err)
	require.True(t, st.Stable)
	require.InDelta(t, -2, st.Eigenvalues[0].Real, 1e-12)

	st, err = Eigen(mat.NewDense(2, 2, []float64{1, 0, 0, -1}))
	require.NoError(t, err)
	require.False(t, st.Stable)

	st, err = Eigen(mat.NewDense(2, 2, []float64{0, -1, 1, 0}))
	require.NoError(t, err)
	require.InDelta(t, 0, st.MaxReal, 1e-12)
	require.InDelta(t, 1, math.Abs(st.Eigenvalues[0].Imag), 1e-12)

	_, err = Eigen(mat.NewDense(2, 3, nil))
	require.Error(t, err)
}

func TestJacobianEqualsStoichiometryTimesElasticities(t *testing.T) {
	m := kinetics.BaselineModel()
	s := kinetics.PublishedInitialState()
	g := NewGonum()
	j, err := g.Jacobian(m, s)
	require.NoError(t, err)
	e, err := g.Elasticities(m, s)
	require.NoError(t, err)

	var ne mat.Dense
	ne.Mul(m.Stoichiometry(), e)
	for r := 0; r < kinetics.StateSize; r++ {
		for c := 0; c < kinetics.StateSize; c++ {
			want := ne.At(r, c)
			require.InDelta(t, want, j.At(r, c), 1e-4*math.Max(1, math.Abs(want)))
		}
	}
}

func TestConnectivityTheorem(t *testing.T) {
	m := kinetics.BaselineModel()
	s := kinetics.PublishedInitialState()
	g := NewGonum()
	e, err := g.Elasticities(m, s)
	require.NoError(t, err)
	cs, err := g.ConcentrationControlCoefficients(m, s)
	require.NoError(t, err)

	var prod mat.Dense
	prod.Mul(cs, e)
	for r := 0; r < kinetics.StateSize; r++ {
		for c := 0; c < kinetics.StateSize; c++ {
			want := 0.0
			if r == c {
				want = -1
			}
			require.InDelta(t, want, prod.At(r, c), 1e-4)
		}
	}
}

func TestScaledFluxControlRowsSumToOne(t *testing.T) {
	m := kinetics.BaselineModel()
	s := kinetics.PublishedInitialState()
	cj, err := NewGonum().FluxControlCoefficients(m, s)
	require.NoError(t, err)
	r, c := cj.Dims()
	require.Equal(t, kinetics.FluxCount, r)
	require.Equal(t, kinetics.FluxCount, c)

	v := m.Unperturbed().Fluxes(0, s).Slice()
	scaled := ScaleFluxControl(cj, v)
	for i := 0; i < r; i++ {
		if v[i] == 0 {
			continue
		}
		require.InDeltaf(t, 1.0, mat.Sum(scaled.Slice(i, i+1, 0, c)), 1e-3, "row %s", kinetics.FluxNames()[i])
	}
}

func TestScalingZeroDenominator(t *testing.T) {
	cj := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	scaled := ScaleFluxControl(cj, []float64{0, 2})
	require.Equal(t, 0.0, scaled.At(0, 0))
	require.Equal(t, 0.0, scaled.At(0, 1))
	require.Equal(t, 0.0, scaled.At(1, 0))
	require.Equal(t, 4.0, scaled.At(1, 1))
}

func TestFluxReportOrder(t *testing.T) {
	m := kinetics.BaselineModel()
	s := kinetics.PublishedInitialState()
	report := FluxReport(m, s)
	require.Len(t, report, kinetics.FluxCount)
	require.Equal(t, "vALDO", report[0].Name)

	f := m.Unperturbed().Fluxes(0, s).Slice()
	for i, entry := range report {
		require.Equal(t, f[i], entry.Value)
	}
}

func TestAnalyzeReport(t *testing.T) {
	report, err := Analyze(nil, kinetics.BaselineModel(), kinetics.PublishedInitialState())
	require.NoError(t, err)
	require.Equal(t, "gonum", report.Backend)
	require.True(t, report.Stability.Stable)
	require.Len(t, report.Elasticities.Data, kinetics.FluxCount)
	require.Len(t, report.Elasticities.Data[0], kinetics.StateSize)
	require.Len(t, report.ConcentrationControl.Data, kinetics.StateSize)
	require.Len(t, report.ScaledFluxControl.Data, kinetics.FluxCount)

	_, err = json.Marshal(report)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Jacobian.WriteCSV(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, kinetics.StateSize+1)
	require.True(t, strings.HasPrefix(lines[0], ",dhap,e4p"))
	require.True(t, strings.HasPrefix(lines[1], "dhap,"))
}
