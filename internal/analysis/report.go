package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"ecoliccm/internal/kinetics"
)

// Matrix is a labelled dense matrix for output.
type Matrix struct {
	Rows []string    `json:"rows"`
	Cols []string    `json:"cols"`
	Data [][]float64 `json:"data"`
}

// Labelled copies d into a Matrix.
func Labelled(d mat.Matrix, rows, cols []string) Matrix {
	r, c := d.Dims()
	out := Matrix{Rows: rows, Cols: cols, Data: make([][]float64, r)}
	for i := 0; i < r; i++ {
		out.Data[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			out.Data[i][j] = d.At(i, j)
		}
	}
	return out
}

// WriteCSV writes the matrix with a header row of column labels and the row
// label in the first column.
func (m Matrix) WriteCSV(out io.Writer) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(append([]string{""}, m.Cols...)); err != nil {
		return err
	}
	row := make([]string, len(m.Cols)+1)
	for i, values := range m.Data {
		row[0] = m.Rows[i]
		for j, v := range values {
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Report is the full local analysis at one state.
type Report struct {
	Backend                    string             `json:"backend"`
	State                      map[string]float64 `json:"state"`
	Fluxes                     []FluxEntry        `json:"fluxes"`
	Stability                  Stability          `json:"stability"`
	Jacobian                   Matrix             `json:"jacobian"`
	Elasticities               Matrix             `json:"elasticities"`
	ScaledElasticities         Matrix             `json:"scaled_elasticities"`
	ConcentrationControl       Matrix             `json:"concentration_control"`
	ScaledConcentrationControl Matrix             `json:"scaled_concentration_control"`
	FluxControl                Matrix             `json:"flux_control"`
	ScaledFluxControl          Matrix             `json:"scaled_flux_control"`
}

// Analyze runs every backend computation at s.
func Analyze(b Backend, m kinetics.Model, s kinetics.State) (Report, error) {
	if b == nil {
		b = NewGonum()
	}
	states := kinetics.StateNames()
	fluxes := kinetics.FluxNames()
	v := m.Unperturbed().Fluxes(0, s).Slice()

	j, err := b.Jacobian(m, s)
	if err != nil {
		return Report{}, fmt.Errorf("jacobian: %w", err)
	}
	stability, err := Eigen(j)
	if err != nil {
		return Report{}, err
	}
	e, err := b.Elasticities(m, s)
	if err != nil {
		return Report{}, fmt.Errorf("elasticities: %w", err)
	}
	cs, err := b.ConcentrationControlCoefficients(m, s)
	if err != nil {
		return Report{}, fmt.Errorf("concentration control: %w", err)
	}
	cj, err := b.FluxControlCoefficients(m, s)
	if err != nil {
		return Report{}, fmt.Errorf("flux control: %w", err)
	}

	return Report{
		Backend:                    b.Name(),
		State:                      s.Map(),
		Fluxes:                     FluxReport(m, s),
		Stability:                  stability,
		Jacobian:                   Labelled(j, states, states),
		Elasticities:               Labelled(e, fluxes, states),
		ScaledElasticities:         Labelled(ScaleElasticities(e, v, s), fluxes, states),
		ConcentrationControl:       Labelled(cs, states, fluxes),
		ScaledConcentrationControl: Labelled(ScaleConcentrationControl(cs, v, s), states, fluxes),
		FluxControl:                Labelled(cj, fluxes, fluxes),
		ScaledFluxControl:          Labelled(ScaleFluxControl(cj, v), fluxes, fluxes),
	}, nil
}
