package stats

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"ecoliccm/internal/dataio"
	"ecoliccm/internal/kinetics"
)

// PlotMetabolites are the panels rendered by PlotTimeCourses.
var PlotMetabolites = []string{"glcex", "fdp", "g1p", "g6p", "pep", "pyr", "f6p", "gap", "pg"}

// RenderTimeCourse draws one metabolite as a PNG. Observed records for the
// same metabolite are overlaid as dots.
func RenderTimeCourse(w io.Writer, metabolite string, times, values []float64, observed []dataio.Record) error {
	if len(times) < 2 || len(times) != len(values) {
		return errors.New("time course needs at least two samples of equal length")
	}
	idx, ok := kinetics.StateIndex(metabolite)
	if !ok {
		return fmt.Errorf("unknown metabolite %q", metabolite)
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "simulated",
			XValues: times,
			YValues: values,
			Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2.0},
		},
	}
	var xs, ys []float64
	for _, r := range observed {
		if i, ok := r.Index(); ok && i == idx {
			xs = append(xs, r.Time)
			ys = append(ys, r.Value)
		}
	}
	if len(xs) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "observed",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    3,
				DotColor:    chart.ColorRed,
			},
		})
	}

	graph := chart.Chart{
		Title:  kinetics.StateNames()[idx],
		Width:  720,
		Height: 400,
		XAxis:  chart.XAxis{Name: "time [s]"},
		YAxis:  chart.YAxis{Name: "concentration [mM]", Range: flatRange(append(append([]float64(nil), values...), ys...))},
		Series: series,
	}
	if len(series) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	return graph.Render(chart.PNG, w)
}

// PlotTimeCourses writes <prefix><metabolite>.png for every entry of
// PlotMetabolites and returns the paths.
func PlotTimeCourses(outDir, prefix string, times []float64, states []kinetics.State, observed []dataio.Record) ([]string, error) {
	if len(times) != len(states) {
		return nil, errors.New("times and states length mismatch")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(PlotMetabolites))
	values := make([]float64, len(states))
	for _, name := range PlotMetabolites {
		idx, _ := kinetics.StateIndex(name)
		for i, s := range states {
			values[i] = s[idx]
		}
		path := filepath.Join(outDir, prefix+name+".png")
		if err := renderFile(path, func(w io.Writer) error {
			return RenderTimeCourse(w, name, times, values, observed)
		}); err != nil {
			return nil, fmt.Errorf("plot %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// RenderScoreHistory draws the best score after each improvement of a fit.
// Non-finite entries are skipped.
func RenderScoreHistory(w io.Writer, history []float64) error {
	var xs, ys []float64
	for i, v := range history {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, v)
	}
	if len(xs) < 2 {
		return errors.New("score history needs at least two finite entries")
	}
	graph := chart.Chart{
		Title:  "objective",
		Width:  720,
		Height: 400,
		XAxis:  chart.XAxis{Name: "improvement"},
		YAxis:  chart.YAxis{Name: "score", Range: flatRange(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2.0, DotWidth: 3, DotColor: chart.ColorGreen},
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

// WriteScoreHistoryPlot renders the history into path.
func WriteScoreHistoryPlot(path string, history []float64) error {
	return renderFile(path, func(w io.Writer) error {
		return RenderScoreHistory(w, history)
	})
}

// flatRange pads a constant series, which the chart would otherwise reject
// as a zero range. It returns nil when the data already spans a range.
func flatRange(values []float64) chart.Range {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo > 1e-12*math.Max(1, math.Abs(hi)) {
		return nil
	}
	pad := math.Max(0.05*math.Abs(hi), 1e-3)
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func renderFile(path string, render func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
