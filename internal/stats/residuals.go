package stats

import (
	"fmt"
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"

	"ecoliccm/internal/kinetics"
	"ecoliccm/internal/objective"
)

// ResidualSummary describes the fit quality for one metabolite. Errors are
// simulated minus observed, in mM.
type ResidualSummary struct {
	Metabolite string  `json:"metabolite"`
	Count      int     `json:"count"`
	MeanError  float64 `json:"mean_error"`
	StdDev     float64 `json:"std_dev"`
	MaxAbs     float64 `json:"max_abs"`
	RMSE       float64 `json:"rmse"`
	// Weighted is this metabolite's share of the objective score.
	Weighted float64 `json:"weighted"`
}

// SummarizeResiduals groups residuals by metabolite, in state vector order.
func SummarizeResiduals(residuals []objective.Residual) ([]ResidualSummary, error) {
	type group struct {
		index    int
		name     string
		errs     []float64
		weighted []float64
	}
	groups := map[int]*group{}
	names := kinetics.StateNames()
	for _, r := range residuals {
		idx, ok := r.Record.Index()
		if !ok {
			return nil, fmt.Errorf("unknown metabolite %q", r.Record.Metabolite)
		}
		g, ok := groups[idx]
		if !ok {
			g = &group{index: idx, name: names[idx]}
			groups[idx] = g
		}
		g.errs = append(g.errs, r.Simulated-r.Record.Value)
		g.weighted = append(g.weighted, r.Weighted)
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].index < ordered[j].index })

	out := make([]ResidualSummary, 0, len(ordered))
	for _, g := range ordered {
		summary, err := summarize(g.name, g.errs, g.weighted)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", g.name, err)
		}
		out = append(out, summary)
	}
	return out, nil
}

func summarize(name string, errs, weighted []float64) (ResidualSummary, error) {
	mean, err := mstats.Mean(errs)
	if err != nil {
		return ResidualSummary{}, err
	}
	std, err := mstats.StandardDeviationPopulation(errs)
	if err != nil {
		return ResidualSummary{}, err
	}
	abs := make([]float64, len(errs))
	squares := make([]float64, len(errs))
	for i, e := range errs {
		abs[i] = math.Abs(e)
		squares[i] = e * e
	}
	maxAbs, err := mstats.Max(abs)
	if err != nil {
		return ResidualSummary{}, err
	}
	meanSquare, err := mstats.Mean(squares)
	if err != nil {
		return ResidualSummary{}, err
	}
	total, err := mstats.Sum(weighted)
	if err != nil {
		return ResidualSummary{}, err
	}
	return ResidualSummary{
		Metabolite: name,
		Count:      len(errs),
		MeanError:  mean,
		StdDev:     std,
		MaxAbs:     maxAbs,
		RMSE:       math.Sqrt(meanSquare),
		Weighted:   total,
	}, nil
}
