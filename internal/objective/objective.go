// Package objective scores parameter sets against experimental time courses
// with a weighted least-squares criterion.
package objective

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"ecoliccm/internal/dataio"
	"ecoliccm/internal/integrator"
	"ecoliccm/internal/kinetics"
	"ecoliccm/internal/simulation"
)

const (
	DefaultHorizon   = 303.0
	DefaultStep      = 0.05
	DefaultTolerance = 0.01
)

// NoMatchError reports an experimental time with no simulated sample inside
// the open window (Time-Tolerance, Time+Tolerance).
type NoMatchError struct {
	Time      float64
	Tolerance float64
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no simulated sample within %g of t=%g", e.Tolerance, e.Time)
}

// Config describes the simulated experiment the data is compared against.
type Config struct {
	Start      float64
	End        float64
	Step       float64
	Tolerance  float64
	Initial    kinetics.State
	Model      kinetics.Config
	Integrator integrator.Config
	Workers    int
	Logger     logrus.FieldLogger
}

// DefaultConfig simulates the pulse from the published state with 2 mM
// extracellular glucose over arange(0, 303, 0.05).
func DefaultConfig() Config {
	initial := kinetics.PublishedInitialState()
	initial[kinetics.GLCEX] = kinetics.PulseGlucose
	return Config{
		Start:      0,
		End:        DefaultHorizon,
		Step:       DefaultStep,
		Tolerance:  DefaultTolerance,
		Initial:    initial,
		Model:      kinetics.DefaultConfig(),
		Integrator: integrator.DefaultConfig(),
		Workers:    1,
	}
}

func (c Config) Validate() error {
	if !(c.Tolerance > 0) {
		return errors.New("tolerance must be > 0")
	}
	if c.Workers <= 0 {
		return errors.New("workers must be > 0")
	}
	if err := c.Model.Validate(); err != nil {
		return err
	}
	return c.Integrator.Validate()
}

// Residual is one record compared with its matched simulated sample.
type Residual struct {
	Record    dataio.Record `json:"record"`
	Simulated float64       `json:"simulated"`
	Weighted  float64       `json:"weighted"`
}

// Scorer holds the experimental records with their grid matches resolved
// once. It is safe for concurrent use.
type Scorer struct {
	cfg         Config
	records     []dataio.Record
	grid        []float64
	sample      []int
	metabolite  []int
	driver      *simulation.Driver
	evaluations atomic.Int64
}

// NewScorer resolves every record against the time grid. Unknown metabolites
// fail with a DataFormatError and unmatched times with a NoMatchError.
func NewScorer(cfg Config, records []dataio.Record) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("objective config: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("at least one experimental record is required")
	}
	grid, err := simulation.Grid(cfg.Start, cfg.End, cfg.Step)
	if err != nil {
		return nil, err
	}
	driver, err := simulation.NewDriver(cfg.Integrator, cfg.Logger)
	if err != nil {
		return nil, err
	}

	s := &Scorer{
		cfg:        cfg,
		records:    append([]dataio.Record(nil), records...),
		grid:       grid,
		sample:     make([]int, len(records)),
		metabolite: make([]int, len(records)),
		driver:     driver,
	}
	for i, r := range records {
		idx, ok := r.Index()
		if !ok {
			return nil, &dataio.DataFormatError{Line: i + 1, Reason: fmt.Sprintf("unknown metabolite %q", r.Metabolite)}
		}
		if !(r.SD > 0) {
			return nil, &dataio.DataFormatError{Line: i + 1, Reason: fmt.Sprintf("sd must be > 0, got %g", r.SD)}
		}
		k, err := MatchIndex(grid, r.Time, cfg.Tolerance)
		if err != nil {
			return nil, err
		}
		s.metabolite[i] = idx
		s.sample[i] = k
	}
	return s, nil
}

// MatchIndex returns the lowest index k with t-tol < grid[k] < t+tol. grid
// must be ascending.
func MatchIndex(grid []float64, t, tol float64) (int, error) {
	k := sort.Search(len(grid), func(i int) bool { return grid[i] > t-tol })
	if k < len(grid) && grid[k] < t+tol {
		return k, nil
	}
	return 0, &NoMatchError{Time: t, Tolerance: tol}
}

// Score simulates the experiment under p with the default configuration and
// returns the weighted sum of squared residuals.
func Score(ctx context.Context, p kinetics.Parameters, records []dataio.Record) (float64, error) {
	s, err := NewScorer(DefaultConfig(), records)
	if err != nil {
		return 0, err
	}
	return s.Score(ctx, p)
}

func (s *Scorer) Records() []dataio.Record {
	return append([]dataio.Record(nil), s.records...)
}

func (s *Scorer) Grid() []float64 {
	return append([]float64(nil), s.grid...)
}

// Evaluations counts Score calls, including failed ones.
func (s *Scorer) Evaluations() int64 {
	return s.evaluations.Load()
}

func (s *Scorer) logger() logrus.FieldLogger {
	if s.cfg.Logger != nil {
		return s.cfg.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Simulate runs the scored experiment under p.
func (s *Scorer) Simulate(ctx context.Context, p kinetics.Parameters) (simulation.Trajectory, error) {
	m, err := kinetics.NewModel(p, s.cfg.Model)
	if err != nil {
		return simulation.Trajectory{}, err
	}
	return s.driver.Simulate(ctx, m, s.cfg.Initial, []simulation.Segment{
		{Start: s.cfg.Start, End: s.cfg.End, Step: s.cfg.Step},
	})
}

// Score returns sum((sim-obs)^2/sd^2) over the records.
func (s *Scorer) Score(ctx context.Context, p kinetics.Parameters) (float64, error) {
	n := s.evaluations.Add(1)
	residuals, err := s.residuals(ctx, p)
	if err != nil {
		s.logger().WithFields(logrus.Fields{"evaluation": n, "error": err}).Debug("objective evaluation failed")
		return 0, err
	}
	total := 0.0
	for _, r := range residuals {
		total += r.Weighted
	}
	s.logger().WithFields(logrus.Fields{"evaluation": n, "score": total}).Debug("objective evaluated")
	return total, nil
}

// ScoreVector scores an ordered parameter list.
func (s *Scorer) ScoreVector(ctx context.Context, values []float64) (float64, error) {
	p, err := kinetics.ParametersFromSlice(values)
	if err != nil {
		return 0, err
	}
	return s.Score(ctx, p)
}

// Residuals returns the per-record comparison under p.
func (s *Scorer) Residuals(ctx context.Context, p kinetics.Parameters) ([]Residual, error) {
	return s.residuals(ctx, p)
}

func (s *Scorer) residuals(ctx context.Context, p kinetics.Parameters) ([]Residual, error) {
	traj, err := s.Simulate(ctx, p)
	if err != nil {
		return nil, err
	}
	out := make([]Residual, len(s.records))
	for i, r := range s.records {
		sim := traj.States[s.sample[i]][s.metabolite[i]]
		d := (sim - r.Value) / r.SD
		out[i] = Residual{Record: r, Simulated: sim, Weighted: d * d}
	}
	return out, nil
}

// ScoreAll scores candidates concurrently with at most Workers simulations in
// flight. Results are in input order. The first failure cancels the rest.
func (s *Scorer) ScoreAll(ctx context.Context, candidates []kinetics.Parameters) ([]float64, error) {
	scores := make([]float64, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i := range candidates {
		g.Go(func() error {
			v, err := s.Score(gctx, candidates[i])
			if err != nil {
				return fmt.Errorf("candidate %d: %w", i, err)
			}
			scores[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
