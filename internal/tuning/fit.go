package tuning

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"ecoliccm/internal/integrator"
	"ecoliccm/internal/kinetics"
)

// ParameterScorer is the objective a fit minimizes.
type ParameterScorer interface {
	Score(ctx context.Context, p kinetics.Parameters) (float64, error)
}

// FitConfig selects the method, the free parameters and their bounds.
type FitConfig struct {
	Method       string             `json:"method" yaml:"method"`
	LowerFactor  float64            `json:"lower_factor" yaml:"lower_factor"`
	UpperFactor  float64            `json:"upper_factor" yaml:"upper_factor"`
	Budget       int                `json:"budget" yaml:"budget"`
	BudgetPolicy string             `json:"budget_policy,omitempty" yaml:"budget_policy,omitempty"`
	BudgetParam  float64            `json:"budget_param,omitempty" yaml:"budget_param,omitempty"`
	Free         []string           `json:"free,omitempty" yaml:"free,omitempty"`
	Seed         int64              `json:"seed" yaml:"seed"`
	Workers      int                `json:"workers" yaml:"workers"`
	Logger       logrus.FieldLogger `json:"-" yaml:"-"`
}

func DefaultFitConfig() FitConfig {
	return FitConfig{
		Method:      MethodHillClimb,
		LowerFactor: 0.75,
		UpperFactor: 1.5,
		Budget:      200,
		Seed:        1,
		Workers:     1,
	}
}

// DefaultFreeParameters returns the maximal rates, the constants a fit to
// concentration time courses is most sensitive to.
func DefaultFreeParameters() []string {
	var out []string
	for _, name := range kinetics.ParameterNames() {
		if strings.HasPrefix(name, "rmax") {
			out = append(out, name)
		}
	}
	return out
}

// FitResult is the outcome of one parameter estimation.
type FitResult struct {
	Method       string              `json:"method"`
	Free         []string            `json:"free"`
	InitialScore float64             `json:"initial_score"`
	FinalScore   float64             `json:"final_score"`
	Parameters   kinetics.Parameters `json:"parameters"`
	Bounds       Bounds              `json:"bounds"`
	History      []float64           `json:"history"`
	Report       TuneReport          `json:"report"`
}

// Fit minimizes scorer over the free parameters of p0 within
// [LowerFactor*p0, UpperFactor*p0]. Candidates whose simulation diverges
// score +Inf and are counted in the report.
func Fit(ctx context.Context, scorer ParameterScorer, p0 kinetics.Parameters, cfg FitConfig) (FitResult, error) {
	if scorer == nil {
		return FitResult{}, errors.New("scorer is required")
	}
	if cfg.Budget <= 0 {
		return FitResult{}, errors.New("budget must be > 0")
	}
	if err := p0.Validate(); err != nil {
		return FitResult{}, err
	}
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	free := cfg.Free
	if len(free) == 0 {
		free = DefaultFreeParameters()
	}
	x0 := make([]float64, len(free))
	for i, name := range free {
		v, ok := p0.Lookup(name)
		if !ok {
			return FitResult{}, fmt.Errorf("unknown free parameter %q", name)
		}
		x0[i] = v
	}
	bounds, err := BoundsAround(x0, cfg.LowerFactor, cfg.UpperFactor)
	if err != nil {
		return FitResult{}, err
	}
	policy, err := BudgetPolicyFromConfig(cfg.BudgetPolicy, cfg.BudgetParam)
	if err != nil {
		return FitResult{}, err
	}
	budget := policy.Budget(cfg.Budget, len(free))
	tuner, err := NewTuner(cfg.Method, cfg.Seed, cfg.Workers, log)
	if err != nil {
		return FitResult{}, err
	}

	bind := func(x []float64) (kinetics.Parameters, error) {
		p := p0
		for i, name := range free {
			next, err := p.With(name, x[i])
			if err != nil {
				return kinetics.Parameters{}, err
			}
			p = next
		}
		return p, nil
	}
	objective := func(ctx context.Context, x []float64) (float64, error) {
		p, err := bind(x)
		if err != nil {
			return 0, err
		}
		score, err := scorer.Score(ctx, p)
		var diverged *integrator.SimulationDivergedError
		if errors.As(err, &diverged) {
			log.WithFields(logrus.Fields{"time": diverged.Time, "reason": diverged.Reason}).Warn("candidate simulation diverged")
			return math.Inf(1), nil
		}
		return score, err
	}

	log.WithFields(logrus.Fields{"method": tuner.Name(), "free": len(free), "budget": budget}).Info("fit started")
	res, err := tuner.Tune(ctx, Problem{Initial: x0, Bounds: bounds, Objective: objective}, budget)
	if err != nil {
		return FitResult{}, err
	}
	best, err := bind(res.X)
	if err != nil {
		return FitResult{}, err
	}
	return FitResult{
		Method:       tuner.Name(),
		Free:         append([]string(nil), free...),
		InitialScore: res.InitialScore,
		FinalScore:   res.Score,
		Parameters:   best,
		Bounds:       bounds,
		History:      res.History,
		Report:       res.Report,
	}, nil
}
