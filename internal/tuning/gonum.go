package tuning

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	mrand "math/rand"
	"math/rand/v2"
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/optimize"
)

const (
	MethodCMAES      = "cmaes"
	MethodNelderMead = "neldermead"
	MethodHillClimb  = "hillclimb"
)

// GonumTuner runs a gonum/optimize method on a logistic reparameterization
// of the bounds, so every point the method proposes is feasible.
type GonumTuner struct {
	Method     string
	Seed       uint64
	Population int
	Workers    int
	Logger     logrus.FieldLogger
}

func (g *GonumTuner) Name() string {
	return g.Method
}

func (g *GonumTuner) logger() logrus.FieldLogger {
	if g.Logger != nil {
		return g.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (g *GonumTuner) method() (optimize.Method, int, error) {
	switch g.Method {
	case MethodCMAES:
		workers := g.Workers
		if workers <= 0 {
			workers = 1
		}
		// Logistic coordinates of the initial point are O(1).
		return &optimize.CmaEsChol{
			Population:   g.Population,
			InitStepSize: 0.5,
			Src:          rand.NewPCG(g.Seed, g.Seed^0x9e3779b97f4a7c15),
		}, workers, nil
	case MethodNelderMead:
		return &optimize.NelderMead{SimplexSize: 0.5}, 1, nil
	default:
		return nil, 0, fmt.Errorf("unsupported optimization method: %s", g.Method)
	}
}

// Tune spends at most budget objective evaluations beyond the initial one.
func (g *GonumTuner) Tune(ctx context.Context, problem Problem, budget int) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := problem.Validate(); err != nil {
		return Result{}, err
	}
	if budget <= 0 {
		return Result{}, errors.New("budget must be > 0")
	}
	method, concurrent, err := g.method()
	if err != nil {
		return Result{}, err
	}

	initialScore, err := problem.Objective(ctx, problem.Initial)
	if err != nil {
		return Result{}, err
	}

	var (
		mu       sync.Mutex
		report   = TuneReport{AttemptsPlanned: budget, CandidateEvaluations: 1}
		firstErr error
	)
	if math.IsInf(initialScore, 1) {
		report.DivergedCandidates++
	}
	best := append([]float64(nil), problem.Initial...)
	bestScore := initialScore
	history := []float64{initialScore}

	p := optimize.Problem{
		Func: func(z []float64) float64 {
			x := fromLogistic(problem.Bounds, z)
			score, err := problem.Objective(ctx, x)
			mu.Lock()
			defer mu.Unlock()
			report.CandidateEvaluations++
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return math.Inf(1)
			}
			if math.IsInf(score, 1) {
				report.DivergedCandidates++
			}
			if score < bestScore {
				report.AcceptedCandidates++
				best, bestScore = x, score
				history = append(history, score)
			} else {
				report.RejectedCandidates++
			}
			return score
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: budget,
		Concurrent:      concurrent,
		Converger:       &optimize.FunctionConverge{Absolute: 1e-10, Iterations: 1000},
		Recorder:        &abortRecorder{ctx: ctx, err: func() error { mu.Lock(); defer mu.Unlock(); return firstErr }},
	}
	res, err := optimize.Minimize(p, toLogistic(problem.Bounds, problem.Initial), settings, method)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		mu.Lock()
		objErr := firstErr
		mu.Unlock()
		if objErr != nil {
			return Result{}, objErr
		}
		// Methods can stop with an error status after finding a usable point.
		g.logger().WithError(err).Warn("optimizer stopped early")
	}
	if res != nil {
		report.AttemptsExecuted = res.MajorIterations
		g.logger().WithFields(logrus.Fields{
			"method":      g.Method,
			"status":      res.Status.String(),
			"evaluations": res.FuncEvaluations,
			"score":       bestScore,
		}).Info("optimizer finished")
	}

	return Result{
		X:            best,
		Score:        bestScore,
		InitialScore: initialScore,
		History:      history,
		Report:       report,
	}, nil
}

// abortRecorder stops Minimize on cancellation or on a failed evaluation.
type abortRecorder struct {
	ctx context.Context
	err func() error
}

func (r *abortRecorder) Init() error {
	return r.ctx.Err()
}

func (r *abortRecorder) Record(*optimize.Location, optimize.Operation, *optimize.Stats) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	return r.err()
}

const logisticEdge = 1e-6

// toLogistic maps x inside the bounds to unconstrained coordinates.
func toLogistic(b Bounds, x []float64) []float64 {
	z := make([]float64, len(x))
	for i := range x {
		f := (x[i] - b.Lower[i]) / (b.Upper[i] - b.Lower[i])
		f = math.Min(1-logisticEdge, math.Max(logisticEdge, f))
		z[i] = math.Log(f / (1 - f))
	}
	return z
}

func fromLogistic(b Bounds, z []float64) []float64 {
	x := make([]float64, len(z))
	for i := range z {
		x[i] = b.Lower[i] + (b.Upper[i]-b.Lower[i])/(1+math.Exp(-z[i]))
	}
	return x
}

// NewTuner builds the named method.
func NewTuner(method string, seed int64, workers int, logger logrus.FieldLogger) (Tuner, error) {
	switch method {
	case MethodHillClimb, "":
		return &Exoself{
			Rand:               mrand.New(mrand.NewSource(seed)),
			Steps:              2,
			StepSize:           0.25,
			AnnealingFactor:    0.9,
			CandidateSelection: CandidateSelectDynamic,
			Workers:            workers,
			Logger:             logger,
		}, nil
	case MethodCMAES, MethodNelderMead:
		return &GonumTuner{Method: method, Seed: uint64(seed), Workers: workers, Logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported optimization method: %s", method)
	}
}
