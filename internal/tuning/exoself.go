package tuning

import (
	"context"
	"errors"
	"io"
	"math"
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Exoself is a stochastic hill climber. Each attempt perturbs one or more
// base points in the unit cube of the bounds and keeps the best candidate
// when it improves on the incumbent by more than MinImprovement.
type Exoself struct {
	Rand               *rand.Rand
	Steps              int
	StepSize           float64
	PerturbationRange  float64
	AnnealingFactor    float64
	MinImprovement     float64
	GoalScore          float64
	CandidateSelection string
	Workers            int
	Logger             logrus.FieldLogger
	mu                 sync.Mutex
}

const (
	CandidateSelectBestSoFar = "best_so_far"
	CandidateSelectOriginal  = "original"
	CandidateSelectDynamicA  = "dynamic"
	CandidateSelectDynamic   = "dynamic_random"
	CandidateSelectAll       = "all"
	CandidateSelectAllRandom = "all_random"
	CandidateSelectRecent    = "recent"
	CandidateSelectRecentRnd = "recent_random"
)

func (e *Exoself) Name() string {
	return "hillclimb"
}

func (e *Exoself) logger() logrus.FieldLogger {
	if e.Logger != nil {
		return e.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (e *Exoself) validate(problem Problem) error {
	if e == nil || e.Rand == nil {
		return errors.New("random source is required")
	}
	if e.Steps <= 0 {
		return errors.New("steps must be > 0")
	}
	if e.StepSize <= 0 {
		return errors.New("step size must be > 0")
	}
	if e.PerturbationRange < 0 {
		return errors.New("perturbation range must be >= 0")
	}
	if e.AnnealingFactor < 0 {
		return errors.New("annealing factor must be >= 0")
	}
	if e.MinImprovement < 0 {
		return errors.New("min improvement must be >= 0")
	}
	if e.Workers < 0 {
		return errors.New("workers must be >= 0")
	}
	return problem.Validate()
}

// Tune spends at most budget objective evaluations, the initial point
// included.
func (e *Exoself) Tune(ctx context.Context, problem Problem, budget int) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := e.validate(problem); err != nil {
		return Result{}, err
	}
	perturbationRange := e.PerturbationRange
	if perturbationRange == 0 {
		perturbationRange = 1.0
	}
	annealingFactor := e.AnnealingFactor
	if annealingFactor == 0 {
		annealingFactor = 1.0
	}
	log := e.logger()

	report := TuneReport{AttemptsPlanned: budget}
	original := problem.Bounds.Normalize(problem.Initial)
	clampUnit(original)
	initialScore, err := problem.Objective(ctx, problem.Initial)
	if err != nil {
		return Result{}, err
	}
	report.CandidateEvaluations++
	if math.IsInf(initialScore, 1) {
		report.DivergedCandidates++
	}

	best := append([]float64(nil), original...)
	bestScore := initialScore
	history := []float64{initialScore}
	recent := append([]float64(nil), best...)
	if e.GoalScore > 0 && bestScore <= e.GoalScore {
		report.GoalReached = true
	}

	for !report.GoalReached && report.CandidateEvaluations < budget {
		bases, err := e.candidateBases(best, original, recent)
		if err != nil {
			return Result{}, err
		}
		if remaining := budget - report.CandidateEvaluations; len(bases) > remaining {
			bases = bases[:remaining]
		}
		candidates := make([][]float64, len(bases))
		for i, base := range bases {
			candidates[i] = e.perturbCandidate(base, perturbationRange, annealingFactor)
		}
		scores, err := e.evaluate(ctx, problem, candidates)
		if err != nil {
			return Result{}, err
		}
		report.AttemptsExecuted++
		report.CandidateEvaluations += len(candidates)

		localBest := best
		localBestScore := bestScore
		for i, score := range scores {
			if math.IsInf(score, 1) {
				report.DivergedCandidates++
			}
			if score < localBestScore-e.MinImprovement {
				localBest = candidates[i]
				localBestScore = score
			}
		}
		recent = append([]float64(nil), localBest...)
		if localBestScore < bestScore-e.MinImprovement {
			report.AcceptedCandidates++
			log.WithFields(logrus.Fields{
				"attempt":     report.AttemptsExecuted,
				"evaluations": report.CandidateEvaluations,
				"score":       localBestScore,
				"previous":    bestScore,
			}).Info("hill climb improved")
			best = localBest
			bestScore = localBestScore
			history = append(history, bestScore)
		} else {
			report.RejectedCandidates++
		}
		if e.GoalScore > 0 && bestScore <= e.GoalScore {
			report.GoalReached = true
		}
	}

	return Result{
		X:            problem.Bounds.Denormalize(best),
		Score:        bestScore,
		InitialScore: initialScore,
		History:      history,
		Report:       report,
	}, nil
}

func (e *Exoself) evaluate(ctx context.Context, problem Problem, candidates [][]float64) ([]float64, error) {
	scores := make([]float64, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	if e.Workers > 0 {
		g.SetLimit(e.Workers)
	} else {
		g.SetLimit(1)
	}
	for i, u := range candidates {
		g.Go(func() error {
			score, err := problem.Objective(gctx, problem.Bounds.Denormalize(u))
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

func (e *Exoself) randIntn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Rand.Intn(n)
}

func (e *Exoself) randFloat64() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Rand.Float64()
}

func NormalizeCandidateSelectionName(name string) string {
	switch name {
	case "", CandidateSelectBestSoFar:
		return CandidateSelectBestSoFar
	default:
		return name
	}
}

func (e *Exoself) candidateBases(best, original, recent []float64) ([][]float64, error) {
	mode := NormalizeCandidateSelectionName(e.CandidateSelection)
	if isRandomSelection(mode) {
		pool, err := candidateBasesForMode(nonRandomModeFor(mode), best, original, recent)
		if err != nil {
			return nil, err
		}
		return e.randomSubset(pool), nil
	}
	return candidateBasesForMode(mode, best, original, recent)
}

func candidateBasesForMode(mode string, best, original, recent []float64) ([][]float64, error) {
	switch mode {
	case CandidateSelectBestSoFar:
		return [][]float64{best}, nil
	case CandidateSelectOriginal:
		return [][]float64{original}, nil
	case CandidateSelectDynamicA:
		return [][]float64{best, original}, nil
	case CandidateSelectRecent:
		return [][]float64{recent}, nil
	case CandidateSelectAll:
		return [][]float64{best, original, recent}, nil
	default:
		return nil, errors.New("unsupported candidate selection")
	}
}

func isRandomSelection(mode string) bool {
	switch mode {
	case CandidateSelectDynamic, CandidateSelectAllRandom, CandidateSelectRecentRnd:
		return true
	default:
		return false
	}
}

func nonRandomModeFor(mode string) string {
	switch mode {
	case CandidateSelectDynamic:
		return CandidateSelectDynamicA
	case CandidateSelectAllRandom:
		return CandidateSelectAll
	case CandidateSelectRecentRnd:
		return CandidateSelectRecent
	default:
		return mode
	}
}

func (e *Exoself) randomSubset(pool [][]float64) [][]float64 {
	if len(pool) <= 1 {
		return pool
	}
	keepP := 1 / math.Sqrt(float64(len(pool)))
	chosen := make([][]float64, 0, len(pool))
	for i := range pool {
		if e.randFloat64() < keepP {
			chosen = append(chosen, pool[i])
		}
	}
	if len(chosen) > 0 {
		return chosen
	}
	return [][]float64{pool[e.randIntn(len(pool))]}
}

// perturbCandidate nudges Steps random coordinates of base. The spread
// shrinks geometrically with annealingFactor.
func (e *Exoself) perturbCandidate(base []float64, perturbationRange, annealingFactor float64) []float64 {
	candidate := append([]float64(nil), base...)
	for s := 0; s < e.Steps; s++ {
		idx := e.randIntn(len(candidate))
		spread := e.StepSize * perturbationRange * math.Pow(annealingFactor, float64(s))
		candidate[idx] += (e.randFloat64()*2 - 1) * spread
	}
	clampUnit(candidate)
	return candidate
}

func clampUnit(u []float64) {
	for i := range u {
		u[i] = math.Min(1, math.Max(0, u[i]))
	}
}
