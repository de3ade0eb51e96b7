package tuning

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ObjectiveFn scores a candidate point. Lower is better.
type ObjectiveFn func(ctx context.Context, x []float64) (float64, error)

// Bounds is a box constraint. Lower[i] < Upper[i] for every i.
type Bounds struct {
	Lower []float64 `json:"lower"`
	Upper []float64 `json:"upper"`
}

// BoundsAround returns [lowerFactor*x0, upperFactor*x0] per component.
func BoundsAround(x0 []float64, lowerFactor, upperFactor float64) (Bounds, error) {
	if !(lowerFactor > 0) || !(upperFactor > lowerFactor) {
		return Bounds{}, fmt.Errorf("bound factors must satisfy 0 < lower < upper, got %g and %g", lowerFactor, upperFactor)
	}
	b := Bounds{Lower: make([]float64, len(x0)), Upper: make([]float64, len(x0))}
	for i, v := range x0 {
		b.Lower[i] = lowerFactor * v
		b.Upper[i] = upperFactor * v
	}
	return b, b.Validate()
}

func (b Bounds) Validate() error {
	if len(b.Lower) != len(b.Upper) {
		return errors.New("bounds length mismatch")
	}
	for i := range b.Lower {
		if !(b.Upper[i] > b.Lower[i]) || math.IsInf(b.Upper[i]-b.Lower[i], 0) {
			return fmt.Errorf("bound %d is empty: [%g, %g]", i, b.Lower[i], b.Upper[i])
		}
	}
	return nil
}

func (b Bounds) Dim() int {
	return len(b.Lower)
}

// Clamp projects x onto the box in place.
func (b Bounds) Clamp(x []float64) {
	for i := range x {
		x[i] = math.Min(b.Upper[i], math.Max(b.Lower[i], x[i]))
	}
}

// Normalize maps x to the unit cube.
func (b Bounds) Normalize(x []float64) []float64 {
	u := make([]float64, len(x))
	for i := range x {
		u[i] = (x[i] - b.Lower[i]) / (b.Upper[i] - b.Lower[i])
	}
	return u
}

// Denormalize maps a unit-cube point back into the box.
func (b Bounds) Denormalize(u []float64) []float64 {
	x := make([]float64, len(u))
	for i := range u {
		x[i] = b.Lower[i] + u[i]*(b.Upper[i]-b.Lower[i])
	}
	return x
}

// Problem is a bounded minimization.
type Problem struct {
	Initial   []float64
	Bounds    Bounds
	Objective ObjectiveFn
}

func (p Problem) Validate() error {
	if p.Objective == nil {
		return errors.New("objective function is required")
	}
	if len(p.Initial) == 0 {
		return errors.New("initial point is required")
	}
	if err := p.Bounds.Validate(); err != nil {
		return err
	}
	if p.Bounds.Dim() != len(p.Initial) {
		return fmt.Errorf("bounds have %d dimensions, initial point has %d", p.Bounds.Dim(), len(p.Initial))
	}
	return nil
}

type TuneReport struct {
	AttemptsPlanned      int  `json:"attempts_planned"`
	AttemptsExecuted     int  `json:"attempts_executed"`
	CandidateEvaluations int  `json:"candidate_evaluations"`
	AcceptedCandidates   int  `json:"accepted_candidates"`
	RejectedCandidates   int  `json:"rejected_candidates"`
	DivergedCandidates   int  `json:"diverged_candidates"`
	GoalReached          bool `json:"goal_reached"`
}

// Result is the best point found. History starts with the initial score and
// gains one entry per accepted improvement.
type Result struct {
	X            []float64  `json:"x"`
	Score        float64    `json:"score"`
	InitialScore float64    `json:"initial_score"`
	History      []float64  `json:"history"`
	Report       TuneReport `json:"report"`
}

// Tuner minimizes a bounded problem within an evaluation budget.
type Tuner interface {
	Name() string
	Tune(ctx context.Context, problem Problem, budget int) (Result, error)
}
