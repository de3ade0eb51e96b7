package integrator

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// Rosenbrock coefficients of the L-stable 2(3) pair of Shampine and
// Reichelt (MATLAB ode23s).
var (
	rosD   = 1 / (2 + math.Sqrt2)
	rosE32 = 6 + math.Sqrt2
)

// Rosenbrock23 is a linearly implicit method for stiff systems. Each step
// takes a finite-difference Jacobian, factorizes W = I - h*d*J once and
// solves three linear systems. Output times are served from the method's
// continuous extension, so the step size is never cut to hit them.
type Rosenbrock23 struct {
	Config Config
}

func NewRosenbrock23(cfg Config) (*Rosenbrock23, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("integrator config: %w", err)
	}
	return &Rosenbrock23{Config: cfg}, nil
}

func (r *Rosenbrock23) Name() string {
	return "rosenbrock23"
}

func (r *Rosenbrock23) Integrate(ctx context.Context, f Func, y0 []float64, times []float64) (Solution, error) {
	if f == nil {
		return Solution{}, errors.New("rhs function is required")
	}
	if err := checkTimes(times); err != nil {
		return Solution{}, err
	}
	cfg := r.Config
	if err := cfg.Validate(); err != nil {
		return Solution{}, fmt.Errorf("integrator config: %w", err)
	}

	n := len(y0)
	sol := Solution{
		Times:  append([]float64(nil), times...),
		States: make([][]float64, 0, len(times)),
	}
	sol.States = append(sol.States, append([]float64(nil), y0...))
	if len(times) == 1 {
		return sol, nil
	}

	var stats Statistics
	eval := func(t float64, y, dst []float64) {
		stats.Evaluations++
		f(t, y, dst)
	}

	y := append([]float64(nil), y0...)
	yNew := make([]float64, n)
	yMid := make([]float64, n)
	f0 := make([]float64, n)
	f1 := make([]float64, n)
	f2 := make([]float64, n)
	fa := make([]float64, n)
	fb := make([]float64, n)
	dfdt := make([]float64, n)
	k1 := make([]float64, n)
	k2 := make([]float64, n)
	k3 := make([]float64, n)
	rhs := mat.NewVecDense(n, nil)
	k1v := mat.NewVecDense(n, k1)
	k2v := mat.NewVecDense(n, k2)
	k3v := mat.NewVecDense(n, k3)
	jac := mat.NewDense(n, n, nil)
	w := mat.NewDense(n, n, nil)
	var lu mat.LU

	t := times[0]
	tEnd := times[len(times)-1]
	h := math.Min(cfg.InitialStep, cfg.MaxStep)
	next := 1

	for next < len(times) {
		if err := ctx.Err(); err != nil {
			return Solution{}, err
		}
		if !allFinite(y) {
			return Solution{}, &SimulationDivergedError{Time: t, Step: h, Reason: ErrNonFinite}
		}

		eval(t, y, f0)
		tFixed := t
		fd.Jacobian(jac, func(dst, x []float64) {
			eval(tFixed, x, dst)
		}, y, &fd.JacobianSettings{OriginValue: f0})
		stats.Jacobians++

		// One-sided time derivative sampled inside the step so that the
		// cofactor switch at t = 0 is seen from the right.
		delta := math.Sqrt(2.220446049250313e-16) * math.Max(1, math.Abs(t))
		eval(t+delta, y, fa)
		eval(t+2*delta, y, fb)
		for i := range dfdt {
			dfdt[i] = (fb[i] - fa[i]) / delta
		}

		var errNorm float64
		last := false
		for {
			if stats.Steps+stats.Rejected >= cfg.MaxSteps {
				return Solution{}, &SimulationDivergedError{Time: t, Step: h, Reason: ErrStepBudget}
			}
			h = math.Min(h, cfg.MaxStep)
			last = false
			if t+h >= tEnd {
				h = tEnd - t
				last = true
			}
			if h < cfg.MinStep {
				return Solution{}, &SimulationDivergedError{Time: t, Step: h, Reason: ErrStepTooSmall}
			}

			hd := h * rosD
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					v := -hd * jac.At(i, j)
					if i == j {
						v += 1
					}
					w.Set(i, j, v)
				}
			}
			lu.Factorize(w)
			if math.IsInf(lu.Cond(), 1) {
				stats.Rejected++
				h *= 0.5
				continue
			}

			for i := 0; i < n; i++ {
				rhs.SetVec(i, f0[i]+hd*dfdt[i])
			}
			if err := solveLU(&lu, k1v, rhs); err != nil {
				return Solution{}, err
			}

			for i := 0; i < n; i++ {
				yMid[i] = y[i] + 0.5*h*k1[i]
			}
			eval(t+0.5*h, yMid, f1)
			for i := 0; i < n; i++ {
				rhs.SetVec(i, f1[i]-k1[i])
			}
			if err := solveLU(&lu, k2v, rhs); err != nil {
				return Solution{}, err
			}
			for i := 0; i < n; i++ {
				k2[i] += k1[i]
				yNew[i] = y[i] + h*k2[i]
			}

			eval(t+h, yNew, f2)
			for i := 0; i < n; i++ {
				rhs.SetVec(i, f2[i]-rosE32*(k2[i]-f1[i])-2*(k1[i]-f0[i])+hd*dfdt[i])
			}
			if err := solveLU(&lu, k3v, rhs); err != nil {
				return Solution{}, err
			}

			errNorm = errorNorm(h, k1, k2, k3, y, yNew, cfg.RelTol, cfg.AbsTol)
			if errNorm <= 1 {
				break
			}
			stats.Rejected++
			fac := 0.2
			if !math.IsNaN(errNorm) && !math.IsInf(errNorm, 0) {
				fac = math.Max(0.2, 0.9*math.Pow(errNorm, -1.0/3.0))
			}
			h *= fac
		}

		tNew := t + h
		if last {
			tNew = tEnd
		}
		for next < len(times) && (last || times[next] <= tNew) {
			s := (times[next] - t) / h
			a := s * (1 - s) / (1 - 2*rosD)
			b := s * (s - 2*rosD) / (1 - 2*rosD)
			out := make([]float64, n)
			for i := 0; i < n; i++ {
				out[i] = y[i] + h*(a*k1[i]+b*k2[i])
			}
			sol.States = append(sol.States, out)
			next++
		}

		copy(y, yNew)
		t = tNew
		stats.Steps++
		stats.LastStep = h
		if maxAbs(y) > cfg.MaxAbsState {
			return Solution{}, &SimulationDivergedError{Time: t, Step: h, Reason: ErrStateBound}
		}

		fac := 5.0
		if errNorm > 0 {
			fac = math.Min(5, math.Max(0.2, 0.9*math.Pow(errNorm, -1.0/3.0)))
		}
		h *= fac
	}

	sol.Stats = stats
	return sol, nil
}

// errorNorm is the RMS of the embedded error estimate h/6*(k1-2k2+k3)
// scaled by the mixed tolerance.
func errorNorm(h float64, k1, k2, k3, y, yNew []float64, rtol, atol float64) float64 {
	var sum float64
	for i := range y {
		e := h / 6 * (k1[i] - 2*k2[i] + k3[i])
		sc := atol + rtol*math.Max(math.Abs(y[i]), math.Abs(yNew[i]))
		sum += (e / sc) * (e / sc)
	}
	return math.Sqrt(sum / float64(len(y)))
}

func solveLU(lu *mat.LU, dst *mat.VecDense, b *mat.VecDense) error {
	err := lu.SolveVecTo(dst, false, b)
	if err == nil {
		return nil
	}
	var cond mat.Condition
	if errors.As(err, &cond) {
		// Ill-conditioned but solved; the error estimate decides.
		return nil
	}
	return fmt.Errorf("solve stage system: %w", err)
}

func allFinite(y []float64) bool {
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func maxAbs(y []float64) float64 {
	m := 0.0
	for _, v := range y {
		if math.IsNaN(v) {
			return math.Inf(1)
		}
		m = math.Max(m, math.Abs(v))
	}
	return m
}
