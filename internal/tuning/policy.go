package tuning

import (
	"fmt"
	"math"
)

// BudgetPolicy turns a base evaluation budget into the budget for a problem
// with dim free parameters.
type BudgetPolicy interface {
	Name() string
	Budget(base, dim int) int
}

type FixedBudgetPolicy struct{}

func (FixedBudgetPolicy) Name() string { return "fixed" }

func (FixedBudgetPolicy) Budget(base, _ int) int {
	if base < 0 {
		return 0
	}
	return base
}

// DimensionScaledBudgetPolicy grows the budget by 10% per free parameter.
type DimensionScaledBudgetPolicy struct {
	Scale     float64
	MinBudget int
	MaxBudget int
}

func (DimensionScaledBudgetPolicy) Name() string { return "dimension_scaled" }

func (p DimensionScaledBudgetPolicy) Budget(base, dim int) int {
	if base <= 0 {
		return 0
	}
	scale := p.Scale
	if scale <= 0 {
		scale = 1.0
	}
	budget := int(float64(base) * scale * (1.0 + float64(dim)/10.0))
	if budget < p.MinBudget {
		budget = p.MinBudget
	}
	if p.MaxBudget > 0 && budget > p.MaxBudget {
		budget = p.MaxBudget
	}
	return budget
}

// DimensionProportionalBudgetPolicy adds round(dim^Power), capped at 1000, to
// the base budget.
type DimensionProportionalBudgetPolicy struct {
	Power float64
}

func (DimensionProportionalBudgetPolicy) Name() string { return "dimension_proportional" }

func (p DimensionProportionalBudgetPolicy) Budget(base, dim int) int {
	if base <= 0 {
		return 0
	}
	power := p.Power
	if power <= 0 {
		power = 1.0
	}
	return base + satInt(int(math.Round(math.Pow(float64(dim), power))), 0, 1000)
}

func BudgetPolicyFromConfig(name string, param float64) (BudgetPolicy, error) {
	switch NormalizeBudgetPolicyName(name) {
	case "fixed":
		return FixedBudgetPolicy{}, nil
	case "dimension_scaled":
		scale := param
		if scale <= 0 {
			scale = 1.0
		}
		return DimensionScaledBudgetPolicy{Scale: scale, MinBudget: 1}, nil
	case "dimension_proportional":
		power := param
		if power <= 0 {
			power = 1.0
		}
		return DimensionProportionalBudgetPolicy{Power: power}, nil
	default:
		return nil, fmt.Errorf("unsupported budget policy: %s", name)
	}
}

func NormalizeBudgetPolicyName(name string) string {
	switch name {
	case "", "fixed", "const":
		return "fixed"
	default:
		return name
	}
}

func satInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
