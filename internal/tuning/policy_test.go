package tuning

import "testing"

func TestFixedBudgetPolicy(t *testing.T) {
	p := FixedBudgetPolicy{}
	if got := p.Budget(40, 30); got != 40 {
		t.Fatalf("expected fixed budget=40, got=%d", got)
	}
	if got := p.Budget(-3, 30); got != 0 {
		t.Fatalf("expected negative base clamped to 0, got=%d", got)
	}
}

func TestDimensionScaledBudgetPolicy(t *testing.T) {
	p := DimensionScaledBudgetPolicy{Scale: 1.0, MinBudget: 1}
	if got := p.Budget(4, 10); got != 8 {
		t.Fatalf("expected scaled budget=8, got=%d", got)
	}
	capped := DimensionScaledBudgetPolicy{Scale: 1.0, MaxBudget: 5}
	if got := capped.Budget(4, 10); got != 5 {
		t.Fatalf("expected capped budget=5, got=%d", got)
	}
}

func TestDimensionProportionalBudgetPolicy(t *testing.T) {
	p := DimensionProportionalBudgetPolicy{Power: 2}
	if got := p.Budget(10, 5); got != 35 {
		t.Fatalf("expected budget=35, got=%d", got)
	}
	if got := p.Budget(10, 100); got != 1010 {
		t.Fatalf("expected capped budget=1010, got=%d", got)
	}
}

func TestBudgetPolicyFromConfig(t *testing.T) {
	for _, name := range []string{"", "fixed", "const", "dimension_scaled", "dimension_proportional"} {
		if _, err := BudgetPolicyFromConfig(name, 0); err != nil {
			t.Fatalf("%q policy: %v", name, err)
		}
	}
	if _, err := BudgetPolicyFromConfig("unknown", 1); err == nil {
		t.Fatal("expected unknown policy error")
	}
}

func TestBoundsAround(t *testing.T) {
	b, err := BoundsAround([]float64{2, 4}, 0.75, 1.5)
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	if b.Lower[0] != 1.5 || b.Upper[1] != 6 {
		t.Fatalf("unexpected bounds: %+v", b)
	}
	x := []float64{0, 10}
	b.Clamp(x)
	if x[0] != 1.5 || x[1] != 6 {
		t.Fatalf("unexpected clamp: %v", x)
	}
	if _, err := BoundsAround([]float64{1}, 1.5, 0.75); err == nil {
		t.Fatal("expected inverted factors error")
	}
	if _, err := BoundsAround([]float64{0}, 0.75, 1.5); err == nil {
		t.Fatal("expected empty bound for zero value")
	}
}
