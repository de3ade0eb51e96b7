package kinetics

import (
	"fmt"
	"math"
	"sort"
)

// ParameterNames returns the canonical parameter names in file order.
func ParameterNames() []string {
	names := make([]string, ParameterCount)
	for i, f := range parameterFields {
		names[i] = f.name
	}
	return names
}

// ParametersFromSlice binds an ordered value list to named parameters. The
// list must hold exactly ParameterCount values.
func ParametersFromSlice(values []float64) (Parameters, error) {
	if len(values) != ParameterCount {
		return Parameters{}, &ParameterCountError{Got: len(values), Want: ParameterCount}
	}
	var p Parameters
	for i, f := range parameterFields {
		*f.field(&p) = values[i]
	}
	return p, nil
}

// ParametersFromMap binds a name/value mapping. The key set must match the
// canonical names exactly.
func ParametersFromMap(values map[string]float64) (Parameters, error) {
	var p Parameters
	seen := make(map[string]bool, len(values))
	var missing []string
	for _, f := range parameterFields {
		v, ok := values[f.name]
		if !ok {
			missing = append(missing, f.name)
			continue
		}
		seen[f.name] = true
		*f.field(&p) = v
	}
	var unknown []string
	for name := range values {
		if !seen[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	if len(missing) > 0 || len(unknown) > 0 {
		return Parameters{}, &ParameterCountError{
			Got:     len(values),
			Want:    ParameterCount,
			Missing: missing,
			Unknown: unknown,
		}
	}
	return p, nil
}

// Slice returns the values in canonical order.
func (p Parameters) Slice() []float64 {
	out := make([]float64, ParameterCount)
	for i, f := range parameterFields {
		out[i] = *f.field(&p)
	}
	return out
}

// Map returns the values keyed by canonical name.
func (p Parameters) Map() map[string]float64 {
	out := make(map[string]float64, ParameterCount)
	for _, f := range parameterFields {
		out[f.name] = *f.field(&p)
	}
	return out
}

// Lookup returns the named value.
func (p Parameters) Lookup(name string) (float64, bool) {
	for _, f := range parameterFields {
		if f.name == name {
			return *f.field(&p), true
		}
	}
	return 0, false
}

// With returns a copy of p with one value replaced.
func (p Parameters) With(name string, value float64) (Parameters, error) {
	for _, f := range parameterFields {
		if f.name == name {
			*f.field(&p) = value
			return p, nil
		}
	}
	return Parameters{}, fmt.Errorf("unknown parameter %q", name)
}

// Validate checks that every constant is a finite positive number.
func (p Parameters) Validate() error {
	for _, f := range parameterFields {
		v := *f.field(&p)
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("parameter %s must be finite and > 0, got %g", f.name, v)
		}
	}
	return nil
}

// Scaled returns a copy with every value multiplied by factor. Fit bounds are
// built this way.
func (p Parameters) Scaled(factor float64) Parameters {
	values := p.Slice()
	for i := range values {
		values[i] *= factor
	}
	out, _ := ParametersFromSlice(values)
	return out
}
