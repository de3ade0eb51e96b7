package kinetics

import (
	"fmt"
	"strings"
)

// StateSize is the number of integrated metabolite pools.
const StateSize = 18

// Indices into State.
const (
	DHAP = iota
	E4P
	PG2
	PG3
	PGP
	RIB5P
	RIBU5P
	SED7P
	XYL5P
	F6P
	FDP
	G1P
	G6P
	GAP
	GLCEX
	PEP
	PG
	PYR
)

var stateNames = [StateSize]string{
	"dhap", "e4p", "pg2", "pg3", "pgp", "rib5p", "ribu5p", "sed7p", "xyl5p",
	"f6p", "fdp", "g1p", "g6p", "gap", "glcex", "pep", "pg", "pyr",
}

// State holds metabolite concentrations (mM) in canonical order.
type State [StateSize]float64

// StateNames returns the metabolite names in canonical order.
func StateNames() []string {
	return append([]string(nil), stateNames[:]...)
}

// StateIndex resolves a metabolite name. The "c" prefix used by the
// experimental data files ("cpyr") is accepted.
func StateIndex(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, n := range stateNames {
		if n == name {
			return i, true
		}
	}
	if strings.HasPrefix(name, "c") {
		trimmed := name[1:]
		for i, n := range stateNames {
			if n == trimmed {
				return i, true
			}
		}
	}
	return 0, false
}

// Get returns the named concentration.
func (s State) Get(name string) (float64, error) {
	idx, ok := StateIndex(name)
	if !ok {
		return 0, fmt.Errorf("unknown metabolite %q", name)
	}
	return s[idx], nil
}

// With returns a copy of s with the named pool replaced.
func (s State) With(name string, value float64) (State, error) {
	idx, ok := StateIndex(name)
	if !ok {
		return State{}, fmt.Errorf("unknown metabolite %q", name)
	}
	s[idx] = value
	return s, nil
}

// Map returns concentrations keyed by metabolite name.
func (s State) Map() map[string]float64 {
	out := make(map[string]float64, StateSize)
	for i, n := range stateNames {
		out[n] = s[i]
	}
	return out
}

// StateFromMap builds a State from a complete name/value mapping.
func StateFromMap(values map[string]float64) (State, error) {
	var s State
	set := 0
	for name, v := range values {
		idx, ok := StateIndex(name)
		if !ok {
			return State{}, fmt.Errorf("unknown metabolite %q", name)
		}
		s[idx] = v
		set++
	}
	if set != StateSize {
		return State{}, fmt.Errorf("state requires %d metabolites, got %d", StateSize, set)
	}
	return s, nil
}

// PublishedInitialState is the pre-pulse state reported by Chassagnole et al.
// It is a fixed point of BaselineModel before the pulse.
func PublishedInitialState() State {
	return State{
		0.185, 0.103, 0.422, 2.254, 0.008, 0.393, 0.108, 0.246, 0.137,
		0.570, 0.334, 0.616, 3.307, 0.242, 0.043, 2.824, 0.793, 2.669,
	}
}

// PulseGlucose is the extracellular glucose concentration right after the
// pulse.
const PulseGlucose = 2.0
