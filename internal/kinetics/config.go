package kinetics

import (
	"errors"
	"math"
)

// Config holds the fixed constants of the model.
type Config struct {
	// Feed is the glucose concentration of the feed medium (mM).
	Feed float64 `json:"feed" yaml:"feed"`
	// Dilution is the chemostat dilution rate (1/s).
	Dilution float64 `json:"dilution" yaml:"dilution"`
	// GrowthRate dilutes every intracellular pool (1/s).
	GrowthRate float64 `json:"growth_rate" yaml:"growth_rate"`
	// Cytosol and Extracellular are compartment volume fractions.
	Cytosol       float64 `json:"cytosol" yaml:"cytosol"`
	Extracellular float64 `json:"extracellular" yaml:"extracellular"`
	// PTSStoichiometry converts the extracellular PTS rate to intracellular
	// units (extracellular volume per cytosolic volume).
	PTSStoichiometry float64 `json:"pts_stoichiometry" yaml:"pts_stoichiometry"`
	// Perturbed selects the time-varying cofactor curves for t > 0. When
	// false the cofactors stay at baseline for all t.
	Perturbed bool `json:"perturbed" yaml:"perturbed"`
}

func DefaultConfig() Config {
	return Config{
		Feed:             111.1,
		Dilution:         2.78e-05,
		GrowthRate:       2.78e-05,
		Cytosol:          1,
		Extracellular:    1,
		PTSStoichiometry: 64.82759,
		Perturbed:        true,
	}
}

func (c Config) Validate() error {
	if c.Cytosol <= 0 || c.Extracellular <= 0 {
		return errors.New("compartment volumes must be > 0")
	}
	if c.Feed < 0 {
		return errors.New("feed must be >= 0")
	}
	if c.Dilution < 0 || c.GrowthRate < 0 {
		return errors.New("dilution and growth rate must be >= 0")
	}
	if c.PTSStoichiometry <= 0 || math.IsInf(c.PTSStoichiometry, 0) {
		return errors.New("pts stoichiometry must be finite and > 0")
	}
	return nil
}
