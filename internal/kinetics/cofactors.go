package kinetics

import "math"

// Cofactors are the energy and redox carriers the model treats as known
// functions of time.
type Cofactors struct {
	ADP   float64 `json:"adp"`
	AMP   float64 `json:"amp"`
	ATP   float64 `json:"atp"`
	NAD   float64 `json:"nad"`
	NADH  float64 `json:"nadh"`
	NADP  float64 `json:"nadp"`
	NADPH float64 `json:"nadph"`
}

// BaselineCofactors are the pre-pulse concentrations (mM).
func BaselineCofactors() Cofactors {
	return Cofactors{
		ADP:   0.582,
		AMP:   0.123,
		ATP:   4.27,
		NAD:   1.314,
		NADH:  0.0934,
		NADP:  0.159,
		NADPH: 0.062,
	}
}

// CofactorsAt evaluates the cofactor pools at time t (s). Before the pulse
// (t <= 0) or when perturbed is false the baseline is returned. After the
// pulse the empirical curves fitted by Chassagnole et al. apply; they jump
// away from the baseline at t = 0+ (AMP and NAD most visibly).
func CofactorsAt(t float64, perturbed bool) Cofactors {
	if !perturbed || t <= 0 {
		return BaselineCofactors()
	}
	return Cofactors{
		ADP: 0.582 + 1.73*math.Pow(2.731, -0.15*t)*(0.12*t+0.000214*t*t*t),
		AMP: 0.123 + 7.25*(t/(7.25+1.47*t+0.17*t*t)) + 1.073/(1.29+8.05*t),
		ATP: 4.27 - 4.163*(t/(0.657+1.43*t+0.0364*t*t)),
		NAD: 1.314 + 1.314*math.Pow(2.73, -0.0435*t-0.342) -
			(t+7.871)*(math.Pow(2.73, -0.0218*t-0.171)/(8.481+t)),
		NADH: 0.0934 + 0.00111*math.Pow(2.371, -0.123*t)*(0.844*t+0.104*t*t*t),
		NADP: 0.159 - 0.00554*(t/(2.8-0.271*t+0.01*t*t)) + 0.182/(4.82+0.526*t),
		NADPH: 0.062 + 0.332*math.Pow(2.718, -0.464*t)*(0.0166*math.Pow(t, 1.58)+
			0.000166*math.Pow(t, 4.73)+
			0.1312e-9*math.Pow(t, 7.89)+
			0.1362e-12*math.Pow(t, 11)+
			0.1233e-15*math.Pow(t, 14.2)),
	}
}
