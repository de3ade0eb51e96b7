package kinetics

import "math"

// FluxCount is the number of reactions in the model.
const FluxCount = 48

// Fluxes holds the reaction rates (mM/s). Dilution fluxes are named after
// the pool they drain (DHAP, E4P, ...).
type Fluxes struct {
	ALDO       float64
	DAHPS      float64
	DHAP       float64
	E4P        float64
	ENO        float64
	EXTER      float64
	G1PAT      float64
	G3PDH      float64
	G6P        float64
	G6PDH      float64
	GAP        float64
	GAPDH      float64
	GLP        float64
	MurSynth   float64
	MethSynth  float64
	PDH        float64
	PEP        float64
	PFK        float64
	PG         float64
	PG3        float64
	PGDH       float64
	PGI        float64
	PGK        float64
	PGM        float64
	PGP        float64
	PK         float64
	RPPK       float64
	PTS        float64
	R5PI       float64
	RIB5P      float64
	Ribu5P     float64
	Ru5P       float64
	SED7P      float64
	Synth1     float64
	Synth2     float64
	TA         float64
	TIS        float64
	TKA        float64
	TKB        float64
	TrpSynth   float64
	XYL5P      float64
	F6P        float64
	FDP        float64
	PepCxylase float64
	PG2        float64
	PYR        float64
	PGluMu     float64
	SerSynth   float64
}

var fluxNames = [FluxCount]string{
	"vALDO", "vDAHPS", "vDHAP", "vE4P", "vENO", "vEXTER", "vG1PAT", "vG3PDH",
	"vG6P", "vG6PDH", "vGAP", "vGAPDH", "vGLP", "vMURSyNTH", "vMethSynth", "vPDH",
	"vPEP", "vPFK", "vPG", "vPG3", "vPGDH", "vPGI", "vPGK", "vPGM",
	"vPGP", "vPK", "vRPPK", "vPTS", "vR5PI", "vRIB5P", "vRibu5p", "vRu5P",
	"vSED7P", "vSynth1", "vSynth2", "vTA", "vTIS", "vTKA", "vTKB", "vTRPSYNTH",
	"vXYL5P", "vf6P", "vfdP", "vpepCxylase", "vpg2", "vpyr", "vrpGluMu", "vsersynth",
}

// FluxNames returns the reaction labels in canonical order.
func FluxNames() []string {
	return append([]string(nil), fluxNames[:]...)
}

func (f *Fluxes) fields() [FluxCount]*float64 {
	return [FluxCount]*float64{
		&f.ALDO, &f.DAHPS, &f.DHAP, &f.E4P, &f.ENO, &f.EXTER, &f.G1PAT, &f.G3PDH,
		&f.G6P, &f.G6PDH, &f.GAP, &f.GAPDH, &f.GLP, &f.MurSynth, &f.MethSynth, &f.PDH,
		&f.PEP, &f.PFK, &f.PG, &f.PG3, &f.PGDH, &f.PGI, &f.PGK, &f.PGM,
		&f.PGP, &f.PK, &f.RPPK, &f.PTS, &f.R5PI, &f.RIB5P, &f.Ribu5P, &f.Ru5P,
		&f.SED7P, &f.Synth1, &f.Synth2, &f.TA, &f.TIS, &f.TKA, &f.TKB, &f.TrpSynth,
		&f.XYL5P, &f.F6P, &f.FDP, &f.PepCxylase, &f.PG2, &f.PYR, &f.PGluMu, &f.SerSynth,
	}
}

// Slice returns the rates in canonical order.
func (f Fluxes) Slice() []float64 {
	out := make([]float64, FluxCount)
	for i, p := range f.fields() {
		out[i] = *p
	}
	return out
}

// FluxesFromSlice is the inverse of Fluxes.Slice.
func FluxesFromSlice(values []float64) (Fluxes, bool) {
	if len(values) != FluxCount {
		return Fluxes{}, false
	}
	var f Fluxes
	for i, p := range f.fields() {
		*p = values[i]
	}
	return f, true
}

// ComputeFluxes evaluates every rate law at one state. Concentrations are
// used as given; negative values produced by an integrator overshoot are not
// clamped and can make the Hill and MWC terms non-finite.
func ComputeFluxes(s State, c Cofactors, p *Parameters, cfg Config) Fluxes {
	var (
		dhap, e4p, pg2, pg3       = s[DHAP], s[E4P], s[PG2], s[PG3]
		pgp, rib5p, ribu5p, sed7p = s[PGP], s[RIB5P], s[RIBU5P], s[SED7P]
		xyl5p, f6p, fdp, g1p      = s[XYL5P], s[F6P], s[FDP], s[G1P]
		g6p, gap, glcex, pep      = s[G6P], s[GAP], s[GLCEX], s[PEP]
		pg, pyr                   = s[PG], s[PYR]

		vc = cfg.Cytosol
		ve = cfg.Extracellular
		mu = cfg.GrowthRate
	)

	var f Fluxes

	f.ALDO = vc * p.RmaxALDO * (fdp - gap*dhap/p.KALDOeq) /
		(p.KALDOfdp + fdp +
			p.KALDOgap*dhap/(p.KALDOeq*p.VALDOblf) +
			p.KALDOdhap*gap/(p.KALDOeq*p.VALDOblf) +
			fdp*gap/p.KALDOgapinh +
			gap*dhap/(p.VALDOblf*p.KALDOeq))

	f.DAHPS = vc * p.RmaxDAHPS * math.Pow(e4p, p.NDAHPSe4p) * math.Pow(pep, p.NDAHPSpep) /
		((p.KDAHPSe4p + math.Pow(e4p, p.NDAHPSe4p)) * (p.KDAHPSpep + math.Pow(pep, p.NDAHPSpep)))

	f.ENO = vc * p.RmaxENO * (pg2 - pep/p.KENOeq) /
		(p.KENOpg2*(1+pep/p.KENOpep) + pg2)

	f.EXTER = ve * cfg.Dilution * (cfg.Feed - glcex)

	f.G1PAT = vc * p.RmaxG1PAT * g1p * c.ATP * (1 + math.Pow(fdp/p.KG1PATfdp, p.NG1PATfdp)) /
		((p.KG1PATatp + c.ATP) * (p.KG1PATg1p + g1p))

	f.G3PDH = vc * p.RmaxG3PDH * dhap / (p.KG3PDHdhap + dhap)

	f.G6PDH = vc * p.RmaxG6PDH * g6p * c.NADP /
		((g6p + p.KG6PDHg6p) *
			(1 + c.NADPH/p.KG6PDHnadphg6pinh) *
			(p.KG6PDHnadp*(1+c.NADPH/p.KG6PDHnadphnadpinh) + c.NADP))

	f.GAPDH = vc * p.RmaxGAPDH * (gap*c.NAD - pgp*c.NADH/p.KGAPDHeq) /
		((p.KGAPDHgap*(1+pgp/p.KGAPDHpgp) + gap) *
			(p.KGAPDHnad*(1+c.NADH/p.KGAPDHnadh) + c.NAD))

	f.MurSynth = vc * p.RmaxMurSynth
	f.MethSynth = vc * p.RmaxMetSynth
	f.TrpSynth = vc * p.RmaxTrpSynth

	f.PDH = vc * p.RmaxPDH * math.Pow(pyr, p.NPDH) / (p.KPDHpyr + math.Pow(pyr, p.NPDH))

	// PFK: Monod-Wyman-Changeux with ADP/AMP activation and PEP inhibition.
	pfkAct := 1 + c.ADP/p.KPFKadpa + c.AMP/p.KPFKampa
	pfkInh := 1 + pep/p.KPFKpep + c.ADP/p.KPFKadpb + c.AMP/p.KPFKampb
	f.PFK = vc * p.RmaxPFK * c.ATP * f6p /
		((c.ATP + p.KPFKatps*(1+c.ADP/p.KPFKadpc)) *
			(f6p + p.KPFKf6ps*pfkInh/pfkAct) *
			(1 + p.LPFK/math.Pow(1+f6p*pfkAct/(p.KPFKf6ps*pfkInh), p.NPFK)))

	f.PGDH = vc * p.RmaxPGDH * pg * c.NADP /
		((pg + p.KPGDHpg) *
			(c.NADP + p.KPGDHnadp*(1+c.NADPH/p.KPGDHnadphinh)*(1+c.ATP/p.KPGDHatpinh)))

	f.PGI = vc * p.RmaxPGI * (g6p - f6p/p.KPGIeq) /
		(p.KPGIg6p*(1+f6p/(p.KPGIf6p*(1+pg/p.KPGIf6ppginh))+pg/p.KPGIg6ppginh) + g6p)

	f.PGK = vc * p.RmaxPGK * (c.ADP*pgp - c.ATP*pg3/p.KPGKeq) /
		((p.KPGKadp*(1+c.ATP/p.KPGKatp) + c.ADP) *
			(p.KPGKpgp*(1+pg3/p.KPGKpg3) + pgp))

	f.PGM = vc * p.RmaxPGM * (g6p - g1p/p.KPGMeq) / (p.KPGMg6p*(1+g1p/p.KPGMg1p) + g6p)

	// PK: MWC with FDP and AMP activation and ATP inhibition.
	pkSat := pep/p.KPKpep + 1
	f.PK = vc * p.RmaxPK * pep * math.Pow(pkSat, p.NPK-1) * c.ADP /
		(p.KPKpep *
			(p.LPK*math.Pow((1+c.ATP/p.KPKatp)/(fdp/p.KPKfdp+c.AMP/p.KPKamp+1), p.NPK) + math.Pow(pkSat, p.NPK)) *
			(c.ADP + p.KPKadp))

	f.RPPK = vc * p.RmaxRPPK * rib5p / (p.KRPPKrib5p + rib5p)

	pepPyr := pep / pyr
	f.PTS = ve * p.RmaxPTS * glcex * pepPyr /
		((p.KPTSa1 + p.KPTSa2*pepPyr + p.KPTSa3*glcex + glcex*pepPyr) *
			(1 + math.Pow(g6p, p.NPTSg6p)/p.KPTSg6p))

	f.R5PI = vc * p.RmaxR5PI * (ribu5p - rib5p/p.KR5PIeq)
	f.Ru5P = vc * p.RmaxRu5P * (ribu5p - xyl5p/p.KRu5Peq)

	f.Synth1 = vc * p.RmaxSynth1 * pep / (p.KSynth1pep + pep)
	f.Synth2 = vc * p.RmaxSynth2 * pyr / (p.KSynth2pyr + pyr)

	f.TA = vc * p.RmaxTA * (gap*sed7p - e4p*f6p/p.KTAeq)
	f.TIS = vc * p.RmaxTIS * (dhap - gap/p.KTISeq) / (p.KTISdhap*(1+gap/p.KTISgap) + dhap)
	f.TKA = vc * p.RmaxTKa * (rib5p*xyl5p - sed7p*gap/p.KTKaeq)
	f.TKB = vc * p.RmaxTKb * (xyl5p*e4p - f6p*gap/p.KTKbeq)

	f.PepCxylase = vc * p.RmaxpepCxylase * pep * (1 + math.Pow(fdp/p.KpepCxylasefdp, p.NpepCxylasefdp)) /
		(p.KpepCxylasepep + pep)

	f.PGluMu = vc * p.RmaxPGluMu * (pg3 - pg2/p.KPGluMueq) / (p.KPGluMupg3*(1+pg2/p.KPGluMupg2) + pg3)
	f.SerSynth = vc * p.RmaxSerSynth * pg3 / (p.KSerSynthpg3 + pg3)

	// Growth dilution of every intracellular pool.
	f.DHAP = vc * mu * dhap
	f.E4P = vc * mu * e4p
	f.G6P = vc * mu * g6p
	f.GAP = vc * mu * gap
	f.GLP = vc * mu * g1p
	f.PEP = vc * mu * pep
	f.PG = vc * mu * pg
	f.PG3 = vc * mu * pg3
	f.PGP = vc * mu * pgp
	f.RIB5P = vc * mu * rib5p
	f.Ribu5P = vc * mu * ribu5p
	f.SED7P = vc * mu * sed7p
	f.XYL5P = vc * mu * xyl5p
	f.F6P = vc * mu * f6p
	f.FDP = vc * mu * fdp
	f.PG2 = vc * mu * pg2
	f.PYR = vc * mu * pyr

	return f
}
