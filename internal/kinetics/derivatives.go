package kinetics

// Balance assembles the mass balance of every pool from the fluxes.
func Balance(f Fluxes, cfg Config) State {
	vc := cfg.Cytosol
	pts := cfg.PTSStoichiometry

	var d State
	d[DHAP] = (f.ALDO - f.DHAP - f.G3PDH - f.TIS) / vc
	d[E4P] = (-f.DAHPS - f.E4P + f.TA - f.TKB) / vc
	d[PG2] = (-f.ENO - f.PG2 + f.PGluMu) / vc
	d[PG3] = (-f.PG3 + f.PGK - f.PGluMu - f.SerSynth) / vc
	d[PGP] = (f.GAPDH - f.PGK - f.PGP) / vc
	d[RIB5P] = (-f.RPPK + f.R5PI - f.RIB5P - f.TKA) / vc
	d[RIBU5P] = (f.PGDH - f.R5PI - f.Ribu5P - f.Ru5P) / vc
	d[SED7P] = (-f.SED7P - f.TA + f.TKA) / vc
	d[XYL5P] = (f.Ru5P - f.TKA - f.TKB - f.XYL5P) / vc
	// Murein synthesis draws two hexose units per turnover.
	d[F6P] = (-2.0*f.MurSynth - f.PFK + f.PGI + f.TA + f.TKB - f.F6P) / vc
	d[FDP] = (-f.ALDO + f.PFK - f.FDP) / vc
	d[G1P] = (-f.G1PAT - f.GLP + f.PGM) / vc
	d[G6P] = (-f.G6P - f.G6PDH - f.PGI - f.PGM + pts*f.PTS) / vc
	d[GAP] = (f.ALDO - f.GAP - f.GAPDH - f.TA + f.TIS + f.TKA + f.TKB + f.TrpSynth) / vc
	d[GLCEX] = (f.EXTER - f.PTS) / cfg.Extracellular
	d[PEP] = (-f.DAHPS + f.ENO - f.PEP - f.PK - pts*f.PTS - f.Synth1 - f.PepCxylase) / vc
	d[PG] = (f.G6PDH - f.PG - f.PGDH) / vc
	d[PYR] = (f.MethSynth - f.PDH + f.PK + pts*f.PTS - f.Synth2 + f.TrpSynth - f.PYR) / vc
	return d
}
