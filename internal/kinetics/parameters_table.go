package kinetics

// ParameterCount is the number of kinetic constants in the model.
const ParameterCount = 116

// Parameters holds the kinetic constants of the model by name. Field order is
// the canonical file order.
//
// Prefixes: K* are affinity, inhibition or equilibrium constants, Rmax* are
// maximal rates (mM/s), N* are Hill exponents and L* allosteric constants.
type Parameters struct {
	KALDOdhap          float64 `json:"kALDOdhap" yaml:"kALDOdhap"`
	KALDOeq            float64 `json:"kALDOeq" yaml:"kALDOeq"`
	KALDOfdp           float64 `json:"kALDOfdp" yaml:"kALDOfdp"`
	KALDOgap           float64 `json:"kALDOgap" yaml:"kALDOgap"`
	KALDOgapinh        float64 `json:"kALDOgapinh" yaml:"kALDOgapinh"`
	KDAHPSe4p          float64 `json:"KDAHPSe4p" yaml:"KDAHPSe4p"`
	KDAHPSpep          float64 `json:"KDAHPSpep" yaml:"KDAHPSpep"`
	KENOeq             float64 `json:"KENOeq" yaml:"KENOeq"`
	KENOpep            float64 `json:"KENOpep" yaml:"KENOpep"`
	KENOpg2            float64 `json:"KENOpg2" yaml:"KENOpg2"`
	KG1PATatp          float64 `json:"KG1PATatp" yaml:"KG1PATatp"`
	KG1PATfdp          float64 `json:"KG1PATfdp" yaml:"KG1PATfdp"`
	KG1PATg1p          float64 `json:"KG1PATg1p" yaml:"KG1PATg1p"`
	KG3PDHdhap         float64 `json:"KG3PDHdhap" yaml:"KG3PDHdhap"`
	KG6PDHg6p          float64 `json:"KG6PDHg6p" yaml:"KG6PDHg6p"`
	KG6PDHnadp         float64 `json:"KG6PDHnadp" yaml:"KG6PDHnadp"`
	KG6PDHnadphg6pinh  float64 `json:"KG6PDHnadphg6pinh" yaml:"KG6PDHnadphg6pinh"`
	KG6PDHnadphnadpinh float64 `json:"KG6PDHnadphnadpinh" yaml:"KG6PDHnadphnadpinh"`
	KGAPDHeq           float64 `json:"KGAPDHeq" yaml:"KGAPDHeq"`
	KGAPDHgap          float64 `json:"KGAPDHgap" yaml:"KGAPDHgap"`
	KGAPDHnad          float64 `json:"KGAPDHnad" yaml:"KGAPDHnad"`
	KGAPDHnadh         float64 `json:"KGAPDHnadh" yaml:"KGAPDHnadh"`
	KGAPDHpgp          float64 `json:"KGAPDHpgp" yaml:"KGAPDHpgp"`
	KPDHpyr            float64 `json:"KPDHpyr" yaml:"KPDHpyr"`
	KpepCxylasefdp     float64 `json:"KpepCxylasefdp" yaml:"KpepCxylasefdp"`
	KpepCxylasepep     float64 `json:"KpepCxylasepep" yaml:"KpepCxylasepep"`
	KPFKadpa           float64 `json:"KPFKadpa" yaml:"KPFKadpa"`
	KPFKadpb           float64 `json:"KPFKadpb" yaml:"KPFKadpb"`
	KPFKadpc           float64 `json:"KPFKadpc" yaml:"KPFKadpc"`
	KPFKampa           float64 `json:"KPFKampa" yaml:"KPFKampa"`
	KPFKampb           float64 `json:"KPFKampb" yaml:"KPFKampb"`
	KPFKatps           float64 `json:"KPFKatps" yaml:"KPFKatps"`
	KPFKf6ps           float64 `json:"KPFKf6ps" yaml:"KPFKf6ps"`
	KPFKpep            float64 `json:"KPFKpep" yaml:"KPFKpep"`
	KPGDHatpinh        float64 `json:"KPGDHatpinh" yaml:"KPGDHatpinh"`
	KPGDHnadp          float64 `json:"KPGDHnadp" yaml:"KPGDHnadp"`
	KPGDHnadphinh      float64 `json:"KPGDHnadphinh" yaml:"KPGDHnadphinh"`
	KPGDHpg            float64 `json:"KPGDHpg" yaml:"KPGDHpg"`
	KPGIeq             float64 `json:"KPGIeq" yaml:"KPGIeq"`
	KPGIf6p            float64 `json:"KPGIf6p" yaml:"KPGIf6p"`
	KPGIf6ppginh       float64 `json:"KPGIf6ppginh" yaml:"KPGIf6ppginh"`
	KPGIg6p            float64 `json:"KPGIg6p" yaml:"KPGIg6p"`
	KPGIg6ppginh       float64 `json:"KPGIg6ppginh" yaml:"KPGIg6ppginh"`
	KPGKadp            float64 `json:"KPGKadp" yaml:"KPGKadp"`
	KPGKatp            float64 `json:"KPGKatp" yaml:"KPGKatp"`
	KPGKeq             float64 `json:"KPGKeq" yaml:"KPGKeq"`
	KPGKpg3            float64 `json:"KPGKpg3" yaml:"KPGKpg3"`
	KPGKpgp            float64 `json:"KPGKpgp" yaml:"KPGKpgp"`
	KPGluMueq          float64 `json:"KPGluMueq" yaml:"KPGluMueq"`
	KPGluMupg2         float64 `json:"KPGluMupg2" yaml:"KPGluMupg2"`
	KPGluMupg3         float64 `json:"KPGluMupg3" yaml:"KPGluMupg3"`
	KPGMeq             float64 `json:"KPGMeq" yaml:"KPGMeq"`
	KPGMg1p            float64 `json:"KPGMg1p" yaml:"KPGMg1p"`
	KPGMg6p            float64 `json:"KPGMg6p" yaml:"KPGMg6p"`
	KPKadp             float64 `json:"KPKadp" yaml:"KPKadp"`
	KPKamp             float64 `json:"KPKamp" yaml:"KPKamp"`
	KPKatp             float64 `json:"KPKatp" yaml:"KPKatp"`
	KPKfdp             float64 `json:"KPKfdp" yaml:"KPKfdp"`
	KPKpep             float64 `json:"KPKpep" yaml:"KPKpep"`
	KPTSa1             float64 `json:"KPTSa1" yaml:"KPTSa1"`
	KPTSa2             float64 `json:"KPTSa2" yaml:"KPTSa2"`
	KPTSa3             float64 `json:"KPTSa3" yaml:"KPTSa3"`
	KPTSg6p            float64 `json:"KPTSg6p" yaml:"KPTSg6p"`
	KR5PIeq            float64 `json:"KR5PIeq" yaml:"KR5PIeq"`
	KRPPKrib5p         float64 `json:"KRPPKrib5p" yaml:"KRPPKrib5p"`
	KRu5Peq            float64 `json:"KRu5Peq" yaml:"KRu5Peq"`
	KSerSynthpg3       float64 `json:"KSerSynthpg3" yaml:"KSerSynthpg3"`
	KSynth1pep         float64 `json:"KSynth1pep" yaml:"KSynth1pep"`
	KSynth2pyr         float64 `json:"KSynth2pyr" yaml:"KSynth2pyr"`
	KTAeq              float64 `json:"KTAeq" yaml:"KTAeq"`
	KTISdhap           float64 `json:"kTISdhap" yaml:"kTISdhap"`
	KTISeq             float64 `json:"kTISeq" yaml:"kTISeq"`
	KTISgap            float64 `json:"kTISgap" yaml:"kTISgap"`
	KTKaeq             float64 `json:"KTKaeq" yaml:"KTKaeq"`
	KTKbeq             float64 `json:"KTKbeq" yaml:"KTKbeq"`
	LPFK               float64 `json:"LPFK" yaml:"LPFK"`
	LPK                float64 `json:"LPK" yaml:"LPK"`
	NDAHPSe4p          float64 `json:"nDAHPSe4p" yaml:"nDAHPSe4p"`
	NDAHPSpep          float64 `json:"nDAHPSpep" yaml:"nDAHPSpep"`
	NG1PATfdp          float64 `json:"nG1PATfdp" yaml:"nG1PATfdp"`
	NPDH               float64 `json:"nPDH" yaml:"nPDH"`
	NpepCxylasefdp     float64 `json:"npepCxylasefdp" yaml:"npepCxylasefdp"`
	NPFK               float64 `json:"nPFK" yaml:"nPFK"`
	NPK                float64 `json:"nPK" yaml:"nPK"`
	NPTSg6p            float64 `json:"nPTSg6p" yaml:"nPTSg6p"`
	RmaxALDO           float64 `json:"rmaxALDO" yaml:"rmaxALDO"`
	RmaxDAHPS          float64 `json:"rmaxDAHPS" yaml:"rmaxDAHPS"`
	RmaxENO            float64 `json:"rmaxENO" yaml:"rmaxENO"`
	RmaxG1PAT          float64 `json:"rmaxG1PAT" yaml:"rmaxG1PAT"`
	RmaxG3PDH          float64 `json:"rmaxG3PDH" yaml:"rmaxG3PDH"`
	RmaxG6PDH          float64 `json:"rmaxG6PDH" yaml:"rmaxG6PDH"`
	RmaxGAPDH          float64 `json:"rmaxGAPDH" yaml:"rmaxGAPDH"`
	RmaxMetSynth       float64 `json:"rmaxMetSynth" yaml:"rmaxMetSynth"`
	RmaxMurSynth       float64 `json:"rmaxMurSynth" yaml:"rmaxMurSynth"`
	RmaxPDH            float64 `json:"rmaxPDH" yaml:"rmaxPDH"`
	RmaxpepCxylase     float64 `json:"rmaxpepCxylase" yaml:"rmaxpepCxylase"`
	RmaxPFK            float64 `json:"rmaxPFK" yaml:"rmaxPFK"`
	RmaxPGDH           float64 `json:"rmaxPGDH" yaml:"rmaxPGDH"`
	RmaxPGI            float64 `json:"rmaxPGI" yaml:"rmaxPGI"`
	RmaxPGK            float64 `json:"rmaxPGK" yaml:"rmaxPGK"`
	RmaxPGluMu         float64 `json:"rmaxPGluMu" yaml:"rmaxPGluMu"`
	RmaxPGM            float64 `json:"rmaxPGM" yaml:"rmaxPGM"`
	RmaxPK             float64 `json:"rmaxPK" yaml:"rmaxPK"`
	RmaxPTS            float64 `json:"rmaxPTS" yaml:"rmaxPTS"`
	RmaxR5PI           float64 `json:"rmaxR5PI" yaml:"rmaxR5PI"`
	RmaxRPPK           float64 `json:"rmaxRPPK" yaml:"rmaxRPPK"`
	RmaxRu5P           float64 `json:"rmaxRu5P" yaml:"rmaxRu5P"`
	RmaxSerSynth       float64 `json:"rmaxSerSynth" yaml:"rmaxSerSynth"`
	RmaxSynth1         float64 `json:"rmaxSynth1" yaml:"rmaxSynth1"`
	RmaxSynth2         float64 `json:"rmaxSynth2" yaml:"rmaxSynth2"`
	RmaxTA             float64 `json:"rmaxTA" yaml:"rmaxTA"`
	RmaxTIS            float64 `json:"rmaxTIS" yaml:"rmaxTIS"`
	RmaxTKa            float64 `json:"rmaxTKa" yaml:"rmaxTKa"`
	RmaxTKb            float64 `json:"rmaxTKb" yaml:"rmaxTKb"`
	RmaxTrpSynth       float64 `json:"rmaxTrpSynth" yaml:"rmaxTrpSynth"`
	VALDOblf           float64 `json:"VALDOblf" yaml:"VALDOblf"`
}

// parameterFields binds each canonical name to its struct field.
var parameterFields = [ParameterCount]struct {
	name  string
	field func(p *Parameters) *float64
}{
	{"kALDOdhap", func(p *Parameters) *float64 { return &p.KALDOdhap }},
	{"kALDOeq", func(p *Parameters) *float64 { return &p.KALDOeq }},
	{"kALDOfdp", func(p *Parameters) *float64 { return &p.KALDOfdp }},
	{"kALDOgap", func(p *Parameters) *float64 { return &p.KALDOgap }},
	{"kALDOgapinh", func(p *Parameters) *float64 { return &p.KALDOgapinh }},
	{"KDAHPSe4p", func(p *Parameters) *float64 { return &p.KDAHPSe4p }},
	{"KDAHPSpep", func(p *Parameters) *float64 { return &p.KDAHPSpep }},
	{"KENOeq", func(p *Parameters) *float64 { return &p.KENOeq }},
	{"KENOpep", func(p *Parameters) *float64 { return &p.KENOpep }},
	{"KENOpg2", func(p *Parameters) *float64 { return &p.KENOpg2 }},
	{"KG1PATatp", func(p *Parameters) *float64 { return &p.KG1PATatp }},
	{"KG1PATfdp", func(p *Parameters) *float64 { return &p.KG1PATfdp }},
	{"KG1PATg1p", func(p *Parameters) *float64 { return &p.KG1PATg1p }},
	{"KG3PDHdhap", func(p *Parameters) *float64 { return &p.KG3PDHdhap }},
	{"KG6PDHg6p", func(p *Parameters) *float64 { return &p.KG6PDHg6p }},
	{"KG6PDHnadp", func(p *Parameters) *float64 { return &p.KG6PDHnadp }},
	{"KG6PDHnadphg6pinh", func(p *Parameters) *float64 { return &p.KG6PDHnadphg6pinh }},
	{"KG6PDHnadphnadpinh", func(p *Parameters) *float64 { return &p.KG6PDHnadphnadpinh }},
	{"KGAPDHeq", func(p *Parameters) *float64 { return &p.KGAPDHeq }},
	{"KGAPDHgap", func(p *Parameters) *float64 { return &p.KGAPDHgap }},
	{"KGAPDHnad", func(p *Parameters) *float64 { return &p.KGAPDHnad }},
	{"KGAPDHnadh", func(p *Parameters) *float64 { return &p.KGAPDHnadh }},
	{"KGAPDHpgp", func(p *Parameters) *float64 { return &p.KGAPDHpgp }},
	{"KPDHpyr", func(p *Parameters) *float64 { return &p.KPDHpyr }},
	{"KpepCxylasefdp", func(p *Parameters) *float64 { return &p.KpepCxylasefdp }},
	{"KpepCxylasepep", func(p *Parameters) *float64 { return &p.KpepCxylasepep }},
	{"KPFKadpa", func(p *Parameters) *float64 { return &p.KPFKadpa }},
	{"KPFKadpb", func(p *Parameters) *float64 { return &p.KPFKadpb }},
	{"KPFKadpc", func(p *Parameters) *float64 { return &p.KPFKadpc }},
	{"KPFKampa", func(p *Parameters) *float64 { return &p.KPFKampa }},
	{"KPFKampb", func(p *Parameters) *float64 { return &p.KPFKampb }},
	{"KPFKatps", func(p *Parameters) *float64 { return &p.KPFKatps }},
	{"KPFKf6ps", func(p *Parameters) *float64 { return &p.KPFKf6ps }},
	{"KPFKpep", func(p *Parameters) *float64 { return &p.KPFKpep }},
	{"KPGDHatpinh", func(p *Parameters) *float64 { return &p.KPGDHatpinh }},
	{"KPGDHnadp", func(p *Parameters) *float64 { return &p.KPGDHnadp }},
	{"KPGDHnadphinh", func(p *Parameters) *float64 { return &p.KPGDHnadphinh }},
	{"KPGDHpg", func(p *Parameters) *float64 { return &p.KPGDHpg }},
	{"KPGIeq", func(p *Parameters) *float64 { return &p.KPGIeq }},
	{"KPGIf6p", func(p *Parameters) *float64 { return &p.KPGIf6p }},
	{"KPGIf6ppginh", func(p *Parameters) *float64 { return &p.KPGIf6ppginh }},
	{"KPGIg6p", func(p *Parameters) *float64 { return &p.KPGIg6p }},
	{"KPGIg6ppginh", func(p *Parameters) *float64 { return &p.KPGIg6ppginh }},
	{"KPGKadp", func(p *Parameters) *float64 { return &p.KPGKadp }},
	{"KPGKatp", func(p *Parameters) *float64 { return &p.KPGKatp }},
	{"KPGKeq", func(p *Parameters) *float64 { return &p.KPGKeq }},
	{"KPGKpg3", func(p *Parameters) *float64 { return &p.KPGKpg3 }},
	{"KPGKpgp", func(p *Parameters) *float64 { return &p.KPGKpgp }},
	{"KPGluMueq", func(p *Parameters) *float64 { return &p.KPGluMueq }},
	{"KPGluMupg2", func(p *Parameters) *float64 { return &p.KPGluMupg2 }},
	{"KPGluMupg3", func(p *Parameters) *float64 { return &p.KPGluMupg3 }},
	{"KPGMeq", func(p *Parameters) *float64 { return &p.KPGMeq }},
	{"KPGMg1p", func(p *Parameters) *float64 { return &p.KPGMg1p }},
	{"KPGMg6p", func(p *Parameters) *float64 { return &p.KPGMg6p }},
	{"KPKadp", func(p *Parameters) *float64 { return &p.KPKadp }},
	{"KPKamp", func(p *Parameters) *float64 { return &p.KPKamp }},
	{"KPKatp", func(p *Parameters) *float64 { return &p.KPKatp }},
	{"KPKfdp", func(p *Parameters) *float64 { return &p.KPKfdp }},
	{"KPKpep", func(p *Parameters) *float64 { return &p.KPKpep }},
	{"KPTSa1", func(p *Parameters) *float64 { return &p.KPTSa1 }},
	{"KPTSa2", func(p *Parameters) *float64 { return &p.KPTSa2 }},
	{"KPTSa3", func(p *Parameters) *float64 { return &p.KPTSa3 }},
	{"KPTSg6p", func(p *Parameters) *float64 { return &p.KPTSg6p }},
	{"KR5PIeq", func(p *Parameters) *float64 { return &p.KR5PIeq }},
	{"KRPPKrib5p", func(p *Parameters) *float64 { return &p.KRPPKrib5p }},
	{"KRu5Peq", func(p *Parameters) *float64 { return &p.KRu5Peq }},
	{"KSerSynthpg3", func(p *Parameters) *float64 { return &p.KSerSynthpg3 }},
	{"KSynth1pep", func(p *Parameters) *float64 { return &p.KSynth1pep }},
	{"KSynth2pyr", func(p *Parameters) *float64 { return &p.KSynth2pyr }},
	{"KTAeq", func(p *Parameters) *float64 { return &p.KTAeq }},
	{"kTISdhap", func(p *Parameters) *float64 { return &p.KTISdhap }},
	{"kTISeq", func(p *Parameters) *float64 { return &p.KTISeq }},
	{"kTISgap", func(p *Parameters) *float64 { return &p.KTISgap }},
	{"KTKaeq", func(p *Parameters) *float64 { return &p.KTKaeq }},
	{"KTKbeq", func(p *Parameters) *float64 { return &p.KTKbeq }},
	{"LPFK", func(p *Parameters) *float64 { return &p.LPFK }},
	{"LPK", func(p *Parameters) *float64 { return &p.LPK }},
	{"nDAHPSe4p", func(p *Parameters) *float64 { return &p.NDAHPSe4p }},
	{"nDAHPSpep", func(p *Parameters) *float64 { return &p.NDAHPSpep }},
	{"nG1PATfdp", func(p *Parameters) *float64 { return &p.NG1PATfdp }},
	{"nPDH", func(p *Parameters) *float64 { return &p.NPDH }},
	{"npepCxylasefdp", func(p *Parameters) *float64 { return &p.NpepCxylasefdp }},
	{"nPFK", func(p *Parameters) *float64 { return &p.NPFK }},
	{"nPK", func(p *Parameters) *float64 { return &p.NPK }},
	{"nPTSg6p", func(p *Parameters) *float64 { return &p.NPTSg6p }},
	{"rmaxALDO", func(p *Parameters) *float64 { return &p.RmaxALDO }},
	{"rmaxDAHPS", func(p *Parameters) *float64 { return &p.RmaxDAHPS }},
	{"rmaxENO", func(p *Parameters) *float64 { return &p.RmaxENO }},
	{"rmaxG1PAT", func(p *Parameters) *float64 { return &p.RmaxG1PAT }},
	{"rmaxG3PDH", func(p *Parameters) *float64 { return &p.RmaxG3PDH }},
	{"rmaxG6PDH", func(p *Parameters) *float64 { return &p.RmaxG6PDH }},
	{"rmaxGAPDH", func(p *Parameters) *float64 { return &p.RmaxGAPDH }},
	{"rmaxMetSynth", func(p *Parameters) *float64 { return &p.RmaxMetSynth }},
	{"rmaxMurSynth", func(p *Parameters) *float64 { return &p.RmaxMurSynth }},
	{"rmaxPDH", func(p *Parameters) *float64 { return &p.RmaxPDH }},
	{"rmaxpepCxylase", func(p *Parameters) *float64 { return &p.RmaxpepCxylase }},
	{"rmaxPFK", func(p *Parameters) *float64 { return &p.RmaxPFK }},
	{"rmaxPGDH", func(p *Parameters) *float64 { return &p.RmaxPGDH }},
	{"rmaxPGI", func(p *Parameters) *float64 { return &p.RmaxPGI }},
	{"rmaxPGK", func(p *Parameters) *float64 { return &p.RmaxPGK }},
	{"rmaxPGluMu", func(p *Parameters) *float64 { return &p.RmaxPGluMu }},
	{"rmaxPGM", func(p *Parameters) *float64 { return &p.RmaxPGM }},
	{"rmaxPK", func(p *Parameters) *float64 { return &p.RmaxPK }},
	{"rmaxPTS", func(p *Parameters) *float64 { return &p.RmaxPTS }},
	{"rmaxR5PI", func(p *Parameters) *float64 { return &p.RmaxR5PI }},
	{"rmaxRPPK", func(p *Parameters) *float64 { return &p.RmaxRPPK }},
	{"rmaxRu5P", func(p *Parameters) *float64 { return &p.RmaxRu5P }},
	{"rmaxSerSynth", func(p *Parameters) *float64 { return &p.RmaxSerSynth }},
	{"rmaxSynth1", func(p *Parameters) *float64 { return &p.RmaxSynth1 }},
	{"rmaxSynth2", func(p *Parameters) *float64 { return &p.RmaxSynth2 }},
	{"rmaxTA", func(p *Parameters) *float64 { return &p.RmaxTA }},
	{"rmaxTIS", func(p *Parameters) *float64 { return &p.RmaxTIS }},
	{"rmaxTKa", func(p *Parameters) *float64 { return &p.RmaxTKa }},
	{"rmaxTKb", func(p *Parameters) *float64 { return &p.RmaxTKb }},
	{"rmaxTrpSynth", func(p *Parameters) *float64 { return &p.RmaxTrpSynth }},
	{"VALDOblf", func(p *Parameters) *float64 { return &p.VALDOblf }},
}

// BaselineParameters returns the literature parameter set. Maximal rates are
// balanced so that PublishedInitialState is a fixed point of the system with
// baseline cofactors. KPGKeq is 2100 rather than the literature 1934.4; with
// the lower constant PGK sits past equilibrium at the published state and
// runs backwards.
func BaselineParameters() Parameters {
	return Parameters{
		KALDOdhap:          0.088,
		KALDOeq:            0.144,
		KALDOfdp:           1.75,
		KALDOgap:           0.088,
		KALDOgapinh:        0.6,
		KDAHPSe4p:          0.035,
		KDAHPSpep:          0.0053,
		KENOeq:             6.73,
		KENOpep:            0.135,
		KENOpg2:            0.1,
		KG1PATatp:          4.42,
		KG1PATfdp:          0.119,
		KG1PATg1p:          3.2,
		KG3PDHdhap:         1,
		KG6PDHg6p:          14.4,
		KG6PDHnadp:         0.0246,
		KG6PDHnadphg6pinh:  6.43,
		KG6PDHnadphnadpinh: 0.01,
		KGAPDHeq:           0.63,
		KGAPDHgap:          0.683,
		KGAPDHnad:          0.252,
		KGAPDHnadh:         1.09,
		KGAPDHpgp:          1.04e-05,
		KPDHpyr:            1159,
		KpepCxylasefdp:     0.7,
		KpepCxylasepep:     4.07,
		KPFKadpa:           128,
		KPFKadpb:           3.89,
		KPFKadpc:           4.14,
		KPFKampa:           19.1,
		KPFKampb:           3.2,
		KPFKatps:           0.123,
		KPFKf6ps:           0.325,
		KPFKpep:            3.26,
		KPGDHatpinh:        208,
		KPGDHnadp:          0.0506,
		KPGDHnadphinh:      0.0138,
		KPGDHpg:            37.5,
		KPGIeq:             0.1725,
		KPGIf6p:            0.266,
		KPGIf6ppginh:       0.2,
		KPGIg6p:            2.9,
		KPGIg6ppginh:       0.2,
		KPGKadp:            0.185,
		KPGKatp:            0.653,
		KPGKeq:             2100,
		KPGKpg3:            0.473,
		KPGKpgp:            0.0468,
		KPGluMueq:          0.188,
		KPGluMupg2:         0.369,
		KPGluMupg3:         0.2,
		KPGMeq:             0.196,
		KPGMg1p:            0.0136,
		KPGMg6p:            1.038,
		KPKadp:             0.26,
		KPKamp:             0.2,
		KPKatp:             22.5,
		KPKfdp:             0.19,
		KPKpep:             0.31,
		KPTSa1:             3082.3,
		KPTSa2:             0.01,
		KPTSa3:             245.3,
		KPTSg6p:            2.15,
		KR5PIeq:            4,
		KRPPKrib5p:         0.1,
		KRu5Peq:            1.4,
		KSerSynthpg3:       1,
		KSynth1pep:         1,
		KSynth2pyr:         1,
		KTAeq:              1.05,
		KTISdhap:           2.8,
		KTISeq:             1.39,
		KTISgap:            0.3,
		KTKaeq:             1.2,
		KTKbeq:             10,
		LPFK:               5629067,
		LPK:                1000,
		NDAHPSe4p:          2.6,
		NDAHPSpep:          2.2,
		NG1PATfdp:          1.2,
		NPDH:               3.68,
		NpepCxylasefdp:     4.21,
		NPFK:               11.1,
		NPK:                4,
		NPTSg6p:            3.66,
		RmaxALDO:           16.0495527,
		RmaxDAHPS:          0.111305012,
		RmaxENO:            336.457689,
		RmaxG1PAT:          0.00756409525,
		RmaxG3PDH:          0.0116547866,
		RmaxG6PDH:          1.32903922,
		RmaxGAPDH:          857.55615,
		RmaxMetSynth:       0.00226266851,
		RmaxMurSynth:       0.000438725156,
		RmaxPDH:            6.0709779,
		RmaxpepCxylase:     0.108698669,
		RmaxPFK:            1859.32515,
		RmaxPGDH:           15.6307078,
		RmaxPGI:            579.493061,
		RmaxPGK:            2450.45146,
		RmaxPGluMu:         88.4293972,
		RmaxPGM:            0.840804968,
		RmaxPK:             0.0616412366,
		RmaxPTS:            7984.21645,
		RmaxR5PI:           4.96665005,
		RmaxRPPK:           0.0131560756,
		RmaxRu5P:           6.68898646,
		RmaxSerSynth:       0.0258329856,
		RmaxSynth1:         0.0190999162,
		RmaxSynth2:         0.0736496506,
		RmaxTA:             10.4816385,
		RmaxTIS:            70.3279127,
		RmaxTKa:            8.96393576,
		RmaxTKb:            94.3697579,
		RmaxTrpSynth:       0.00103789489,
		VALDOblf:           2,
	}
}
