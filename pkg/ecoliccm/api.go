package ecoliccm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"ecoliccm/internal/analysis"
	"ecoliccm/internal/dataio"
	"ecoliccm/internal/integrator"
	"ecoliccm/internal/kinetics"
	"ecoliccm/internal/model"
	"ecoliccm/internal/objective"
	"ecoliccm/internal/simulation"
	"ecoliccm/internal/stats"
	"ecoliccm/internal/storage"
	"ecoliccm/internal/tuning"
)

const (
	defaultRunsDir    = "runs"
	defaultExportsDir = "exports"
	defaultDBPath     = "ecoliccm.db"
)

// Run kinds recorded in the run index.
const (
	KindSimulate = "simulate"
	KindPulse    = "pulse"
	KindFit      = storage.RunKindFit
)

type Options struct {
	StoreKind  string
	DBPath     string
	RunsDir    string
	ExportsDir string
	Logger     logrus.FieldLogger
}

type Client struct {
	store storage.Store
	log   logrus.FieldLogger

	mu          sync.Mutex
	initialized bool

	runsDir    string
	exportsDir string
}

// ModelOptions selects the parameters, model constants and integrator
// settings of a request. Parameters wins over ParamsPath; unset parts fall
// back to the published defaults.
type ModelOptions struct {
	ParamsPath string
	Parameters *kinetics.Parameters
	Config     *kinetics.Config
	Integrator *integrator.Config
}

type resolvedModel struct {
	params     kinetics.Parameters
	cfg        kinetics.Config
	integrator integrator.Config
}

func (o ModelOptions) resolve() (resolvedModel, error) {
	out := resolvedModel{
		params:     kinetics.BaselineParameters(),
		cfg:        kinetics.DefaultConfig(),
		integrator: integrator.DefaultConfig(),
	}
	switch {
	case o.Parameters != nil:
		out.params = *o.Parameters
	case o.ParamsPath != "":
		p, err := dataio.ReadParameters(o.ParamsPath)
		if err != nil {
			return resolvedModel{}, err
		}
		out.params = p
	}
	if o.Config != nil {
		out.cfg = *o.Config
	}
	if o.Integrator != nil {
		out.integrator = *o.Integrator
	}
	return out, nil
}

func (r resolvedModel) model() (kinetics.Model, error) {
	return kinetics.NewModel(r.params, r.cfg)
}

type SimulateRequest struct {
	ModelOptions
	// Initial defaults to the published state.
	Initial *kinetics.State
	// Segments defaults to arange(0, 303, 0.05) with extracellular glucose
	// raised to the pulse level.
	Segments []simulation.Segment
	Seed     int64
}

type SimulateSummary struct {
	RunID        string
	ArtifactsDir string
	Trajectory   simulation.Trajectory
	Fluxes       []kinetics.Fluxes
}

type SteadyRequest struct {
	ModelOptions
	Initial   *kinetics.State
	Threshold float64
}

type PulseRequest struct {
	ModelOptions
	Initial *kinetics.State
	Options *simulation.PulseOptions
	// DataPath overlays experimental points on the plots.
	DataPath string
	// PlotDir enables PNG output when set.
	PlotDir string
}

type PulseSummary struct {
	RunID        string
	ArtifactsDir string
	Result       simulation.PulseResult
	Plots        []string
}

type ScoreRequest struct {
	ModelOptions
	// ParamsPaths scores several parameter files concurrently. When empty,
	// the single parameter set of ModelOptions is scored.
	ParamsPaths []string
	DataPath    string
	Workers     int
}

type ScoreItem struct {
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}

type ScoreSummary struct {
	Scores      []ScoreItem             `json:"scores"`
	Residuals   []stats.ResidualSummary `json:"residuals,omitempty"`
	Evaluations int64                   `json:"evaluations"`
}

type FitRequest struct {
	ModelOptions
	DataPath string
	Fit      tuning.FitConfig
	PlotDir  string
}

type FitSummary struct {
	RunID        string
	ArtifactsDir string
	Result       tuning.FitResult
	Residuals    []stats.ResidualSummary
	Plots        []string
}

type AnalyzeRequest struct {
	ModelOptions
	// State defaults to the published pre-pulse state.
	State   *kinetics.State
	Backend analysis.Backend
	// OutDir receives one CSV per matrix when set.
	OutDir string
}

type FluxesRequest struct {
	ModelOptions
	State *kinetics.State
}

type PlotRequest struct {
	RunID    string
	Latest   bool
	DataPath string
	OutDir   string
}

type RunsRequest struct {
	Limit int
}

type ExportRequest struct {
	RunID  string
	Latest bool
	OutDir string
}

type ExportSummary struct {
	RunID     string
	Directory string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	runsDir := opts.RunsDir
	if runsDir == "" {
		runsDir = defaultRunsDir
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:      store,
		log:        log,
		runsDir:    runsDir,
		exportsDir: exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	_, err := c.ensureStore(ctx)
	return err
}

func (c *Client) ensureStore(ctx context.Context) (storage.Store, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return c.store, nil
	}
	if err := c.store.Init(ctx); err != nil {
		return nil, err
	}
	c.initialized = true
	return c.store, nil
}

// Simulate integrates the model over the requested segments and records the
// run.
func (c *Client) Simulate(ctx context.Context, req SimulateRequest) (SimulateSummary, error) {
	resolved, err := req.resolve()
	if err != nil {
		return SimulateSummary{}, err
	}
	m, err := resolved.model()
	if err != nil {
		return SimulateSummary{}, err
	}
	initial := kinetics.PublishedInitialState()
	if req.Initial != nil {
		initial = *req.Initial
	}
	segments := req.Segments
	if len(segments) == 0 {
		segments = []simulation.Segment{{
			Start:    0,
			End:      objective.DefaultHorizon,
			Step:     objective.DefaultStep,
			Override: map[string]float64{"glcex": kinetics.PulseGlucose},
		}}
	}
	driver, err := simulation.NewDriver(resolved.integrator, c.log)
	if err != nil {
		return SimulateSummary{}, err
	}
	traj, err := driver.Simulate(ctx, m, initial, segments)
	if err != nil {
		return SimulateSummary{}, err
	}
	fluxes := traj.Fluxes(m)

	runID := stats.NewRunID(KindSimulate)
	cfg := c.runConfig(runID, KindSimulate, req.ModelOptions, resolved)
	cfg.Start, cfg.End, cfg.Step = segments[0].Start, segments[len(segments)-1].End, segments[0].Step
	cfg.Seed = req.Seed
	runDir, err := c.recordTrajectory(ctx, cfg, traj, fluxes, &resolved.params)
	if err != nil {
		return SimulateSummary{}, err
	}
	c.log.WithFields(logrus.Fields{"run_id": runID, "samples": traj.Len()}).Info("simulation recorded")
	return SimulateSummary{RunID: runID, ArtifactsDir: runDir, Trajectory: traj, Fluxes: fluxes}, nil
}

// SteadyState checks whether the initial state is steady with the cofactors
// held at baseline.
func (c *Client) SteadyState(ctx context.Context, req SteadyRequest) (simulation.SteadyStateReport, error) {
	resolved, err := req.resolve()
	if err != nil {
		return simulation.SteadyStateReport{}, err
	}
	m, err := resolved.model()
	if err != nil {
		return simulation.SteadyStateReport{}, err
	}
	initial := kinetics.PublishedInitialState()
	if req.Initial != nil {
		initial = *req.Initial
	}
	driver, err := simulation.NewDriver(resolved.integrator, c.log)
	if err != nil {
		return simulation.SteadyStateReport{}, err
	}
	report, err := simulation.SteadyState(ctx, driver, m, initial, req.Threshold)
	if err != nil {
		return simulation.SteadyStateReport{}, err
	}
	c.log.WithFields(logrus.Fields{
		"first_norm": report.FirstNorm,
		"last_norm":  report.LastNorm,
		"reached":    report.Reached,
	}).Info("steady state checked")
	return report, nil
}

// Pulse runs the glucose pulse experiment and records it.
func (c *Client) Pulse(ctx context.Context, req PulseRequest) (PulseSummary, error) {
	resolved, err := req.resolve()
	if err != nil {
		return PulseSummary{}, err
	}
	m, err := resolved.model()
	if err != nil {
		return PulseSummary{}, err
	}
	initial := kinetics.PublishedInitialState()
	if req.Initial != nil {
		initial = *req.Initial
	}
	opts := simulation.DefaultPulseOptions()
	if req.Options != nil {
		opts = *req.Options
	}
	var observed []dataio.Record
	if req.DataPath != "" {
		observed, err = dataio.ReadExperimental(req.DataPath)
		if err != nil {
			return PulseSummary{}, err
		}
	}
	driver, err := simulation.NewDriver(resolved.integrator, c.log)
	if err != nil {
		return PulseSummary{}, err
	}
	result, err := simulation.GlucosePulse(ctx, driver, m, initial, opts)
	if err != nil {
		return PulseSummary{}, err
	}

	runID := stats.NewRunID(KindPulse)
	cfg := c.runConfig(runID, KindPulse, req.ModelOptions, resolved)
	cfg.DataPath = req.DataPath
	cfg.Start, cfg.End, cfg.Step = opts.RelaxFrom, opts.Until, opts.Step
	runDir, err := c.recordTrajectory(ctx, cfg, result.Trajectory, result.Fluxes, &resolved.params)
	if err != nil {
		return PulseSummary{}, err
	}

	summary := PulseSummary{RunID: runID, ArtifactsDir: runDir, Result: result}
	if req.PlotDir != "" {
		summary.Plots, err = stats.PlotTimeCourses(req.PlotDir, runID+"_", result.Trajectory.Times, result.Trajectory.States, observed)
		if err != nil {
			return PulseSummary{}, err
		}
	}
	c.log.WithFields(logrus.Fields{"run_id": runID, "samples": result.Trajectory.Len()}).Info("pulse recorded")
	return summary, nil
}

// Score evaluates the objective for one or more parameter sets against the
// experimental data.
func (c *Client) Score(ctx context.Context, req ScoreRequest) (ScoreSummary, error) {
	if req.DataPath == "" {
		return ScoreSummary{}, errors.New("data path is required")
	}
	records, err := dataio.ReadExperimental(req.DataPath)
	if err != nil {
		return ScoreSummary{}, err
	}
	resolved, err := req.resolve()
	if err != nil {
		return ScoreSummary{}, err
	}
	scorer, err := c.newScorer(resolved, records, req.Workers)
	if err != nil {
		return ScoreSummary{}, err
	}

	if len(req.ParamsPaths) == 0 {
		residuals, err := scorer.Residuals(ctx, resolved.params)
		if err != nil {
			return ScoreSummary{}, err
		}
		total := 0.0
		for _, r := range residuals {
			total += r.Weighted
		}
		summary, err := stats.SummarizeResiduals(residuals)
		if err != nil {
			return ScoreSummary{}, err
		}
		source := "baseline"
		switch {
		case req.Parameters != nil:
			source = "request"
		case req.ParamsPath != "":
			source = req.ParamsPath
		}
		return ScoreSummary{
			Scores:      []ScoreItem{{Source: source, Score: total}},
			Residuals:   summary,
			Evaluations: 1,
		}, nil
	}

	candidates := make([]kinetics.Parameters, len(req.ParamsPaths))
	for i, path := range req.ParamsPaths {
		candidates[i], err = dataio.ReadParameters(path)
		if err != nil {
			return ScoreSummary{}, err
		}
	}
	scores, err := scorer.ScoreAll(ctx, candidates)
	if err != nil {
		return ScoreSummary{}, err
	}
	out := ScoreSummary{Scores: make([]ScoreItem, len(scores)), Evaluations: scorer.Evaluations()}
	for i, score := range scores {
		out.Scores[i] = ScoreItem{Source: req.ParamsPaths[i], Score: score}
	}
	return out, nil
}

// Fit estimates the free parameters against the experimental data, then
// persists the result and writes run artifacts.
func (c *Client) Fit(ctx context.Context, req FitRequest) (FitSummary, error) {
	if req.DataPath == "" {
		return FitSummary{}, errors.New("data path is required")
	}
	records, err := dataio.ReadExperimental(req.DataPath)
	if err != nil {
		return FitSummary{}, err
	}
	resolved, err := req.resolve()
	if err != nil {
		return FitSummary{}, err
	}
	fitCfg := req.Fit
	if fitCfg.Method == "" && fitCfg.Budget == 0 {
		fitCfg = tuning.DefaultFitConfig()
	}
	if fitCfg.Workers <= 0 {
		fitCfg.Workers = 1
	}
	if fitCfg.Logger == nil {
		fitCfg.Logger = c.log
	}
	scorer, err := c.newScorer(resolved, records, fitCfg.Workers)
	if err != nil {
		return FitSummary{}, err
	}
	store, err := c.ensureStore(ctx)
	if err != nil {
		return FitSummary{}, err
	}

	result, err := tuning.Fit(ctx, scorer, resolved.params, fitCfg)
	if err != nil {
		return FitSummary{}, err
	}
	// A +Inf final score means no candidate simulated, so there is no
	// trajectory to compare or plot. The run is still recorded.
	diverged := math.IsInf(result.FinalScore, 1)
	var (
		summary []stats.ResidualSummary
		traj    simulation.Trajectory
	)
	if !diverged {
		residuals, err := scorer.Residuals(ctx, result.Parameters)
		if err != nil {
			return FitSummary{}, fmt.Errorf("residuals of best fit: %w", err)
		}
		summary, err = stats.SummarizeResiduals(residuals)
		if err != nil {
			return FitSummary{}, err
		}
		traj, err = scorer.Simulate(ctx, result.Parameters)
		if err != nil {
			return FitSummary{}, err
		}
	}

	now := time.Now().UTC()
	runID := stats.NewRunID(KindFit)
	record := model.FitRecord{
		VersionedRecord: storage.CurrentVersion(),
		RunID:           runID,
		CreatedAt:       now,
		Method:          result.Method,
		DataPath:        req.DataPath,
		Free:            result.Free,
		InitialScore:    stats.FiniteScore(result.InitialScore),
		FinalScore:      stats.FiniteScore(result.FinalScore),
		Evaluations:     result.Report.CandidateEvaluations,
		Diverged:        result.Report.DivergedCandidates,
		Parameters:      result.Parameters.Slice(),
	}
	if err := store.SaveFit(ctx, record); err != nil {
		return FitSummary{}, err
	}
	if err := store.SaveScoreHistory(ctx, runID, stats.FiniteScores(result.History)); err != nil {
		return FitSummary{}, err
	}

	cfg := c.runConfig(runID, KindFit, req.ModelOptions, resolved)
	objCfg := objective.DefaultConfig()
	cfg.DataPath = req.DataPath
	cfg.Start, cfg.End, cfg.Step, cfg.Tolerance = objCfg.Start, objCfg.End, objCfg.Step, objCfg.Tolerance
	cfg.Method = result.Method
	cfg.Free = result.Free
	cfg.LowerFactor, cfg.UpperFactor = fitCfg.LowerFactor, fitCfg.UpperFactor
	cfg.Budget = fitCfg.Budget
	cfg.BudgetPolicy = tuning.NormalizeBudgetPolicyName(fitCfg.BudgetPolicy)
	cfg.Seed = fitCfg.Seed
	cfg.Workers = fitCfg.Workers
	best := result.Parameters
	runDir, err := stats.WriteRunArtifacts(c.runsDir, stats.RunArtifacts{
		Config:       cfg,
		InitialScore: result.InitialScore,
		FinalScore:   result.FinalScore,
		ScoreHistory: result.History,
		Evaluations:  result.Report.CandidateEvaluations,
		Diverged:     result.Report.DivergedCandidates,
		Parameters:   &best,
		Residuals:    summary,
		Times:        traj.Times,
		States:       traj.States,
	})
	if err != nil {
		return FitSummary{}, err
	}
	if err := stats.AppendRunIndex(c.runsDir, stats.RunIndexEntry{
		RunID:        runID,
		Kind:         KindFit,
		Method:       result.Method,
		Seed:         fitCfg.Seed,
		Workers:      fitCfg.Workers,
		InitialScore: result.InitialScore,
		FinalScore:   result.FinalScore,
		Evaluations:  result.Report.CandidateEvaluations,
		CreatedAtUTC: now.Format(time.RFC3339Nano),
	}); err != nil {
		return FitSummary{}, err
	}

	out := FitSummary{RunID: runID, ArtifactsDir: runDir, Result: result, Residuals: summary}
	if diverged {
		c.log.WithFields(logrus.Fields{
			"run_id":      runID,
			"method":      result.Method,
			"evaluations": result.Report.CandidateEvaluations,
			"diverged":    result.Report.DivergedCandidates,
		}).Warn("fit recorded without a finite candidate")
		return out, nil
	}
	if req.PlotDir != "" {
		out.Plots, err = stats.PlotTimeCourses(req.PlotDir, runID+"_", traj.Times, traj.States, records)
		if err != nil {
			return FitSummary{}, err
		}
		if len(result.History) >= 2 {
			path := filepath.Join(req.PlotDir, runID+"_score.png")
			if err := stats.WriteScoreHistoryPlot(path, result.History); err == nil {
				out.Plots = append(out.Plots, path)
			} else {
				c.log.WithError(err).Warn("score history not plotted")
			}
		}
	}
	c.log.WithFields(logrus.Fields{
		"run_id":  runID,
		"method":  result.Method,
		"initial": result.InitialScore,
		"final":   result.FinalScore,
	}).Info("fit recorded")
	return out, nil
}

// GetFit returns a persisted fit.
func (c *Client) GetFit(ctx context.Context, runID string) (model.FitRecord, bool, error) {
	store, err := c.ensureStore(ctx)
	if err != nil {
		return model.FitRecord{}, false, err
	}
	return store.GetFit(ctx, runID)
}

// ScoreHistory returns the improvement trace of a fit, from the store or the
// run artifacts.
func (c *Client) ScoreHistory(ctx context.Context, runID string) ([]float64, error) {
	store, err := c.ensureStore(ctx)
	if err != nil {
		return nil, err
	}
	history, ok, err := store.GetScoreHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if ok {
		return history, nil
	}
	history, ok, err = stats.ReadScoreSeries(c.runsDir, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("score history not found for run %s", runID)
	}
	return history, nil
}

// Analyze computes the Jacobian, eigenvalues, elasticities and control
// coefficients at a state.
func (c *Client) Analyze(_ context.Context, req AnalyzeRequest) (analysis.Report, error) {
	resolved, err := req.resolve()
	if err != nil {
		return analysis.Report{}, err
	}
	m, err := resolved.model()
	if err != nil {
		return analysis.Report{}, err
	}
	state := kinetics.PublishedInitialState()
	if req.State != nil {
		state = *req.State
	}
	report, err := analysis.Analyze(req.Backend, m, state)
	if err != nil {
		return analysis.Report{}, err
	}
	if req.OutDir != "" {
		if err := writeMatrices(req.OutDir, report); err != nil {
			return analysis.Report{}, err
		}
	}
	c.log.WithFields(logrus.Fields{
		"backend":  report.Backend,
		"stable":   report.Stability.Stable,
		"max_real": report.Stability.MaxReal,
	}).Info("analysis finished")
	return report, nil
}

// Fluxes lists the 48 reaction rates at a state.
func (c *Client) Fluxes(_ context.Context, req FluxesRequest) ([]analysis.FluxEntry, error) {
	resolved, err := req.resolve()
	if err != nil {
		return nil, err
	}
	m, err := resolved.model()
	if err != nil {
		return nil, err
	}
	state := kinetics.PublishedInitialState()
	if req.State != nil {
		state = *req.State
	}
	return analysis.FluxReport(m, state), nil
}

// Plot renders the time courses of a recorded run.
func (c *Client) Plot(ctx context.Context, req PlotRequest) ([]string, error) {
	runID, err := c.resolveRunID(req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}
	times, states, err := c.loadTrajectory(ctx, runID)
	if err != nil {
		return nil, err
	}
	var observed []dataio.Record
	if req.DataPath != "" {
		observed, err = dataio.ReadExperimental(req.DataPath)
		if err != nil {
			return nil, err
		}
	}
	outDir := req.OutDir
	if outDir == "" {
		outDir = filepath.Join(c.runsDir, runID, "plots")
	}
	paths, err := stats.PlotTimeCourses(outDir, "", times, states, observed)
	if err != nil {
		return nil, err
	}
	if history, ok, err := stats.ReadScoreSeries(c.runsDir, runID); err == nil && ok && len(history) >= 2 {
		path := filepath.Join(outDir, "score.png")
		if err := stats.WriteScoreHistoryPlot(path, history); err == nil {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func (c *Client) loadTrajectory(ctx context.Context, runID string) ([]float64, []kinetics.State, error) {
	store, err := c.ensureStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	record, ok, err := store.GetTrajectory(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	if ok {
		states := make([]kinetics.State, len(record.States))
		for i, row := range record.States {
			if len(row) != kinetics.StateSize {
				return nil, nil, fmt.Errorf("stored trajectory %s has %d columns", runID, len(row))
			}
			copy(states[i][:], row)
		}
		return record.Times, states, nil
	}
	times, states, ok, err := stats.ReadRunTrajectory(c.runsDir, runID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, fmt.Errorf("trajectory not found for run %s", runID)
	}
	return times, states, nil
}

// Runs lists the run index, newest first.
func (c *Client) Runs(_ context.Context, req RunsRequest) ([]stats.RunIndexEntry, error) {
	entries, err := stats.ListRunIndex(c.runsDir)
	if err != nil {
		return nil, err
	}
	if req.Limit > 0 && len(entries) > req.Limit {
		entries = entries[:req.Limit]
	}
	return entries, nil
}

// StoredRuns lists the runs held by the store.
func (c *Client) StoredRuns(ctx context.Context) ([]model.RunSummary, error) {
	store, err := c.ensureStore(ctx)
	if err != nil {
		return nil, err
	}
	return store.ListRuns(ctx)
}

func (c *Client) Export(_ context.Context, req ExportRequest) (ExportSummary, error) {
	runID, err := c.resolveRunID(req.RunID, req.Latest)
	if err != nil {
		return ExportSummary{}, err
	}
	outDir := req.OutDir
	if outDir == "" {
		outDir = c.exportsDir
	}
	dir, err := stats.ExportRunArtifacts(c.runsDir, runID, outDir)
	if err != nil {
		return ExportSummary{}, err
	}
	return ExportSummary{RunID: runID, Directory: dir}, nil
}

// WriteBaselineParameters writes the published parameter set to path.
func (c *Client) WriteBaselineParameters(path string) error {
	if path == "" {
		return errors.New("output path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return dataio.WriteParametersFile(path, kinetics.BaselineParameters())
}

func (c *Client) newScorer(resolved resolvedModel, records []dataio.Record, workers int) (*objective.Scorer, error) {
	cfg := objective.DefaultConfig()
	cfg.Model = resolved.cfg
	cfg.Integrator = resolved.integrator
	if workers > 0 {
		cfg.Workers = workers
	}
	cfg.Logger = c.log
	return objective.NewScorer(cfg, records)
}

func (c *Client) runConfig(runID, kind string, opts ModelOptions, resolved resolvedModel) stats.RunConfig {
	return stats.RunConfig{
		RunID:      runID,
		Kind:       kind,
		ParamsPath: opts.ParamsPath,
		RelTol:     resolved.integrator.RelTol,
		AbsTol:     resolved.integrator.AbsTol,
		Workers:    1,
	}
}

func (c *Client) recordTrajectory(ctx context.Context, cfg stats.RunConfig, traj simulation.Trajectory, fluxes []kinetics.Fluxes, params *kinetics.Parameters) (string, error) {
	store, err := c.ensureStore(ctx)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	states := make([][]float64, len(traj.States))
	for i, s := range traj.States {
		states[i] = append([]float64(nil), s[:]...)
	}
	if err := store.SaveTrajectory(ctx, model.TrajectoryRecord{
		VersionedRecord: storage.CurrentVersion(),
		RunID:           cfg.RunID,
		CreatedAt:       now,
		Kind:            cfg.Kind,
		Times:           traj.Times,
		States:          states,
	}); err != nil {
		return "", err
	}
	runDir, err := stats.WriteRunArtifacts(c.runsDir, stats.RunArtifacts{
		Config:     cfg,
		Parameters: params,
		Times:      traj.Times,
		States:     traj.States,
		Fluxes:     fluxes,
	})
	if err != nil {
		return "", err
	}
	if err := stats.AppendRunIndex(c.runsDir, stats.RunIndexEntry{
		RunID:        cfg.RunID,
		Kind:         cfg.Kind,
		Seed:         cfg.Seed,
		Workers:      cfg.Workers,
		CreatedAtUTC: now.Format(time.RFC3339Nano),
	}); err != nil {
		return "", err
	}
	return runDir, nil
}

func (c *Client) resolveRunID(runID string, latest bool) (string, error) {
	if runID != "" {
		return runID, nil
	}
	if !latest {
		return "", errors.New("run id is required (or use latest)")
	}
	entries, err := stats.ListRunIndex(c.runsDir)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", errors.New("no runs recorded")
	}
	return entries[0].RunID, nil
}

func writeMatrices(dir string, report analysis.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	matrices := []struct {
		name string
		m    analysis.Matrix
	}{
		{"jacobian", report.Jacobian},
		{"elasticities", report.Elasticities},
		{"scaled_elasticities", report.ScaledElasticities},
		{"concentration_control", report.ConcentrationControl},
		{"scaled_concentration_control", report.ScaledConcentrationControl},
		{"flux_control", report.FluxControl},
		{"scaled_flux_control", report.ScaledFluxControl},
	}
	for _, item := range matrices {
		file, err := os.Create(filepath.Join(dir, item.name+".csv"))
		if err != nil {
			return err
		}
		if err := item.m.WriteCSV(file); err != nil {
			_ = file.Close()
			return fmt.Errorf("%s: %w", item.name, err)
		}
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}
