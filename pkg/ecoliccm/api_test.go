package ecoliccm

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"ecoliccm/internal/dataio"
	"ecoliccm/internal/integrator"
	"ecoliccm/internal/kinetics"
	"ecoliccm/internal/simulation"
	"ecoliccm/internal/stats"
	"ecoliccm/internal/tuning"
)

func newTestClient(t *testing.T) (*Client, string) {
	t.Helper()

	base := t.TempDir()
	client, err := New(Options{
		StoreKind:  "memory",
		RunsDir:    filepath.Join(base, "runs"),
		ExportsDir: filepath.Join(base, "exports"),
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	if err := client.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return client, base
}

// writeSyntheticData samples the default experiment under the baseline
// parameters, so the baseline scores zero against it.
func writeSyntheticData(t *testing.T, client *Client, dir string) string {
	t.Helper()

	summary, err := client.Simulate(context.Background(), SimulateRequest{})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	var records []dataio.Record
	for _, k := range []int{20, 100, 400} {
		s := summary.Trajectory.States[k]
		records = append(records,
			dataio.Record{Time: summary.Trajectory.Times[k], Value: s[kinetics.PYR], Metabolite: "cpyr", SD: 0.05},
			dataio.Record{Time: summary.Trajectory.Times[k], Value: s[kinetics.G6P], Metabolite: "cg6p", SD: 0.1},
		)
	}
	path := filepath.Join(dir, "data.tsv")
	if err := dataio.WriteExperimentalFile(path, records); err != nil {
		t.Fatalf("write data: %v", err)
	}
	return path
}

func TestClientSimulateRecordsRun(t *testing.T) {
	ctx := context.Background()
	client, base := newTestClient(t)

	summary, err := client.Simulate(ctx, SimulateRequest{
		Segments: []simulation.Segment{{Start: 0, End: 5, Step: 0.5}},
	})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if summary.Trajectory.Len() != 10 || len(summary.Fluxes) != 10 {
		t.Fatalf("unexpected sample count: %d states, %d fluxes", summary.Trajectory.Len(), len(summary.Fluxes))
	}
	for _, file := range []string{stats.ConfigFile, stats.TrajectoryFile, stats.FluxesFile, stats.ParametersFile} {
		if _, err := os.Stat(filepath.Join(summary.ArtifactsDir, file)); err != nil {
			t.Fatalf("expected artifact %s: %v", file, err)
		}
	}

	runs, err := client.Runs(ctx, RunsRequest{})
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != summary.RunID || runs[0].Kind != KindSimulate {
		t.Fatalf("unexpected run index: %+v", runs)
	}
	stored, err := client.StoredRuns(ctx)
	if err != nil {
		t.Fatalf("stored runs: %v", err)
	}
	if len(stored) != 1 || stored[0].RunID != summary.RunID {
		t.Fatalf("unexpected stored runs: %+v", stored)
	}

	plots, err := client.Plot(ctx, PlotRequest{Latest: true, OutDir: filepath.Join(base, "plots")})
	if err != nil {
		t.Fatalf("plot: %v", err)
	}
	if len(plots) != len(stats.PlotMetabolites) {
		t.Fatalf("expected %d plots, got %d", len(stats.PlotMetabolites), len(plots))
	}

	exported, err := client.Export(ctx, ExportRequest{Latest: true})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if exported.RunID != summary.RunID {
		t.Fatalf("unexpected exported run %s", exported.RunID)
	}
	if _, err := os.Stat(filepath.Join(exported.Directory, stats.TrajectoryFile)); err != nil {
		t.Fatalf("expected exported trajectory: %v", err)
	}
}

func TestClientPlotFallsBackToArtifacts(t *testing.T) {
	ctx := context.Background()
	client, base := newTestClient(t)

	summary, err := client.Simulate(ctx, SimulateRequest{
		Segments: []simulation.Segment{{Start: 0, End: 2, Step: 0.5}},
	})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	// A second client over the same runs directory starts with an empty
	// memory store.
	other, err := New(Options{StoreKind: "memory", RunsDir: filepath.Join(base, "runs")})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = other.Close()
	})
	plots, err := other.Plot(ctx, PlotRequest{RunID: summary.RunID})
	if err != nil {
		t.Fatalf("plot from artifacts: %v", err)
	}
	if filepath.Dir(plots[0]) != filepath.Join(base, "runs", summary.RunID, "plots") {
		t.Fatalf("unexpected default plot dir: %s", plots[0])
	}
}

func TestClientScoreAndFit(t *testing.T) {
	ctx := context.Background()
	client, base := newTestClient(t)
	dataPath := writeSyntheticData(t, client, base)

	baseline, err := client.Score(ctx, ScoreRequest{DataPath: dataPath})
	if err != nil {
		t.Fatalf("score baseline: %v", err)
	}
	if len(baseline.Scores) != 1 || baseline.Scores[0].Score > 1e-12 {
		t.Fatalf("expected zero baseline score, got %+v", baseline.Scores)
	}
	if len(baseline.Residuals) != 2 {
		t.Fatalf("expected residuals for 2 metabolites, got %d", len(baseline.Residuals))
	}

	perturbed := kinetics.BaselineParameters()
	perturbed.RmaxPK *= 1.2
	baselinePath := filepath.Join(base, "baseline.txt")
	perturbedPath := filepath.Join(base, "perturbed.txt")
	if err := client.WriteBaselineParameters(baselinePath); err != nil {
		t.Fatalf("write baseline: %v", err)
	}
	if err := dataio.WriteParametersFile(perturbedPath, perturbed); err != nil {
		t.Fatalf("write perturbed: %v", err)
	}

	multi, err := client.Score(ctx, ScoreRequest{DataPath: dataPath, ParamsPaths: []string{baselinePath, perturbedPath}, Workers: 2})
	if err != nil {
		t.Fatalf("score files: %v", err)
	}
	if len(multi.Scores) != 2 || multi.Scores[0].Source != baselinePath {
		t.Fatalf("unexpected scores: %+v", multi.Scores)
	}
	if multi.Scores[0].Score > 1e-12 || multi.Scores[1].Score <= 0 {
		t.Fatalf("expected baseline to beat the perturbed set: %+v", multi.Scores)
	}

	fitCfg := tuning.DefaultFitConfig()
	fitCfg.Free = []string{"rmaxPK"}
	fitCfg.Budget = 6
	fit, err := client.Fit(ctx, FitRequest{
		ModelOptions: ModelOptions{Parameters: &perturbed},
		DataPath:     dataPath,
		Fit:          fitCfg,
		PlotDir:      filepath.Join(base, "plots"),
	})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if fit.Result.FinalScore > fit.Result.InitialScore {
		t.Fatalf("fit made things worse: %+v", fit.Result)
	}
	if len(fit.Plots) < len(stats.PlotMetabolites) {
		t.Fatalf("expected time course plots, got %v", fit.Plots)
	}

	record, ok, err := client.GetFit(ctx, fit.RunID)
	if err != nil || !ok {
		t.Fatalf("get fit: ok=%t err=%v", ok, err)
	}
	if record.Method != tuning.MethodHillClimb || len(record.Parameters) != len(kinetics.ParameterNames()) {
		t.Fatalf("unexpected fit record: method=%s params=%d", record.Method, len(record.Parameters))
	}
	history, err := client.ScoreHistory(ctx, fit.RunID)
	if err != nil {
		t.Fatalf("score history: %v", err)
	}
	if len(history) == 0 || history[0] != fit.Result.InitialScore {
		t.Fatalf("unexpected history: %v", history)
	}

	best, err := dataio.ReadParameters(filepath.Join(fit.ArtifactsDir, stats.ParametersFile))
	if err != nil {
		t.Fatalf("read fitted parameters: %v", err)
	}
	if best != fit.Result.Parameters {
		t.Fatal("fitted parameter file differs from the result")
	}
}

func TestClientFitRecordsDivergedRun(t *testing.T) {
	ctx := context.Background()
	client, base := newTestClient(t)
	dataPath := writeSyntheticData(t, client, base)

	// One step per segment cannot reach the first sample, so every
	// candidate diverges.
	integ := integrator.DefaultConfig()
	integ.MaxSteps = 1
	fitCfg := tuning.DefaultFitConfig()
	fitCfg.Free = []string{"rmaxPK"}
	fitCfg.Budget = 3
	fit, err := client.Fit(ctx, FitRequest{
		ModelOptions: ModelOptions{Integrator: &integ},
		DataPath:     dataPath,
		Fit:          fitCfg,
		PlotDir:      filepath.Join(base, "plots"),
	})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if !math.IsInf(fit.Result.FinalScore, 1) || fit.Result.Report.DivergedCandidates == 0 {
		t.Fatalf("expected a diverged fit, got %+v", fit.Result)
	}
	if len(fit.Plots) != 0 || len(fit.Residuals) != 0 {
		t.Fatalf("expected no plots or residuals, got %v and %v", fit.Plots, fit.Residuals)
	}

	record, ok, err := client.GetFit(ctx, fit.RunID)
	if err != nil || !ok {
		t.Fatalf("get fit: ok=%t err=%v", ok, err)
	}
	if record.FinalScore != math.MaxFloat64 || record.Diverged == 0 {
		t.Fatalf("unexpected fit record: final=%g diverged=%d", record.FinalScore, record.Diverged)
	}
	history, err := client.ScoreHistory(ctx, fit.RunID)
	if err != nil {
		t.Fatalf("score history: %v", err)
	}
	if len(history) == 0 || history[0] != math.MaxFloat64 {
		t.Fatalf("unexpected history: %v", history)
	}

	if _, err := os.Stat(filepath.Join(fit.ArtifactsDir, stats.ParametersFile)); err != nil {
		t.Fatalf("expected parameters artifact: %v", err)
	}
	if _, err := os.Stat(filepath.Join(fit.ArtifactsDir, stats.TrajectoryFile)); !os.IsNotExist(err) {
		t.Fatalf("expected no trajectory artifact, got %v", err)
	}
	runs, err := client.Runs(ctx, RunsRequest{})
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	found := false
	for _, run := range runs {
		found = found || (run.RunID == fit.RunID && run.Kind == KindFit)
	}
	if !found {
		t.Fatalf("fit missing from run index: %+v", runs)
	}
}

func TestClientAnalyzeWritesMatrices(t *testing.T) {
	client, base := newTestClient(t)
	outDir := filepath.Join(base, "mca")

	report, err := client.Analyze(context.Background(), AnalyzeRequest{OutDir: outDir})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !report.Stability.Stable {
		t.Fatalf("expected a stable published state, max real part %g", report.Stability.MaxReal)
	}
	for _, name := range []string{"jacobian", "elasticities", "scaled_elasticities", "concentration_control", "scaled_concentration_control", "flux_control", "scaled_flux_control"} {
		if _, err := os.Stat(filepath.Join(outDir, name+".csv")); err != nil {
			t.Fatalf("expected %s.csv: %v", name, err)
		}
	}
}

func TestClientFluxesAndSteadyState(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)

	fluxes, err := client.Fluxes(ctx, FluxesRequest{})
	if err != nil {
		t.Fatalf("fluxes: %v", err)
	}
	if len(fluxes) != len(kinetics.FluxNames()) || fluxes[0].Name != kinetics.FluxNames()[0] {
		t.Fatalf("unexpected flux report: %d entries", len(fluxes))
	}

	report, err := client.SteadyState(ctx, SteadyRequest{})
	if err != nil {
		t.Fatalf("steady state: %v", err)
	}
	if !report.Reached || report.FirstNorm >= simulation.DefaultSteadyStateThreshold {
		t.Fatalf("expected the published state to be steady, norms %g and %g", report.FirstNorm, report.LastNorm)
	}
}

func TestClientPulseWithPlots(t *testing.T) {
	client, base := newTestClient(t)
	opts := simulation.PulseOptions{Glucose: kinetics.PulseGlucose, RelaxFrom: -1, Until: 5, Step: 0.5}

	summary, err := client.Pulse(context.Background(), PulseRequest{
		Options: &opts,
		PlotDir: filepath.Join(base, "plots"),
	})
	if err != nil {
		t.Fatalf("pulse: %v", err)
	}
	if summary.Result.Trajectory.Len() != 12 {
		t.Fatalf("unexpected samples: %d", summary.Result.Trajectory.Len())
	}
	if len(summary.Plots) != len(stats.PlotMetabolites) {
		t.Fatalf("expected %d plots, got %d", len(stats.PlotMetabolites), len(summary.Plots))
	}
}

func TestClientRequestErrors(t *testing.T) {
	ctx := context.Background()
	client, base := newTestClient(t)

	if _, err := client.Score(ctx, ScoreRequest{}); err == nil {
		t.Fatal("expected missing data path error")
	}
	if _, err := client.Fit(ctx, FitRequest{}); err == nil {
		t.Fatal("expected missing data path error")
	}
	if _, err := client.Plot(ctx, PlotRequest{Latest: true}); err == nil {
		t.Fatal("expected no runs error")
	}
	if _, err := client.Plot(ctx, PlotRequest{}); err == nil {
		t.Fatal("expected run id error")
	}
	if _, err := client.Simulate(ctx, SimulateRequest{ModelOptions: ModelOptions{ParamsPath: filepath.Join(base, "missing.txt")}}); err == nil {
		t.Fatal("expected missing parameter file error")
	}
	if err := client.WriteBaselineParameters(""); err == nil {
		t.Fatal("expected output path error")
	}
	if _, err := New(Options{StoreKind: "etcd"}); err == nil {
		t.Fatal("expected unsupported store error")
	}
}
