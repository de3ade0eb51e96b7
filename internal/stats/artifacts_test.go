package stats

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ecoliccm/internal/kinetics"
)

func TestWriteAndExportRunArtifacts(t *testing.T) {
	baseDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "exports")

	runID := "fit-123"
	params := kinetics.BaselineParameters()
	state := kinetics.PublishedInitialState()
	model := kinetics.BaselineModel()
	artifacts := RunArtifacts{
		Config: RunConfig{
			RunID:   runID,
			Kind:    "fit",
			Method:  "hillclimb",
			Free:    []string{"rmaxPDH"},
			Budget:  10,
			Seed:    1,
			Workers: 2,
		},
		InitialScore: 12,
		FinalScore:   3,
		ScoreHistory: []float64{12, 5, 3},
		Evaluations:  10,
		Parameters:   &params,
		Residuals:    []ResidualSummary{{Metabolite: "pyr", Count: 2, RMSE: 0.1}},
		Times:        []float64{0, 0.5},
		States:       []kinetics.State{state, state},
		Fluxes:       []kinetics.Fluxes{model.Fluxes(0, state), model.Fluxes(0.5, state)},
	}

	runDir, err := WriteRunArtifacts(baseDir, artifacts)
	if err != nil {
		t.Fatalf("write artifacts: %v", err)
	}

	files := []string{ConfigFile, ScoresFile, ScoreSeriesFile, ParametersFile, ResidualSummaryFile, TrajectoryFile, FluxesFile}
	for _, file := range files {
		if _, err := os.Stat(filepath.Join(runDir, file)); err != nil {
			t.Fatalf("expected file %s: %v", file, err)
		}
	}

	exportedDir, err := ExportRunArtifacts(baseDir, runID, outDir)
	if err != nil {
		t.Fatalf("export artifacts: %v", err)
	}
	for _, file := range files {
		if _, err := os.Stat(filepath.Join(exportedDir, file)); err != nil {
			t.Fatalf("expected exported file %s: %v", file, err)
		}
	}

	cfg, ok, err := ReadRunConfig(baseDir, runID)
	if err != nil || !ok {
		t.Fatalf("read config: ok=%t err=%v", ok, err)
	}
	if cfg.Method != "hillclimb" || cfg.Workers != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	scores, ok, err := ReadScores(baseDir, runID)
	if err != nil || !ok {
		t.Fatalf("read scores: ok=%t err=%v", ok, err)
	}
	if scores.FinalScore != 3 || len(scores.History) != 3 {
		t.Fatalf("unexpected scores: %+v", scores)
	}

	series, ok, err := ReadScoreSeries(baseDir, runID)
	if err != nil || !ok {
		t.Fatalf("read score series: ok=%t err=%v", ok, err)
	}
	if len(series) != 3 || series[1] != 5 {
		t.Fatalf("unexpected score series: %v", series)
	}

	summary, ok, err := ReadResidualSummary(baseDir, runID)
	if err != nil || !ok || len(summary) != 1 || summary[0].Metabolite != "pyr" {
		t.Fatalf("unexpected residual summary: %+v ok=%t err=%v", summary, ok, err)
	}

	times, states, ok, err := ReadRunTrajectory(baseDir, runID)
	if err != nil || !ok {
		t.Fatalf("read trajectory: ok=%t err=%v", ok, err)
	}
	if len(times) != 2 || states[1] != state {
		t.Fatalf("unexpected trajectory: %v", times)
	}

	fluxes, err := os.ReadFile(filepath.Join(runDir, FluxesFile))
	if err != nil {
		t.Fatalf("read fluxes: %v", err)
	}
	if !strings.HasPrefix(string(fluxes), "time,") {
		t.Fatalf("unexpected flux header: %q", strings.SplitN(string(fluxes), "\n", 2)[0])
	}
}

func TestWriteRunArtifactsOptionalParts(t *testing.T) {
	baseDir := t.TempDir()
	runDir, err := WriteRunArtifacts(baseDir, RunArtifacts{Config: RunConfig{RunID: "steady-1", Kind: "steady"}})
	if err != nil {
		t.Fatalf("write artifacts: %v", err)
	}
	for _, file := range []string{ParametersFile, TrajectoryFile, FluxesFile, ResidualSummaryFile} {
		if _, err := os.Stat(filepath.Join(runDir, file)); !os.IsNotExist(err) {
			t.Fatalf("unexpected file %s: %v", file, err)
		}
	}
	if _, _, ok, err := ReadRunTrajectory(baseDir, "steady-1"); err != nil || ok {
		t.Fatalf("expected missing trajectory, ok=%t err=%v", ok, err)
	}
	if _, err := ExportRunArtifacts(baseDir, "steady-1", t.TempDir()); err != nil {
		t.Fatalf("export without optional files: %v", err)
	}
}

func TestWriteRunArtifactsRequiresRunID(t *testing.T) {
	if _, err := WriteRunArtifacts(t.TempDir(), RunArtifacts{}); err == nil {
		t.Fatal("expected run id error")
	}
}

func TestWriteRunArtifactsHandlesDivergedScores(t *testing.T) {
	baseDir := t.TempDir()
	_, err := WriteRunArtifacts(baseDir, RunArtifacts{
		Config:       RunConfig{RunID: "fit-inf"},
		InitialScore: math.Inf(1),
		FinalScore:   2,
		ScoreHistory: []float64{math.Inf(1), 2},
	})
	if err != nil {
		t.Fatalf("write artifacts: %v", err)
	}
	scores, _, err := ReadScores(baseDir, "fit-inf")
	if err != nil {
		t.Fatalf("read scores: %v", err)
	}
	if scores.InitialScore != math.MaxFloat64 {
		t.Fatalf("expected clamped initial score, got %g", scores.InitialScore)
	}
	series, _, err := ReadScoreSeries(baseDir, "fit-inf")
	if err != nil {
		t.Fatalf("read score series: %v", err)
	}
	if !math.IsInf(series[0], 1) {
		t.Fatalf("expected +Inf in csv series, got %g", series[0])
	}
}

func TestRunIndexAppendAndList(t *testing.T) {
	baseDir := t.TempDir()
	if err := AppendRunIndex(baseDir, RunIndexEntry{RunID: "a", Kind: "fit", CreatedAtUTC: "2026-01-01T00:00:00Z"}); err != nil {
		t.Fatalf("append a: %v", err)
	}
	if err := AppendRunIndex(baseDir, RunIndexEntry{RunID: "b", Kind: "pulse", CreatedAtUTC: "2026-01-02T00:00:00Z"}); err != nil {
		t.Fatalf("append b: %v", err)
	}
	if err := AppendRunIndex(baseDir, RunIndexEntry{RunID: "a", Kind: "fit", FinalScore: 1, CreatedAtUTC: "2026-01-03T00:00:00Z"}); err != nil {
		t.Fatalf("replace a: %v", err)
	}

	entries, err := ListRunIndex(baseDir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].RunID != "a" || entries[0].FinalScore != 1 || entries[1].RunID != "b" {
		t.Fatalf("unexpected index order: %+v", entries)
	}

	empty, err := ListRunIndex(t.TempDir())
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty index, got %v err=%v", empty, err)
	}
}

func TestWriteRunConfigRunIDMismatch(t *testing.T) {
	if err := WriteRunConfig(t.TempDir(), "run-a", RunConfig{RunID: "run-b"}); err == nil {
		t.Fatal("expected mismatch error")
	}
	baseDir := t.TempDir()
	if err := WriteRunConfig(baseDir, "run-a", RunConfig{Kind: "simulate"}); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, ok, err := ReadRunConfig(baseDir, "run-a")
	if err != nil || !ok || cfg.RunID != "run-a" {
		t.Fatalf("unexpected config: %+v ok=%t err=%v", cfg, ok, err)
	}
}

func TestNewRunIDIsUniqueAndPrefixed(t *testing.T) {
	a, b := NewRunID("fit"), NewRunID("fit")
	if a == b {
		t.Fatal("expected unique run ids")
	}
	if !strings.HasPrefix(a, "fit-") {
		t.Fatalf("expected kind prefix, got %q", a)
	}
}
