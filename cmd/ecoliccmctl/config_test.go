package main

import (
	"os"
	"path/filepath"
	"testing"

	"ecoliccm/internal/dataio"
	"ecoliccm/internal/integrator"
	"ecoliccm/internal/kinetics"
	"ecoliccm/internal/tuning"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRunFileKeepsDefaultsForMissingFields(t *testing.T) {
	path := writeConfig(t, `
data: data.tsv
model:
  perturbed: false
integrator:
  abs_tol: 1.0e-8
fit:
  method: neldermead
  free: [rmaxPTS, rmaxPK]
  budget: 50
`)
	cfg, err := loadRunFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Data != "data.tsv" {
		t.Fatalf("unexpected data path %q", cfg.Data)
	}

	wantModel := kinetics.DefaultConfig()
	wantModel.Perturbed = false
	if cfg.Model != wantModel {
		t.Fatalf("unexpected model config: %+v", cfg.Model)
	}
	wantInteg := integrator.DefaultConfig()
	wantInteg.AbsTol = 1e-8
	if cfg.Integrator != wantInteg {
		t.Fatalf("unexpected integrator config: %+v", cfg.Integrator)
	}
	if cfg.Fit.Method != tuning.MethodNelderMead || cfg.Fit.Budget != 50 || len(cfg.Fit.Free) != 2 {
		t.Fatalf("unexpected fit config: %+v", cfg.Fit)
	}
	if cfg.Fit.LowerFactor != 0.75 || cfg.Fit.UpperFactor != 1.5 {
		t.Fatalf("bound factors lost their defaults: %+v", cfg.Fit)
	}
}

func TestLoadRunFileEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := loadRunFile("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Model != kinetics.DefaultConfig() || cfg.Pulse.Until != 350 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadRunFileRejectsInvalidConfig(t *testing.T) {
	if _, err := loadRunFile(writeConfig(t, "model:\n  cytosol: 0\n")); err == nil {
		t.Fatal("expected model validation error")
	}
	if _, err := loadRunFile(writeConfig(t, "integrator:\n  rel_tol: -1\n")); err == nil {
		t.Fatal("expected integrator validation error")
	}
	if _, err := loadRunFile(writeConfig(t, "model: [1, 2\n")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := loadRunFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected missing file error")
	}
}

func TestModelOptionsAppliesParameterOverrides(t *testing.T) {
	dir := t.TempDir()
	paramsPath := filepath.Join(dir, "p.txt")
	base := kinetics.BaselineParameters().Scaled(2)
	if err := dataio.WriteParametersFile(paramsPath, base); err != nil {
		t.Fatalf("write params: %v", err)
	}

	cfg := defaultRunFile()
	cfg.Parameters = map[string]float64{"rmaxPK": 42}
	opts, err := cfg.modelOptions(paramsPath)
	if err != nil {
		t.Fatalf("model options: %v", err)
	}
	if opts.Parameters == nil {
		t.Fatal("expected resolved parameters")
	}
	if opts.Parameters.RmaxPK != 42 || opts.Parameters.RmaxPDH != base.RmaxPDH {
		t.Fatalf("unexpected parameters: rmaxPK=%g rmaxPDH=%g", opts.Parameters.RmaxPK, opts.Parameters.RmaxPDH)
	}

	cfg.Parameters = map[string]float64{"rmaxXYZ": 1}
	if _, err := cfg.modelOptions(""); err == nil {
		t.Fatal("expected unknown parameter error")
	}
}

func TestInitialStateOverrides(t *testing.T) {
	cfg := defaultRunFile()
	state, err := cfg.initialState(kinetics.PublishedInitialState())
	if err != nil || state != nil {
		t.Fatalf("expected no override, got %v (%v)", state, err)
	}

	cfg.Initial = map[string]float64{"cpyr": 9, "g6p": 1}
	state, err = cfg.initialState(kinetics.PublishedInitialState())
	if err != nil {
		t.Fatalf("initial state: %v", err)
	}
	if state[kinetics.PYR] != 9 || state[kinetics.G6P] != 1 {
		t.Fatalf("overrides not applied: %v", state)
	}

	cfg.Initial = map[string]float64{"atp": 1}
	if _, err := cfg.initialState(kinetics.PublishedInitialState()); err == nil {
		t.Fatal("expected unknown metabolite error")
	}
}
