package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ecoliccm/internal/dataio"
	"ecoliccm/internal/integrator"
	"ecoliccm/internal/kinetics"
	"ecoliccm/internal/simulation"
	"ecoliccm/internal/tuning"
	"ecoliccm/pkg/ecoliccm"
)

// runFile is the YAML run configuration. Every section is optional and
// starts from the package defaults, so a file only names what it changes.
type runFile struct {
	Params     string                  `yaml:"params"`
	Data       string                  `yaml:"data"`
	Store      string                  `yaml:"store"`
	DBPath     string                  `yaml:"db_path"`
	Model      kinetics.Config         `yaml:"model"`
	Integrator integrator.Config       `yaml:"integrator"`
	Parameters map[string]float64      `yaml:"parameters"`
	Initial    map[string]float64      `yaml:"initial"`
	Segments   []simulation.Segment    `yaml:"segments"`
	Pulse      simulation.PulseOptions `yaml:"pulse"`
	Fit        tuning.FitConfig        `yaml:"fit"`
}

func defaultRunFile() runFile {
	return runFile{
		Model:      kinetics.DefaultConfig(),
		Integrator: integrator.DefaultConfig(),
		Pulse:      simulation.DefaultPulseOptions(),
		Fit:        tuning.DefaultFitConfig(),
	}
}

// loadRunFile reads path over the defaults. An empty path yields the
// defaults alone.
func loadRunFile(path string) (runFile, error) {
	cfg := defaultRunFile()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return runFile{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return runFile{}, fmt.Errorf("parse run config %s: %w", path, err)
	}
	if err := cfg.Model.Validate(); err != nil {
		return runFile{}, fmt.Errorf("run config %s: %w", path, err)
	}
	if err := cfg.Integrator.Validate(); err != nil {
		return runFile{}, fmt.Errorf("run config %s: %w", path, err)
	}
	return cfg, nil
}

// modelOptions builds the client options, with paramsPath taking precedence
// over the file's params entry.
func (f runFile) modelOptions(paramsPath string) (ecoliccm.ModelOptions, error) {
	model := f.Model
	integ := f.Integrator
	opts := ecoliccm.ModelOptions{
		ParamsPath: f.Params,
		Config:     &model,
		Integrator: &integ,
	}
	if paramsPath != "" {
		opts.ParamsPath = paramsPath
	}
	if len(f.Parameters) == 0 {
		return opts, nil
	}

	params := kinetics.BaselineParameters()
	if opts.ParamsPath != "" {
		var err error
		params, err = dataio.ReadParameters(opts.ParamsPath)
		if err != nil {
			return ecoliccm.ModelOptions{}, err
		}
	}
	for name, value := range f.Parameters {
		var err error
		params, err = params.With(name, value)
		if err != nil {
			return ecoliccm.ModelOptions{}, fmt.Errorf("parameter override: %w", err)
		}
	}
	opts.Parameters = &params
	return opts, nil
}

// initialState applies the file's initial entries over base. It returns nil
// when the file sets none.
func (f runFile) initialState(base kinetics.State) (*kinetics.State, error) {
	if len(f.Initial) == 0 {
		return nil, nil
	}
	state := base
	for name, value := range f.Initial {
		var err error
		state, err = state.With(name, value)
		if err != nil {
			return nil, fmt.Errorf("initial state: %w", err)
		}
	}
	return &state, nil
}
