package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"ecoliccm/internal/dataio"
	"ecoliccm/internal/kinetics"
)

const runIndexFile = "run_index.json"

// Artifact file names inside a run directory.
const (
	ConfigFile          = "config.json"
	ScoresFile          = "scores.json"
	ScoreSeriesFile     = "score_history.csv"
	ParametersFile      = "parameters.txt"
	ResidualSummaryFile = "residual_summary.json"
	TrajectoryFile      = "trajectory.csv"
	FluxesFile          = "fluxes.csv"
)

type RunConfig struct {
	RunID        string   `json:"run_id"`
	Kind         string   `json:"kind"`
	ParamsPath   string   `json:"params_path,omitempty"`
	DataPath     string   `json:"data_path,omitempty"`
	Start        float64  `json:"start"`
	End          float64  `json:"end"`
	Step         float64  `json:"step"`
	Tolerance    float64  `json:"tolerance,omitempty"`
	RelTol       float64  `json:"rel_tol"`
	AbsTol       float64  `json:"abs_tol"`
	Method       string   `json:"method,omitempty"`
	Free         []string `json:"free,omitempty"`
	LowerFactor  float64  `json:"lower_factor,omitempty"`
	UpperFactor  float64  `json:"upper_factor,omitempty"`
	Budget       int      `json:"budget,omitempty"`
	BudgetPolicy string   `json:"budget_policy,omitempty"`
	Seed         int64    `json:"seed"`
	Workers      int      `json:"workers"`
	Store        string   `json:"store,omitempty"`
}

// RunArtifacts is everything written for one run. Optional parts are
// skipped when empty.
type RunArtifacts struct {
	Config       RunConfig
	InitialScore float64
	FinalScore   float64
	ScoreHistory []float64
	Evaluations  int
	Diverged     int
	Parameters   *kinetics.Parameters
	Residuals    []ResidualSummary
	Times        []float64
	States       []kinetics.State
	Fluxes       []kinetics.Fluxes
}

// Scores is the content of scores.json.
type Scores struct {
	InitialScore float64   `json:"initial_score"`
	FinalScore   float64   `json:"final_score"`
	History      []float64 `json:"history"`
	Evaluations  int       `json:"evaluations"`
	Diverged     int       `json:"diverged"`
}

type RunIndexEntry struct {
	RunID        string  `json:"run_id"`
	Kind         string  `json:"kind"`
	Method       string  `json:"method,omitempty"`
	Seed         int64   `json:"seed"`
	Workers      int     `json:"workers"`
	InitialScore float64 `json:"initial_score"`
	FinalScore   float64 `json:"final_score"`
	Evaluations  int     `json:"evaluations"`
	CreatedAtUTC string  `json:"created_at_utc"`
}

// NewRunID returns a unique run id prefixed with the run kind.
func NewRunID(kind string) string {
	id := uuid.NewString()
	if kind == "" {
		return id
	}
	return kind + "-" + id
}

func WriteRunArtifacts(baseDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Config.RunID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, artifacts.Config.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, ConfigFile), artifacts.Config); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, ScoresFile), Scores{
		InitialScore: FiniteScore(artifacts.InitialScore),
		FinalScore:   FiniteScore(artifacts.FinalScore),
		History:      FiniteScores(artifacts.ScoreHistory),
		Evaluations:  artifacts.Evaluations,
		Diverged:     artifacts.Diverged,
	}); err != nil {
		return "", err
	}
	if len(artifacts.ScoreHistory) > 0 {
		if err := WriteScoreSeries(runDir, artifacts.ScoreHistory); err != nil {
			return "", err
		}
	}
	if artifacts.Parameters != nil {
		if err := dataio.WriteParametersFile(filepath.Join(runDir, ParametersFile), *artifacts.Parameters); err != nil {
			return "", err
		}
	}
	if len(artifacts.Residuals) > 0 {
		if err := writeJSON(filepath.Join(runDir, ResidualSummaryFile), artifacts.Residuals); err != nil {
			return "", err
		}
	}
	if len(artifacts.Times) > 0 {
		if err := dataio.WriteTrajectoryFile(filepath.Join(runDir, TrajectoryFile), artifacts.Times, artifacts.States); err != nil {
			return "", err
		}
	}
	if len(artifacts.Fluxes) > 0 {
		if err := writeFluxFile(filepath.Join(runDir, FluxesFile), artifacts.Times, artifacts.Fluxes); err != nil {
			return "", err
		}
	}

	return runDir, nil
}

func AppendRunIndex(baseDir string, entry RunIndexEntry) error {
	if entry.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	index, err := ListRunIndex(baseDir)
	if err != nil {
		return err
	}
	entry.InitialScore = FiniteScore(entry.InitialScore)
	entry.FinalScore = FiniteScore(entry.FinalScore)

	for i := range index {
		if index[i].RunID == entry.RunID {
			index[i] = entry
			return writeJSON(filepath.Join(baseDir, runIndexFile), index)
		}
	}

	index = append(index, entry)
	return writeJSON(filepath.Join(baseDir, runIndexFile), index)
}

// ListRunIndex returns the index newest first.
func ListRunIndex(baseDir string) ([]RunIndexEntry, error) {
	path := filepath.Join(baseDir, runIndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunIndexEntry{}, nil
		}
		return nil, err
	}

	var entries []RunIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	type indexedEntry struct {
		entry RunIndexEntry
		idx   int
	}
	indexed := make([]indexedEntry, len(entries))
	for i := range entries {
		indexed[i] = indexedEntry{entry: entries[i], idx: i}
	}
	sort.Slice(indexed, func(i, j int) bool {
		if indexed[i].entry.CreatedAtUTC == indexed[j].entry.CreatedAtUTC {
			// Prefer later appended entries for equal timestamps.
			return indexed[i].idx > indexed[j].idx
		}
		return indexed[i].entry.CreatedAtUTC > indexed[j].entry.CreatedAtUTC
	})

	sorted := make([]RunIndexEntry, 0, len(indexed))
	for _, item := range indexed {
		sorted = append(sorted, item.entry)
	}
	return sorted, nil
}

// ExportRunArtifacts copies a run directory to outDir. Only config.json is
// mandatory.
func ExportRunArtifacts(baseDir, runID, outDir string) (string, error) {
	if runID == "" {
		return "", fmt.Errorf("run id is required")
	}

	src := filepath.Join(baseDir, runID)
	if _, err := os.Stat(src); err != nil {
		return "", err
	}

	dst := filepath.Join(outDir, runID)
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return "", err
	}

	if err := copyFile(filepath.Join(src, ConfigFile), filepath.Join(dst, ConfigFile)); err != nil {
		return "", err
	}
	optional := []string{ScoresFile, ScoreSeriesFile, ParametersFile, ResidualSummaryFile, TrajectoryFile, FluxesFile}
	for _, file := range optional {
		path := filepath.Join(src, file)
		if _, err := os.Stat(path); err == nil {
			if err := copyFile(path, filepath.Join(dst, file)); err != nil {
				return "", err
			}
		} else if !os.IsNotExist(err) {
			return "", err
		}
	}
	return dst, nil
}

func ReadRunConfig(baseDir, runID string) (RunConfig, bool, error) {
	var cfg RunConfig
	ok, err := readJSON(filepath.Join(baseDir, runID, ConfigFile), &cfg)
	if err != nil || !ok {
		return RunConfig{}, ok, err
	}
	return cfg, true, nil
}

func WriteRunConfig(baseDir, runID string, cfg RunConfig) error {
	if strings.TrimSpace(runID) == "" {
		return fmt.Errorf("run id is required")
	}
	if strings.TrimSpace(cfg.RunID) == "" {
		cfg.RunID = strings.TrimSpace(runID)
	}
	if cfg.RunID != strings.TrimSpace(runID) {
		return fmt.Errorf("run config run id mismatch: got=%s want=%s", cfg.RunID, strings.TrimSpace(runID))
	}
	runDir := filepath.Join(baseDir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return err
	}
	return writeJSON(filepath.Join(runDir, ConfigFile), cfg)
}

func ReadScores(baseDir, runID string) (Scores, bool, error) {
	var scores Scores
	ok, err := readJSON(filepath.Join(baseDir, runID, ScoresFile), &scores)
	if err != nil || !ok {
		return Scores{}, ok, err
	}
	return scores, true, nil
}

func ReadResidualSummary(baseDir, runID string) ([]ResidualSummary, bool, error) {
	var summary []ResidualSummary
	ok, err := readJSON(filepath.Join(baseDir, runID, ResidualSummaryFile), &summary)
	if err != nil || !ok {
		return nil, ok, err
	}
	return summary, true, nil
}

// ReadRunTrajectory loads trajectory.csv of a run.
func ReadRunTrajectory(baseDir, runID string) ([]float64, []kinetics.State, bool, error) {
	path := filepath.Join(baseDir, runID, TrajectoryFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, false, nil
		}
		return nil, nil, false, err
	}
	times, states, err := dataio.ReadTrajectoryFile(path)
	if err != nil {
		return nil, nil, false, err
	}
	return times, states, true, nil
}

// WriteScoreSeries writes the best score after each improvement as CSV.
func WriteScoreSeries(runDir string, history []float64) error {
	path := filepath.Join(runDir, ScoreSeriesFile)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"improvement", "score"}); err != nil {
		return err
	}
	for i, score := range history {
		if err := writer.Write([]string{
			strconv.Itoa(i),
			strconv.FormatFloat(score, 'g', -1, 64),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func ReadScoreSeries(baseDir, runID string) ([]float64, bool, error) {
	path := filepath.Join(baseDir, runID, ScoreSeriesFile)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return []float64{}, true, nil
		}
		return nil, false, err
	}
	if len(header) < 2 {
		return nil, false, fmt.Errorf("score series header must have at least 2 columns")
	}

	series := make([]float64, 0, 32)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, err
		}
		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, false, err
		}
		series = append(series, value)
	}
	return series, true, nil
}

// FiniteScore maps non-finite scores onto the float range, since JSON has no
// representation for them.
func FiniteScore(v float64) float64 {
	switch {
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	case math.IsInf(v, 1), math.IsNaN(v):
		return math.MaxFloat64
	default:
		return v
	}
}

// FiniteScores applies FiniteScore to every value.
func FiniteScores(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = FiniteScore(v)
	}
	return out
}

func writeFluxFile(path string, times []float64, fluxes []kinetics.Fluxes) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return dataio.WriteFluxCSV(file, times, fluxes)
}

func readJSON(path string, value any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, value); err != nil {
		return false, err
	}
	return true, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
