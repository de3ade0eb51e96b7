package model

import "time"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// FitRecord is one persisted parameter estimation.
type FitRecord struct {
	VersionedRecord
	RunID        string    `json:"run_id"`
	CreatedAt    time.Time `json:"created_at"`
	Method       string    `json:"method"`
	DataPath     string    `json:"data_path,omitempty"`
	Free         []string  `json:"free"`
	InitialScore float64   `json:"initial_score"`
	FinalScore   float64   `json:"final_score"`
	Evaluations  int       `json:"evaluations"`
	Diverged     int       `json:"diverged"`
	// Parameters holds all 116 values in canonical order.
	Parameters []float64 `json:"parameters"`
}

// TrajectoryRecord is a persisted simulation output.
type TrajectoryRecord struct {
	VersionedRecord
	RunID     string      `json:"run_id"`
	CreatedAt time.Time   `json:"created_at"`
	Kind      string      `json:"kind"`
	Times     []float64   `json:"times"`
	States    [][]float64 `json:"states"`
}

// RunSummary is the lightweight listing entry for a stored run.
type RunSummary struct {
	RunID     string    `json:"run_id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
