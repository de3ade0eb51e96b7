package storage

import (
	"context"

	"ecoliccm/internal/model"
)

// Store defines transaction-like persistence operations for fits and
// simulation outputs.
type Store interface {
	Init(ctx context.Context) error
	SaveFit(ctx context.Context, fit model.FitRecord) error
	GetFit(ctx context.Context, runID string) (model.FitRecord, bool, error)
	SaveTrajectory(ctx context.Context, trajectory model.TrajectoryRecord) error
	GetTrajectory(ctx context.Context, runID string) (model.TrajectoryRecord, bool, error)
	SaveScoreHistory(ctx context.Context, runID string, history []float64) error
	GetScoreHistory(ctx context.Context, runID string) ([]float64, bool, error)
	ListRuns(ctx context.Context) ([]model.RunSummary, error)
}
