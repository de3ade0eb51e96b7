package storage

import (
	"context"
	"sort"
	"sync"

	"ecoliccm/internal/model"
)

type MemoryStore struct {
	mu           sync.RWMutex
	initialized  bool
	fits         map[string]model.FitRecord
	trajectories map[string]model.TrajectoryRecord
	history      map[string][]float64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.fits = make(map[string]model.FitRecord)
	s.trajectories = make(map[string]model.TrajectoryRecord)
	s.history = make(map[string][]float64)
	return nil
}

func (s *MemoryStore) SaveFit(_ context.Context, fit model.FitRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	s.fits[fit.RunID] = cloneFit(fit)
	return nil
}

func (s *MemoryStore) GetFit(_ context.Context, runID string) (model.FitRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fit, ok := s.fits[runID]
	if !ok {
		return model.FitRecord{}, false, nil
	}
	return cloneFit(fit), true, nil
}

func (s *MemoryStore) SaveTrajectory(_ context.Context, trajectory model.TrajectoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	s.trajectories[trajectory.RunID] = cloneTrajectory(trajectory)
	return nil
}

func (s *MemoryStore) GetTrajectory(_ context.Context, runID string) (model.TrajectoryRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trajectory, ok := s.trajectories[runID]
	if !ok {
		return model.TrajectoryRecord{}, false, nil
	}
	return cloneTrajectory(trajectory), true, nil
}

func (s *MemoryStore) SaveScoreHistory(_ context.Context, runID string, history []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	s.history[runID] = append([]float64(nil), history...)
	return nil
}

func (s *MemoryStore) GetScoreHistory(_ context.Context, runID string) ([]float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.history[runID]
	if !ok {
		return nil, false, nil
	}
	return append([]float64(nil), history...), true, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.RunSummary, 0, len(s.fits)+len(s.trajectories))
	for _, fit := range s.fits {
		runs = append(runs, model.RunSummary{RunID: fit.RunID, Kind: RunKindFit, CreatedAt: fit.CreatedAt})
	}
	for _, trajectory := range s.trajectories {
		runs = append(runs, model.RunSummary{RunID: trajectory.RunID, Kind: trajectory.Kind, CreatedAt: trajectory.CreatedAt})
	}
	sortRuns(runs)
	return runs, nil
}

func cloneFit(fit model.FitRecord) model.FitRecord {
	fit.Free = append([]string(nil), fit.Free...)
	fit.Parameters = append([]float64(nil), fit.Parameters...)
	return fit
}

func cloneTrajectory(trajectory model.TrajectoryRecord) model.TrajectoryRecord {
	trajectory.Times = append([]float64(nil), trajectory.Times...)
	states := make([][]float64, len(trajectory.States))
	for i, row := range trajectory.States {
		states[i] = append([]float64(nil), row...)
	}
	trajectory.States = states
	return trajectory
}

func sortRuns(runs []model.RunSummary) {
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.Before(runs[j].CreatedAt)
		}
		return runs[i].RunID < runs[j].RunID
	})
}
