package storage

import (
	"context"
	"testing"
	"time"

	"ecoliccm/internal/model"
)

func TestMemoryStoreFitRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := model.FitRecord{
		VersionedRecord: CurrentVersion(),
		RunID:           "fit-1",
		Method:          "hillclimb",
		Free:            []string{"rmaxPDH"},
		Parameters:      []float64{1, 2, 3},
	}
	if err := store.SaveFit(ctx, input); err != nil {
		t.Fatalf("save fit: %v", err)
	}
	input.Parameters[0] = 99

	output, ok, err := store.GetFit(ctx, "fit-1")
	if err != nil {
		t.Fatalf("get fit: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted fit")
	}
	if output.Method != "hillclimb" || output.Parameters[0] != 1 {
		t.Fatalf("unexpected fit: %+v", output)
	}

	if _, ok, err := store.GetFit(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing fit, ok=%t err=%v", ok, err)
	}
}

func TestMemoryStoreTrajectoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := model.TrajectoryRecord{
		VersionedRecord: CurrentVersion(),
		RunID:           "sim-1",
		Kind:            "simulate",
		Times:           []float64{0, 0.5},
		States:          [][]float64{{1, 2}, {3, 4}},
	}
	if err := store.SaveTrajectory(ctx, input); err != nil {
		t.Fatalf("save trajectory: %v", err)
	}
	output, ok, err := store.GetTrajectory(ctx, "sim-1")
	if err != nil {
		t.Fatalf("get trajectory: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted trajectory")
	}
	output.States[0][0] = -1
	again, _, _ := store.GetTrajectory(ctx, "sim-1")
	if again.States[0][0] != 1 || again.Times[1] != 0.5 {
		t.Fatalf("stored trajectory was aliased: %+v", again)
	}
}

func TestMemoryStoreScoreHistoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := []float64{3, 2, 1}
	if err := store.SaveScoreHistory(ctx, "fit-1", input); err != nil {
		t.Fatalf("save history: %v", err)
	}
	output, ok, err := store.GetScoreHistory(ctx, "fit-1")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted score history")
	}
	if len(output) != len(input) || output[2] != input[2] {
		t.Fatalf("unexpected history: %+v", output)
	}
}

func TestMemoryStoreListRunsOrdered(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := store.SaveFit(ctx, model.FitRecord{RunID: "fit-b", CreatedAt: base.Add(time.Minute)}); err != nil {
		t.Fatalf("save fit: %v", err)
	}
	if err := store.SaveTrajectory(ctx, model.TrajectoryRecord{RunID: "pulse-a", Kind: "pulse", CreatedAt: base}); err != nil {
		t.Fatalf("save trajectory: %v", err)
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].RunID != "pulse-a" || runs[0].Kind != "pulse" || runs[1].Kind != RunKindFit {
		t.Fatalf("unexpected run order: %+v", runs)
	}
}

func TestMemoryStoreRequiresInit(t *testing.T) {
	store := NewMemoryStore()
	if err := store.SaveFit(context.Background(), model.FitRecord{RunID: "x"}); err == nil {
		t.Fatal("expected uninitialized store error")
	}
}
