package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"ecoliccm/internal/model"
)

func TestDecodeFitFixture(t *testing.T) {
	fit, err := DecodeFit(readFixture(t, "fit_record_v1.json"))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	if fit.RunID != "fit-fixture-1" || fit.Method != "hillclimb" {
		t.Fatalf("unexpected fit: %+v", fit)
	}
	if !fit.CreatedAt.Equal(time.Date(2026, 3, 2, 10, 15, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created_at: %s", fit.CreatedAt)
	}
	if !reflect.DeepEqual(fit.Free, []string{"rmaxPDH", "rmaxPK"}) {
		t.Fatalf("unexpected free parameters: %v", fit.Free)
	}
	if fit.FinalScore != 97.25 || fit.Diverged != 3 {
		t.Fatalf("unexpected scores: %+v", fit)
	}
}

func TestDecodeTrajectoryFixture(t *testing.T) {
	trajectory, err := DecodeTrajectory(readFixture(t, "trajectory_record_v1.json"))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	if trajectory.Kind != "pulse" || len(trajectory.Times) != 2 {
		t.Fatalf("unexpected trajectory: %+v", trajectory)
	}
	if len(trajectory.States[1]) != 18 || trajectory.States[1][17] != 1.98 {
		t.Fatalf("unexpected states: %v", trajectory.States)
	}
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	_, err := DecodeFit(readFixture(t, "fit_record_v0.json"))
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch, got %v", err)
	}
}

func TestDecodeTrajectoryRejectsRaggedRecord(t *testing.T) {
	payload, err := EncodeTrajectory(model.TrajectoryRecord{
		VersionedRecord: CurrentVersion(),
		RunID:           "r",
		Times:           []float64{0, 1},
		States:          [][]float64{{1}},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeTrajectory(payload); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestFitEncodeDecodeRoundTrip(t *testing.T) {
	in := model.FitRecord{
		VersionedRecord: CurrentVersion(),
		RunID:           "fit-1",
		CreatedAt:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Method:          "cmaes",
		Free:            []string{"rmaxPTS"},
		InitialScore:    10,
		FinalScore:      1.0 / 3.0,
		Evaluations:     42,
		Parameters:      []float64{0.1, 1e-7, 3.3333333333333335},
	}
	data, err := EncodeFit(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeFit(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.CreatedAt.Equal(in.CreatedAt) {
		t.Fatalf("created_at changed: %s", out.CreatedAt)
	}
	out.CreatedAt = in.CreatedAt
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip changed fit:\nin=%+v\nout=%+v", in, out)
	}
}

func TestDecodeScoreHistoryRejectsGarbage(t *testing.T) {
	if _, err := DecodeScoreHistory([]byte("{")); err == nil {
		t.Fatal("expected decode error")
	}
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()

	data, err := os.ReadFile(fixturePath(name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func fixturePath(name string) string {
	return filepath.Join("..", "..", "testdata", "fixtures", name)
}
