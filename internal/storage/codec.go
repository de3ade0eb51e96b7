package storage

import (
	"encoding/json"
	"errors"

	"ecoliccm/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// CurrentVersion is the version stamp new records are written with.
func CurrentVersion() model.VersionedRecord {
	return model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion}
}

func EncodeFit(f model.FitRecord) ([]byte, error) {
	return json.Marshal(f)
}

func DecodeFit(data []byte) (model.FitRecord, error) {
	var fit model.FitRecord
	if err := json.Unmarshal(data, &fit); err != nil {
		return model.FitRecord{}, err
	}
	if err := checkVersion(fit.VersionedRecord); err != nil {
		return model.FitRecord{}, err
	}
	return fit, nil
}

func EncodeTrajectory(t model.TrajectoryRecord) ([]byte, error) {
	return json.Marshal(t)
}

func DecodeTrajectory(data []byte) (model.TrajectoryRecord, error) {
	var trajectory model.TrajectoryRecord
	if err := json.Unmarshal(data, &trajectory); err != nil {
		return model.TrajectoryRecord{}, err
	}
	if err := checkVersion(trajectory.VersionedRecord); err != nil {
		return model.TrajectoryRecord{}, err
	}
	if len(trajectory.Times) != len(trajectory.States) {
		return model.TrajectoryRecord{}, errors.New("trajectory times and states differ in length")
	}
	return trajectory, nil
}

func EncodeScoreHistory(history []float64) ([]byte, error) {
	return json.Marshal(history)
}

func DecodeScoreHistory(data []byte) ([]float64, error) {
	var history []float64
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
