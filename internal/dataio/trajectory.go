package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"ecoliccm/internal/kinetics"
)

// WriteTrajectoryCSV writes a header row "time,dhap,...,pyr" followed by one
// row per sample.
func WriteTrajectoryCSV(out io.Writer, times []float64, states []kinetics.State) error {
	if len(times) != len(states) {
		return errors.New("times and states length mismatch")
	}
	writer := csv.NewWriter(out)
	header := append([]string{"time"}, kinetics.StateNames()...)
	if err := writer.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for i, s := range states {
		row[0] = strconv.FormatFloat(times[i], 'g', -1, 64)
		for j, v := range s {
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFluxCSV writes a header row "time,vALDO,..." followed by one row per
// sample.
func WriteFluxCSV(out io.Writer, times []float64, fluxes []kinetics.Fluxes) error {
	if len(times) != len(fluxes) {
		return errors.New("times and fluxes length mismatch")
	}
	writer := csv.NewWriter(out)
	header := append([]string{"time"}, kinetics.FluxNames()...)
	if err := writer.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for i, f := range fluxes {
		row[0] = strconv.FormatFloat(times[i], 'g', -1, 64)
		for j, v := range f.Slice() {
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadTrajectoryCSV parses a file written by WriteTrajectoryCSV. Columns are
// matched by name, so their order may differ.
func ReadTrajectoryCSV(in io.Reader, path string) ([]float64, []kinetics.State, error) {
	reader := csv.NewReader(in)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, &DataFormatError{Path: path, Reason: "empty trajectory file"}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read trajectory header %s: %w", path, err)
	}
	timeCol := -1
	cols := make([]int, len(header))
	seen := 0
	for i, name := range header {
		cols[i] = -1
		if name == "time" {
			timeCol = i
			continue
		}
		idx, ok := kinetics.StateIndex(name)
		if !ok {
			return nil, nil, &DataFormatError{Path: path, Line: 1, Reason: fmt.Sprintf("unknown column %q", name)}
		}
		cols[i] = idx
		seen++
	}
	if timeCol < 0 || seen != kinetics.StateSize {
		return nil, nil, &DataFormatError{Path: path, Line: 1, Reason: "header must name time and every metabolite"}
	}

	var (
		times  []float64
		states []kinetics.State
	)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, nil, &DataFormatError{Path: path, Line: line, Reason: err.Error()}
		}
		var s kinetics.State
		var t float64
		for i, raw := range row {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, nil, &DataFormatError{Path: path, Line: line, Reason: fmt.Sprintf("parse %q as float", raw)}
			}
			if i == timeCol {
				t = v
			} else {
				s[cols[i]] = v
			}
		}
		times = append(times, t)
		states = append(states, s)
	}
	return times, states, nil
}

// WriteTrajectoryFile writes a trajectory CSV to path.
func WriteTrajectoryFile(path string, times []float64, states []kinetics.State) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTrajectoryCSV(f, times, states); err != nil {
		_ = f.Close()
		return fmt.Errorf("write trajectory %s: %w", path, err)
	}
	return f.Close()
}

// ReadTrajectoryFile loads a trajectory CSV from path.
func ReadTrajectoryFile(path string) ([]float64, []kinetics.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadTrajectoryCSV(f, path)
}
