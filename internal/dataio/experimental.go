package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"ecoliccm/internal/kinetics"
)

// Record is one experimental measurement. Metabolite keeps the name as it
// appears in the file ("cpyr").
type Record struct {
	Time       float64 `json:"time"`
	Value      float64 `json:"value"`
	Metabolite string  `json:"metabolite"`
	SD         float64 `json:"sd"`
}

// Index returns the state index of the measured metabolite.
func (r Record) Index() (int, bool) {
	return kinetics.StateIndex(r.Metabolite)
}

// ParseExperimental reads tab-separated rows of time, value, metabolite and
// standard deviation. Lines starting with '#' are comments.
func ParseExperimental(in io.Reader, path string) ([]Record, error) {
	reader := csv.NewReader(in)
	reader.Comma = '\t'
	reader.Comment = '#'
	reader.FieldsPerRecord = 4
	reader.TrimLeadingSpace = true

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &DataFormatError{Path: path, Line: parseErr.Line, Reason: parseErr.Err.Error()}
			}
			return nil, fmt.Errorf("read experimental data %s: %w", path, err)
		}
		line, _ := reader.FieldPos(0)
		rec, err := parseRecord(row)
		if err != nil {
			return nil, &DataFormatError{Path: path, Line: line, Reason: err.Error()}
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row []string) (Record, error) {
	t, err := parseField("time", row[0])
	if err != nil {
		return Record{}, err
	}
	v, err := parseField("value", row[1])
	if err != nil {
		return Record{}, err
	}
	sd, err := parseField("sd", row[3])
	if err != nil {
		return Record{}, err
	}
	if sd <= 0 {
		return Record{}, fmt.Errorf("sd must be > 0, got %g", sd)
	}
	name := strings.TrimSpace(row[2])
	if _, ok := kinetics.StateIndex(name); !ok {
		return Record{}, fmt.Errorf("unknown metabolite %q", name)
	}
	return Record{Time: t, Value: v, Metabolite: name, SD: sd}, nil
}

func parseField(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q", field, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be finite", field)
	}
	return v, nil
}

// ReadExperimental loads an experimental data file.
func ReadExperimental(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseExperimental(f, path)
}

// WriteExperimental writes records in the format ParseExperimental reads.
func WriteExperimental(out io.Writer, records []Record) error {
	writer := csv.NewWriter(out)
	writer.Comma = '\t'
	for _, r := range records {
		row := []string{
			strconv.FormatFloat(r.Time, 'g', -1, 64),
			strconv.FormatFloat(r.Value, 'g', -1, 64),
			r.Metabolite,
			strconv.FormatFloat(r.SD, 'g', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteExperimentalFile writes records to path.
func WriteExperimentalFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteExperimental(f, records); err != nil {
		_ = f.Close()
		return fmt.Errorf("write experimental data %s: %w", path, err)
	}
	return f.Close()
}
