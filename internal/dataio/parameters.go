package dataio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"ecoliccm/internal/kinetics"
)

// ParseParameterValues reads one float per line. Blank lines are skipped.
func ParseParameterValues(in io.Reader, path string) ([]float64, error) {
	scanner := bufio.NewScanner(in)
	values := make([]float64, 0, kinetics.ParameterCount)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &DataFormatError{Path: path, Line: line, Reason: fmt.Sprintf("parse %q as float", text)}
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read parameters %s: %w", path, err)
	}
	return values, nil
}

// ReadParameters loads a parameter file in canonical order. A file with the
// wrong number of values fails with a DataFormatError wrapping the
// ParameterCountError.
func ReadParameters(path string) (kinetics.Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return kinetics.Parameters{}, err
	}
	defer f.Close()

	values, err := ParseParameterValues(f, path)
	if err != nil {
		return kinetics.Parameters{}, err
	}
	p, err := kinetics.ParametersFromSlice(values)
	if err != nil {
		return kinetics.Parameters{}, fmt.Errorf("%w: %w", &DataFormatError{Path: path, Reason: "wrong parameter count"}, err)
	}
	return p, nil
}

// WriteParameters writes one value per line with the shortest representation
// that parses back to the same float64.
func WriteParameters(out io.Writer, p kinetics.Parameters) error {
	w := bufio.NewWriter(out)
	for _, v := range p.Slice() {
		if _, err := w.WriteString(strconv.FormatFloat(v, 'g', -1, 64) + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

// WriteParametersFile writes p to path, replacing any existing file.
func WriteParametersFile(path string, p kinetics.Parameters) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteParameters(f, p); err != nil {
		_ = f.Close()
		return fmt.Errorf("write parameters %s: %w", path, err)
	}
	return f.Close()
}

// IsDataFormat reports whether err carries a DataFormatError.
func IsDataFormat(err error) bool {
	var target *DataFormatError
	return errors.As(err, &target)
}
