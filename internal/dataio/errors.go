// Package dataio reads and writes the plain-text files the toolkit shares
// with the outside world: parameter lists, experimental measurements and
// trajectory tables.
package dataio

import "fmt"

// DataFormatError reports a malformed input file. Line is 1-based and zero
// when the problem is not tied to a line.
type DataFormatError struct {
	Path   string
	Line   int
	Reason string
}

func (e *DataFormatError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", path, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", path, e.Reason)
}
