package kinetics

import (
	"fmt"
	"strings"
)

// ParameterCountError reports a parameter vector whose length or key set does
// not match the model.
type ParameterCountError struct {
	Got     int
	Want    int
	Missing []string
	Unknown []string
}

func (e *ParameterCountError) Error() string {
	msg := fmt.Sprintf("parameter count mismatch: got %d, want %d", e.Got, e.Want)
	if len(e.Missing) > 0 {
		msg += "; missing " + strings.Join(e.Missing, ",")
	}
	if len(e.Unknown) > 0 {
		msg += "; unknown " + strings.Join(e.Unknown, ",")
	}
	return msg
}
