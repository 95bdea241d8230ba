package cpu

import (
	"fmt"
	"strings"
)

// Trace is the human-readable log of a single run.
// Warnings and faults are always recorded; executed instructions
// only when Enabled is set.
type Trace struct {
	Enabled bool

	text     strings.Builder
	warnings int
}

// Reset empties the trace, keeping Enabled.
func (tr *Trace) Reset() {
	tr.text.Reset()
	tr.warnings = 0
}

// Printf appends a line when tracing is enabled.
func (tr *Trace) Printf(format string, args ...any) {
	if !tr.Enabled {
		return
	}
	tr.println(fmt.Sprintf(format, args...))
}

// Warn appends a warning line.
func (tr *Trace) Warn(msg string) {
	tr.warnings++
	tr.println(msg)
}

// Error appends a fault line.
func (tr *Trace) Error(err error) {
	tr.println(fmt.Sprintf("Error! %v", err))
}

func (tr *Trace) println(line string) {
	tr.text.WriteString(line)
	tr.text.WriteByte('\n')
}

// Warnings returns the number of warnings recorded.
func (tr *Trace) Warnings() int {
	return tr.warnings
}

// String returns the trace text.
func (tr *Trace) String() string {
	return tr.text.String()
}
