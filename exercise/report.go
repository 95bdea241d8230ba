package exercise

import (
	"fmt"
	"log"

	"go.starlark.net/starlark"

	"github.com/ezrec/risc16/cpu"
	"github.com/ezrec/risc16/emulator"
)

// Report is the outcome of one run of an exercise.
type Report struct {
	Index   int             // Rank of the input vector.
	Passed  bool            // Expected registers matched, without fault.
	Message string          // Formatted pass or fail pattern.
	Labels  cpu.Labels      // Labels of the program that was run.
	Result  emulator.Result // Final state of the run.
}

// Verify compares the final registers of each run with the expected
// outputs. A run that faulted never passes; a run with no expected
// output passes if it halted.
func (ex *Exercise) Verify(results []emulator.Result) (passed []bool) {
	passed = make([]bool, len(results))
	for n, result := range results {
		passed[n] = result.Err == nil
		if n >= len(ex.Outputs) {
			continue
		}
		for _, want := range ex.Outputs[n] {
			if want.Register < 0 || want.Register >= cpu.REGISTER_COUNT ||
				result.Registers[want.Register] != int16(want.Value) {
				passed[n] = false
			}
		}
	}

	return
}

// unsigned is the 16-bit two's complement view of a register value.
func unsigned(value int16) starlark.Int {
	return starlark.MakeInt(int(uint16(value)))
}

// fields returns the format arguments of the report of run n.
func (ex *Exercise) fields(n int, result emulator.Result) (kwargs []starlark.Tuple) {
	if n < len(ex.Inputs) {
		for _, ov := range ex.Inputs[n] {
			kwargs = append(kwargs, starlark.Tuple{starlark.String(fmt.Sprintf("ri%d", ov.Register)), unsigned(int16(ov.Value))})
		}
	}
	if n < len(ex.Outputs) {
		for _, ov := range ex.Outputs[n] {
			kwargs = append(kwargs, starlark.Tuple{starlark.String(fmt.Sprintf("ro%d", ov.Register)), unsigned(int16(ov.Value))})
		}
	}
	for reg, value := range result.Registers {
		kwargs = append(kwargs, starlark.Tuple{starlark.String(fmt.Sprintf("risc%d", reg)), unsigned(value)})
	}

	return
}

// format expands a pattern with str.format semantics.
func format(pattern string, kwargs []starlark.Tuple) (text string, err error) {
	if len(pattern) == 0 {
		return
	}

	method, err := starlark.String(pattern).Attr("format")
	if err != nil {
		return
	}

	thread := &starlark.Thread{Name: "report"}
	value, err := starlark.Call(thread, method, nil, kwargs)
	if err != nil {
		err = &ErrPattern{Pattern: pattern, Err: err}
		return
	}

	text, _ = starlark.AsString(value)
	return
}

// Run executes the program loaded in the emulator against every input
// vector, then verifies and reports each run.
func (ex *Exercise) Run(emu *emulator.Emulator, parallel bool) (reports []Report, err error) {
	if emu.Program == nil {
		err = emulator.ErrProgramMissing
		return
	}

	var results []emulator.Result
	if parallel {
		results = emu.BatchParallel(ex.Inputs)
	} else {
		results = emu.Batch(ex.Inputs)
	}

	passed := ex.Verify(results)

	reports = make([]Report, len(results))
	for n, result := range results {
		pattern := ex.FailPattern
		if passed[n] {
			pattern = ex.PassPattern
		}

		var message string
		message, err = format(pattern, ex.fields(n, result))
		if err != nil {
			return
		}

		if emu.Verbose {
			log.Printf("exercise: %v #%d passed=%v", ex.Name, n, passed[n])
		}

		reports[n] = Report{
			Index:   n,
			Passed:  passed[n],
			Message: message,
			Labels:  emu.Program.Labels,
			Result:  result,
		}
	}

	return
}
