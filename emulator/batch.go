package emulator

import (
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/risc16/cpu"
)

// Batch runs the program once per input vector, in order.
func (emu *Emulator) Batch(inputs [][]cpu.Override) (results []Result) {
	results = make([]Result, len(inputs))
	for n, overrides := range inputs {
		results[n] = emu.Run(overrides...)
	}

	return
}

// BatchParallel runs the program once per input vector, with up to
// Workers runs executing concurrently. Results are in input order and
// identical to those of Batch.
func (emu *Emulator) BatchParallel(inputs [][]cpu.Override) (results []Result) {
	results = make([]Result, len(inputs))

	var group errgroup.Group
	if emu.Workers > 0 {
		group.SetLimit(emu.Workers)
	}

	for n, overrides := range inputs {
		group.Go(func() error {
			results[n] = emu.Run(overrides...)
			return nil
		})
	}

	// Faults stay in their own Result.
	_ = group.Wait()

	if emu.Verbose {
		log.Printf("emulator: batch of %d complete", len(inputs))
	}

	return
}

// Listing loads source text and returns its normalized listing.
func Listing(source string) (listing string, err error) {
	prog, err := cpu.Load(source)
	if err != nil {
		return
	}

	listing = prog.Listing()
	return
}

// RunSource loads and runs source text once. Execution faults are
// reported in the trace; err is only set if the source fails to load.
func RunSource(source string, maxInstructions int, trace bool) (traceText string, state string, err error) {
	emu := NewEmulator()
	emu.MaxInstructions = maxInstructions
	emu.Trace = trace

	err = emu.Load(strings.NewReader(source))
	if err != nil {
		return
	}

	result := emu.Run()
	traceText = result.Trace
	state = result.State
	return
}

// BatchSource loads source text and runs it once per input vector,
// returning the final registers of each run.
func BatchSource(source string, maxInstructions int, inputs [][]cpu.Override, parallel bool) (registers [][cpu.REGISTER_COUNT]int16, err error) {
	emu := NewEmulator()
	emu.MaxInstructions = maxInstructions

	err = emu.Load(strings.NewReader(source))
	if err != nil {
		return
	}

	var results []Result
	if parallel {
		results = emu.BatchParallel(inputs)
	} else {
		results = emu.Batch(inputs)
	}

	registers = make([][cpu.REGISTER_COUNT]int16, len(results))
	for n, result := range results {
		registers[n] = result.Registers
	}

	return
}
