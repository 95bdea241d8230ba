// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"runtime"

	"github.com/ezrec/risc16/cpu"
	"github.com/ezrec/risc16/internal"
)

const (
	DEFAULT_MAX_INSTRUCTIONS = 100000 // Default instruction budget of a run.
)

// Emulator runs a loaded program, once or as a batch.
// The Program is shared read-only by every run; each run owns its Cpu.
type Emulator struct {
	Verbose         bool         // If set, enables verbose logging.
	Trace           bool         // If set, executed instructions are traced.
	MaxInstructions int          // Instruction budget of a single run.
	Workers         int          // Concurrent runs of a parallel batch.
	Program         *cpu.Program // Reference to the loaded program.

	Predefine map[string]string // Equates available to $(...) expressions.
}

// Result is the final state of a single run.
type Result struct {
	Registers [cpu.REGISTER_COUNT]int16 // Final register values.
	Pc        int                       // Final program counter.
	Count     int                       // Instructions executed.
	Warnings  int                       // Warnings recorded in the trace.
	State     string                    // CPU state summary.
	Trace     string                    // Trace text, including any fault.
	Err       error                     // Execution fault, as *ErrRuntime.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		MaxInstructions: DEFAULT_MAX_INSTRUCTIONS,
		Workers:         runtime.GOMAXPROCS(0),
	}

	return
}

// Defines returns an iterator over all of the equates visible to a
// loaded program. Predefine entries override the others.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"MAX_INSTRUCTIONS": fmt.Sprintf("%d", emu.MaxInstructions),
	}

	return internal.Concat2(cpu.Defines(),
		maps.All(defines),
		maps.All(emu.Predefine),
	)
}

// Load assembles a program from an input stream.
// On error, the previously loaded program is kept.
func (emu *Emulator) Load(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for equ, value := range emu.Defines() {
		asm.Predefine(equ, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Run executes the loaded program once, from a reset state with the
// register overrides applied.
func (emu *Emulator) Run(overrides ...cpu.Override) (result Result) {
	if emu.Program == nil {
		result.Err = ErrProgramMissing
		return
	}

	cp := cpu.NewCpu(emu.Program)
	cp.Verbose = emu.Verbose
	cp.Trace.Enabled = emu.Trace

	err := cp.Set(overrides...)
	if err == nil {
		err = cp.Run(emu.MaxInstructions)
	}
	if err != nil {
		err = &ErrRuntime{LineNo: emu.Program.LineNo(cp.Pc), Pc: cp.Pc, Err: err}
		cp.Trace.Error(err)
		if emu.Verbose {
			log.Printf("emulator: %v", err)
		}
	}

	result = Result{
		Registers: cp.Register,
		Pc:        cp.Pc,
		Count:     cp.Count,
		Warnings:  cp.Trace.Warnings(),
		State:     cp.String(),
		Trace:     cp.Trace.String(),
		Err:       err,
	}

	return
}
