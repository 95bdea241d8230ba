package emulator

import (
	"errors"

	"github.com/ezrec/risc16/translate"
)

var f = translate.From

var (
	ErrProgramMissing = errors.New(f("no program loaded"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int // Source line of the faulting instruction, or 0.
	Pc     int // Program index of the faulting instruction.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc %d %v", err.Pc, err.Err)
	}
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
