package cpu

import (
	"errors"

	"github.com/ezrec/risc16/translate"
)

var f = translate.From

var (
	// Execution faults
	ErrRomExhausted   = errors.New(f("reaching end of ROM, missing HALT"))
	ErrBudgetExceeded = errors.New(f("reaching max instruction count, missing HALT or infinite loop"))
	ErrMemoryRange    = errors.New(f("index of memory out of bounds"))
	ErrRegisterRange  = errors.New(f("index of register out of bounds"))
	ErrArgsShape      = errors.New(f("bad argument types"))

	// Assembler errors
	ErrOpcodeMissing   = errors.New(f("opcode missing"))
	ErrOpcodeInvalid   = errors.New(f("instruction unknown"))
	ErrOpcodeArgCount  = errors.New(f("wrong number of arguments"))
	ErrOpcodeExtraArgs = errors.New(f("excessive arguments"))
	ErrOperandMissing  = errors.New(f("operand missing"))
)

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register index", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrJumpTarget is raised when a branch operand is neither a label nor a literal.
type ErrJumpTarget string

func (err ErrJumpTarget) Error() string {
	return f("impossible to parse jump '%v'", string(err))
}
