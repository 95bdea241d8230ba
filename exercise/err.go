package exercise

import (
	"errors"

	"github.com/ezrec/risc16/translate"
)

var f = translate.From

var (
	ErrVectorCount = errors.New(f("more expected outputs than inputs"))
)

// ErrValue is raised when a register value is not a number.
type ErrValue string

func (err ErrValue) Error() string {
	return f("'%v' is not a register value", string(err))
}

// ErrPattern is raised when a report pattern can not be formatted.
type ErrPattern struct {
	Pattern string
	Err     error
}

func (err *ErrPattern) Error() string {
	return f("pattern '%v': %v", err.Pattern, err.Err)
}

func (err *ErrPattern) Unwrap() error {
	return err.Err
}
