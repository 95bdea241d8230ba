package cpu

import (
	"fmt"
	"strconv"
	"strings"
)

// Args is the decoded argument list of an instruction.
// It is one of Triple, RegReg, RegRegImm, RegImm or None.
type Args interface {
	fmt.Stringer
	Shape() Shape
	args()
}

// Triple is the argument list of a register-register operation.
type Triple struct {
	Rd, Rs, Rt uint
}

// RegReg is the argument list of a register jump.
type RegReg struct {
	Rd, Rs uint
}

// RegRegImm is the argument list of an immediate, memory or branch operation.
type RegRegImm struct {
	Rd, Rs  uint
	Operand string // Literal or label, resolved at execution.
}

// RegImm is the argument list of a move or load-upper operation.
type RegImm struct {
	Rd      uint
	Operand string // Literal, resolved at execution.
}

// None is the empty argument list.
type None struct{}

func (Triple) args()    {}
func (RegReg) args()    {}
func (RegRegImm) args() {}
func (RegImm) args()    {}
func (None) args()      {}

func (Triple) Shape() Shape    { return SHAPE_RRR }
func (RegReg) Shape() Shape    { return SHAPE_RR }
func (RegRegImm) Shape() Shape { return SHAPE_RRI }
func (RegImm) Shape() Shape    { return SHAPE_RI }
func (None) Shape() Shape      { return SHAPE_NONE }

func (a Triple) String() string {
	return fmt.Sprintf("%d,%d,%d", a.Rd, a.Rs, a.Rt)
}

func (a RegReg) String() string {
	return fmt.Sprintf("%d,%d", a.Rd, a.Rs)
}

func (a RegRegImm) String() string {
	return fmt.Sprintf("%d,%d,%v", a.Rd, a.Rs, a.Operand)
}

func (a RegImm) String() string {
	return fmt.Sprintf("%d,%v", a.Rd, a.Operand)
}

func (None) String() string {
	return ""
}

// parseRegister parses an unsigned register index.
// The index is range checked when the instruction executes.
func parseRegister(word string) (reg uint, err error) {
	word = strings.TrimSpace(word)
	v64, err := strconv.ParseUint(word, 10, 32)
	if err != nil {
		err = ErrParseRegister(word)
		return
	}

	reg = uint(v64)
	return
}

// DecodeArgs decodes the raw argument text for an opcode shape.
func DecodeArgs(shape Shape, text string) (args Args, err error) {
	if shape == SHAPE_NONE {
		if len(text) != 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		args = None{}
		return
	}

	words := strings.Split(text, ",")

	var regs int
	var operand bool
	switch shape {
	case SHAPE_RR:
		regs = 2
	case SHAPE_RRR:
		regs = 3
	case SHAPE_RRI:
		regs, operand = 2, true
	case SHAPE_RI:
		regs, operand = 1, true
	default:
		err = ErrArgsShape
		return
	}

	need := regs
	if operand {
		need++
	}
	if len(words) != need {
		err = ErrOpcodeArgCount
		return
	}

	var reg [3]uint
	for n := range regs {
		reg[n], err = parseRegister(words[n])
		if err != nil {
			return
		}
	}

	var imm string
	if operand {
		imm = strings.TrimSpace(words[regs])
		if len(imm) == 0 {
			err = ErrOperandMissing
			return
		}
	}

	switch shape {
	case SHAPE_RR:
		args = RegReg{Rd: reg[0], Rs: reg[1]}
	case SHAPE_RRR:
		args = Triple{Rd: reg[0], Rs: reg[1], Rt: reg[2]}
	case SHAPE_RRI:
		args = RegRegImm{Rd: reg[0], Rs: reg[1], Operand: imm}
	case SHAPE_RI:
		args = RegImm{Rd: reg[0], Operand: imm}
	}

	return
}

// ParseImmediate parses a literal operand: 0x-prefixed hexadecimal,
// 0b-prefixed binary, or signed decimal. The value is parsed as 32 bits
// and truncated to 16 bits.
func ParseImmediate(word string) (value int16, err error) {
	var v64 int64
	switch {
	case strings.HasPrefix(word, "0x"):
		v64, err = strconv.ParseInt(word[2:], 16, 32)
	case strings.HasPrefix(word, "0b"):
		v64, err = strconv.ParseInt(word[2:], 2, 32)
	default:
		v64, err = strconv.ParseInt(word, 10, 32)
	}
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int16(v64)
	return
}
