package cpu

import (
	"fmt"
	"strings"
	"unicode"
)

// Opcode is a RISC16 instruction mnemonic.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NOP   = Opcode(0)  // nop
	OP_HALT  = Opcode(1)  // halt
	OP_RESET = Opcode(2)  // reset
	OP_ADD   = Opcode(3)  // add
	OP_ADDI  = Opcode(4)  // addi
	OP_NAND  = Opcode(5)  // nand
	OP_MOVI  = Opcode(6)  // movi
	OP_LUI   = Opcode(7)  // lui
	OP_LW    = Opcode(8)  // lw
	OP_SW    = Opcode(9)  // sw
	OP_BEQ   = Opcode(10) // beq
	OP_JALR  = Opcode(11) // jalr

	OPCODE_COUNT = 12
)

// Shape is the argument layout an opcode requires.
type Shape int

const (
	SHAPE_NONE = Shape(0) // no arguments
	SHAPE_RR   = Shape(1) // rd, rs
	SHAPE_RRR  = Shape(2) // rd, rs, rt
	SHAPE_RRI  = Shape(3) // rd, rs, operand
	SHAPE_RI   = Shape(4) // rd, operand
)

// opcodeMap maps mnemonics to opcodes.
var opcodeMap = map[string]Opcode{
	"nop":   OP_NOP,
	"halt":  OP_HALT,
	"reset": OP_RESET,
	"add":   OP_ADD,
	"addi":  OP_ADDI,
	"nand":  OP_NAND,
	"movi":  OP_MOVI,
	"lui":   OP_LUI,
	"lw":    OP_LW,
	"sw":    OP_SW,
	"beq":   OP_BEQ,
	"jalr":  OP_JALR,
}

// shapeOf is the static argument shape table.
var shapeOf = [OPCODE_COUNT]Shape{
	OP_NOP:   SHAPE_NONE,
	OP_HALT:  SHAPE_NONE,
	OP_RESET: SHAPE_NONE,
	OP_ADD:   SHAPE_RRR,
	OP_ADDI:  SHAPE_RRI,
	OP_NAND:  SHAPE_RRR,
	OP_MOVI:  SHAPE_RI,
	OP_LUI:   SHAPE_RI,
	OP_LW:    SHAPE_RRI,
	OP_SW:    SHAPE_RRI,
	OP_BEQ:   SHAPE_RRI,
	OP_JALR:  SHAPE_RR,
}

// LookupOpcode returns the opcode for a mnemonic.
func LookupOpcode(word string) (op Opcode, ok bool) {
	op, ok = opcodeMap[word]
	return
}

// Valid returns true if the opcode is a member of the instruction set.
func (op Opcode) Valid() bool {
	return op >= 0 && op < OPCODE_COUNT
}

// Shape returns the argument shape required by the opcode.
func (op Opcode) Shape() Shape {
	if !op.Valid() {
		return SHAPE_NONE
	}
	return shapeOf[op]
}

// Instruction is a single decoded line of a program.
type Instruction struct {
	LineNo int    // Source line number.
	Index  int    // Index in the program.
	Opcode Opcode // Operation.
	Args   Args   // Decoded arguments, shaped by Opcode.Shape().
}

// String returns the normalized assembly text of the instruction.
func (ins Instruction) String() string {
	if ins.Args == nil {
		return ins.Opcode.String()
	}

	args := ins.Args.String()
	if len(args) == 0 {
		return ins.Opcode.String()
	}

	return fmt.Sprintf("%v %v", ins.Opcode, args)
}

// Decode decodes a line of assembly text (without label) into an opcode
// and its arguments.
func Decode(text string) (op Opcode, args Args, err error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		err = ErrOpcodeMissing
		return
	}

	word, rest := text, ""
	if n := strings.IndexFunc(text, unicode.IsSpace); n >= 0 {
		word, rest = text[:n], text[n:]
	}

	op, ok := LookupOpcode(word)
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args, err = DecodeArgs(op.Shape(), strings.TrimSpace(rest))
	return
}
