// Package cpu implements the processor and assembler for the RISC16 teaching machine.
//
// The CPU consists of a program counter, eight 16-bit signed registers (r0-r7,
// with r0 hard-wired to zero), and 256 words of data memory. Arithmetic wraps
// modulo 2^16. Programs are immutable once assembled and may be shared by any
// number of concurrently running CPUs, each of which owns its own state and trace.
//
// The assembler accepts one instruction per line, `//` comments, labels either
// alone on a line or in front of an instruction, and compile-time $(...)
// expressions that may refer to labels and equates.
package cpu
