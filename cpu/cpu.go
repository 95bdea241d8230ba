// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"log"
	"strings"
)

const (
	REGISTER_COUNT = 8   // General purpose registers; r0 always reads as zero.
	MEMORY_SIZE    = 256 // Words of data memory.

	IMM_MIN   = -64  // Smallest encodable signed 7-bit immediate.
	IMM_MAX   = 63   // Largest encodable signed 7-bit immediate.
	LUI_MAX   = 1023 // Largest encodable 10-bit upper immediate.
	LUI_SHIFT = 5    // Shift applied by lui.
)

// Override presets a register before a run.
type Override struct {
	Register int
	Value    int32 // Truncated to 16 bits.
}

// Cpu is the state of a single RISC16 run. The Program is shared and never
// modified; everything else is owned by the run.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program *Program // Program being executed.

	Register [REGISTER_COUNT]int16 // Register bank.
	Memory   [MEMORY_SIZE]int16    // Data memory.
	Pc       int                   // Program counter, an index into Program.
	Count    int                   // Executed instruction counter.
	Trace    Trace                 // Trace of this run.
}

type handler func(cpu *Cpu, args Args) (next int, halted bool, err error)

// handlers is the dispatch table, one entry per opcode.
var handlers = [OPCODE_COUNT]handler{
	OP_NOP:   (*Cpu).nop,
	OP_HALT:  (*Cpu).halt,
	OP_RESET: (*Cpu).reset,
	OP_ADD:   (*Cpu).add,
	OP_ADDI:  (*Cpu).addi,
	OP_NAND:  (*Cpu).nand,
	OP_MOVI:  (*Cpu).movi,
	OP_LUI:   (*Cpu).lui,
	OP_LW:    (*Cpu).lw,
	OP_SW:    (*Cpu).sw,
	OP_BEQ:   (*Cpu).beq,
	OP_JALR:  (*Cpu).jalr,
}

// NewCpu creates a new CPU for a program.
func NewCpu(prog *Program) (cpu *Cpu) {
	if prog == nil {
		prog = &Program{}
	}

	cpu = &Cpu{
		Program: prog,
	}

	return
}

// Reset clears the registers, memory, counters and trace.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	clear(cpu.Memory[:])
	cpu.Pc = 0
	cpu.Count = 0
	cpu.Trace.Reset()
}

// Set applies register overrides.
func (cpu *Cpu) Set(overrides ...Override) (err error) {
	for _, ov := range overrides {
		if ov.Register < 0 || ov.Register >= REGISTER_COUNT {
			err = ErrRegisterRange
			return
		}
		cpu.Register[ov.Register] = int16(ov.Value)
	}

	return
}

// String returns the current CPU state summary.
func (cpu *Cpu) String() string {
	regs := make([]string, len(cpu.Register))
	for n, val := range cpu.Register {
		regs[n] = fmt.Sprintf("%x", uint16(val))
	}

	return fmt.Sprintf("PC: %d, Instr. count: %d, regs: [%v]\n",
		cpu.Pc, cpu.Count, strings.Join(regs, ", "))
}

// Dump returns the CPU state summary followed by the memory contents.
func (cpu *Cpu) Dump() string {
	ram := make([]string, len(cpu.Memory))
	for n, val := range cpu.Memory {
		ram[n] = fmt.Sprintf("%d", val)
	}

	return cpu.String() + fmt.Sprintf("ram: [%v]\n", strings.Join(ram, ", "))
}

// Tick executes the instruction at the program counter.
// Register 0 is forced to zero afterwards. Unless the instruction
// halted or faulted, the program counter moves to the next instruction
// and the instruction counter is incremented.
func (cpu *Cpu) Tick() (halted bool, err error) {
	ins, ok := cpu.Program.Fetch(cpu.Pc)
	if !ok {
		err = ErrRomExhausted
		return
	}

	next, halted, err := cpu.Execute(ins)
	cpu.Register[0] = 0
	if err != nil || halted {
		return
	}

	cpu.Pc = next
	cpu.Count++

	return
}

// Run executes until halt, a fault, or until budget instructions have
// been executed without reaching a halt.
func (cpu *Cpu) Run(budget int) (err error) {
	for {
		ins, ok := cpu.Program.Fetch(cpu.Pc)
		if ok && ins.Opcode != OP_HALT && cpu.Count >= budget {
			err = ErrBudgetExceeded
			return
		}

		var halted bool
		halted, err = cpu.Tick()
		if err != nil || halted {
			return
		}
	}
}

// Execute executes a single decoded instruction, returning the index of
// the next instruction to execute.
func (cpu *Cpu) Execute(ins *Instruction) (next int, halted bool, err error) {
	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.Pc, ins)
	}

	cpu.Trace.Printf("%v", ins)

	if !ins.Opcode.Valid() || handlers[ins.Opcode] == nil {
		err = ErrOpcodeInvalid
		return
	}

	return handlers[ins.Opcode](cpu, ins.Args)
}

// get reads a register.
func (cpu *Cpu) get(reg uint) (value int16, err error) {
	if reg >= REGISTER_COUNT {
		err = ErrRegisterRange
		return
	}

	value = cpu.Register[reg]
	return
}

// set writes a register.
func (cpu *Cpu) set(reg uint, value int16) (err error) {
	if reg >= REGISTER_COUNT {
		err = ErrRegisterRange
		return
	}

	cpu.Register[reg] = value
	return
}

// immediate parses an immediate operand, warning if it is outside [lo, hi].
func (cpu *Cpu) immediate(word string, lo, hi int16) (value int16, err error) {
	value, err = ParseImmediate(word)
	if err != nil {
		return
	}

	if value < lo || value > hi {
		cpu.Trace.Warn(f("/!\\ Immediate Too BIG : %d", value))
	}

	return
}

// address computes a memory index.
func (cpu *Cpu) address(args RegRegImm) (addr int, err error) {
	imm, err := cpu.immediate(args.Operand, IMM_MIN, IMM_MAX)
	if err != nil {
		return
	}

	base, err := cpu.get(args.Rs)
	if err != nil {
		return
	}

	addr = int(base) + int(imm)
	if addr < 0 || addr >= MEMORY_SIZE {
		err = ErrMemoryRange
		return
	}

	return
}

// target resolves a branch operand: a label if one is known, else a
// literal instruction index.
func (cpu *Cpu) target(operand string) (index int, err error) {
	index, ok := cpu.Program.Labels[operand]
	if ok {
		return
	}

	value, err := ParseImmediate(operand)
	if err != nil {
		err = ErrJumpTarget(operand)
		return
	}

	index = int(value)
	return
}

func (cpu *Cpu) nop(args Args) (next int, halted bool, err error) {
	next = cpu.Pc + 1
	return
}

func (cpu *Cpu) halt(args Args) (next int, halted bool, err error) {
	next = cpu.Pc
	halted = true
	return
}

func (cpu *Cpu) reset(args Args) (next int, halted bool, err error) {
	return cpu.jalr(RegReg{Rd: 0, Rs: 0})
}

func (cpu *Cpu) add(args Args) (next int, halted bool, err error) {
	a, ok := args.(Triple)
	if !ok {
		err = ErrArgsShape
		return
	}

	rs, err := cpu.get(a.Rs)
	if err != nil {
		return
	}
	rt, err := cpu.get(a.Rt)
	if err != nil {
		return
	}
	err = cpu.set(a.Rd, rs+rt)
	next = cpu.Pc + 1
	return
}

func (cpu *Cpu) addi(args Args) (next int, halted bool, err error) {
	a, ok := args.(RegRegImm)
	if !ok {
		err = ErrArgsShape
		return
	}

	imm, err := cpu.immediate(a.Operand, IMM_MIN, IMM_MAX)
	if err != nil {
		return
	}
	rs, err := cpu.get(a.Rs)
	if err != nil {
		return
	}
	err = cpu.set(a.Rd, rs+imm)
	next = cpu.Pc + 1
	return
}

func (cpu *Cpu) nand(args Args) (next int, halted bool, err error) {
	a, ok := args.(Triple)
	if !ok {
		err = ErrArgsShape
		return
	}

	rs, err := cpu.get(a.Rs)
	if err != nil {
		return
	}
	rt, err := cpu.get(a.Rt)
	if err != nil {
		return
	}
	err = cpu.set(a.Rd, ^(rs & rt))
	next = cpu.Pc + 1
	return
}

func (cpu *Cpu) movi(args Args) (next int, halted bool, err error) {
	a, ok := args.(RegImm)
	if !ok {
		err = ErrArgsShape
		return
	}

	imm, err := ParseImmediate(a.Operand)
	if err != nil {
		return
	}
	err = cpu.set(a.Rd, imm)
	next = cpu.Pc + 1
	return
}

func (cpu *Cpu) lui(args Args) (next int, halted bool, err error) {
	a, ok := args.(RegImm)
	if !ok {
		err = ErrArgsShape
		return
	}

	imm, err := cpu.immediate(a.Operand, 0, LUI_MAX)
	if err != nil {
		return
	}
	err = cpu.set(a.Rd, imm<<LUI_SHIFT)
	next = cpu.Pc + 1
	return
}

func (cpu *Cpu) lw(args Args) (next int, halted bool, err error) {
	a, ok := args.(RegRegImm)
	if !ok {
		err = ErrArgsShape
		return
	}

	addr, err := cpu.address(a)
	if err != nil {
		return
	}
	err = cpu.set(a.Rd, cpu.Memory[addr])
	next = cpu.Pc + 1
	return
}

func (cpu *Cpu) sw(args Args) (next int, halted bool, err error) {
	a, ok := args.(RegRegImm)
	if !ok {
		err = ErrArgsShape
		return
	}

	addr, err := cpu.address(a)
	if err != nil {
		return
	}
	value, err := cpu.get(a.Rd)
	if err != nil {
		return
	}
	cpu.Memory[addr] = value
	next = cpu.Pc + 1
	return
}

func (cpu *Cpu) beq(args Args) (next int, halted bool, err error) {
	a, ok := args.(RegRegImm)
	if !ok {
		err = ErrArgsShape
		return
	}

	rd, err := cpu.get(a.Rd)
	if err != nil {
		return
	}
	rs, err := cpu.get(a.Rs)
	if err != nil {
		return
	}

	next = cpu.Pc + 1
	if rd != rs {
		return
	}

	target, err := cpu.target(a.Operand)
	if err != nil {
		cpu.Trace.Printf("Impossible to parse jump")
		return
	}

	jump := target - (cpu.Pc + 1)
	if jump < IMM_MIN || jump > IMM_MAX {
		cpu.Trace.Warn(f("WARNING, Jump too long: \"%v\" of size %d", a.Operand, jump))
	}

	cpu.Trace.Printf("Jumping to: %d: %v", target, a.Operand)
	next = target
	return
}

func (cpu *Cpu) jalr(args Args) (next int, halted bool, err error) {
	a, ok := args.(RegReg)
	if !ok {
		err = ErrArgsShape
		return
	}

	rs, err := cpu.get(a.Rs)
	if err != nil {
		return
	}
	err = cpu.set(a.Rd, int16(cpu.Pc+1))
	if err != nil {
		return
	}
	next = int(rs)
	return
}
