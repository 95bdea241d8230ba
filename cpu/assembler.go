// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
	"MEMORY_SIZE":    fmt.Sprintf("%d", MEMORY_SIZE),
	"IMM_MIN":        fmt.Sprintf("%d", IMM_MIN),
	"IMM_MAX":        fmt.Sprintf("%d", IMM_MAX),
	"LUI_MAX":        fmt.Sprintf("%d", LUI_MAX),
}

// Defines returns the predefined system equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(sysEquate)
}

var (
	reLabel = regexp.MustCompile(`^(\S*):(.*)`)
	reParen = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a two pass assembler for RISC16 programs.
//
// The first pass strips comments and binds labels to instruction indexes,
// the second decodes each instruction with every label known.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Instructions []Instruction // List of decoded instructions.
	Label        Labels        // Map of labels to instruction indexes.
	Equate       map[string]string

	predefine map[string]string
}

// Predefine defines a new equate or redefines an existing equate,
// for use in $(...) expressions.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// sourceLine is an instruction line collected by the first pass.
type sourceLine struct {
	LineNo int
	Line   string // Trimmed source line, for error reports.
	Text   string // Instruction text without label.
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string, lineno int) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for name, index := range asm.Label {
		pred[name] = starlark.MakeInt(index)
	}
	pred["LINENO"] = starlark.MakeInt(lineno)

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// expand replaces $(...) expressions with their decimal value.
func (asm *Assembler) expand(text string, lineno int) (out string, err error) {
	out = reParen.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := asm.parenEval(str[2:len(str)-1], lineno)
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return strconv.FormatInt(value, 10)
	})

	return
}

// scan is the first pass: it collects instruction lines and binds labels.
func (asm *Assembler) scan(input io.Reader) (lines []sourceLine, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text, _, _ = strings.Cut(text, "//")
		line := strings.TrimSpace(text)
		if len(line) == 0 {
			continue
		}

		// Bare label, bound to the next instruction.
		if strings.HasSuffix(line, ":") {
			label := strings.TrimSpace(strings.TrimSuffix(line, ":"))
			asm.Label[label] = len(lines)
			continue
		}

		text = line
		if match := reLabel.FindStringSubmatch(line); match != nil {
			asm.Label[strings.TrimSpace(match[1])] = len(lines)
			text = strings.TrimSpace(match[2])
		}

		lines = append(lines, sourceLine{LineNo: lineno, Line: line, Text: text})
	}

	err = scanner.Err()
	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	asm.Instructions = asm.Instructions[:0]
	asm.Label = Labels{}
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	lines, err := asm.scan(input)
	if err != nil {
		return
	}

	for _, src := range lines {
		var ins Instruction
		ins, err = asm.decode(src)
		if err != nil {
			err = &ErrSyntax{LineNo: src.LineNo, Line: src.Line, Err: err}
			return
		}
		asm.Instructions = append(asm.Instructions, ins)
	}

	prog = &Program{
		Instructions: slices.Clone(asm.Instructions),
		Labels:       maps.Clone(asm.Label),
	}

	return
}

// decode is the second pass for a single instruction line.
func (asm *Assembler) decode(src sourceLine) (ins Instruction, err error) {
	text, err := asm.expand(src.Text, src.LineNo)
	if err != nil {
		return
	}

	op, args, err := Decode(text)
	if err != nil {
		return
	}

	ins = Instruction{
		LineNo: src.LineNo,
		Index:  len(asm.Instructions),
		Opcode: op,
		Args:   args,
	}

	if asm.Verbose {
		log.Printf("%03d: %v", ins.Index, ins)
	}

	return
}

// Load assembles program text.
func Load(source string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(source))
}
