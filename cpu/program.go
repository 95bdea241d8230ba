package cpu

import (
	"iter"
	"maps"
	"slices"
	"strings"
	"unicode"
)

// Labels maps label names to instruction indexes.
type Labels map[string]int

// Sorted returns the labels in name order.
func (labels Labels) Sorted() iter.Seq2[string, int] {
	return func(yield func(name string, index int) bool) {
		for _, name := range slices.Sorted(maps.Keys(labels)) {
			if !yield(name, labels[name]) {
				return
			}
		}
	}
}

// Program is an assembled, read-only instruction stream.
// A Program may be shared by any number of concurrently executing Cpus.
type Program struct {
	Instructions []Instruction
	Labels       Labels
}

// Fetch returns the instruction at a program index.
func (prog *Program) Fetch(pc int) (ins *Instruction, ok bool) {
	if pc < 0 || pc >= len(prog.Instructions) {
		return
	}

	return &prog.Instructions[pc], true
}

// LineNo returns the source line number of the instruction at a program index,
// or 0 if there is none.
func (prog *Program) LineNo(pc int) int {
	ins, ok := prog.Fetch(pc)
	if !ok {
		return 0
	}

	return ins.LineNo
}

// Codes iterates over the program instructions.
func (prog *Program) Codes() iter.Seq2[int, Instruction] {
	return func(yield func(index int, ins Instruction) bool) {
		for n, ins := range prog.Instructions {
			if !yield(n, ins) {
				return
			}
		}
	}
}

// inlineLabel returns true if a label can be rendered on the same line as
// its instruction and still parse back to the same name.
func inlineLabel(name string) bool {
	return !strings.ContainsFunc(name, func(r rune) bool {
		return r == ':' || unicode.IsSpace(r)
	})
}

// Listing returns the normalized program text, one instruction per line,
// with labels reattached. Reassembling a listing yields the same
// instructions and labels.
func (prog *Program) Listing() string {
	attached := make(map[int][]string, len(prog.Labels))
	var trailing []string
	for name, index := range prog.Labels.Sorted() {
		if index >= 0 && index < len(prog.Instructions) {
			attached[index] = append(attached[index], name)
		} else {
			trailing = append(trailing, name)
		}
	}

	var lines []string
	for n, ins := range prog.Codes() {
		text := ins.String()
		names := attached[n]
		if len(names) > 0 && inlineLabel(names[len(names)-1]) {
			text = names[len(names)-1] + ": " + text
			names = names[:len(names)-1]
		}
		for _, name := range names {
			lines = append(lines, name+":")
		}
		lines = append(lines, text)
	}

	for _, name := range trailing {
		lines = append(lines, name+":")
	}

	return strings.Join(lines, "\n")
}
