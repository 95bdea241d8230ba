// Package exercise runs a program against the register vectors of an
// exercise file, and reports which vectors produce the expected output.
//
// An exercise file is line oriented:
//
//	in: r1=5; r2=0x10;
//	out: r3=21;
//	# pass: r3 = {risc3}, as expected
//	# fail: r3 = {risc3}, expected {ro3}
//
// Each "in:" line is the initial registers of one run; the "out:" line of
// the same rank lists the registers expected when that run halts. Other
// lines are ignored.
package exercise

import (
	"bufio"
	"io"
	"io/fs"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/risc16/cpu"
)

const (
	PREFIX_INPUT  = "in:"
	PREFIX_OUTPUT = "out:"
	PREFIX_PASS   = "# pass:"
	PREFIX_FAIL   = "# fail:"
)

var reRegister = regexp.MustCompile(`r(\d)=(-?\w+);`)

// Exercise is a set of register vectors with their expected results.
type Exercise struct {
	Name        string
	Inputs      [][]cpu.Override // Initial registers, one entry per run.
	Outputs     [][]cpu.Override // Expected registers, by run.
	PassPattern string           // Report of a passed run.
	FailPattern string           // Report of a failed run.
}

// Fold converts a value to signed 16 bits; values from 0x8000 up are
// taken as two's complement.
func Fold(value int64) int16 {
	return int16(uint16(value))
}

func parseVector(line string) (vector []cpu.Override, err error) {
	for _, match := range reRegister.FindAllStringSubmatch(line, -1) {
		reg, _ := strconv.Atoi(match[1])
		var value int64
		value, err = strconv.ParseInt(match[2], 0, 64)
		if err != nil {
			err = ErrValue(match[2])
			return
		}
		vector = append(vector, cpu.Override{Register: reg, Value: int32(Fold(value))})
	}

	return
}

// Parse reads an exercise from an input stream.
func Parse(name string, input io.Reader) (ex *Exercise, err error) {
	ex = &Exercise{Name: name}

	scanner := bufio.NewScanner(input)
	var lineno int
	for scanner.Scan() {
		line := scanner.Text()
		lineno++

		var vector []cpu.Override
		switch {
		case strings.HasPrefix(line, PREFIX_INPUT):
			vector, err = parseVector(line)
			if len(vector) > 0 {
				ex.Inputs = append(ex.Inputs, vector)
			}
		case strings.HasPrefix(line, PREFIX_OUTPUT):
			vector, err = parseVector(line)
			if len(vector) > 0 {
				ex.Outputs = append(ex.Outputs, vector)
			}
		case strings.HasPrefix(line, PREFIX_PASS):
			ex.PassPattern = strings.TrimSpace(line[len(PREFIX_PASS):])
		case strings.HasPrefix(line, PREFIX_FAIL):
			ex.FailPattern = strings.TrimSpace(line[len(PREFIX_FAIL):])
		}
		if err != nil {
			err = &cpu.ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if len(ex.Outputs) > len(ex.Inputs) {
		err = ErrVectorCount
		return
	}

	return
}

// Load reads the named exercise from a file system.
func Load(fsys fs.FS, name string) (ex *Exercise, err error) {
	file, err := fsys.Open(name)
	if err != nil {
		return
	}
	defer file.Close()

	return Parse(name, file)
}

// List returns the sorted names of the exercises in the root of a file system.
func List(fsys fs.FS) (names []string, err error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)

	return
}
