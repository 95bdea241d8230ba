package exercise

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/risc16/cpu"
	"github.com/ezrec/risc16/emulator"
)

var multiplyExercise = strings.Join([]string{
	"Multiply r1 by r2 into r3",
	"in: r1=3; r2=4;",
	"out: r3=12;",
	"in: r1=0xffff; r2=2;",
	"out: r3=0xfffe;",
	"in: r1=5; r2=5;",
	"out: r3=24;",
	"# pass: ok {risc3}",
	"# fail: got {risc3} want {ro3} from {ri1}*{ri2}",
}, "\n")

var multiplyProgram = strings.Join([]string{
	"       movi 3,0",
	"       beq 2,0,done",
	"loop:  add 3,3,1",
	"       addi 2,2,-1",
	"       beq 2,0,done",
	"       beq 0,0,loop",
	"done:  halt",
}, "\n")

func TestFold(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int16(0), Fold(0))
	assert.Equal(int16(0x7fff), Fold(0x7fff))
	assert.Equal(int16(-0x8000), Fold(0x8000))
	assert.Equal(int16(-1), Fold(0xffff))
	assert.Equal(int16(-5), Fold(-5))
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	ex, err := Parse("mul", strings.NewReader(multiplyExercise))
	require.NoError(t, err)

	assert.Equal("mul", ex.Name)
	assert.Equal([][]cpu.Override{
		{{Register: 1, Value: 3}, {Register: 2, Value: 4}},
		{{Register: 1, Value: -1}, {Register: 2, Value: 2}},
		{{Register: 1, Value: 5}, {Register: 2, Value: 5}},
	}, ex.Inputs)
	assert.Equal([][]cpu.Override{
		{{Register: 3, Value: 12}},
		{{Register: 3, Value: -2}},
		{{Register: 3, Value: 24}},
	}, ex.Outputs)
	assert.Equal("ok {risc3}", ex.PassPattern)
	assert.Equal("got {risc3} want {ro3} from {ri1}*{ri2}", ex.FailPattern)
}

func TestParseErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("bad", strings.NewReader("in: r1=3;\nin: r2=zz;"))
	assert.ErrorIs(err, ErrValue("zz"))
	var syntax *cpu.ErrSyntax
	if assert.True(errors.As(err, &syntax)) {
		assert.Equal(2, syntax.LineNo)
	}

	_, err = Parse("bad", strings.NewReader("in: r1=3;\nout: r1=3;\nout: r2=4;"))
	assert.ErrorIs(err, ErrVectorCount)

	ex, err := Parse("empty", strings.NewReader("in: nothing here\nout:\n"))
	assert.NoError(err)
	assert.Empty(ex.Inputs)
	assert.Empty(ex.Outputs)
}

func TestLoadList(t *testing.T) {
	assert := assert.New(t)

	fsys := fstest.MapFS{
		"mul.txt":      {Data: []byte(multiplyExercise)},
		"add.txt":      {Data: []byte("in: r1=1;\nout: r1=1;")},
		"sub/skip.txt": {Data: []byte("")},
	}

	names, err := List(fsys)
	assert.NoError(err)
	assert.Equal([]string{"add.txt", "mul.txt"}, names)

	ex, err := Load(fsys, "add.txt")
	assert.NoError(err)
	assert.Equal("add.txt", ex.Name)
	assert.Equal(1, len(ex.Inputs))

	_, err = Load(fsys, "missing.txt")
	assert.ErrorIs(err, fs.ErrNotExist)
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	ex, err := Parse("mul", strings.NewReader(multiplyExercise))
	require.NoError(t, err)

	emu := emulator.NewEmulator()
	require.NoError(t, emu.Load(strings.NewReader(multiplyProgram)))

	for _, parallel := range []bool{false, true} {
		reports, err := ex.Run(emu, parallel)
		require.NoError(t, err)
		require.Equal(t, 3, len(reports))

		assert.True(reports[0].Passed)
		assert.Equal("ok 12", reports[0].Message)
		assert.Equal(0, reports[0].Index)

		assert.True(reports[1].Passed)
		assert.Equal("ok 65534", reports[1].Message)

		assert.False(reports[2].Passed)
		assert.Equal("got 25 want 24 from 5*5", reports[2].Message)
		assert.Equal(2, reports[2].Index)
		assert.Equal(int16(25), reports[2].Result.Registers[3])
		assert.Equal(cpu.Labels{"loop": 2, "done": 6}, reports[2].Labels)
	}
}

func TestVerify(t *testing.T) {
	assert := assert.New(t)

	ex := &Exercise{
		Outputs: [][]cpu.Override{
			{{Register: 1, Value: 1}},
			{{Register: 9, Value: 0}},
			{{Register: 1, Value: 1}},
		},
	}

	var ok, fault emulator.Result
	ok.Registers[1] = 1
	fault.Registers[1] = 1
	fault.Err = cpu.ErrRomExhausted

	passed := ex.Verify([]emulator.Result{ok, ok, fault, ok, fault})
	assert.Equal([]bool{true, false, false, true, false}, passed)
}

func TestRunFaults(t *testing.T) {
	assert := assert.New(t)

	ex, err := Parse("mem", strings.NewReader("in: r1=1;\nin: r1=0x200;\n# fail: failed at {risc1}"))
	require.NoError(t, err)

	emu := emulator.NewEmulator()
	require.NoError(t, emu.Load(strings.NewReader("lw 2,1,0\nhalt")))

	reports, err := ex.Run(emu, true)
	require.NoError(t, err)
	assert.True(reports[0].Passed)
	assert.Equal("", reports[0].Message)
	assert.False(reports[1].Passed)
	assert.Equal("failed at 512", reports[1].Message)
	assert.ErrorIs(reports[1].Result.Err, cpu.ErrMemoryRange)

	ex.FailPattern = "{missing}"
	_, err = ex.Run(emu, false)
	var perr *ErrPattern
	assert.True(errors.As(err, &perr))

	_, err = ex.Run(emulator.NewEmulator(), false)
	assert.ErrorIs(err, emulator.ErrProgramMissing)
}
