package cpu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzAlu(f *testing.F) {
	f.Add(int16(0), int16(0), int8(0))
	f.Add(int16(0x7fff), int16(1), int8(1))
	f.Add(int16(-0x8000), int16(-1), int8(-1))
	f.Add(int16(0x5555), int16(0x2aaa), int8(63))
	f.Add(int16(-1), int16(-1), int8(-64))

	f.Fuzz(func(t *testing.T, a int16, b int16, imm int8) {
		assert := assert.New(t)

		imm = max(min(imm, IMM_MAX), IMM_MIN)

		program := fmt.Sprintf("add 3,1,2\naddi 4,1,%d\nnand 5,1,2\nadd 0,1,2\nnand 6,1,1\nhalt", imm)
		prog, err := Load(program)
		if !assert.NoError(err) {
			return
		}

		cpu := NewCpu(prog)
		err = cpu.Set(Override{1, int32(a)}, Override{2, int32(b)})
		assert.NoError(err)

		err = cpu.Run(testBudget)
		assert.NoError(err)

		assert.Equal(int16(0), cpu.Register[0])
		assert.Equal(a, cpu.Register[1])
		assert.Equal(b, cpu.Register[2])
		assert.Equal(int16(uint16(a)+uint16(b)), cpu.Register[3])
		assert.Equal(int16(uint16(a)+uint16(int16(imm))), cpu.Register[4])
		assert.Equal(^(a & b), cpu.Register[5])
		assert.Equal(^a, cpu.Register[6])
		assert.Equal(5, cpu.Count)
		assert.Equal(0, cpu.Trace.Warnings())
	})
}
