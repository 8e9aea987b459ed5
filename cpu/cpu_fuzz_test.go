package cpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
)

func FuzzCpu(f *testing.F) {
	for op := range instructionTable {
		f.Add(uint8(op), uint8(0), uint8(1), uint8(SP_INIT), uint8(0))
		f.Add(uint8(op), uint8(7), uint8(9), uint8(0), uint8(0xfd))
		f.Add(uint8(op), uint8(2), uint8(2), uint8(STACK_TOP), uint8(0xfe))
	}
	f.Add(uint8(0xff), uint8(0), uint8(0), uint8(SP_INIT), uint8(0))

	f.Fuzz(func(t *testing.T, opcode uint8, arg1 uint8, arg2 uint8, sp uint8, pc uint8) {
		assert := assert.New(t)

		cpu := NewCpu()
		cpu.Output = &io.Console{}
		for n := range cpu.Register {
			cpu.Register[n] = byte(0x10*n + 3)
		}
		cpu.Sp = int(sp)
		cpu.Pc = int(pc)
		cpu.Memory[pc] = opcode
		if int(pc)+1 < MEMORY_SIZE {
			cpu.Memory[int(pc)+1] = arg1
		}
		if int(pc)+2 < MEMORY_SIZE {
			cpu.Memory[int(pc)+2] = arg2
		}

		code_str := fmt.Sprintf("0x%02x %02x %02x pc:%02x sp:%02x\ncpu:%v", opcode, arg1, arg2, pc, sp, cpu.String())

		op := Opcode(opcode)
		_, known := Lookup(op)
		pre := *cpu

		err := cpu.Tick()

		assert.GreaterOrEqual(cpu.Sp, 0, code_str)
		assert.LessOrEqual(cpu.Sp, STACK_TOP, code_str)

		if err != nil {
			switch {
			case !known:
				assert.ErrorIs(err, ErrOpcode{}, code_str)
				assert.ErrorIs(err, ErrUnknownOpcode, code_str)
			case errors.Is(err, ErrRegisterRange):
				assert.ErrorIs(err, ErrOpcode{}, code_str)
				assert.True(arg1 >= REGISTER_COUNT || (op.Operands() == 2 && op != OP_LDI && arg2 >= REGISTER_COUNT), code_str)
			case errors.Is(err, ErrMemoryRange):
				// Operands or return address past the end of memory.
				assert.Greater(int(pc)+op.Operands(), STACK_TOP-1, code_str)
			case errors.Is(err, ErrStackFull):
				assert.Equal(0, int(sp), code_str)
			case errors.Is(err, ErrStackEmpty):
				assert.Equal(STACK_TOP, int(sp), code_str)
			default:
				assert.NoError(err, code_str)
			}
			// Faults do not modify the processor.
			assert.Equal(pre.Pc, cpu.Pc, code_str)
			assert.Equal(pre.Sp, cpu.Sp, code_str)
			assert.Equal(pre.Register, cpu.Register, code_str)
			assert.Equal(pre.Memory, cpu.Memory, code_str)
			return
		}

		assert.True(known, code_str)
		assert.Equal(1, cpu.Ticks, code_str)

		switch op {
		case OP_HLT:
			assert.True(cpu.Halted, code_str)
			assert.Equal(int(pc), cpu.Pc, code_str)
		case OP_JEQ:
			if pre.Fl == FLAG_E {
				assert.LessOrEqual(cpu.Pc, STACK_TOP, code_str)
			} else {
				// Falling through may leave Pc past the end of memory.
				assert.Equal(int(pc)+2, cpu.Pc, code_str)
			}
		case OP_CALL, OP_RET, OP_JMP:
			assert.LessOrEqual(cpu.Pc, STACK_TOP, code_str)
		default:
			assert.Equal(int(pc)+1+op.Operands(), cpu.Pc, code_str)
		}
	})
}
