package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(&emu.Console, emu.Cpu.Output)
}

func newTestEmulator(output *bytes.Buffer) (emu *Emulator) {
	emu = NewEmulator()
	emu.Console.Output = output
	emu.MaxTicks = 10000
	return
}

func doAssemble(emu *Emulator, program []string, t *testing.T) {
	asm := &cpu.Assembler{}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(t, err)
	if err != nil {
		t.Fatal(err)
	}
	emu.Program = prog
}

func doRunSingle(emu *Emulator, program []string, t *testing.T) (output string) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	emu.Console.Output = out

	doAssemble(emu, program, t)

	err := emu.Reset()
	assert.NoError(err)

	for _, line := range emu.Program.Lines {
		here := program[line.LineNo-1]
		assert.Equal(line.LineNo, emu.LineNo(), here)
		assert.Equal(line.Ip, emu.Pc(), here)
		done, err := emu.Tick()
		assert.NoError(err, here)
		if err != nil {
			t.Log(emu.Cpu.String())
			t.Fatalf("%v", err)
		}
		if line.Codes[0] == byte(cpu.OP_HLT) {
			assert.True(done, here)
		} else {
			assert.False(done, here)
		}
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)

	output = out.String()
	return
}

func TestEmulatorAdd(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	program := []string{
		"ldi r0 8",
		"ldi r1 9",
		"add r0 r1",
		"prn r0",
		"hlt",
	}

	output := doRunSingle(emu, program, t)
	assert.Equal("17\n", output)
	assert.Equal(5, emu.Ticks())
	assert.Equal([]byte{17}, emu.Console.Printed)
}

func TestEmulatorImage(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	emu := newTestEmulator(out)
	emu.Image = []byte{0x82, 0, 8, 0x82, 1, 9, 0xA0, 0, 1, 0x47, 0, 0x01}

	assert.NoError(emu.Reset())
	term, err := emu.Run()
	assert.NoError(err)
	assert.Equal(TERM_HALT, term)
	assert.Equal("17\n", out.String())
	assert.Equal(0, emu.LineNo())

	// Running a halted emulator is a no-op.
	term, err = emu.Run()
	assert.NoError(err)
	assert.Equal(TERM_HALT, term)
	assert.Equal("17\n", out.String())

	// Reset re-runs the same image.
	assert.NoError(emu.Reset())
	_, err = emu.Run()
	assert.NoError(err)
	assert.Equal("17\n17\n", out.String())
}

func TestEmulatorTooLarge(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEmulator(&bytes.Buffer{})
	emu.Image = bytes.Repeat([]byte{0x01}, cpu.MEMORY_SIZE+1)

	err := emu.Reset()
	assert.ErrorIs(err, cpu.ErrProgramTooLarge)
	for n := range emu.Cpu.Memory {
		assert.Equal(byte(0), emu.Cpu.Memory[n])
	}
}

func TestEmulatorBranch(t *testing.T) {
	assert := assert.New(t)

	program := func(a, b string) []string {
		return []string{
			"        ldi r0 " + a,
			"        ldi r1 " + b,
			"        ldi r2 Equal",
			"        cmp r0 r1",
			"        jeq r2",
			"        hlt",
			"Equal:  prn r0",
			"        hlt",
		}
	}

	out := &bytes.Buffer{}
	emu := newTestEmulator(out)
	doAssemble(emu, program("5", "5"), t)
	assert.NoError(emu.Reset())
	term, err := emu.Run()
	assert.NoError(err)
	assert.Equal(TERM_HALT, term)
	assert.Equal("5\n", out.String())
	assert.Equal(8, emu.LineNo())

	out.Reset()
	doAssemble(emu, program("5", "6"), t)
	assert.NoError(emu.Reset())
	term, err = emu.Run()
	assert.NoError(err)
	assert.Equal(TERM_HALT, term)
	assert.Equal("", out.String())
	assert.Equal(6, emu.LineNo())
}

func TestEmulatorSubroutine(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"; Prints 1, 2, 4, ... 128 with a nested subroutine.",
		".macro LOADPC reg label",
		"        ldi reg label",
		".endm",
		"        ldi r0 1",
		"        ldi r1 8",
		"        ldi r3 1",
		"        ldi r4 0",
		"        LOADPC r2 Double",
		"        LOADPC r5 Loop",
		"        LOADPC r6 Done",
		"Loop:   prn r0",
		"        call r2",
		"        ldi r7 $(-1 & 0xff)",
		"        add r1 r7",
		"        cmp r1 r4",
		"        jeq r6",
		"        jmp r5",
		"Done:   hlt",
		"Double: push r1",
		"        ldi r1 Add",
		"        call r1",
		"        pop r1",
		"        ret",
		"Add:    add r0 r0",
		"        ret",
	}

	out := &bytes.Buffer{}
	emu := newTestEmulator(out)
	doAssemble(emu, program, t)
	assert.NoError(emu.Reset())
	term, err := emu.Run()
	assert.NoError(err)
	assert.Equal(TERM_HALT, term)
	assert.Equal("1\n2\n4\n8\n16\n32\n64\n128\n", out.String())
	assert.Equal(cpu.SP_INIT, emu.Cpu.Sp)
	assert.Equal(byte(0), emu.Cpu.Register[0])
}

func TestEmulatorTickLimit(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"Spin:   ldi r0 Spin",
		"        jmp r0",
	}

	emu := newTestEmulator(&bytes.Buffer{})
	emu.MaxTicks = 100
	doAssemble(emu, program, t)
	assert.NoError(emu.Reset())
	term, err := emu.Run()
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(TERM_LIMIT, term)
	assert.Equal(100, emu.Ticks())
}

func TestEmulatorFault(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"        ldi r0 1",
		"        db 0xff",
		"        hlt",
	}

	emu := newTestEmulator(&bytes.Buffer{})
	doAssemble(emu, program, t)
	assert.NoError(emu.Reset())
	term, err := emu.Run()
	assert.Equal(TERM_FAULT, term)
	assert.ErrorIs(err, cpu.ErrUnknownOpcode)

	var er *ErrRuntime
	if assert.True(errors.As(err, &er)) {
		assert.Equal(2, er.LineNo)
		assert.Equal(3, er.Pc)
		assert.Contains(er.Error(), "line 2")
	}

	// Skipping unknown opcodes continues to the halt.
	emu.Cpu.Unknown = cpu.UNKNOWN_SKIP
	assert.NoError(emu.Reset())
	term, err = emu.Run()
	assert.NoError(err)
	assert.Equal(TERM_HALT, term)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}
	assert.Equal("0", defines["PROGRAM_START"])
	assert.Equal("0xf4", defines["SP_INIT"])
}

func TestTermination(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("halt", TERM_HALT.String())
	assert.Equal("fault", TERM_FAULT.String())
	assert.Equal("limit", TERM_LIMIT.String())
	assert.Equal("Termination(7)", Termination(7).String())
}
