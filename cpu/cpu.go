package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"os"

	"github.com/ezrec/ls8/io"
)

// Channel is the output channel written by the PRN instruction.
type Channel io.Channel

// UnknownPolicy selects what happens when an opcode has no instruction.
type UnknownPolicy int

const (
	UNKNOWN_FAULT = UnknownPolicy(0) // Abort with ErrUnknownOpcode.
	UNKNOWN_SKIP  = UnknownPolicy(1) // Log a diagnostic, and advance Pc by one.
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
	"SP_INIT":     fmt.Sprintf("0x%02x", SP_INIT),
	"FLAG_E":      fmt.Sprintf("0x%02x", FLAG_E),
	"FLAG_G":      fmt.Sprintf("0x%02x", FLAG_G),
	"FLAG_L":      fmt.Sprintf("0x%02x", FLAG_L),
	"REG_FL":      fmt.Sprintf("%d", REG_FL),
	"REG_SP":      fmt.Sprintf("%d", REG_SP),
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool          // Set to enable verbose logging.
	Unknown UnknownPolicy // Handling of opcodes without an instruction.
	Output  Channel       // Destination of PRN output.

	Pc       int                  // Program counter.
	Sp       int                  // Stack pointer.
	Fl       byte                 // Flags, as set by CMP.
	Register [REGISTER_COUNT]byte // Register bank.
	Memory   Memory               // Main memory.
	Halted   bool                 // Set once HLT has executed.

	Ticks int // Executed instruction counter.
}

// NewCpu creates a new CPU, printing to standard output.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Output: &io.Console{Output: os.Stdout},
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers, flags, and memory.
// - Zeros the tick counter.
// - Sets the stack pointer to SP_INIT, mirrored in r7.
// - Sets the program counter to 0.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	clear(cpu.Memory[:])

	cpu.Pc = 0
	cpu.Sp = SP_INIT
	cpu.Fl = 0
	cpu.Halted = false
	cpu.Ticks = 0

	cpu.Register[REG_SP] = SP_INIT
	cpu.Register[REG_FL] = cpu.Fl

	if cpu.Output != nil {
		cpu.Output.Rewind()
	}
}

// Load copies a program image into memory, starting at address 0.
// Nothing is written if the image does not fit.
func (cpu *Cpu) Load(program []byte) (err error) {
	if len(program) > len(cpu.Memory) {
		err = fmt.Errorf("%w: %d > %d", ErrProgramTooLarge, len(program), len(cpu.Memory))
		return
	}

	clear(cpu.Memory[:])
	copy(cpu.Memory[:], program)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(program))
	}

	return
}

// String returns the current CPU state as a trace line.
func (cpu *Cpu) String() (text string) {
	peek := func(addr int) byte {
		value, _ := cpu.Memory.Read(addr)
		return value
	}

	text = fmt.Sprintf("TRACE: %02X | %02X %02X %02X |", cpu.Pc, peek(cpu.Pc), peek(cpu.Pc+1), peek(cpu.Pc+2))
	for _, reg := range cpu.Register {
		text += fmt.Sprintf(" %02X", reg)
	}
	text += fmt.Sprintf(" | SP %02X FL %03b", cpu.Sp, cpu.Fl)

	return
}

// FetchCode fetches the instruction at the program counter.
// Operands are only fetched for opcodes with an instruction.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	op, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}

	code = Code{Pc: cpu.Pc, Opcode: Opcode(op)}

	if _, ok := Lookup(code.Opcode); !ok {
		return
	}

	need := code.Opcode.Operands()
	code.Operands = make([]byte, need)
	for n := range need {
		code.Operands[n], err = cpu.Memory.Read(cpu.Pc + 1 + n)
		if err != nil {
			return
		}
	}

	return
}

// Tick executes a single CPU instruction cycle.
// Once the CPU has halted, Tick returns ErrHalted.
func (cpu *Cpu) Tick() (err error) {
	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)

	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	if cpu.Verbose {
		log.Printf("%02x: %v", code.Pc, code)
		log.Printf("%v", cpu.String())
	}

	inst, ok := Lookup(code.Opcode)
	if !ok {
		if cpu.Unknown != UNKNOWN_SKIP {
			err = ErrUnknownOpcode
			return
		}
		log.Printf("cpu: %02x: unknown opcode 0x%02x skipped", code.Pc, uint8(code.Opcode))
		cpu.Pc++
		cpu.Ticks++
		return
	}

	if len(code.Operands) != inst.Operands {
		err = ErrOpcodeOperandCount
		return
	}

	err = inst.Exec(cpu, code.Operands)
	if err != nil {
		return
	}

	cpu.Ticks++

	return
}
