// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
)

const (
	PROGRAM_START = 0 // Load address of the program image.
)

var _emulator_defines = map[string]string{
	"PROGRAM_START": fmt.Sprintf("%v", PROGRAM_START),
}

// Termination is the reason a run of the emulator stopped.
type Termination int

const (
	TERM_HALT  = Termination(0) // HLT was executed.
	TERM_FAULT = Termination(1) // The CPU faulted.
	TERM_LIMIT = Termination(2) // MaxTicks instructions were executed.
)

func (term Termination) String() string {
	switch term {
	case TERM_HALT:
		return "halt"
	case TERM_FAULT:
		return "fault"
	case TERM_LIMIT:
		return "limit"
	}
	return fmt.Sprintf("Termination(%d)", int(term))
}

// Emulator state. CPU + program + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	Image    []byte       // Raw program image, used if Program is empty.
	MaxTicks int          // Instruction ceiling for Run; zero is unlimited.

	Console io.Console // PRN output channel.
}

// NewEmulator creates a new emulator, printing to standard output.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Console.Output = os.Stdout
	emu.Cpu.Output = &emu.Console

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset the CPU, and load the program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	image := emu.Image
	if emu.Program != nil && len(emu.Program.Lines) != 0 {
		image = emu.Program.Binary()
	}

	err = emu.Cpu.Load(image)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: reset, %d byte image", len(image))
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return emu.Cpu.Pc
}

// LineNo returns the source line number for the executing instruction,
// or 0 if there is no program listing for it.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
// done is set once the CPU has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Halted {
		done = true
		return
	}

	lineno := emu.LineNo()
	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	if emu.MaxTicks > 0 && emu.Cpu.Ticks >= emu.MaxTicks {
		err = ErrTickLimit
		return
	}

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.Halted

	return
}

// Run ticks the emulator until it halts, faults, or reaches MaxTicks.
func (emu *Emulator) Run() (term Termination, err error) {
	for {
		var done bool
		done, err = emu.Tick()
		switch {
		case errors.Is(err, ErrTickLimit):
			term = TERM_LIMIT
			return
		case err != nil:
			term = TERM_FAULT
			return
		case done:
			term = TERM_HALT
			return
		}
	}
}
