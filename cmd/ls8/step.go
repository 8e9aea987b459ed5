package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
)

// stepper reads single key presses, putting a terminal into raw mode.
type stepper struct {
	fd       int
	oldState *term.State
	input    *bufio.Reader
}

func newStepper(in *os.File) (st *stepper, err error) {
	st = &stepper{
		fd:    int(in.Fd()),
		input: bufio.NewReader(in),
	}

	if term.IsTerminal(st.fd) {
		st.oldState, err = term.MakeRaw(st.fd)
	}

	return
}

// Raw returns true if the terminal is in raw mode.
func (st *stepper) Raw() bool {
	return st.oldState != nil
}

// Close restores the terminal.
func (st *stepper) Close() {
	if st.oldState != nil {
		_ = term.Restore(st.fd, st.oldState)
		st.oldState = nil
	}
}

// Next waits for a key press. It returns false if the user asked to quit.
func (st *stepper) Next() bool {
	key, err := st.input.ReadByte()
	if err != nil {
		return false
	}

	switch key {
	case 'q', 'Q', 0x03, 0x04: // ^C and ^D arrive as bytes in raw mode.
		return false
	}

	return true
}

// crlfWriter translates "\n" to "\r\n" for a terminal in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (cw crlfWriter) Write(p []byte) (n int, err error) {
	_, err = cw.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n")))
	if err != nil {
		return
	}
	n = len(p)
	return
}

// stepTrace is the CPU trace line, followed by the top of the stack.
func stepTrace(c *cpu.Cpu) (text string) {
	text = c.String()
	if tos, ok := c.Peek(); ok {
		text += fmt.Sprintf(" | TOS %02X", tos)
	}
	return
}

// stepRun runs the emulator one instruction per key press from in, tracing
// the CPU state before each instruction. Quitting stops the machine as if it
// had halted.
func stepRun(emu *emulator.Emulator, in *os.File, trace io.Writer) (reason emulator.Termination, err error) {
	st, err := newStepper(in)
	if err != nil {
		reason = emulator.TERM_FAULT
		return
	}
	defer st.Close()

	if st.Raw() {
		trace = crlfWriter{trace}
		if emu.Console.Output != nil {
			emu.Console.Output = crlfWriter{emu.Console.Output}
		}
	}

	for {
		if emu.Cpu.Halted {
			reason = emulator.TERM_HALT
			return
		}

		fmt.Fprintf(trace, "%v\n", stepTrace(emu.Cpu))
		if !st.Next() {
			reason = emulator.TERM_HALT
			return
		}

		_, err = emu.Tick()
		switch {
		case errors.Is(err, emulator.ErrTickLimit):
			reason = emulator.TERM_LIMIT
			return
		case err != nil:
			reason = emulator.TERM_FAULT
			return
		}
	}
}
