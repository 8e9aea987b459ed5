// Package io provides the input and output channels of the LS-8 emulator.
// It includes the program image loader and listing writer (ReadProgram,
// WriteProgram) and the console that receives PRN output (Console).
package io

// Channel defines the interface for the output channel of the LS-8.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Print writes a single register value to the channel.
	Print(value byte) error
}
