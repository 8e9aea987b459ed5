package cpu

import (
	"iter"
	"strings"

	"github.com/ezrec/ls8/io"
)

// Line represents a line of assembled code with its source location and
// generated bytes.
type Line struct {
	LineNo    int
	Ip        int
	Words     []string
	Codes     []byte
	LinkLabel string
}

// Program is an assembled program.
type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug finds the source line that generated the byte at ip.
func (prog *Program) Debug(ip int) (dbg Debug) {
	for n, line := range prog.Lines {
		if ip >= line.Ip && ip < line.Ip+len(line.Codes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: ip - line.Ip,
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (bins []byte) {
	for _, code := range prog.Codes() {
		bins = append(bins, code)
	}

	return
}

// Codes iterates over the address and value of each program byte.
func (prog *Program) Codes() iter.Seq2[int, byte] {
	return func(yield func(ip int, code byte) bool) {
		for _, line := range prog.Lines {
			for n, code := range line.Codes {
				if !yield(line.Ip+n, code) {
					return
				}
			}
		}
	}
}

// Listings returns the program as listings for io.WriteProgram.
func (prog *Program) Listings() (listings []io.Listing) {
	for _, line := range prog.Lines {
		listings = append(listings, io.Listing{
			Data:    line.Codes,
			Comment: strings.Join(line.Words, " "),
		})
	}

	return
}
