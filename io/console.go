package io

import (
	"fmt"
	"io"
)

// Console writes each printed value as a decimal number on its own line.
type Console struct {
	Output io.Writer // If nil, values are counted but discarded.

	Printed []byte // Values printed since the last Rewind.
}

var _ Channel = (*Console)(nil)

// Rewind resets the printed value counter.
func (con *Console) Rewind() {
	con.Printed = con.Printed[:0]
}

// Print writes value to the output stream.
func (con *Console) Print(value byte) (err error) {
	con.Printed = append(con.Printed, value)

	if con.Output == nil {
		return
	}

	_, err = fmt.Fprintf(con.Output, "%d\n", value)
	return
}
