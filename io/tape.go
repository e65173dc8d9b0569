package io

import (
	"io"
	"strconv"
)

// Tape is the printer device for the PRN instruction.
// Each printed value is written to Output as a decimal line.
type Tape struct {
	Output io.Writer

	Printed []byte // Every value printed since the last Rewind.
}

// Rewind forgets the printed history. Output is not affected.
func (tc *Tape) Rewind() {
	tc.Printed = tc.Printed[:0]
}

// Print writes value as a decimal number followed by a newline.
func (tc *Tape) Print(value byte) (err error) {
	if tc.Output == nil {
		err = ErrTapeOutput
		return
	}

	tc.Printed = append(tc.Printed, value)

	line := strconv.AppendUint(nil, uint64(value), 10)
	line = append(line, '\n')
	_, err = tc.Output.Write(line)

	return
}
