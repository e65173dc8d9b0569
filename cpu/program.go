package cpu

import (
	"iter"
	"strings"

	"github.com/ezrec/ls8/io"
)

// Opcode represents a line of assembled code with its source location and generated bytes.
type Opcode struct {
	LineNo    int
	Address   int
	Words     []string
	Bytes     []byte
	LinkLabel string
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

func (prog *Program) Debug(address int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if address >= op.Address && address < op.Address+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  address - op.Address,
			}
			break
		}
	}

	return
}

func (prog *Program) Binary() (bins []byte) {
	for _, value := range prog.Bytes() {
		bins = append(bins, value)
	}

	return
}

func (prog *Program) Bytes() iter.Seq2[int, byte] {
	return func(yield func(address int, value byte) bool) {
		for _, op := range prog.Opcodes {
			for n, value := range op.Bytes {
				if !yield(op.Address+n, value) {
					return
				}
			}
		}
	}
}

// Rom converts the program to an image, annotated with the source text
// of each opcode.
func (prog *Program) Rom() (rom *io.Rom) {
	rom = &io.Rom{}

	for _, op := range prog.Opcodes {
		for n, value := range op.Bytes {
			var comment string
			if n == 0 {
				comment = strings.Join(op.Words, " ")
			}
			rom.Data = append(rom.Data, value)
			rom.LineNo = append(rom.LineNo, op.LineNo)
			rom.Comment = append(rom.Comment, comment)
		}
	}

	return
}
