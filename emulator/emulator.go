// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
)

const (
	MEMORY_SIZE = 255 // Addresses 0x00 to 0xfe.
)

var _emulator_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%v", MEMORY_SIZE),
}

// Emulator state. CPU + program image + printer.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Assembled listing, if the image came from source.

	Rom  io.Rom  // Program image, loaded into RAM on reset.
	Tape io.Tape // PRN output.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(MEMORY_SIZE),
	}

	emu.Cpu.Printer = &emu.Tape

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Close the emulator
func (emu *Emulator) Close() (err error) {
	emu.Cpu.Running = false
	emu.Tape.Output = nil

	return
}

// LoadProgram sets the image from an assembled program.
func (emu *Emulator) LoadProgram(prog *cpu.Program) {
	emu.Program = prog
	emu.Rom = *prog.Rom()
}

// LoadFile sets the image from a `.ls8` text file.
func (emu *Emulator) LoadFile(path string) (err error) {
	emu.Program = nil
	emu.Rom.Verbose = emu.Verbose
	err = emu.Rom.LoadFile(path)

	return
}

// Reset clears RAM, resets the CPU, and loads the image.
// The CPU is left ready to run from address 0.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	clear(emu.Cpu.Ram)
	emu.Cpu.Reset()
	emu.Tape.Rewind()

	err = emu.Cpu.Load(emu.Rom.Data)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: %d byte image loaded", len(emu.Rom.Data))
	}

	emu.Cpu.Running = true

	return
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line number of the instruction at PC, or 0.
func (emu *Emulator) LineNo() int {
	return emu.Rom.Line(emu.Cpu.Pc)
}

// Tick performs a single instruction of the emulator.
// done is set once the CPU has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if !emu.Cpu.Running {
		done = true
		return
	}

	address := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: address, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = !emu.Cpu.Running

	return
}

// Run ticks the emulator until HLT, or until an instruction faults.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
