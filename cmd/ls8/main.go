// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command ls8 runs LS-8 programs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/translate"
)

// loader reloads the emulator image from a program file.
type loader struct {
	Path     string // .ls8 image, or .asm source when Assemble is set.
	Assemble bool

	Label map[string]int // Labels of the last assembled source.
}

// Load replaces the emulator image with the contents of the program file.
func (ld *loader) Load(emu *emulator.Emulator) (err error) {
	if !ld.Assemble {
		ld.Label = nil
		err = emu.LoadFile(ld.Path)
		return
	}

	inf, err := os.Open(ld.Path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", ld.Path, err)
		return
	}

	ld.Label = asm.Label
	emu.LoadProgram(prog)

	return
}

// openOutput opens a file for writing, where "-" is stdout.
func openOutput(path string) (w io.WriteCloser, err error) {
	if path == "-" {
		w = nopCloser{os.Stdout}
		return
	}

	w, err = os.Create(path)
	return
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func main() {
	log.SetPrefix("ls8: ")
	log.SetFlags(0)

	os.Exit(commandLine(os.Args[1:], os.Stderr))
}

// commandLine runs ls8 with the arguments in args, and returns the process
// exit status: 0 on HLT, 1 on a fault, 2 on a usage error or missing file.
func commandLine(args []string, stderr io.Writer) (status int) {
	var compile string
	var save bool
	var output string
	var verbose bool
	var debug bool
	var watch bool
	var lang string

	flags := flag.NewFlagSet("ls8", flag.ContinueOnError)
	flags.SetOutput(stderr)

	flags.StringVar(&compile, "c", "", ".asm file to assemble and run")
	flags.BoolVar(&save, "s", false, "Save the assembled image to -o, do not execute")
	flags.StringVar(&output, "o", "-", "PRN output, or the .ls8 image with -s")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.BoolVar(&debug, "debug", false, "Interactive debugger")
	flags.BoolVar(&watch, "watch", false, "Re-run the program whenever its file changes")
	flags.StringVar(&lang, "lang", "", "Language tag for fault and assembler messages (default from the environment)")

	flags.Usage = func() {
		name := flags.Name()
		fmt.Fprintf(stderr, "usage: %s [-v] [-o output] <program.ls8>\n", name)
		fmt.Fprintf(stderr, "       %s [-v] [-o output] -c <program.asm>\n", name)
		fmt.Fprintf(stderr, "       %s -c <program.asm> -s -o <program.ls8>\n", name)
		fmt.Fprintf(stderr, "       %s <-debug | -watch> <program.ls8 | -c program.asm>\n", name)
		flags.PrintDefaults()
	}

	err := flags.Parse(args)
	if err != nil {
		return 2
	}

	if len(lang) != 0 {
		translate.Use(lang)
	}

	ld := &loader{}
	switch {
	case len(compile) != 0 && flags.NArg() == 0:
		ld.Path = compile
		ld.Assemble = true
	case len(compile) == 0 && flags.NArg() == 1:
		ld.Path = flags.Arg(0)
	default:
		flags.Usage()
		return 2
	}

	if save && !ld.Assemble {
		fmt.Fprintln(stderr, "-s requires -c")
		flags.Usage()
		return 2
	}

	if debug && watch {
		fmt.Fprintln(stderr, "-debug and -watch are exclusive")
		flags.Usage()
		return 2
	}

	_, err = os.Stat(ld.Path)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(stderr, translate.From("File not found: %v", ld.Path))
		return 2
	}

	if debug && !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Print("-debug requires a terminal")
		return 1
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	err = run(emu, ld, output, save, debug, watch)
	emu.Close()
	if err != nil {
		log.Print(err)
		return 1
	}

	return 0
}

func run(emu *emulator.Emulator, ld *loader, output string, save, debug, watch bool) (err error) {
	if debug {
		err = debugMode(emu, ld)
		return
	}

	out, err := openOutput(output)
	if err != nil {
		return
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	if watch {
		err = watchMode(emu, ld, out)
		return
	}

	err = ld.Load(emu)
	if err != nil {
		return
	}

	if save {
		err = emu.Rom.Save(out)
		return
	}

	emu.Tape.Output = out

	err = emu.Reset()
	if err != nil {
		return
	}

	err = emu.Run()
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("halted after %d instructions", emu.Ticks())
	}

	return
}

// runFor ticks the emulator until it halts, faults, reaches a breakpoint
// (after the first instruction), or has executed limit instructions.
func runFor(emu *emulator.Emulator, limit int, breaks map[int]bool) (done bool, err error) {
	for n := range limit {
		if n > 0 && breaks[emu.Cpu.Pc] {
			return
		}
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}

	return
}
