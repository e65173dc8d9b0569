package main

import (
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
)

const (
	DEBUG_TICK_LIMIT = 100_000 // Instructions per 'continue' before pausing.
	DEBUG_LISTING    = 16      // Instructions shown in the listing.
)

const debugHelp = `commands:
  s, step [n]      execute n instructions (F10)
  c, continue      run to HLT, a fault or a breakpoint (F5)
  b, break [addr]  set a breakpoint, or list them
  d, delete addr   remove a breakpoint
  r, reset         reload the program and reset
  exit             leave the debugger
addresses are numbers (0x10, 16) or labels`

type debugger struct {
	emu *emulator.Emulator
	ld  *loader

	listing *tview.TextView
	regs    *tview.TextView
	memory  *tview.TextView
	output  *tview.TextView
	log     *tview.TextView
	state   *tview.TextView
	input   *tview.InputField
	cols    *tview.Flex
	bottom  *tview.Flex
	rows    *tview.Flex
	app     *tview.Application

	breaks map[int]bool
	fault  error
}

func newDebugger(emu *emulator.Emulator, ld *loader) *debugger {
	d := &debugger{
		emu: emu,
		ld:  ld,
		listing: tview.NewTextView().
			SetDynamicColors(true).
			SetWrap(false),
		regs: tview.NewTextView().
			SetWrap(false),
		memory: tview.NewTextView().
			SetDynamicColors(true).
			SetWrap(false),
		output: tview.NewTextView().
			SetMaxLines(1000),
		log: tview.NewTextView().
			SetMaxLines(1000),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField().
			SetLabel("> "),
		cols:   tview.NewFlex(),
		bottom: tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app:    tview.NewApplication(),
		breaks: map[int]bool{},
	}

	d.listing.SetBorder(true).SetTitle("listing")
	d.regs.SetBorder(true).SetTitle("cpu")
	d.memory.SetBorder(true).SetTitle("memory")
	d.output.SetBorder(true).SetTitle("output")
	d.log.SetBorder(true).SetTitle("log")
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)

	d.cols.
		AddItem(d.listing, 0, 1, false).
		AddItem(d.regs, 22, 0, false).
		AddItem(d.memory, 55, 0, false)
	d.bottom.
		AddItem(d.output, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 19, 0, false).
		AddItem(d.bottom, 0, 1, false).
		AddItem(d.state, 1, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	emu.Tape.Output = d.output

	d.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF10:
			d.command("step")
			return nil
		case tcell.KeyF5:
			d.command("continue")
			return nil
		}
		return event
	})

	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := strings.TrimSpace(d.input.GetText())
		if cmd == "" {
			return
		}
		d.input.SetText("")
		d.command(cmd)
	})

	return d
}

// resolve converts a label or number into a memory address.
func (d *debugger) resolve(arg string) (address int, ok bool) {
	address, ok = d.ld.Label[arg]
	if ok {
		return
	}

	v64, err := strconv.ParseInt(arg, 0, 0)
	if err != nil || v64 < 0 || int(v64) >= len(d.emu.Cpu.Ram) {
		return
	}

	return int(v64), true
}

// reset reloads the program file, so source edits are picked up.
func (d *debugger) reset() (err error) {
	d.fault = nil
	d.output.Clear()

	err = d.ld.Load(d.emu)
	if err != nil {
		return
	}

	err = d.emu.Reset()

	return
}

func (d *debugger) step(limit int, breaks map[int]bool) {
	done, err := runFor(d.emu, limit, breaks)
	switch {
	case err != nil:
		d.fault = err
		log.Print(err)
	case done:
		log.Printf("halted after %d instructions", d.emu.Ticks())
	case breaks[d.emu.Cpu.Pc]:
		log.Printf("break at 0x%02x", d.emu.Cpu.Pc)
	case breaks != nil:
		log.Printf("paused after %d instructions", limit)
	}
}

func (d *debugger) command(text string) {
	defer d.refresh()

	cmd, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "exit", "quit", "q":
		d.app.Stop()
	case "h", "help", "?":
		log.Print(debugHelp)
	case "s", "step":
		count := 1
		if arg != "" {
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				log.Printf("invalid count %q", arg)
				return
			}
			count = n
		}
		d.step(count, nil)
	case "c", "continue":
		d.step(DEBUG_TICK_LIMIT, d.breaks)
	case "b", "break":
		if arg == "" {
			addrs := make([]string, 0, len(d.breaks))
			for _, address := range slices.Sorted(maps.Keys(d.breaks)) {
				addrs = append(addrs, fmt.Sprintf("0x%02x", address))
			}
			log.Printf("breaks: %v", strings.Join(addrs, " "))
			return
		}
		address, ok := d.resolve(arg)
		if !ok {
			log.Printf("invalid address %q", arg)
			return
		}
		d.breaks[address] = true
		log.Printf("set break 0x%02x", address)
	case "d", "delete":
		address, ok := d.resolve(arg)
		if !ok {
			log.Printf("invalid address %q", arg)
			return
		}
		delete(d.breaks, address)
		log.Printf("cleared break 0x%02x", address)
	case "r", "reset":
		err := d.reset()
		if err != nil {
			log.Print(err)
			return
		}
		log.Print("reset")
	default:
		log.Printf("unknown command %q, try 'help'", cmd)
	}
}

// source returns the assembly text that generated address, if known.
func (d *debugger) source(address int) string {
	if d.emu.Program != nil {
		dbg := d.emu.Program.Debug(address)
		if dbg.Opcode != nil && dbg.Index == 0 {
			return fmt.Sprintf("%d: %v", dbg.LineNo, strings.Join(dbg.Words, " "))
		}
	}

	lineno := d.emu.Rom.Line(address)
	if lineno == 0 {
		return ""
	}

	return fmt.Sprintf("%d", lineno)
}

func (d *debugger) listingContent() string {
	var b strings.Builder

	emu := d.emu
	address := emu.Cpu.Pc
	for range DEBUG_LISTING {
		if address >= len(emu.Cpu.Ram) {
			break
		}
		text, length := emu.Cpu.Disassemble(address)

		mark := "  "
		if d.breaks[address] {
			mark = "* "
		}
		color := "[-]"
		if address == emu.Cpu.Pc {
			color = "[yellow]"
		}
		fmt.Fprintf(&b, "%s%s%02X  %-12s ; %s[-]\n",
			color, mark, address, text, tview.Escape(d.source(address)))

		address += length
	}

	return b.String()
}

func (d *debugger) memoryContent() string {
	var b strings.Builder

	emu := d.emu
	sp := int(emu.Cpu.Register[cpu.SP])
	for row := 0; row < len(emu.Cpu.Ram); row += 16 {
		fmt.Fprintf(&b, "%02X:", row)
		for address := row; address < row+16; address++ {
			value, err := emu.Cpu.RamRead(address)
			cell := "--"
			if err == nil {
				cell = fmt.Sprintf("%02X", value)
			}
			switch address {
			case emu.Cpu.Pc:
				fmt.Fprintf(&b, " [black:yellow]%s[-:-]", cell)
			case sp:
				fmt.Fprintf(&b, " [black:aqua]%s[-:-]", cell)
			default:
				fmt.Fprintf(&b, " %s", cell)
			}
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func (d *debugger) stateContent() (text string, bg tcell.Color) {
	emu := d.emu

	bg = tcell.ColorDarkGrey
	kind := "[ready]"
	switch {
	case d.fault != nil:
		kind = "[FAULT]"
		bg = tcell.ColorDarkRed
	case !emu.Cpu.Running:
		kind = "[HALT!]"
		bg = tcell.ColorDarkRed
	case d.breaks[emu.Cpu.Pc]:
		kind = "[break]"
		bg = tcell.ColorDarkBlue
	}

	text = fmt.Sprintf("%s pc %02X ticks %d line %d", kind, emu.Cpu.Pc, emu.Ticks(), emu.LineNo())

	return
}

func (d *debugger) refresh() {
	d.listing.SetText(d.listingContent())
	d.regs.SetText(d.emu.Cpu.String())
	d.memory.SetText(d.memoryContent())

	text, bg := d.stateContent()
	d.state.SetText(text)
	d.state.SetBackgroundColor(bg)
}

// debugMode runs the interactive debugger until the user exits.
func debugMode(emu *emulator.Emulator, ld *loader) (err error) {
	d := newDebugger(emu, ld)

	err = d.reset()
	if err != nil {
		return
	}

	log.SetPrefix("")
	log.SetOutput(d.log)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("ls8: ")
	}()

	log.Printf("%v loaded, 'help' for commands", ld.Path)
	d.refresh()

	err = d.app.Run()

	return
}
