package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"
)

var _cpu_defines = map[string]string{
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
	"STACK_REGISTER": fmt.Sprintf("%d", SP),
}

func init() {
	for code, inst := range instructionSet {
		_cpu_defines["OP_"+inst.Name] = fmt.Sprintf("0x%02x", uint8(code))
	}
}

// Printer receives the values written by PRN.
type Printer interface {
	Print(value byte) error
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool // Set to log a trace line before each instruction.

	Pc       int                  // Program counter, an index into Ram.
	Register [REGISTER_COUNT]byte // Register bank. R7 is SP.
	Flags    Flags                // Comparison flags.
	Ram      []byte               // Main memory.
	Running  bool                 // Cleared by HLT.

	Ticks int // Instructions executed since reset.

	Printer Printer // PRN output device.
}

// NewCpu creates a new CPU with a specifically sized RAM.
func NewCpu(size uint) (cpu *Cpu) {
	cpu = &Cpu{
		Ram: make([]byte, size),
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers, flags and PC.
// - Zeros the tick counter.
// - Stops the CPU.
// RAM is left as is.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Flags.Clear()
	cpu.Pc = 0
	cpu.Running = false
	cpu.Ticks = 0
}

// Load copies a program image into RAM, starting at address 0.
func (cpu *Cpu) Load(image []byte) (err error) {
	if len(image) > len(cpu.Ram) {
		err = ErrImageSize
		return
	}

	copy(cpu.Ram, image)

	return
}

func (cpu *Cpu) checkAddress(address int) (err error) {
	if address < 0 || address >= len(cpu.Ram) {
		err = ErrAddress(address)
	}
	return
}

func (cpu *Cpu) checkRegister(index byte) (err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegister(index)
	}
	return
}

// RamRead reads one memory cell.
func (cpu *Cpu) RamRead(address int) (value byte, err error) {
	err = cpu.checkAddress(address)
	if err != nil {
		return
	}

	value = cpu.Ram[address]
	return
}

// RamWrite writes one memory cell.
func (cpu *Cpu) RamWrite(address int, value byte) (err error) {
	err = cpu.checkAddress(address)
	if err != nil {
		return
	}

	cpu.Ram[address] = value
	return
}

func (cpu *Cpu) getRegister(index byte) (value byte, err error) {
	err = cpu.checkRegister(index)
	if err != nil {
		return
	}

	value = cpu.Register[index]
	return
}

func (cpu *Cpu) setRegister(index byte, value byte) (err error) {
	err = cpu.checkRegister(index)
	if err != nil {
		return
	}

	cpu.Register[index] = value
	return
}

// FetchCode reads the opcode at PC and the operand bytes it encodes.
// Operands are not read for opcodes outside the instruction set.
func (cpu *Cpu) FetchCode() (code Code, operands []byte, err error) {
	value, err := cpu.RamRead(cpu.Pc)
	if err != nil {
		err = errors.Join(ErrOpcodeFetch, err)
		return
	}

	code = Code(value)
	if !code.Valid() {
		return
	}

	operands = make([]byte, code.Operands())
	for n := range operands {
		operands[n], err = cpu.RamRead(cpu.Pc + 1 + n)
		if err != nil {
			err = errors.Join(ErrOpcode(code), ErrOpcodeFetch, err)
			return
		}
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if !cpu.Running {
		err = ErrHalted
		return
	}

	if cpu.Verbose {
		log.Print(cpu.Trace())
	}

	code, operands, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code, operands)

	return
}

// Run executes instructions until HLT, or until an instruction faults.
func (cpu *Cpu) Run() (err error) {
	cpu.Running = true

	for cpu.Running {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction located at PC.
// A faulting instruction leaves PC where it was.
func (cpu *Cpu) Execute(code Code, operands []byte) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	inst, ok := code.Instruction()
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	if len(operands) != len(inst.Args) {
		err = ErrOpcodeFetch
		return
	}

	for n, arg := range inst.Args {
		if arg != ARG_REG {
			continue
		}
		err = cpu.checkRegister(operands[n])
		if err != nil {
			if n == 0 {
				err = errors.Join(ErrOpcodeArg1, err)
			} else {
				err = errors.Join(ErrOpcodeArg2, err)
			}
			return
		}
	}

	var op_a, op_b byte
	if len(operands) > 0 {
		op_a = operands[0]
	}
	if len(operands) > 1 {
		op_b = operands[1]
	}

	next_pc := cpu.Pc
	if !code.SetsPc() {
		next_pc += code.Length()
	}

	switch code {
	case OP_HLT:
		cpu.Running = false
	case OP_LDI:
		err = cpu.setRegister(op_a, op_b)
	case OP_PRN:
		if cpu.Printer == nil {
			err = ErrPrinterMissing
			return
		}
		err = cpu.Printer.Print(cpu.Register[op_a])
	case OP_MUL:
		err = cpu.Alu(ALU_OP_MUL, op_a, op_b)
	case OP_CMP:
		err = cpu.Alu(ALU_OP_CMP, op_a, op_b)
	case OP_PUSH:
		err = cpu.Push(op_a)
	case OP_POP:
		err = cpu.Pop(op_a)
	case OP_CALL:
		target := cpu.Register[op_a]
		err = cpu.PushValue(byte(cpu.Pc + 2))
		next_pc = int(target)
	case OP_RET:
		// The return address passes through R0.
		err = cpu.Pop(0)
		next_pc = int(cpu.Register[0])
	case OP_JMP:
		next_pc = int(cpu.Register[op_a])
	case OP_JEQ:
		if cpu.Flags.Eq {
			next_pc = int(cpu.Register[op_a])
		} else {
			next_pc = cpu.Pc + 2
		}
	case OP_JNE:
		if !cpu.Flags.Eq {
			next_pc = int(cpu.Register[op_a])
		} else {
			next_pc = cpu.Pc + 2
		}
	default:
		err = ErrOpcodeInvalid
	}

	if err != nil {
		if code == OP_PUSH || code == OP_POP || code == OP_CALL || code == OP_RET {
			err = errors.Join(ErrOpcodeStack, err)
		}
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks++

	return
}

// Disassemble returns the instruction text at address, and its length.
// Bytes outside the instruction set disassemble as DB.
func (cpu *Cpu) Disassemble(address int) (text string, length int) {
	value, err := cpu.RamRead(address)
	if err != nil {
		return "??", 1
	}

	code := Code(value)
	inst, ok := code.Instruction()
	if !ok {
		return fmt.Sprintf("DB 0x%02x", value), 1
	}

	args := make([]string, len(inst.Args))
	for n, arg := range inst.Args {
		operand, err := cpu.RamRead(address + 1 + n)
		switch {
		case err != nil:
			args[n] = "??"
		case arg == ARG_REG:
			args[n] = fmt.Sprintf("R%d", operand)
		default:
			args[n] = fmt.Sprintf("%d", operand)
		}
	}

	text = inst.Name
	if len(args) > 0 {
		text += " " + strings.Join(args, ",")
	}

	return text, code.Length()
}

// peekHex formats a memory cell as hex, or "--" outside of RAM.
func (cpu *Cpu) peekHex(address int) string {
	value, err := cpu.RamRead(address)
	if err != nil {
		return "--"
	}
	return fmt.Sprintf("%02X", value)
}

// Trace returns a single line summary of the CPU state:
// PC, the three bytes at PC, and R0..R7.
func (cpu *Cpu) Trace() string {
	var b strings.Builder

	fmt.Fprintf(&b, "TRACE: %02X | %v %v %v |",
		cpu.Pc,
		cpu.peekHex(cpu.Pc),
		cpu.peekHex(cpu.Pc+1),
		cpu.peekHex(cpu.Pc+2))

	for _, value := range cpu.Register {
		fmt.Fprintf(&b, " %02X", value)
	}

	return b.String()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"op",
		"fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"stack",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "op":
			strval, _ = cpu.Disassemble(cpu.Pc)
		case "fl":
			strval = fmt.Sprintf("%02X %v", cpu.Flags.Byte(), cpu.Flags)
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7":
			val := cpu.Register[byte(reg[1]-'0')]
			strval = fmt.Sprintf("%02X (%d)", val, val)
		case "stack":
			val, ok := cpu.Peek()
			if ok {
				strval = fmt.Sprintf("%02X", val)
			} else {
				strval = "--"
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}
