package cpu

import (
	"fmt"
	"strings"
)

// Code is an LS-8 opcode byte.
// Bits 7-6 hold the number of operand bytes that follow it.
type Code byte

const (
	OP_HLT  = Code(0b00000001) // HLT
	OP_LDI  = Code(0b10000010) // LDI reg, imm
	OP_PRN  = Code(0b01000111) // PRN reg
	OP_MUL  = Code(0b10100010) // MUL reg, reg
	OP_PUSH = Code(0b01000101) // PUSH reg
	OP_POP  = Code(0b01000110) // POP reg
	OP_CALL = Code(0b01010000) // CALL reg
	OP_RET  = Code(0b00010001) // RET
	OP_JMP  = Code(0b01010100) // JMP reg
	OP_JEQ  = Code(0b01010101) // JEQ reg
	OP_JNE  = Code(0b01010110) // JNE reg
	OP_CMP  = Code(0b10100111) // CMP reg, reg
)

//go:generate go tool stringer -linecomment -type=CodeArg

// CodeArg is the kind of an operand byte, a register index or an immediate.
type CodeArg int

const (
	ARG_REG = CodeArg(0) // reg
	ARG_IMM = CodeArg(1) // imm
)

// Instruction describes one entry of the opcode table.
type Instruction struct {
	Name   string    // Assembler mnemonic.
	Args   []CodeArg // Operand kinds, in encoded order.
	SetsPc bool      // If set, the instruction writes PC itself.
}

var instructionSet = map[Code]Instruction{
	OP_HLT:  {Name: "HLT"},
	OP_LDI:  {Name: "LDI", Args: []CodeArg{ARG_REG, ARG_IMM}},
	OP_PRN:  {Name: "PRN", Args: []CodeArg{ARG_REG}},
	OP_MUL:  {Name: "MUL", Args: []CodeArg{ARG_REG, ARG_REG}},
	OP_PUSH: {Name: "PUSH", Args: []CodeArg{ARG_REG}},
	OP_POP:  {Name: "POP", Args: []CodeArg{ARG_REG}},
	OP_CALL: {Name: "CALL", Args: []CodeArg{ARG_REG}, SetsPc: true},
	OP_RET:  {Name: "RET", SetsPc: true},
	OP_JMP:  {Name: "JMP", Args: []CodeArg{ARG_REG}, SetsPc: true},
	OP_JEQ:  {Name: "JEQ", Args: []CodeArg{ARG_REG}, SetsPc: true},
	OP_JNE:  {Name: "JNE", Args: []CodeArg{ARG_REG}, SetsPc: true},
	OP_CMP:  {Name: "CMP", Args: []CodeArg{ARG_REG, ARG_REG}},
}

var mnemonicMap = map[string]Code{}

func init() {
	for code, inst := range instructionSet {
		mnemonicMap[inst.Name] = code
	}
}

// LookupCode finds the opcode for a mnemonic, in any letter case.
func LookupCode(name string) (code Code, ok bool) {
	code, ok = mnemonicMap[strings.ToUpper(name)]
	return
}

// Operands returns the number of operand bytes encoded in the opcode.
func (code Code) Operands() int {
	return int((code >> 6) & 0b11)
}

// Length returns the total instruction length, in bytes.
func (code Code) Length() int {
	return code.Operands() + 1
}

// Instruction returns the opcode table entry.
func (code Code) Instruction() (inst Instruction, ok bool) {
	inst, ok = instructionSet[code]
	return
}

// Valid returns true if the opcode is in the instruction set.
func (code Code) Valid() bool {
	_, ok := instructionSet[code]
	return ok
}

// SetsPc returns true for the control flow instructions, which
// replace the generic PC advance.
func (code Code) SetsPc() bool {
	return instructionSet[code].SetsPc
}

// String returns the mnemonic, or the hex value for unknown opcodes.
func (code Code) String() string {
	inst, ok := instructionSet[code]
	if !ok {
		return fmt.Sprintf("0x%02x", uint8(code))
	}
	return inst.Name
}
