// Package cpu implements the processor and assembler for the LS-8 system.
//
// The CPU consists of a program counter (PC), eight 8-bit registers (R0-R7,
// with R7 used as the stack pointer), a comparison flag register, and a
// flat byte-addressed RAM holding both the program and a downward-growing
// stack. The top two bits of each opcode give its operand count.
//
// Every memory or register access is bounds checked, and an opcode outside
// the instruction set is an illegal instruction. Both are faults that stop
// execution.
//
// The assembler provides a mnemonic assembly language for the LS-8
// instruction set, supporting macros, labels, equates, and compile-time
// expression evaluation.
package cpu
