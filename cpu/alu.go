package cpu

//go:generate go tool stringer -linecomment -type=AluOp

// AluOp is an ALU operation type.
type AluOp int

const (
	ALU_OP_ADD = AluOp(0) // add
	ALU_OP_MUL = AluOp(1) // mul
	ALU_OP_CMP = AluOp(2) // cmp
)

// Alu performs op on registers reg_a and reg_b.
// Arithmetic results are stored in reg_a, modulo 256. CMP only sets flags.
// No opcode reaches ALU_OP_ADD.
func (cpu *Cpu) Alu(op AluOp, reg_a, reg_b byte) (err error) {
	a, err := cpu.getRegister(reg_a)
	if err != nil {
		return
	}
	b, err := cpu.getRegister(reg_b)
	if err != nil {
		return
	}

	switch op {
	case ALU_OP_ADD:
		err = cpu.setRegister(reg_a, a+b)
	case ALU_OP_MUL:
		err = cpu.setRegister(reg_a, a*b)
	case ALU_OP_CMP:
		cpu.Flags.Compare(a, b)
	default:
		err = ErrAluUnsupported
	}

	return
}
