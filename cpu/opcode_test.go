package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_Length(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code   Code
		length int
	}){
		{OP_HLT, 1},
		{OP_RET, 1},
		{OP_PRN, 2},
		{OP_PUSH, 2},
		{OP_POP, 2},
		{OP_CALL, 2},
		{OP_JMP, 2},
		{OP_JEQ, 2},
		{OP_JNE, 2},
		{OP_LDI, 3},
		{OP_MUL, 3},
		{OP_CMP, 3},
		{Code(0b11000000), 4},
		{Code(0x00), 1},
	}

	for _, entry := range table {
		assert.Equal(entry.length, entry.code.Length(), entry.code.String())
		assert.Equal(entry.length-1, entry.code.Operands(), entry.code.String())
	}
}

func TestCode_InstructionSet(t *testing.T) {
	assert := assert.New(t)

	for code, inst := range instructionSet {
		assert.Equal(code.Operands(), len(inst.Args), inst.Name)
		assert.True(code.Valid(), inst.Name)

		found, ok := LookupCode(inst.Name)
		assert.True(ok, inst.Name)
		assert.Equal(code, found, inst.Name)
	}

	assert.Equal(12, len(instructionSet))
}

func TestCode_SetsPc(t *testing.T) {
	assert := assert.New(t)

	sets := map[Code]bool{
		OP_JMP:  true,
		OP_JEQ:  true,
		OP_JNE:  true,
		OP_CALL: true,
		OP_RET:  true,
	}

	for value := range 256 {
		code := Code(value)
		assert.Equal(sets[code], code.SetsPc(), code.String())
	}
}

func TestCode_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("LDI", OP_LDI.String())
	assert.Equal("0xff", Code(0xff).String())
	assert.False(Code(0xff).Valid())

	_, ok := Code(0xff).Instruction()
	assert.False(ok)
}

func TestLookupCode(t *testing.T) {
	assert := assert.New(t)

	code, ok := LookupCode("push")
	assert.True(ok)
	assert.Equal(OP_PUSH, code)

	_, ok = LookupCode("ADD")
	assert.False(ok)
}

func TestFlags(t *testing.T) {
	assert := assert.New(t)

	var fl Flags
	assert.Equal("---", fl.String())
	assert.Equal(byte(0), fl.Byte())

	fl.Compare(3, 3)
	assert.Equal("--E", fl.String())
	assert.Equal(byte(0b001), fl.Byte())

	fl.Compare(2, 3)
	assert.Equal("L-E", fl.String())
	assert.Equal(byte(0b101), fl.Byte())

	fl.Compare(4, 3)
	assert.Equal("LGE", fl.String())
	assert.Equal(byte(0b111), fl.Byte())

	fl.Clear()
	assert.Equal(Flags{}, fl)
}

func TestAluOp_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("add", ALU_OP_ADD.String())
	assert.Equal("mul", ALU_OP_MUL.String())
	assert.Equal("cmp", ALU_OP_CMP.String())
	assert.Equal("AluOp(99)", AluOp(99).String())

	assert.Equal("reg", ARG_REG.String())
	assert.Equal("imm", ARG_IMM.String())
	assert.Equal("CodeArg(-1)", CodeArg(-1).String())
}
