package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Address: 0, Words: []string{"LDI", "R0", "8"},
				Bytes: []byte{byte(OP_LDI), 0, 8}},
			{LineNo: 2, Address: 3, Words: []string{"PRN", "R0"},
				Bytes: []byte{byte(OP_PRN), 0}},
			{LineNo: 4, Address: 5, Words: []string{"HLT"},
				Bytes: []byte{byte(OP_HLT)}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.Opcode.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(2)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.Opcode.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(4)
	assert.NotNil(dbg.Opcode)
	assert.Equal(2, dbg.Opcode.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(5)
	assert.NotNil(dbg.Opcode)
	assert.Equal(4, dbg.Opcode.LineNo)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(6)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(-1)
	assert.Nil(dbg.Opcode)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	assert.Equal([]byte{0x82, 0x00, 0x08, 0x47, 0x00, 0x01}, prog.Binary())

	empty := &Program{}
	assert.Empty(empty.Binary())
}

func TestProgram_Bytes_EarlyStop(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var addresses []int
	for address := range prog.Bytes() {
		addresses = append(addresses, address)
		if len(addresses) == 4 {
			break
		}
	}
	assert.Equal([]int{0, 1, 2, 3}, addresses)
}

func TestProgram_Rom(t *testing.T) {
	assert := assert.New(t)

	rom := testProgram().Rom()

	assert.Equal([]byte{0x82, 0x00, 0x08, 0x47, 0x00, 0x01}, rom.Data)
	assert.Equal([]int{1, 1, 1, 2, 2, 4}, rom.LineNo)
	assert.Equal([]string{"LDI R0 8", "", "", "PRN R0", "", "HLT"}, rom.Comment)
}
