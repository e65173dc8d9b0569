package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(testRamSize)
	cpu.Register[SP] = 0xf4
	cpu.Register[1] = 0x12

	assert.NoError(cpu.Push(1))
	assert.Equal(byte(0xf3), cpu.Register[SP])
	assert.Equal(byte(0x12), cpu.Ram[0xf3])
}

func TestStack_Push_Sp(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(testRamSize)
	cpu.Register[SP] = 0xf4

	assert.NoError(cpu.Push(SP))
	assert.Equal(byte(0xf3), cpu.Register[SP])
	assert.Equal(byte(0xf3), cpu.Ram[0xf3])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(testRamSize)
	cpu.Register[SP] = 0xf4
	cpu.Register[1] = 0x12
	cpu.Register[2] = 0x34

	assert.NoError(cpu.Push(1))
	assert.NoError(cpu.Push(2))

	assert.NoError(cpu.Pop(3))
	assert.Equal(byte(0x34), cpu.Register[3])
	assert.NoError(cpu.Pop(4))
	assert.Equal(byte(0x12), cpu.Register[4])
	assert.Equal(byte(0xf4), cpu.Register[SP])
}

func TestStack_Pop_Sp(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(testRamSize)
	cpu.Register[SP] = 0x80
	cpu.Ram[0x80] = 0x20

	assert.NoError(cpu.Pop(SP))
	assert.Equal(byte(0x21), cpu.Register[SP])
}

func TestStack_PushValue(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(testRamSize)
	cpu.Register[SP] = 1

	assert.NoError(cpu.PushValue(0xab))
	assert.Equal(byte(0), cpu.Register[SP])
	assert.Equal(byte(0xab), cpu.Ram[0])

	// Wraps to 0xff, which is past the end of RAM.
	assert.ErrorIs(cpu.PushValue(0xcd), ErrAddress(0))
	assert.Equal(byte(0), cpu.Register[SP])
}

func TestStack_Push_BadRegister(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(testRamSize)
	cpu.Register[SP] = 0x80

	assert.ErrorIs(cpu.Push(8), ErrRegister(0))
	assert.ErrorIs(cpu.Pop(8), ErrRegister(0))
	assert.Equal(byte(0x80), cpu.Register[SP])
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(testRamSize)
	cpu.Register[SP] = 0x80
	cpu.Register[0] = 0x99
	assert.NoError(cpu.Push(0))

	val, ok := cpu.Peek()
	assert.True(ok)
	assert.Equal(byte(0x99), val)
	assert.Equal(byte(0x7f), cpu.Register[SP])
}

func TestStack_Peek_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(testRamSize)
	cpu.Register[SP] = 0xff

	val, ok := cpu.Peek()
	assert.False(ok)
	assert.Equal(byte(0), val)
}
