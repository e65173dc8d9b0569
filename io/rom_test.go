package io

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRom_Load(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"# print8.ls8",
		"",
		"10000010 # LDI R0,8",
		"00000000",
		"00001000",
		"   ",
		"01000111 # PRN R0",
		"00000000",
		"00000001 # HLT",
	}

	rom := &Rom{}
	err := rom.Load(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	assert.Equal([]byte{0x82, 0x00, 0x08, 0x47, 0x00, 0x01}, rom.Data)
	assert.Equal([]int{3, 4, 5, 7, 8, 9}, rom.LineNo)
	assert.Equal(9, rom.Line(5))
	assert.Equal(0, rom.Line(6))
	assert.Equal(0, rom.Line(-1))
}

func TestRom_Load_Prefix(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	err := rom.Load(strings.NewReader("0b1010_0010\n\t0B1#tab\n"))
	assert.NoError(err)
	assert.Equal([]byte{0xa2, 0x01}, rom.Data)
}

func TestRom_Load_Error(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		line string
	}){
		{"decimal", "12"},
		{"too wide", "100000000"},
		{"empty prefix", "0b"},
		{"word", "HLT"},
	}

	for _, entry := range table {
		rom := &Rom{}
		err := rom.Load(strings.NewReader("00000001\n" + entry.line + "\n"))
		assert.Error(err, entry.name)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(2, syntax.LineNo, entry.name)
			assert.Equal(entry.line, syntax.Line, entry.name)
		}

		var parse ErrParseBinary
		assert.True(errors.As(err, &parse), entry.name)
	}
}

func TestRom_Load_Replaces(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []byte{1, 2, 3}, LineNo: []int{1, 2, 3}, Comment: []string{"x"}}
	err := rom.Load(strings.NewReader("00000001\n"))
	assert.NoError(err)
	assert.Equal([]byte{1}, rom.Data)
	assert.Nil(rom.Comment)
}

func TestRom_LoadFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "halt.ls8")
	assert.NoError(os.WriteFile(path, []byte("00000001 # HLT\n"), 0o644))

	rom := &Rom{}
	assert.NoError(rom.LoadFile(path))
	assert.Equal([]byte{0x01}, rom.Data)

	err := rom.LoadFile(filepath.Join(dir, "missing.ls8"))
	assert.True(errors.Is(err, fs.ErrNotExist))
}

func TestRom_Save(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{
		Data:    []byte{0x82, 0x00, 0x08, 0x01},
		Comment: []string{"LDI R0,8", "", "", "HLT"},
	}

	out := &bytes.Buffer{}
	assert.NoError(rom.Save(out))

	expected := strings.Join([]string{
		"10000010 # LDI R0,8",
		"00000000",
		"00001000",
		"00000001 # HLT",
		"",
	}, "\n")
	assert.Equal(expected, out.String())

	again := &Rom{}
	assert.NoError(again.Load(out))
	assert.Equal(rom.Data, again.Data)
}

func TestRom_Bytes_EarlyStop(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []byte{1, 2, 3}}

	count := 0
	for range rom.Bytes() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}
