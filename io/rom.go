// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"os"
	"strconv"
	"strings"
)

// Rom is an LS-8 program image.
//
// The text form has one binary literal per line, such as `10000010`.
// Anything after a `#` is a comment, and blank lines are skipped.
type Rom struct {
	Verbose bool // If set, logs each loaded byte.

	Data    []byte   // Image bytes, loaded from address 0.
	LineNo  []int    // Source line of each byte, if known.
	Comment []string // Annotation written after each byte by Save.
}

// Reset empties the image.
func (rc *Rom) Reset() {
	rc.Data = nil
	rc.LineNo = nil
	rc.Comment = nil
}

// Bytes returns an iterator over the address and value of each image byte.
func (rc *Rom) Bytes() iter.Seq2[int, byte] {
	return func(yield func(address int, value byte) bool) {
		for address, value := range rc.Data {
			if !yield(address, value) {
				return
			}
		}
	}
}

// Line returns the source line of the byte at address, or 0.
func (rc *Rom) Line(address int) int {
	if address < 0 || address >= len(rc.LineNo) {
		return 0
	}
	return rc.LineNo[address]
}

// parseBinary parses a single binary literal, with an optional 0b prefix.
func parseBinary(word string) (value byte, err error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(word, "0b"), "0B")
	digits = strings.ReplaceAll(digits, "_", "")
	if len(digits) == 0 {
		err = ErrParseBinary(word)
		return
	}

	v64, err := strconv.ParseUint(digits, 2, 8)
	if err != nil {
		err = ErrParseBinary(word)
		return
	}

	value = byte(v64)
	return
}

// Load replaces the image with the contents of a text program.
func (rc *Rom) Load(input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	rc.Reset()

	for scanner.Scan() {
		lineno++
		line = scanner.Text()

		text, _, _ := strings.Cut(line, "#")
		text = strings.TrimSpace(text)
		if len(text) == 0 {
			continue
		}

		var value byte
		value, err = parseBinary(text)
		if err != nil {
			return
		}

		if rc.Verbose {
			log.Printf("rom: %02x: %08b (line %d)", len(rc.Data), value, lineno)
		}

		rc.Data = append(rc.Data, value)
		rc.LineNo = append(rc.LineNo, lineno)
	}

	err = scanner.Err()

	return
}

// LoadFile replaces the image with the contents of a text program file.
// A missing file is reported with an error matching fs.ErrNotExist.
func (rc *Rom) LoadFile(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	err = rc.Load(inf)

	return
}

// Save writes the image in text form, with comments where present.
func (rc *Rom) Save(output io.Writer) (err error) {
	w := bufio.NewWriter(output)

	for address, value := range rc.Bytes() {
		var comment string
		if address < len(rc.Comment) {
			comment = rc.Comment[address]
		}
		if len(comment) == 0 {
			_, err = fmt.Fprintf(w, "%08b\n", value)
		} else {
			_, err = fmt.Fprintf(w, "%08b # %v\n", value, comment)
		}
		if err != nil {
			return
		}
	}

	err = w.Flush()

	return
}
