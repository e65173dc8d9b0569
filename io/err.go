package io

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Device errors
	ErrTapeOutput = errors.New(f("tape output missing"))
)

// ErrParseBinary is a program line that is not an 8-bit binary literal.
type ErrParseBinary string

func (err ErrParseBinary) Error() string {
	return f("'%v' is not an 8-bit binary literal", string(err))
}

// ErrSyntax locates a program image parse error.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
