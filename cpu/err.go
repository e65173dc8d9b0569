package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted         = errors.New(f("cpu halted"))
	ErrImageSize      = errors.New(f("program image larger than memory"))
	ErrPrinterMissing = errors.New(f("printer missing"))
	ErrAluUnsupported = errors.New(f("unsupported alu operation"))

	// Instruction decode errors
	ErrOpcodeInvalid = errors.New(f("illegal instruction"))
	ErrOpcodeFetch   = errors.New(f("fetch"))
	ErrOpcodeArg1    = errors.New(f("arg1"))
	ErrOpcodeArg2    = errors.New(f("arg2"))
	ErrOpcodeStack   = errors.New(f("stack"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeMissing      = errors.New(f("operand missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrOpcode gives the opcode context of an execution fault.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("opcode 0x%02x %v", uint8(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrAddress is a memory access outside of the RAM.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address 0x%03x out of range", int(ea))
}

func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}

// ErrRegister is a register operand outside of R0..R7.
type ErrRegister byte

func (er ErrRegister) Error() string {
	return f("register %d out of range", uint8(er))
}

func (er ErrRegister) Is(err error) (ok bool) {
	_, ok = err.(ErrRegister)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' does not fit in a byte", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
