package cpu

import (
	"errors"

	"github.com/SarahGreyWolf/grey6502/translate"
)

var f = translate.From

var (
	// Execution errors
	ErrHalted = errors.New(f("halted"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrOriginSyntax    = errors.New(f(".org syntax"))
	ErrDataSyntax      = errors.New(f("data directive syntax"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrMacroSyntax     = errors.New(f(".macro syntax"))
	ErrMacroNesting    = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate  = errors.New(f(".macro duplicated"))
	ErrMacroLonely     = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm = errors.New(f(".endm without .macro"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrOperandExtra    = errors.New(f("excessive operands"))
	ErrBranchRange     = errors.New(f("branch target out of range"))
	ErrLabelOperand    = errors.New(f("label not permitted here"))
)

// ErrUnknownOpcode reports a fetched byte that matches no instruction
// table entry, and the address it was fetched from.
type ErrUnknownOpcode struct {
	Opcode  uint8
	Address uint16
}

func (eo ErrUnknownOpcode) Error() string {
	return f("unknown opcode 0x%02x at 0x%04x", eo.Opcode, eo.Address)
}

func (eo ErrUnknownOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrUnknownOpcode)
	return
}

// ErrMnemonicInvalid reports an assembler word that is neither a
// directive nor an instruction name.
type ErrMnemonicInvalid string

func (em ErrMnemonicInvalid) Error() string {
	return f("'%v' is not an instruction", string(em))
}

// ErrModeInvalid reports an instruction given an addressing mode it
// has no opcode for.
type ErrModeInvalid struct {
	Inst Mnemonic
	Mode AddressMode
}

func (em ErrModeInvalid) Error() string {
	return f("%v has no %v form", em.Inst, em.Mode)
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
	return f("'%v' is not a value", string(err))
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
