package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted             = errors.New(f("halted"))
	ErrMemoryRange        = errors.New(f("memory out of range"))
	ErrRegisterRange      = errors.New(f("register out of range"))
	ErrStackEmpty         = errors.New(f("stack empty"))
	ErrStackFull          = errors.New(f("stack full"))
	ErrProgramTooLarge    = errors.New(f("program too large"))
	ErrUnknownOpcode      = errors.New(f("unknown opcode"))
	ErrUnsupportedAluOp   = errors.New(f("unsupported alu operation"))
	ErrOpcodeOperandCount = errors.New(f("operand count"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrValueRange         = errors.New(f("value out of byte range"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrAddress is a memory access outside of [0, MEMORY_SIZE).
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address %d out of range", int(ea))
}

func (ea ErrAddress) Unwrap() error {
	return ErrMemoryRange
}

// ErrRegister is a register access outside of [0, REGISTER_COUNT).
type ErrRegister int

func (er ErrRegister) Error() string {
	return f("register %d out of range", int(er))
}

func (er ErrRegister) Unwrap() error {
	return ErrRegisterRange
}

// ErrAluOp is an ALU request for an operation it does not implement.
type ErrAluOp AluOp

func (ea ErrAluOp) Error() string {
	return f("alu operation %v unsupported", AluOp(ea).String())
}

func (ea ErrAluOp) Unwrap() error {
	return ErrUnsupportedAluOp
}

// ErrOpcode reports the instruction that failed to execute.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x at 0x%02x %v", uint8(eo.Opcode), eo.Pc, Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
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
