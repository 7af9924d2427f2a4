package cpu

import (
	"errors"

	"github.com/ezrec/simplecpu/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrCpuBusy      = errors.New(f("cpu busy"))
	ErrPcRange      = errors.New(f("pc out of range"))
	ErrAddressRange = errors.New(f("address out of range"))

	// Instruction decode errors
	ErrUnknownInstruction   = errors.New(f("unknown instruction"))
	ErrMalformedInstruction = errors.New(f("malformed instruction"))
	ErrOperandCount         = errors.New(f("operand count"))
	ErrOperandMissing       = errors.New(f("operand missing"))
	ErrRegisterInvalid      = errors.New(f("register invalid"))
	ErrOffsetSyntax         = errors.New(f("offset(register) syntax"))
)

// ErrAddress is a memory address outside of the memory bus.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address %v out of range [0,%v)", int(ea), MEMORY_SIZE)
}

func (ea ErrAddress) Unwrap() error {
	return ErrAddressRange
}

// ErrPc is a program counter outside of the program.
type ErrPc int

func (ep ErrPc) Error() string {
	return f("pc %v out of range", int(ep))
}

func (ep ErrPc) Unwrap() error {
	return ErrPcRange
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

// ErrDecode reports the instruction record that failed to decode.
type ErrDecode struct {
	Line string
	Err  error
}

func (err ErrDecode) Error() string {
	return f("'%v' %v", err.Line, err.Err)
}

func (err ErrDecode) Unwrap() error {
	return err.Err
}

// ErrStep reports the program counter of a failed instruction.
type ErrStep struct {
	Pc  int
	Err error
}

func (err ErrStep) Error() string {
	return f("pc %v: %v", err.Pc, err.Err)
}

func (err ErrStep) Unwrap() error {
	return err.Err
}
