package emulator

import (
	"errors"

	"github.com/ezrec/simplecpu/translate"
)

var f = translate.From

var (
	ErrResetPolicy = errors.New(f("unknown reset policy"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Pc     int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d (pc %d) %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrInitialize indicates which initialization pair could not be stored.
type ErrInitialize struct {
	Index int
	Err   error
}

func (err *ErrInitialize) Error() string {
	return f("data %d %v", err.Index, err.Err)
}

func (err *ErrInitialize) Unwrap() error {
	return err.Err
}
