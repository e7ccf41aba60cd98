package genotype

import (
	"errors"

	"github.com/ezrec/genx/translate"
)

var f = translate.From

var (
	ErrLength     = errors.New(f("length out of range"))
	ErrPrologue   = errors.New(f("prologue mismatch"))
	ErrSuffix     = errors.New(f("suffix mismatch"))
	ErrIndex      = errors.New(f("template index invalid"))
	ErrSelector   = errors.New(f("selector invalid"))
	ErrData       = errors.New(f("unused data not zero"))
	ErrHex        = errors.New(f("hex byte invalid"))
	ErrNoTemplate = errors.New(f("no template matches"))
	ErrLineIndex  = errors.New(f("record index missing"))
)

type ErrRecord struct {
	Pos int
	Err error
}

func (err ErrRecord) Error() string {
	return f("record %d: %v", err.Pos, err.Err)
}

func (err ErrRecord) Unwrap() error {
	return err.Err
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
