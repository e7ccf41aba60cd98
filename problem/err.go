package problem

import (
	"errors"

	"github.com/ezrec/genx/translate"
)

var f = translate.From

var (
	ErrKeepTooLarge   = errors.New(f("pop_keep must be less than pop_size"))
	ErrRange          = errors.New(f("out of range"))
	ErrKindScore      = errors.New(f("score mode does not match function kind"))
	ErrNoOps          = errors.New(f("no operation domain enabled"))
	ErrBranchTimeout  = errors.New(f("branches require a timeout"))
	ErrNoVectors      = errors.New(f("no test vectors"))
	ErrTooManyInputs  = errors.New(f("too many inputs"))
	ErrNotFound       = errors.New(f("problem not found"))
	ErrDuplicate      = errors.New(f("problem already registered"))
	ErrScriptName     = errors.New(f("script does not define name"))
	ErrScriptVectors  = errors.New(f("script defines neither vectors nor inputs with target"))
	ErrScriptType     = errors.New(f("script value has the wrong type"))
	ErrScriptOption   = errors.New(f("script option unknown"))
	ErrScriptFunction = errors.New(f("script function failed"))
)

type ErrOption struct {
	Name string
	Err  error
}

func (err ErrOption) Error() string {
	return f("option %v: %v", err.Name, err.Err)
}

func (err ErrOption) Unwrap() error {
	return err.Err
}

type ErrScript struct {
	Path string
	Err  error
}

func (err ErrScript) Error() string {
	return f("script %v: %v", err.Path, err.Err)
}

func (err ErrScript) Unwrap() error {
	return err.Err
}

type ErrProblemMissing string

func (err ErrProblemMissing) Error() string {
	return f("problem '%v' not found", string(err))
}

func (err ErrProblemMissing) Is(target error) bool {
	return target == ErrNotFound
}
