package store

import (
	"errors"

	"github.com/ezrec/genx/translate"
)

var f = translate.From

var (
	ErrNotInitialized    = errors.New(f("store is not initialized"))
	ErrPathRequired      = errors.New(f("sqlite path is required"))
	ErrSQLiteUnavailable = errors.New(f("sqlite backend unavailable in this build; rebuild with -tags sqlite"))
	ErrVersionMismatch   = errors.New(f("record version mismatch"))
	ErrBackendUnknown    = errors.New(f("unsupported store backend"))
)

// ErrBackend names the backend that could not be opened.
type ErrBackend struct {
	Kind string
	Err  error
}

func (err ErrBackend) Error() string {
	return f("%v: %v", err.Kind, err.Err)
}

func (err ErrBackend) Unwrap() error {
	return err.Err
}

// ErrRunMissing names a run that is not in the store.
type ErrRunMissing string

func (err ErrRunMissing) Error() string {
	return f("run %v not found", string(err))
}
