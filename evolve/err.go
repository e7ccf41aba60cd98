package evolve

import (
	"errors"

	"github.com/ezrec/genx/translate"
)

var f = translate.From

var (
	ErrGenerationLimit = errors.New(f("generation limit reached"))
	ErrNotReset        = errors.New(f("driver not reset"))
)

// ErrStore wraps a failure to persist run history.
type ErrStore struct {
	RunID string
	Err   error
}

func (err ErrStore) Error() string {
	return f("run %v: %v", err.RunID, err.Err)
}

func (err ErrStore) Unwrap() error {
	return err.Err
}
