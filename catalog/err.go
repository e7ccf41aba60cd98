package catalog

import (
	"errors"

	"github.com/ezrec/genx/translate"
)

var f = translate.From

var (
	ErrEmptyCatalog = errors.New(f("no templates enabled"))
	ErrNotFound     = errors.New(f("template not found"))
)

type ErrNameMissing string

func (err ErrNameMissing) Error() string {
	return f("template '%v' missing", string(err))
}

func (err ErrNameMissing) Is(target error) bool {
	return target == ErrNotFound
}

type ErrTierUnknown string

func (err ErrTierUnknown) Error() string {
	return f("tier '%v' unknown", string(err))
}
