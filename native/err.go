package native

import (
	"errors"

	"github.com/ezrec/genx/translate"
)

var f = translate.From

var (
	ErrUnsupported = errors.New(f("native execution unsupported on this platform"))
	ErrTooLarge    = errors.New(f("code larger than buffer"))
	ErrClosed      = errors.New(f("buffer closed"))
	ErrNotLoaded   = errors.New(f("no code loaded"))
)
