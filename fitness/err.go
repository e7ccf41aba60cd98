package fitness

import (
	"github.com/ezrec/genx/translate"
)

var f = translate.From

type ErrModeUnknown string

func (err ErrModeUnknown) Error() string {
	return f("score mode '%v' unknown", string(err))
}
