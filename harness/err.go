package harness

import (
	"errors"

	"github.com/ezrec/genx/translate"
)

var f = translate.From

var (
	ErrTimeout    = errors.New(f("candidate timed out"))
	ErrWorkerDied = errors.New(f("worker exited"))
	ErrNoWorker   = errors.New(f("no worker command"))
	ErrClosed     = errors.New(f("scorer closed"))
)

// ErrWorker wraps a failure of the worker process.
type ErrWorker struct {
	Pid int
	Err error
}

func (err ErrWorker) Error() string {
	return f("worker %d: %v", err.Pid, err.Err)
}

func (err ErrWorker) Unwrap() error {
	return err.Err
}
