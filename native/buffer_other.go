//go:build !(linux && amd64)

package native

// Buffer is an executable code buffer. It is unavailable on this platform.
type Buffer struct{}

// New always fails with ErrUnsupported.
func New(size int) (*Buffer, error) {
	return nil, ErrUnsupported
}

func (buf *Buffer) Cap() int {
	return 0
}

func (buf *Buffer) Load(code []byte) error {
	return ErrUnsupported
}

func (buf *Buffer) Call(args Args) (Result, error) {
	return Result{}, ErrUnsupported
}

func (buf *Buffer) Close() error {
	return nil
}
