//go:build linux && amd64

package native

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// PAD is written over stale code past the end of a newly loaded program.
const PAD = 0xcc // int3

//go:noescape
func invoke(fn uintptr, args *Args) (ax uint32, x0 uint32)

// Buffer is an executable code buffer.
type Buffer struct {
	mem  []byte
	used int
	exec bool
}

// New maps a buffer that holds at least size bytes of code.
func New(size int) (buf *Buffer, err error) {
	page := unix.Getpagesize()
	size = max(page, (size+page-1)/page*page)

	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return
	}

	for n := range mem {
		mem[n] = PAD
	}

	buf = &Buffer{mem: mem}
	return
}

// Cap is the largest program the buffer holds.
func (buf *Buffer) Cap() int {
	return len(buf.mem)
}

// Load copies code into the buffer and makes it executable.
func (buf *Buffer) Load(code []byte) (err error) {
	if buf.mem == nil {
		err = ErrClosed
		return
	}
	if len(code) > len(buf.mem) {
		err = ErrTooLarge
		return
	}

	if buf.exec {
		err = unix.Mprotect(buf.mem, unix.PROT_READ|unix.PROT_WRITE)
		if err != nil {
			return
		}
		buf.exec = false
	}

	copy(buf.mem, code)
	for n := len(code); n < buf.used; n++ {
		buf.mem[n] = PAD
	}
	buf.used = len(code)

	err = unix.Mprotect(buf.mem, unix.PROT_READ|unix.PROT_EXEC)
	if err != nil {
		return
	}
	buf.exec = true

	return
}

// Call runs the loaded code with args.
func (buf *Buffer) Call(args Args) (res Result, err error) {
	if !buf.exec || buf.used == 0 {
		err = ErrNotLoaded
		return
	}

	res.AX, res.X0 = invoke(uintptr(unsafe.Pointer(&buf.mem[0])), &args)
	return
}

// Close unmaps the buffer.
func (buf *Buffer) Close() (err error) {
	if buf.mem == nil {
		return
	}
	err = unix.Munmap(buf.mem)
	buf.mem = nil
	buf.exec = false
	buf.used = 0
	return
}
