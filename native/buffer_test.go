//go:build linux && amd64

package native

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	enter = []byte{0xc8, 0x00, 0x00, 0x00}
	leave = []byte{0xc9, 0xc3}
)

func program(body ...byte) (code []byte) {
	code = append(code, enter...)
	code = append(code, body...)
	code = append(code, leave...)
	return
}

func TestCall(t *testing.T) {
	assert := assert.New(t)

	buf, err := New(64)
	require.NoError(t, err)
	defer buf.Close()

	bits := math.Float32bits

	table := [](struct {
		name string
		code []byte
		args Args
		res  Result
	}){
		{"identity", program(0x89, 0xf8), Args{7}, Result{AX: 7}},
		{"esi", program(0x89, 0xf0), Args{1, 2, 3, 4}, Result{AX: 2}},
		{"r8d", program(0x44, 0x89, 0xc0), Args{1, 2, 3, 4}, Result{AX: 3}},
		{"r9d", program(0x44, 0x89, 0xc8), Args{1, 2, 3, 4}, Result{AX: 4}},
		{"add", program(0x89, 0xf8, 0x01, 0xf0), Args{40, 2}, Result{AX: 42}},
		{"const", program(0xc7, 0xc0, 0x78, 0x56, 0x34, 0x12), Args{}, Result{AX: 0x12345678}},
		{"neg", program(0x89, 0xf8, 0xf7, 0xd8), Args{1}, Result{AX: 0xffffffff}},
		{"float-double", program(0x66, 0x0f, 0x6e, 0xc7, 0xf3, 0x0f, 0x58, 0xc0), Args{bits(1.25)}, Result{X0: bits(2.5)}},
		{"float-sqrt", program(0x66, 0x0f, 0x6e, 0xcf, 0xf3, 0x0f, 0x51, 0xc1), Args{bits(9)}, Result{X0: bits(3)}},
	}

	for _, entry := range table {
		assert.NoError(buf.Load(entry.code), entry.name)
		res, err := buf.Call(entry.args)
		assert.NoError(err, entry.name)
		assert.Equal(entry.res, res, entry.name)
	}
}

func TestRegistersCleared(t *testing.T) {
	assert := assert.New(t)

	buf, err := New(64)
	require.NoError(t, err)
	defer buf.Close()

	// mov $0x1234,%ebx ; mov $1.0,%ecx ; movd %ecx,%xmm1
	dirty := program(0xc7, 0xc3, 0x34, 0x12, 0x00, 0x00, 0xc7, 0xc1, 0x00, 0x00, 0x80, 0x3f, 0x66, 0x0f, 0x6e, 0xc9)
	assert.NoError(buf.Load(dirty))
	_, err = buf.Call(Args{})
	assert.NoError(err)

	// mov %ebx,%eax ; movss %xmm1,%xmm0
	peek := program(0x8b, 0xc3, 0xf3, 0x0f, 0x10, 0xc1)
	assert.NoError(buf.Load(peek))
	res, err := buf.Call(Args{})
	assert.NoError(err)
	assert.Equal(Result{}, res)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	buf, err := New(1)
	require.NoError(t, err)

	assert.GreaterOrEqual(buf.Cap(), 1)

	_, err = buf.Call(Args{})
	assert.ErrorIs(err, ErrNotLoaded)

	assert.ErrorIs(buf.Load(make([]byte, buf.Cap()+1)), ErrTooLarge)

	long := program(0x89, 0xf8, 0x89, 0xf8, 0x89, 0xf8)
	assert.NoError(buf.Load(long))
	assert.NoError(buf.Load(program()))
	assert.Equal(byte(PAD), buf.mem[len(program())])

	res, err := buf.Call(Args{9})
	assert.NoError(err)
	assert.Equal(uint32(0), res.AX)

	assert.NoError(buf.Close())
	assert.NoError(buf.Close())
	assert.ErrorIs(buf.Load(long), ErrClosed)
}
