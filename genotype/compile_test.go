package genotype

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/genx/catalog"
)

func TestCompileJump(t *testing.T) {
	assert := assert.New(t)

	cat := testCatalog(t, true)
	jmp := mustLookup(t, cat, "jmp rel32")
	add := mustLookup(t, cat, "add r/m32, r32")
	neg := mustLookup(t, cat, "neg r/m32")

	prologue := []byte{0xc8, 0x00, 0x00, 0x00, 0x89, 0xf8}
	suffix := []byte{0xc9, 0xc3}

	table := [](struct {
		name string
		raw  uint32
		rel  byte
	}){
		{"next", 0, 0},
		{"skip-one", 1, 2},
		{"skip-two", 2, 4},
		{"to-ret", 3, 5},
		{"wrap", 5, 2},
	}

	for _, entry := range table {
		jump := Op{Index: jmp}
		jump.SetImm(entry.raw)
		g := build(cat, 8, jump, Op{Index: add, ModRM: 0xca}, Op{Index: neg, ModRM: 0xd8})
		before := g.Clone()

		var expect []byte
		expect = append(expect, prologue...)
		expect = append(expect, 0xe9, entry.rel, 0, 0, 0, 0x01, 0xca, 0xf7, 0xd8)
		expect = append(expect, suffix...)

		code := Compile(cat, g, nil)
		assert.Equal(expect, code, entry.name)
		assert.Equal(before, g, entry.name)
	}
}

func TestCompileReuse(t *testing.T) {
	assert := assert.New(t)

	cat := testCatalog(t, false)
	add := mustLookup(t, cat, "add r/m32, r32")

	buf := make([]byte, 0, CodeCapacity(8))
	long := build(cat, 8, Op{Index: add, ModRM: 0xca}, Op{Index: add, ModRM: 0xca})
	short := build(cat, 8)

	code := Compile(cat, long, buf)
	assert.Len(code, 12)
	code = Compile(cat, short, code)
	assert.Equal([]byte{0xc8, 0x00, 0x00, 0x00, 0x89, 0xf8, 0xc9, 0xc3}, code)
	assert.Equal(8, Bytes(cat, short))
}

func TestDump(t *testing.T) {
	assert := assert.New(t)

	cat := testCatalog(t, false)
	add := mustLookup(t, cat, "add r/m32, imm8")

	op := Op{Index: add, ModRM: 0xc1}
	op.SetImm(0x12)
	g := build(cat, 4, op)

	var out bytes.Buffer
	assert.NoError(Dump(&out, cat, g))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal([]string{
		"  0 c8 00 00 00                enter   $0x0,$0x0",
		"  1 89 f8                      mov     %edi,%eax",
		"  2 83 c1 12                   add     $0x12,%ecx",
		"  3 c9                         leave",
		"  4 c3                         ret",
	}, lines)

	assert.Equal("c8 00 00 00 89 f8 83 c1 12 c9 c3", g.String(cat))
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	cat := testCatalog(t, true)
	m := testMutator(cat, newScript(), 12)

	g := New(12)
	m.Gen(g, nil)
	for range 50 {
		m.Gen(g, g)
	}

	var out bytes.Buffer
	assert.NoError(Dump(&out, cat, g))
	out.WriteString("-> score=0x00000003\n")

	loaded, err := Load(&out, cat, 12)
	assert.NoError(err)
	assert.Equal(g.Len, loaded.Len)
	assert.Equal(g.Ops[:g.Len], loaded.Ops[:loaded.Len])
}

func TestLoadInterior(t *testing.T) {
	assert := assert.New(t)

	cat := testCatalog(t, false)
	listing := `
; interior only
  2 0f af c1                   imul    %ecx,%eax
  3 c1 e8 03                   shr     $0x03,%eax
`
	g, err := Load(strings.NewReader(listing), cat, 4)
	assert.NoError(err)
	assert.Equal(catalog.PREFIX_LEN+2+catalog.SUFFIX_LEN, g.Len)
	assert.Equal("c8 00 00 00 89 f8 0f af c1 c1 e8 03 c9 c3", g.String(cat))
}

func TestLoadErrors(t *testing.T) {
	assert := assert.New(t)

	cat := testCatalog(t, false)

	table := [](struct {
		name    string
		listing string
		err     error
		lineno  int
	}){
		{"hex", "  0 zz c1 enter\n", ErrHex, 1},
		{"index", "\nx 01 ca add\n", ErrLineIndex, 2},
		{"template", "  2 0f 0b ud2\n", ErrNoTemplate, 1},
		{"selector", "  2 01 01 add\n", ErrNoTemplate, 1},
		{"length", "  2 01 ca add\n  3 01 ca add\n  4 01 ca add\n", ErrLength, 0},
	}

	for _, entry := range table {
		_, err := Load(strings.NewReader(entry.listing), cat, 2)
		assert.ErrorIs(err, entry.err, entry.name)
		var syntax *ErrSyntax
		if entry.lineno > 0 && assert.ErrorAs(err, &syntax, entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}
}
