package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelect(t *testing.T) {
	assert := assert.New(t)

	for _, tmpl := range All() {
		seen := map[byte]bool{}
		for r := range uint32(64) {
			modrm := tmpl.Select(r)
			assert.True(tmpl.Selects(modrm), "%v 0x%02x", tmpl.Name, modrm)
			seen[modrm] = true
		}

		switch tmpl.Selector {
		case SEL_NONE:
			assert.Len(seen, 1, tmpl.Name)
		case SEL_PAIR:
			assert.Len(seen, SELECT_REGS*SELECT_REGS, tmpl.Name)
		case SEL_DIGIT, SEL_REG:
			assert.Len(seen, SELECT_REGS, tmpl.Name)
		}
	}
}

func TestSelects(t *testing.T) {
	assert := assert.New(t)

	neg := mustFind("neg r/m32")
	assert.True(neg.Selects(0xd8))
	assert.False(neg.Selects(0xd0))
	assert.False(neg.Selects(0x18))
	assert.False(neg.Selects(0xdc))

	load := mustFind(NAME_LOAD_FLOAT)
	assert.True(load.Selects(IDENTITY_LOAD_FLOAT))
	assert.False(load.Selects(0xc0))
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		modrm byte
		imm   uint32
		code  []byte
		text  string
	}){
		{NAME_ENTER, 0, 0, []byte{0xc8, 0, 0, 0}, "enter   $0x0,$0x0"},
		{NAME_RET, 0, 0, []byte{0xc3}, "ret"},
		{NAME_LOAD_INT, IDENTITY_LOAD_INT, 0, []byte{0x89, 0xf8}, "mov     %edi,%eax"},
		{NAME_LOAD_FLOAT, IDENTITY_LOAD_FLOAT, 0, []byte{0x66, 0x0f, 0x6e, 0xc7}, "movd    %edi,%xmm0"},
		{"mov r/m32, r8d", 0xc3, 0, []byte{0x44, 0x89, 0xc3}, "mov     %r8d,%ebx"},
		{"add r/m32, r32", 0xca, 0, []byte{0x01, 0xca}, "add     %ecx,%edx"},
		{"mov r32, r/m32", 0xca, 0, []byte{0x8b, 0xca}, "mov     %edx,%ecx"},
		{"add r/m32, imm8", 0xc1, 0x1234, []byte{0x83, 0xc1, 0x34}, "add     $0x34,%ecx"},
		{"xor r/m32, imm32", 0xf0, 0xdeadbeef, []byte{0x81, 0xf0, 0xef, 0xbe, 0xad, 0xde}, "xor     $0xdeadbeef,%eax"},
		{"imul r32, r/m32, imm8", 0xc1, 3, []byte{0x6b, 0xc1, 0x03}, "imul    $0x03,%ecx,%eax"},
		{"mulss xmm, xmm", 0xc1, 0, []byte{0xf3, 0x0f, 0x59, 0xc1}, "mulss   %xmm1,%xmm0"},
		{"movd r/m32, xmm", 0xc8, 0, []byte{0x66, 0x0f, 0x7e, 0xc8}, "movd    %xmm1,%eax"},
		{"mov r/m32, float32", 0xc2, math.Float32bits(1.5), []byte{0xc7, 0xc2, 0x00, 0x00, 0xc0, 0x3f}, "mov     $1.5,%edx"},
		{"bswap eax", 0, 0, []byte{0x0f, 0xc8}, "bswap   %eax"},
		{"jne rel32", 0, 7, []byte{0x0f, 0x85, 7, 0, 0, 0}, "jne     0x00000007"},
	}

	for _, entry := range table {
		tmpl := mustFind(entry.name)
		code := tmpl.Encode(nil, entry.modrm, entry.imm)
		assert.Equal(entry.code, code, entry.name)
		assert.Equal(tmpl.Len(), len(code), entry.name)
		assert.Equal(entry.text, tmpl.Disasm(entry.modrm, entry.imm), entry.name)
	}
}

func TestTier(t *testing.T) {
	assert := assert.New(t)

	tier, err := ParseTier("sse2")
	assert.NoError(err)
	assert.Equal(TIER_SSE2, tier)

	_, err = ParseTier("avx512")
	assert.ErrorIs(err, ErrTierUnknown("avx512"))

	text, err := TIER_P6.MarshalText()
	assert.NoError(err)
	assert.Equal("p6", string(text))

	assert.NoError(tier.UnmarshalText([]byte("popcnt")))
	assert.Equal(TIER_POPCNT, tier)
	assert.Equal("Tier(42)", Tier(42).String())
}
