package catalog

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Tier is the processor generation that introduced an instruction.
type Tier int

//go:generate go tool stringer -linecomment -type=Tier
const (
	TIER_8086   = Tier(0) // 8086
	TIER_286    = Tier(1) // 286
	TIER_386    = Tier(2) // 386
	TIER_486    = Tier(3) // 486
	TIER_P5     = Tier(4) // p5
	TIER_P6     = Tier(5) // p6
	TIER_SSE    = Tier(6) // sse
	TIER_SSE2   = Tier(7) // sse2
	TIER_POPCNT = Tier(8) // popcnt
)

// ParseTier returns the tier named by s.
func ParseTier(s string) (tier Tier, err error) {
	for tier = TIER_8086; tier <= TIER_POPCNT; tier++ {
		if tier.String() == s {
			return
		}
	}

	err = ErrTierUnknown(s)
	return
}

// MarshalText encodes the tier by name.
func (tier Tier) MarshalText() ([]byte, error) {
	return []byte(tier.String()), nil
}

// UnmarshalText decodes a tier name.
func (tier *Tier) UnmarshalText(text []byte) (err error) {
	*tier, err = ParseTier(string(text))
	return
}

// Domain is the kind of data a template operates on.
type Domain int

//go:generate go tool stringer -linecomment -type=Domain
const (
	DOMAIN_CONTROL = Domain(0) // control
	DOMAIN_INT     = Domain(1) // int
	DOMAIN_FLOAT   = Domain(2) // float
)

// Class is the operation class of a template.
type Class int

//go:generate go tool stringer -linecomment -type=Class
const (
	CLASS_FRAME   = Class(0) // frame
	CLASS_LOAD    = Class(1) // load
	CLASS_ALGEBRA = Class(2) // algebra
	CLASS_BIT     = Class(3) // bit
)

// Selector is the synthesis mode of a template's ModRM byte.
type Selector int

//go:generate go tool stringer -linecomment -type=Selector
const (
	SEL_NONE  = Selector(0) // none
	SEL_PAIR  = Selector(1) // pair
	SEL_DIGIT = Selector(2) // digit
	SEL_REG   = Selector(3) // reg
)

// RegFile is the register file addressed by a ModRM field.
type RegFile int

//go:generate go tool stringer -linecomment -type=RegFile
const (
	REG_GPR = RegFile(0) // gpr
	REG_XMM = RegFile(1) // xmm
)

var gprName = [8]string{"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi"}

// Register returns the AT&T name of register n in the register file.
func (rf RegFile) Register(n int) string {
	n &= 7
	if rf == REG_XMM {
		return fmt.Sprintf("%%xmm%d", n)
	}
	return "%" + gprName[n]
}

// SELECT_REGS is the number of registers a synthesized selector field may name.
const SELECT_REGS = 4

// Template is one instruction shape of the catalog.
type Template struct {
	Name     string   // Unique lookup name, in Intel manual notation.
	Mnemonic string   // Disassembly mnemonic.
	Operands string   // Fixed operand text, if any.
	Op       []byte   // Opcode bytes, including any prefixes.
	Selector Selector // ModRM synthesis mode.
	Digit    uint8    // Fixed ModRM field for SEL_DIGIT (reg) and SEL_REG (rm).
	Reg      RegFile  // Register file of the ModRM reg field.
	Rm       RegFile  // Register file of the ModRM rm field.
	RegDst   bool     // The ModRM reg field is the destination.
	ImmLen   int      // Immediate length in bytes: 0, 1 or 4.
	FloatImm bool     // The immediate is a float32 constant.
	Tier     Tier
	Domain   Domain
	Class    Class
	Param    int  // Parameter index loaded, for CLASS_LOAD.
	Branch   bool // Forward branch with a rel32 immediate.
}

// SelectorLen is the number of selector bytes emitted for the template.
func (t *Template) SelectorLen() int {
	if t.Selector == SEL_NONE {
		return 0
	}
	return 1
}

// Len is the encoded length of the template in bytes.
func (t *Template) Len() int {
	return len(t.Op) + t.SelectorLen() + t.ImmLen
}

// Select synthesizes a selector byte from the random value r.
// Only the four lowest registers of each file are ever named.
func (t *Template) Select(r uint32) (modrm byte) {
	lo := byte(r % SELECT_REGS)
	hi := byte((r / SELECT_REGS) % SELECT_REGS)

	switch t.Selector {
	case SEL_PAIR:
		modrm = 0xc0 | hi<<3 | lo
	case SEL_DIGIT:
		modrm = 0xc0 | (t.Digit&7)<<3 | lo
	case SEL_REG:
		modrm = 0xc0 | lo<<3 | (t.Digit & 7)
	}

	return
}

// Selects reports whether modrm is a selector the template could synthesize.
func (t *Template) Selects(modrm byte) bool {
	reg := (modrm >> 3) & 7
	rm := modrm & 7

	switch t.Selector {
	case SEL_NONE:
		return true
	case SEL_PAIR:
		return modrm&0xc0 == 0xc0 && reg < SELECT_REGS && rm < SELECT_REGS
	case SEL_DIGIT:
		return modrm&0xc0 == 0xc0 && reg == t.Digit && rm < SELECT_REGS
	case SEL_REG:
		return modrm&0xc0 == 0xc0 && rm == t.Digit && reg < SELECT_REGS
	}

	return false
}

// Encode appends the machine code of the template to buf.
func (t *Template) Encode(buf []byte, modrm byte, imm uint32) []byte {
	buf = append(buf, t.Op...)
	if t.Selector != SEL_NONE {
		buf = append(buf, modrm)
	}

	switch t.ImmLen {
	case 1:
		buf = append(buf, byte(imm))
	case 4:
		buf = binary.LittleEndian.AppendUint32(buf, imm)
	}

	return buf
}

func (t *Template) immText(imm uint32) string {
	switch {
	case t.FloatImm:
		return fmt.Sprintf("$%g", math.Float32frombits(imm))
	case t.Branch:
		return fmt.Sprintf("0x%08x", imm)
	case t.ImmLen == 1:
		return fmt.Sprintf("$0x%02x", byte(imm))
	}
	return fmt.Sprintf("$0x%08x", imm)
}

// Disasm renders the template in AT&T syntax.
func (t *Template) Disasm(modrm byte, imm uint32) string {
	var args []string

	if t.ImmLen > 0 {
		args = append(args, t.immText(imm))
	}
	if t.Operands != "" {
		args = append(args, t.Operands)
	}

	reg := t.Reg.Register(int(modrm >> 3))
	rm := t.Rm.Register(int(modrm))

	switch t.Selector {
	case SEL_PAIR:
		if t.RegDst {
			args = append(args, rm, reg)
		} else {
			args = append(args, reg, rm)
		}
	case SEL_DIGIT:
		args = append(args, rm)
	case SEL_REG:
		args = append(args, reg)
	}

	if len(args) == 0 {
		return t.Mnemonic
	}

	return fmt.Sprintf("%-7s %s", t.Mnemonic, strings.Join(args, ","))
}

// String returns the template name.
func (t *Template) String() string {
	return t.Name
}
