package catalog

// Frame template names.
const (
	NAME_ENTER      = "enter 0, 0"
	NAME_LEAVE      = "leave"
	NAME_RET        = "ret"
	NAME_LOAD_INT   = "mov r/m32, edi"
	NAME_LOAD_FLOAT = "movd xmm, edi"
)

// Selector bytes of the identity loads in the prologue.
const (
	IDENTITY_LOAD_INT   = 0xf8 // mov %edi,%eax
	IDENTITY_LOAD_FLOAT = 0xc7 // movd %edi,%xmm0
)

func alu(name, mnemonic string, sel Selector, digit uint8, imm int, op ...byte) Template {
	return Template{
		Name:     name,
		Mnemonic: mnemonic,
		Op:       op,
		Selector: sel,
		Digit:    digit,
		ImmLen:   imm,
		Tier:     TIER_386,
		Domain:   DOMAIN_INT,
		Class:    CLASS_ALGEBRA,
	}
}

func (t Template) tier(tier Tier) Template {
	t.Tier = tier
	return t
}

func (t Template) bit() Template {
	t.Class = CLASS_BIT
	return t
}

func (t Template) dst() Template {
	t.RegDst = true
	return t
}

func (t Template) xmm(reg, rm RegFile) Template {
	t.Domain = DOMAIN_FLOAT
	t.Reg = reg
	t.Rm = rm
	return t
}

func load(name, mnemonic, operand string, param int, sel Selector, digit uint8, op ...byte) Template {
	t := alu(name, mnemonic, sel, digit, 0, op...)
	t.Operands = operand
	t.Class = CLASS_LOAD
	t.Param = param
	return t
}

func frame(name, mnemonic, operands string, tier Tier, op ...byte) Template {
	return Template{
		Name:     name,
		Mnemonic: mnemonic,
		Operands: operands,
		Op:       op,
		Tier:     tier,
		Domain:   DOMAIN_CONTROL,
		Class:    CLASS_FRAME,
	}
}

func branch(name, mnemonic string, op ...byte) Template {
	t := alu(name, mnemonic, SEL_NONE, 0, 4, op...)
	t.Domain = DOMAIN_CONTROL
	t.Branch = true
	return t
}

var table = []Template{
	frame(NAME_ENTER, "enter", "$0x0,$0x0", TIER_286, 0xc8, 0x00, 0x00, 0x00),
	frame(NAME_LEAVE, "leave", "", TIER_286, 0xc9),
	frame(NAME_RET, "ret", "", TIER_8086, 0xc3),

	// Parameter loads
	load(NAME_LOAD_INT, "mov", "%edi", 0, SEL_DIGIT, 7, 0x89),
	load("mov r/m32, esi", "mov", "%esi", 1, SEL_DIGIT, 6, 0x89),
	load("mov r/m32, r8d", "mov", "%r8d", 2, SEL_DIGIT, 0, 0x44, 0x89),
	load("mov r/m32, r9d", "mov", "%r9d", 3, SEL_DIGIT, 1, 0x44, 0x89),
	load(NAME_LOAD_FLOAT, "movd", "%edi", 0, SEL_REG, 7, 0x66, 0x0f, 0x6e).xmm(REG_XMM, REG_GPR).tier(TIER_SSE2),
	load("movd xmm, esi", "movd", "%esi", 1, SEL_REG, 6, 0x66, 0x0f, 0x6e).xmm(REG_XMM, REG_GPR).tier(TIER_SSE2),
	load("movd xmm, r8d", "movd", "%r8d", 2, SEL_REG, 0, 0x66, 0x41, 0x0f, 0x6e).xmm(REG_XMM, REG_GPR).tier(TIER_SSE2),
	load("movd xmm, r9d", "movd", "%r9d", 3, SEL_REG, 1, 0x66, 0x41, 0x0f, 0x6e).xmm(REG_XMM, REG_GPR).tier(TIER_SSE2),

	// Integer algebra
	alu("add r/m32, imm8", "add", SEL_DIGIT, 0, 1, 0x83),
	alu("add r/m32, r32", "add", SEL_PAIR, 0, 0, 0x01),
	alu("sub r/m32, r32", "sub", SEL_PAIR, 0, 0, 0x29),
	alu("sub r/m32, imm32", "sub", SEL_DIGIT, 5, 4, 0x81),
	alu("imul r32, r/m32, imm8", "imul", SEL_PAIR, 0, 1, 0x6b).dst().tier(TIER_286),
	alu("imul r32, r/m32", "imul", SEL_PAIR, 0, 0, 0x0f, 0xaf).dst(),
	alu("neg r/m32", "neg", SEL_DIGIT, 3, 0, 0xf7),
	alu("mov r32, r/m32", "mov", SEL_PAIR, 0, 0, 0x8b).dst(),
	alu("mov r/m32, imm32", "mov", SEL_DIGIT, 0, 4, 0xc7),
	alu("xchg r/m32, r32", "xchg", SEL_PAIR, 0, 0, 0x87),
	alu("xadd r/m32, r32", "xadd", SEL_PAIR, 0, 0, 0x0f, 0xc1).tier(TIER_486),
	alu("cmp r/m32, r32", "cmp", SEL_PAIR, 0, 0, 0x39),
	alu("cmp r/m32, imm32", "cmp", SEL_DIGIT, 7, 4, 0x81),
	alu("cmpxchg r/m32, r32", "cmpxchg", SEL_PAIR, 0, 0, 0x0f, 0xb1).tier(TIER_486),
	alu("cmovo r32, r/m32", "cmovo", SEL_PAIR, 0, 0, 0x0f, 0x40).dst().tier(TIER_P6),
	alu("cmovno r32, r/m32", "cmovno", SEL_PAIR, 0, 0, 0x0f, 0x41).dst().tier(TIER_P6),
	alu("cmovb r32, r/m32", "cmovb", SEL_PAIR, 0, 0, 0x0f, 0x42).dst().tier(TIER_P6),
	alu("cmovae r32, r/m32", "cmovae", SEL_PAIR, 0, 0, 0x0f, 0x43).dst().tier(TIER_P6),
	alu("cmove r32, r/m32", "cmove", SEL_PAIR, 0, 0, 0x0f, 0x44).dst().tier(TIER_P6),
	alu("cmovne r32, r/m32", "cmovne", SEL_PAIR, 0, 0, 0x0f, 0x45).dst().tier(TIER_P6),
	alu("cmovbe r32, r/m32", "cmovbe", SEL_PAIR, 0, 0, 0x0f, 0x46).dst().tier(TIER_P6),
	alu("cmova r32, r/m32", "cmova", SEL_PAIR, 0, 0, 0x0f, 0x47).dst().tier(TIER_P6),
	alu("cmovs r32, r/m32", "cmovs", SEL_PAIR, 0, 0, 0x0f, 0x48).dst().tier(TIER_P6),
	alu("cmovns r32, r/m32", "cmovns", SEL_PAIR, 0, 0, 0x0f, 0x49).dst().tier(TIER_P6),
	alu("cmovp r32, r/m32", "cmovp", SEL_PAIR, 0, 0, 0x0f, 0x4a).dst().tier(TIER_P6),
	alu("cmovnp r32, r/m32", "cmovnp", SEL_PAIR, 0, 0, 0x0f, 0x4b).dst().tier(TIER_P6),
	alu("cmovl r32, r/m32", "cmovl", SEL_PAIR, 0, 0, 0x0f, 0x4c).dst().tier(TIER_P6),
	alu("cmovge r32, r/m32", "cmovge", SEL_PAIR, 0, 0, 0x0f, 0x4d).dst().tier(TIER_P6),
	alu("cmovle r32, r/m32", "cmovle", SEL_PAIR, 0, 0, 0x0f, 0x4e).dst().tier(TIER_P6),
	alu("cmovg r32, r/m32", "cmovg", SEL_PAIR, 0, 0, 0x0f, 0x4f).dst().tier(TIER_P6),

	// Integer bit manipulation
	alu("xor r32, r/m32", "xor", SEL_PAIR, 0, 0, 0x33).dst().bit(),
	alu("xor r/m32, imm32", "xor", SEL_DIGIT, 6, 4, 0x81).bit(),
	alu("or r32, r/m32", "or", SEL_PAIR, 0, 0, 0x0b).dst().bit(),
	alu("and r32, r/m32", "and", SEL_PAIR, 0, 0, 0x23).dst().bit(),
	alu("and r/m32, imm32", "and", SEL_DIGIT, 4, 4, 0x81).bit(),
	alu("not r/m32", "not", SEL_DIGIT, 2, 0, 0xf7).bit(),
	alu("rol r/m32, imm8", "rol", SEL_DIGIT, 0, 1, 0xc1).bit().tier(TIER_286),
	alu("ror r/m32, imm8", "ror", SEL_DIGIT, 1, 1, 0xc1).bit().tier(TIER_286),
	alu("rcl r/m32, imm8", "rcl", SEL_DIGIT, 2, 1, 0xc1).bit().tier(TIER_286),
	alu("rcr r/m32, imm8", "rcr", SEL_DIGIT, 3, 1, 0xc1).bit().tier(TIER_286),
	alu("shl r/m32, imm8", "shl", SEL_DIGIT, 4, 1, 0xc1).bit().tier(TIER_286),
	alu("shr r/m32, imm8", "shr", SEL_DIGIT, 5, 1, 0xc1).bit().tier(TIER_286),
	alu("sar r/m32, imm8", "sar", SEL_DIGIT, 7, 1, 0xc1).bit().tier(TIER_286),
	alu("bt r/m32, r32", "bt", SEL_PAIR, 0, 0, 0x0f, 0xa3).bit(),
	alu("bts r/m32, r32", "bts", SEL_PAIR, 0, 0, 0x0f, 0xab).bit(),
	alu("btr r/m32, r32", "btr", SEL_PAIR, 0, 0, 0x0f, 0xb3).bit(),
	alu("btc r/m32, r32", "btc", SEL_PAIR, 0, 0, 0x0f, 0xbb).bit(),
	alu("bt r/m32, imm8", "bt", SEL_DIGIT, 4, 1, 0x0f, 0xba).bit(),
	alu("bts r/m32, imm8", "bts", SEL_DIGIT, 5, 1, 0x0f, 0xba).bit(),
	alu("btr r/m32, imm8", "btr", SEL_DIGIT, 6, 1, 0x0f, 0xba).bit(),
	alu("btc r/m32, imm8", "btc", SEL_DIGIT, 7, 1, 0x0f, 0xba).bit(),
	alu("bsf r32, r/m32", "bsf", SEL_PAIR, 0, 0, 0x0f, 0xbc).dst().bit(),
	alu("bsr r32, r/m32", "bsr", SEL_PAIR, 0, 0, 0x0f, 0xbd).dst().bit(),
	withOperands(alu("bswap eax", "bswap", SEL_NONE, 0, 0, 0x0f, 0xc8).bit().tier(TIER_486), "%eax"),
	alu("popcnt r32, r/m32", "popcnt", SEL_PAIR, 0, 0, 0xf3, 0x0f, 0xb8).dst().bit().tier(TIER_POPCNT),

	// Scalar float algebra
	alu("addss xmm, xmm", "addss", SEL_PAIR, 0, 0, 0xf3, 0x0f, 0x58).dst().xmm(REG_XMM, REG_XMM).tier(TIER_SSE),
	alu("subss xmm, xmm", "subss", SEL_PAIR, 0, 0, 0xf3, 0x0f, 0x5c).dst().xmm(REG_XMM, REG_XMM).tier(TIER_SSE),
	alu("mulss xmm, xmm", "mulss", SEL_PAIR, 0, 0, 0xf3, 0x0f, 0x59).dst().xmm(REG_XMM, REG_XMM).tier(TIER_SSE),
	alu("divss xmm, xmm", "divss", SEL_PAIR, 0, 0, 0xf3, 0x0f, 0x5e).dst().xmm(REG_XMM, REG_XMM).tier(TIER_SSE),
	alu("minss xmm, xmm", "minss", SEL_PAIR, 0, 0, 0xf3, 0x0f, 0x5d).dst().xmm(REG_XMM, REG_XMM).tier(TIER_SSE),
	alu("maxss xmm, xmm", "maxss", SEL_PAIR, 0, 0, 0xf3, 0x0f, 0x5f).dst().xmm(REG_XMM, REG_XMM).tier(TIER_SSE),
	alu("sqrtss xmm, xmm", "sqrtss", SEL_PAIR, 0, 0, 0xf3, 0x0f, 0x51).dst().xmm(REG_XMM, REG_XMM).tier(TIER_SSE),
	alu("rcpss xmm, xmm", "rcpss", SEL_PAIR, 0, 0, 0xf3, 0x0f, 0x53).dst().xmm(REG_XMM, REG_XMM).tier(TIER_SSE),
	alu("rsqrtss xmm, xmm", "rsqrtss", SEL_PAIR, 0, 0, 0xf3, 0x0f, 0x52).dst().xmm(REG_XMM, REG_XMM).tier(TIER_SSE),
	alu("movss xmm, xmm", "movss", SEL_PAIR, 0, 0, 0xf3, 0x0f, 0x10).dst().xmm(REG_XMM, REG_XMM).tier(TIER_SSE),
	alu("ucomiss xmm, xmm", "ucomiss", SEL_PAIR, 0, 0, 0x0f, 0x2e).dst().xmm(REG_XMM, REG_XMM).tier(TIER_SSE),
	alu("cvtsi2ss xmm, r/m32", "cvtsi2ss", SEL_PAIR, 0, 0, 0xf3, 0x0f, 0x2a).dst().xmm(REG_XMM, REG_GPR).tier(TIER_SSE),
	alu("cvttss2si r32, xmm", "cvttss2si", SEL_PAIR, 0, 0, 0xf3, 0x0f, 0x2c).dst().xmm(REG_GPR, REG_XMM).tier(TIER_SSE),
	alu("movd xmm, r/m32", "movd", SEL_PAIR, 0, 0, 0x66, 0x0f, 0x6e).dst().xmm(REG_XMM, REG_GPR).tier(TIER_SSE2),
	alu("movd r/m32, xmm", "movd", SEL_PAIR, 0, 0, 0x66, 0x0f, 0x7e).xmm(REG_XMM, REG_GPR).tier(TIER_SSE2),
	withFloatImm(alu("mov r/m32, float32", "mov", SEL_DIGIT, 0, 4, 0xc7).xmm(REG_GPR, REG_GPR)),

	// Scalar float bit manipulation
	alu("andps xmm, xmm", "andps", SEL_PAIR, 0, 0, 0x0f, 0x54).dst().bit().xmm(REG_XMM, REG_XMM).tier(TIER_SSE),
	alu("andnps xmm, xmm", "andnps", SEL_PAIR, 0, 0, 0x0f, 0x55).dst().bit().xmm(REG_XMM, REG_XMM).tier(TIER_SSE),
	alu("orps xmm, xmm", "orps", SEL_PAIR, 0, 0, 0x0f, 0x56).dst().bit().xmm(REG_XMM, REG_XMM).tier(TIER_SSE),
	alu("xorps xmm, xmm", "xorps", SEL_PAIR, 0, 0, 0x0f, 0x57).dst().bit().xmm(REG_XMM, REG_XMM).tier(TIER_SSE),

	// Forward branches
	branch("jmp rel32", "jmp", 0xe9),
	branch("je rel32", "je", 0x0f, 0x84),
	branch("jne rel32", "jne", 0x0f, 0x85),
}

func withOperands(t Template, operands string) Template {
	t.Operands = operands
	return t
}

func withFloatImm(t Template) Template {
	t.FloatImm = true
	return t
}
