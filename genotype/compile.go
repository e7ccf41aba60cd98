package genotype

import (
	"github.com/ezrec/genx/catalog"
)

// MAX_RECORD_BYTES bounds the encoded size of a single record.
const MAX_RECORD_BYTES = 4 + 1 + 4

// CodeCapacity is the code buffer size that fits any genotype of chromoMax.
func CodeCapacity(chromoMax int) int {
	return Capacity(chromoMax) * MAX_RECORD_BYTES
}

// jumpTarget resolves the raw data of a branch at pos into the record it
// lands on. Only strictly later records are reachable.
func (g *Genotype) jumpTarget(pos int, raw uint32) int {
	span := g.Len - pos - 1
	if span <= 0 {
		return pos + 1
	}
	return pos + 1 + int(raw%uint32(span))
}

// jumpRel is the rel32 displacement of a branch at pos, counted from the
// end of the branch.
func (g *Genotype) jumpRel(cat *catalog.Catalog, pos int, raw uint32) (rel int) {
	target := g.jumpTarget(pos, raw)
	for _, op := range g.Ops[pos+1 : min(target, g.Len)] {
		rel += cat.Template(int(op.Index)).Len()
	}

	return max(rel, 0)
}

// Compile emits the machine code of g into buf, reusing its storage.
// The genotype is not modified.
func Compile(cat *catalog.Catalog, g *Genotype, buf []byte) []byte {
	buf = buf[:0]
	for pos, op := range g.Records() {
		t := cat.Template(int(op.Index))
		imm := op.Imm()
		if t.Branch {
			imm = uint32(g.jumpRel(cat, pos, imm))
		}
		buf = t.Encode(buf, op.ModRM, imm)
	}

	return buf
}

// Bytes is the encoded length of g.
func Bytes(cat *catalog.Catalog, g *Genotype) (total int) {
	for _, op := range g.Records() {
		total += cat.Template(int(op.Index)).Len()
	}
	return
}
