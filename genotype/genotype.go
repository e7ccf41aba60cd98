package genotype

import (
	"encoding/binary"
	"iter"

	"github.com/ezrec/genx/catalog"
)

// Op is one record of a genotype: a catalog index, its selector byte and
// its raw immediate data.
type Op struct {
	Index uint16
	ModRM byte
	Data  [4]byte
}

// Imm returns the record data as a little-endian word.
func (op Op) Imm() uint32 {
	return binary.LittleEndian.Uint32(op.Data[:])
}

// SetImm stores the immediate data of the record.
func (op *Op) SetImm(imm uint32) {
	binary.LittleEndian.PutUint32(op.Data[:], imm)
}

// Capacity is the record capacity a genotype needs for chromoMax interior records.
func Capacity(chromoMax int) int {
	return catalog.PREFIX_LEN + chromoMax + catalog.SUFFIX_LEN
}

// Genotype is a candidate program. Ops is its storage; only Ops[:Len] is live.
type Genotype struct {
	Len int
	Ops []Op
}

// New allocates an empty genotype with room for chromoMax interior records.
func New(chromoMax int) *Genotype {
	return &Genotype{Ops: make([]Op, Capacity(chromoMax))}
}

// Interior is the number of records between prologue and suffix.
func (g *Genotype) Interior() int {
	return g.Len - catalog.PREFIX_LEN - catalog.SUFFIX_LEN
}

// Records iterates over the live records.
func (g *Genotype) Records() iter.Seq2[int, Op] {
	return func(yield func(int, Op) bool) {
		for n, op := range g.Ops[:g.Len] {
			if !yield(n, op) {
				return
			}
		}
	}
}

// CopyFrom makes g a copy of src. The storage of g must hold src.Len records.
func (g *Genotype) CopyFrom(src *Genotype) {
	g.Len = copy(g.Ops, src.Ops[:src.Len])
}

// Clone returns a copy of g with its own storage.
func (g *Genotype) Clone() *Genotype {
	clone := &Genotype{Ops: make([]Op, len(g.Ops))}
	clone.CopyFrom(g)
	return clone
}

func (g *Genotype) setFrame(cat *catalog.Catalog) {
	for n, frame := range cat.Prologue {
		g.Ops[n] = Op{Index: uint16(frame.Index), ModRM: frame.ModRM}
	}
	for n, frame := range cat.Suffix {
		g.Ops[g.Len+n] = Op{Index: uint16(frame.Index), ModRM: frame.ModRM}
	}
	g.Len += catalog.SUFFIX_LEN
}

// Check verifies the structural invariants of g against the catalog.
func (g *Genotype) Check(cat *catalog.Catalog, chromoMax int) (err error) {
	if g.Len < catalog.PREFIX_LEN+catalog.SUFFIX_LEN || g.Interior() > chromoMax || g.Len > len(g.Ops) {
		err = ErrLength
		return
	}

	for n, frame := range cat.Prologue {
		op := g.Ops[n]
		if int(op.Index) != frame.Index || op.ModRM != frame.ModRM {
			err = ErrRecord{Pos: n, Err: ErrPrologue}
			return
		}
	}

	suffix := g.Len - catalog.SUFFIX_LEN
	for n, frame := range cat.Suffix {
		op := g.Ops[suffix+n]
		if int(op.Index) != frame.Index || op.ModRM != frame.ModRM {
			err = ErrRecord{Pos: suffix + n, Err: ErrSuffix}
			return
		}
	}

	for n := catalog.PREFIX_LEN; n < suffix; n++ {
		op := g.Ops[n]
		if !cat.IsInterior(int(op.Index)) {
			err = ErrRecord{Pos: n, Err: ErrIndex}
			return
		}
		t := cat.Template(int(op.Index))
		if !t.Selects(op.ModRM) || (t.Selector == catalog.SEL_NONE && op.ModRM != 0) {
			err = ErrRecord{Pos: n, Err: ErrSelector}
			return
		}
		for _, b := range op.Data[t.ImmLen:] {
			if b != 0 {
				err = ErrRecord{Pos: n, Err: ErrData}
				return
			}
		}
	}

	return
}
