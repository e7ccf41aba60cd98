package genotype

import (
	"log"
	"math"

	"github.com/ezrec/genx/catalog"
)

// Source is a uniform 32-bit random source.
type Source interface {
	Uint32() uint32
}

// Edit describes one splice made by Mutate: Remove records starting at
// Origin were replaced by Insert random records.
type Edit struct {
	Origin int
	Remove int
	Insert int
}

// Mutator synthesizes and mutates genotypes from a catalog.
type Mutator struct {
	Verbose       bool
	Catalog       *catalog.Catalog
	Rand          Source
	ChromoMax     int
	MutateRate    float64 // Probability of another mutation after each one.
	MaxIntConst   uint32
	MinFloatConst float32
	MaxFloatConst float32
}

// randr returns a uniform integer in [lo, hi].
func (m *Mutator) randr(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(uint64(m.Rand.Uint32())%uint64(hi-lo+1))
}

// randf returns a uniform float in [0, 1).
func (m *Mutator) randf() float64 {
	return float64(m.Rand.Uint32()) / (1 << 32)
}

func (m *Mutator) randConst() uint32 {
	return uint32(uint64(m.Rand.Uint32()) % (uint64(m.MaxIntConst) + 1))
}

func (m *Mutator) randFloatConst() float32 {
	span := float64(m.MaxFloatConst) - float64(m.MinFloatConst)
	return float32(float64(m.MinFloatConst) + span*m.randf())
}

// FillRandom overwrites count records of g at offset with random interior records.
func (m *Mutator) FillRandom(g *Genotype, offset, count int) {
	cat := m.Catalog
	for n := offset; n < offset+count; n++ {
		index := m.randr(cat.First, cat.Len()-1)
		t := cat.Template(index)

		op := Op{Index: uint16(index)}
		if t.Selector != catalog.SEL_NONE {
			op.ModRM = t.Select(m.Rand.Uint32())
		}

		switch {
		case t.Branch:
			op.SetImm(m.Rand.Uint32())
		case t.FloatImm:
			op.SetImm(math.Float32bits(m.randFloatConst()))
		case t.ImmLen == 1:
			op.SetImm(m.randConst() & 0xff)
		case t.ImmLen == 4:
			op.SetImm(m.randConst())
		}

		g.Ops[n] = op
	}
}

// Mutate splices random records into the interior of g, which must not
// carry its suffix. The interior length stays within [0, ChromoMax].
func (m *Mutator) Mutate(g *Genotype) (edit Edit) {
	interior := g.Len - catalog.PREFIX_LEN

	grow := 0
	if interior < m.ChromoMax {
		grow = 1
	}

	edit.Origin = m.randr(catalog.PREFIX_LEN, g.Len)
	edit.Remove = m.randr(0, g.Len-edit.Origin)
	edit.Insert = m.randr(0, edit.Remove+grow)

	tail := g.Len - (edit.Origin + edit.Remove)
	if tail > 0 && edit.Remove != edit.Insert {
		copy(g.Ops[edit.Origin+edit.Insert:], g.Ops[edit.Origin+edit.Remove:g.Len])
	}

	if edit.Insert > 0 {
		m.FillRandom(g, edit.Origin, edit.Insert)
	}

	g.Len += edit.Insert - edit.Remove

	if m.Verbose {
		log.Printf("mutate: %+v -> %d", edit, g.Len)
	}

	return
}

// Gen fills dst with a child of src: src's interior mutated at least once,
// and again while a MutateRate draw succeeds. With a nil src, dst becomes
// a seminal genotype holding a single random interior record.
func (m *Mutator) Gen(dst, src *Genotype) {
	if src == nil {
		dst.Len = catalog.PREFIX_LEN + 1
		m.FillRandom(dst, catalog.PREFIX_LEN, 1)
	} else {
		dst.Len = copy(dst.Ops, src.Ops[:src.Len-catalog.SUFFIX_LEN])
		for {
			m.Mutate(dst)
			if m.randf() >= m.MutateRate {
				break
			}
		}
	}

	dst.setFrame(m.Catalog)
}
