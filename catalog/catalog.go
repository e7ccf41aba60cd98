package catalog

import (
	"iter"
	"log"
	"slices"

	"github.com/ezrec/genx/internal"
)

// Prologue and suffix lengths, in records.
const (
	PREFIX_LEN = 2
	SUFFIX_LEN = 2
)

// Options selects the templates enabled in a catalog.
type Options struct {
	Result      Domain // Domain of the candidate's return value.
	Params      int    // Number of parameters passed to the candidate.
	IntOps      bool   // Enable integer register operations.
	FloatOps    bool   // Enable scalar float operations.
	AlgebraOps  bool   // Enable arithmetic and data movement.
	BitOps      bool   // Enable logic, shifts and bit tests.
	RandomConst bool   // Enable templates carrying a random constant.
	Branches    bool   // Enable forward branches.
	MaxTier     Tier   // Highest processor tier enabled.
}

func (opts *Options) accept(t Template) bool {
	if t.Class == CLASS_FRAME || t.Tier > opts.MaxTier {
		return false
	}

	switch t.Domain {
	case DOMAIN_INT:
		if !opts.IntOps {
			return false
		}
	case DOMAIN_FLOAT:
		if !opts.FloatOps {
			return false
		}
	}

	if t.Branch {
		return opts.Branches
	}

	switch t.Class {
	case CLASS_LOAD:
		return t.Param < opts.Params
	case CLASS_ALGEBRA:
		if !opts.AlgebraOps {
			return false
		}
	case CLASS_BIT:
		if !opts.BitOps {
			return false
		}
	}

	if t.ImmLen > 0 && !opts.RandomConst {
		return false
	}

	return true
}

// Frame is a fixed record of the prologue or the suffix.
type Frame struct {
	Index int
	ModRM byte
}

// Catalog is the ordered template set enabled for a problem.
type Catalog struct {
	Verbose   bool
	Templates []Template
	First     int // Index of the first interior template.
	Prologue  [PREFIX_LEN]Frame
	Suffix    [SUFFIX_LEN]Frame
}

// Build the catalog enabled by opts.
func Build(opts Options) (cat *Catalog, err error) {
	load := NAME_LOAD_INT
	selector := byte(IDENTITY_LOAD_INT)
	if opts.Result == DOMAIN_FLOAT {
		load = NAME_LOAD_FLOAT
		selector = IDENTITY_LOAD_FLOAT
	}

	interior := slices.Collect(internal.IterSeqFilter(slices.Values(table), opts.accept))
	if len(interior) == 0 {
		err = ErrEmptyCatalog
		return
	}

	cat = &Catalog{}
	for _, name := range []string{NAME_ENTER, NAME_LEAVE, NAME_RET} {
		cat.Templates = append(cat.Templates, *mustFind(name))
	}

	// The identity load is a frame template only when mutation may not use it.
	if !slices.ContainsFunc(interior, func(t Template) bool { return t.Name == load }) {
		cat.Templates = append(cat.Templates, *mustFind(load))
	}

	cat.First = len(cat.Templates)
	cat.Templates = append(cat.Templates, interior...)

	cat.Prologue = [PREFIX_LEN]Frame{
		{Index: cat.mustLookup(NAME_ENTER)},
		{Index: cat.mustLookup(load), ModRM: selector},
	}
	cat.Suffix = [SUFFIX_LEN]Frame{
		{Index: cat.mustLookup(NAME_LEAVE)},
		{Index: cat.mustLookup(NAME_RET)},
	}

	return
}

func mustFind(name string) *Template {
	for n := range table {
		if table[n].Name == name {
			return &table[n]
		}
	}
	panic(ErrNameMissing(name))
}

func (cat *Catalog) mustLookup(name string) int {
	index, err := cat.Lookup(name)
	if err != nil {
		panic(err)
	}
	return index
}

// Len is the number of templates in the catalog.
func (cat *Catalog) Len() int {
	return len(cat.Templates)
}

// Lookup returns the catalog index of the named template.
func (cat *Catalog) Lookup(name string) (index int, err error) {
	index = slices.IndexFunc(cat.Templates, func(t Template) bool { return t.Name == name })
	if index < 0 {
		err = ErrNameMissing(name)
		if cat.Verbose {
			log.Printf("catalog: %v", err)
		}
	}
	return
}

// Template returns the template at index, or nil if index is out of range.
func (cat *Catalog) Template(index int) *Template {
	if index < 0 || index >= len(cat.Templates) {
		return nil
	}
	return &cat.Templates[index]
}

// IsInterior reports whether index names a template mutation may emit.
func (cat *Catalog) IsInterior(index int) bool {
	return index >= cat.First && index < len(cat.Templates)
}

// Interior iterates over the interior templates by catalog index.
func (cat *Catalog) Interior() iter.Seq2[int, *Template] {
	return func(yield func(int, *Template) bool) {
		for index := cat.First; index < len(cat.Templates); index++ {
			if !yield(index, &cat.Templates[index]) {
				return
			}
		}
	}
}

// Frames iterates over the prologue then the suffix records, by position
// within each.
func (cat *Catalog) Frames() iter.Seq2[int, Frame] {
	return internal.IterSeq2Concat(slices.All(cat.Prologue[:]), slices.All(cat.Suffix[:]))
}

// All returns every template in the full table, enabled or not.
func All() iter.Seq2[int, *Template] {
	return internal.IterSliceIndex(table)
}
