package evolve

import (
	"github.com/ezrec/genx/fitness"
	"github.com/ezrec/genx/genotype"
)

// Population is one generation. The records of every genotype share a
// single allocation; only the best Kept entries survive a Gen.
type Population struct {
	Ops    []genotype.Op
	Genos  []genotype.Genotype
	Scores []fitness.Genoscore
	Kept   int // Leading entries carried over, already scored.
}

// NewPopulation allocates size genotypes of up to chromoMax interior
// records, scored in mode.
func NewPopulation(size, chromoMax int, mode fitness.Mode) (pop *Population) {
	stride := genotype.Capacity(chromoMax)

	pop = &Population{
		Ops:    make([]genotype.Op, size*stride),
		Genos:  make([]genotype.Genotype, size),
		Scores: make([]fitness.Genoscore, size),
	}

	for n := range pop.Genos {
		lo := n * stride
		pop.Genos[n].Ops = pop.Ops[lo : lo+stride : lo+stride]
		pop.Scores[n] = fitness.Genoscore{Geno: &pop.Genos[n], Score: fitness.Max(mode)}
	}

	return
}

// Len is the population size.
func (pop *Population) Len() int {
	return len(pop.Scores)
}

// Gen breeds every entry past the first keep from a random one of them.
// With keep zero the whole population is seminal.
func (pop *Population) Gen(m *genotype.Mutator, keep int) {
	keep = min(keep, pop.Len())
	for n := keep; n < pop.Len(); n++ {
		var src *genotype.Genotype
		if keep > 0 {
			src = pop.Scores[int(m.Rand.Uint32()%uint32(keep))].Geno
		}
		m.Gen(pop.Scores[n].Geno, src)
		pop.Scores[n].Score = fitness.Max(pop.Scores[n].Score.Mode)
	}
	pop.Kept = keep
}

// Best is the front of the population.
func (pop *Population) Best() fitness.Genoscore {
	return pop.Scores[0]
}
