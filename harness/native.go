package harness

import (
	"io"

	"github.com/ezrec/genx/catalog"
	"github.com/ezrec/genx/fitness"
	"github.com/ezrec/genx/genotype"
	"github.com/ezrec/genx/native"
	"github.com/ezrec/genx/problem"
)

// Native scores candidates in this process. Every candidate is compiled
// into the same executable buffer, one at a time.
type Native struct {
	Catalog *catalog.Catalog
	Kind    problem.Kind
	Mode    fitness.Mode
	Vectors []problem.Vector

	buf  *native.Buffer
	code []byte
}

var _ Scorer = (*Native)(nil)

// NewNative maps a code buffer large enough for any genotype of p.
func NewNative(p problem.Problem, cat *catalog.Catalog) (n *Native, err error) {
	opts := p.Options()

	vecs, err := p.Vectors()
	if err != nil {
		return
	}

	size := genotype.CodeCapacity(opts.ChromoMax)
	buf, err := native.New(size)
	if err != nil {
		return
	}

	n = &Native{
		Catalog: cat,
		Kind:    opts.Kind,
		Mode:    opts.Score,
		Vectors: vecs,
		buf:     buf,
		code:    make([]byte, 0, size),
	}

	return
}

func (n *Native) load(g *genotype.Genotype) (err error) {
	if n.buf == nil {
		err = ErrClosed
		return
	}
	n.code = genotype.Compile(n.Catalog, g, n.code)
	err = n.buf.Load(n.code)
	return
}

// Score compiles g into the shared buffer and runs every vector.
func (n *Native) Score(g *genotype.Genotype) fitness.Score {
	if n.load(g) != nil {
		return fitness.Max(n.Mode)
	}
	return Evaluate(n.Kind, n.Mode, n.Vectors, n.buf.Call)
}

func (n *Native) Report(w io.Writer, g *genotype.Genotype) (score fitness.Score, err error) {
	err = n.load(g)
	if err != nil {
		score = fitness.Max(n.Mode)
		return
	}
	return Report(w, n.Kind, n.Mode, n.Vectors, n.buf.Call)
}

// Close unmaps the code buffer.
func (n *Native) Close() (err error) {
	if n.buf == nil {
		return
	}
	err = n.buf.Close()
	n.buf = nil
	return
}
