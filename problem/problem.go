package problem

import (
	"math"

	"github.com/ezrec/genx/catalog"
	"github.com/ezrec/genx/fitness"
)

// Vector is one test case: the parameter words and the expected result word.
// Float problems carry float32 bit patterns.
type Vector struct {
	In  [MAX_PARAMS]uint32
	Out uint32
}

// IntVector makes an integer test vector.
func IntVector(out uint32, in ...uint32) (vec Vector) {
	copy(vec.In[:], in)
	vec.Out = out
	return
}

// FloatVector makes a float test vector.
func FloatVector(out float32, in ...float32) (vec Vector) {
	for n, v := range in[:min(len(in), MAX_PARAMS)] {
		vec.In[n] = math.Float32bits(v)
	}
	vec.Out = math.Float32bits(out)
	return
}

// Problem is a function to evolve.
type Problem interface {
	Name() string
	Options() Options
	// Vectors returns the test vectors, running any one-time initializer.
	Vectors() ([]Vector, error)
	// Done reports whether the best genoscore so far ends a search
	// run with opts.
	Done(opts Options, best fitness.Genoscore) bool
}

// DefaultDone is met by a matching genoscore whose interior is no longer
// than opts.ChromoMin.
func DefaultDone(opts Options, best fitness.Genoscore) bool {
	if best.Geno == nil {
		return false
	}
	return best.Score.Match(opts.Epsilon) &&
		best.Geno.Len <= catalog.PREFIX_LEN+opts.ChromoMin+catalog.SUFFIX_LEN
}

// Builtin is a compiled-in problem.
type Builtin struct {
	Title  string
	Opts   Options
	Tests  []Vector
	Target func(in [MAX_PARAMS]uint32) uint32 // Computes each Out when set.
	Finish func(opts Options, best fitness.Genoscore) bool
}

var _ Problem = (*Builtin)(nil)

func (b *Builtin) Name() string {
	return b.Title
}

func (b *Builtin) Options() Options {
	return b.Opts
}

func (b *Builtin) Vectors() (vecs []Vector, err error) {
	if len(b.Tests) == 0 {
		err = ErrNoVectors
		return
	}

	vecs = make([]Vector, len(b.Tests))
	copy(vecs, b.Tests)
	if b.Target != nil {
		for n := range vecs {
			vecs[n].Out = b.Target(vecs[n].In)
		}
	}

	return
}

func (b *Builtin) Done(opts Options, best fitness.Genoscore) bool {
	if b.Finish != nil {
		return b.Finish(opts, best)
	}
	return DefaultDone(opts, best)
}

// withOptions wraps a problem with replaced options.
type withOptions struct {
	Problem
	opts Options
}

func (w *withOptions) Options() Options {
	return w.opts
}

// WithOptions returns p searched with opts instead of its own options.
func WithOptions(p Problem, opts Options) Problem {
	return &withOptions{Problem: p, opts: opts}
}
