package harness

import (
	"fmt"
	"io"
	"math"
	"os/exec"

	"github.com/ezrec/genx/catalog"
	"github.com/ezrec/genx/fitness"
	"github.com/ezrec/genx/genotype"
	"github.com/ezrec/genx/native"
	"github.com/ezrec/genx/problem"
)

// Scorer scores genotypes of one problem.
type Scorer interface {
	// Score runs g against every test vector. A candidate that fails to
	// run gets the worst score.
	Score(g *genotype.Genotype) fitness.Score
	// Report is Score with a per vector table written to w.
	Report(w io.Writer, g *genotype.Genotype) (fitness.Score, error)
	Close() error
}

// Run invokes a candidate once.
type Run func(args native.Args) (native.Result, error)

// Output selects the result word of a call for the function kind.
func Output(kind problem.Kind, res native.Result) uint32 {
	if kind == problem.FUNC_FLOAT {
		return res.X0
	}
	return res.AX
}

// Evaluate sums the distance of every vector. The sum stops at the first
// vector that saturates it, or at the first failed call.
func Evaluate(kind problem.Kind, mode fitness.Mode, vecs []problem.Vector, run Run) (score fitness.Score) {
	score = fitness.Score{Mode: mode}
	for _, vec := range vecs {
		res, err := run(native.Args(vec.In))
		if err != nil {
			score = fitness.Max(mode)
			return
		}

		var ok bool
		score, ok = score.Add(Output(kind, res), vec.Out)
		if !ok {
			return
		}
	}

	return
}

func word(kind problem.Kind, w uint32) any {
	if kind == problem.FUNC_FLOAT {
		return math.Float32frombits(w)
	}
	return w
}

func column(kind problem.Kind) string {
	if kind == problem.FUNC_FLOAT {
		return "%11g "
	}
	return "%11d "
}

// Report is Evaluate with a table of every vector written to w: the first
// input, the target, the actual result, the distance and the running sum.
func Report(w io.Writer, kind problem.Kind, mode fitness.Mode, vecs []problem.Vector, run Run) (score fitness.Score, err error) {
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	printf("%11s %11s %11s %11s %11s\n", "in", "target", "actual", "diff", "diffsum")
	printf("----------- ----------- ----------- ----------- -----------\n")

	col := column(kind)
	score = fitness.Score{Mode: mode}
	for _, vec := range vecs {
		printf(col+col, word(kind, vec.In[0]), word(kind, vec.Out))

		res, rerr := run(native.Args(vec.In))
		if rerr != nil {
			printf("%v\n", rerr)
			score = fitness.Max(mode)
			break
		}

		got := Output(kind, res)
		printf(col, word(kind, got))

		prev := score
		var ok bool
		score, ok = score.Add(got, vec.Out)
		if !ok {
			printf("\n")
			break
		}
		printf("%11g %11g\n", score.Value()-prev.Value(), score.Value())
	}

	printf("score=%v\n", score)
	return
}

// New returns the scorer for the options of p: in process when no timeout
// is set, otherwise through workers started by command.
func New(p problem.Problem, cat *catalog.Catalog, command func() *exec.Cmd) (scorer Scorer, err error) {
	if p.Options().Timeout == 0 {
		var n *Native
		n, err = NewNative(p, cat)
		if err == nil {
			scorer = n
		}
		return
	}

	var iso *Isolated
	iso, err = NewIsolated(p, cat, command)
	if err == nil {
		scorer = iso
	}
	return
}
