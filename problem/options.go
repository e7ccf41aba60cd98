package problem

import (
	"errors"
	"math"
	"time"

	"github.com/ezrec/genx/catalog"
	"github.com/ezrec/genx/fitness"
)

// Kind is the shape of the candidate function.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	FUNC_INT   = Kind(0) // int
	FUNC_FLOAT = Kind(1) // float
)

// Defaults
const (
	DEFAULT_CHROMO_MAX      = 12
	DEFAULT_POP_SIZE        = 8192
	DEFAULT_POP_KEEP        = 3
	DEFAULT_MUTATE_RATE     = 0.7
	DEFAULT_MAX_INT_CONST   = 0xffff
	DEFAULT_MIN_FLOAT_CONST = 0.001
	DEFAULT_MAX_FLOAT_CONST = 3.0
	DEFAULT_EPSILON         = 1.1920929e-07 // FLT_EPSILON
	DEFAULT_MAX_TIER        = catalog.TIER_SSE2
)

// MAX_PARAMS is the number of parameter registers of the calling convention.
const MAX_PARAMS = 4

// Ops enables classes of operations.
type Ops struct {
	Int         bool `toml:"int"`
	Float       bool `toml:"float"`
	Algebra     bool `toml:"algebra"`
	Bit         bool `toml:"bit"`
	RandomConst bool `toml:"random_const"`
	Branches    bool `toml:"branches"`
}

// Options are the search parameters of a problem.
type Options struct {
	Kind          Kind
	Score         fitness.Mode
	ParamCount    int
	ChromoMin     int // Interior length at or below which a match is done.
	ChromoMax     int
	PopSize       int
	PopKeep       int
	Deadend       int // Generations without progress before a restart; 0 never restarts.
	MutateRate    float64
	Ops           Ops
	MaxIntConst   uint32
	MinFloatConst float32
	MaxFloatConst float32
	Epsilon       float32
	MaxTier       catalog.Tier
	Timeout       time.Duration // Per candidate watchdog; 0 runs in process.
}

// DefaultOptions returns the options of a single parameter integer problem.
func DefaultOptions() Options {
	return Options{
		Kind:          FUNC_INT,
		Score:         fitness.SCORE_ALG,
		ParamCount:    1,
		ChromoMin:     1,
		ChromoMax:     DEFAULT_CHROMO_MAX,
		PopSize:       DEFAULT_POP_SIZE,
		PopKeep:       DEFAULT_POP_KEEP,
		MutateRate:    DEFAULT_MUTATE_RATE,
		Ops:           Ops{Int: true, Algebra: true, Bit: true, RandomConst: true},
		MaxIntConst:   DEFAULT_MAX_INT_CONST,
		MinFloatConst: DEFAULT_MIN_FLOAT_CONST,
		MaxFloatConst: DEFAULT_MAX_FLOAT_CONST,
		Epsilon:       DEFAULT_EPSILON,
		MaxTier:       DEFAULT_MAX_TIER,
	}
}

// DefaultFloatOptions returns the options of a single parameter float problem.
func DefaultFloatOptions() Options {
	opts := DefaultOptions()
	opts.Kind = FUNC_FLOAT
	opts.Score = fitness.SCORE_FLOAT
	opts.Ops.Int = false
	opts.Ops.Float = true
	return opts
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

// Validate reports every configuration error of opts.
func (opts *Options) Validate() error {
	var errs []error
	check := func(ok bool, name string, err error) {
		if !ok {
			errs = append(errs, ErrOption{Name: name, Err: err})
		}
	}

	check(opts.ParamCount >= 0 && opts.ParamCount <= MAX_PARAMS, "param_cnt", ErrRange)
	check(opts.ChromoMax >= 1 && opts.ChromoMax <= math.MaxUint16, "chromo_max", ErrRange)
	check(opts.ChromoMin >= 0 && opts.ChromoMin <= opts.ChromoMax, "chromo_min", ErrRange)
	check(opts.PopSize >= 2, "pop_size", ErrRange)
	check(opts.PopKeep >= 1, "pop_keep", ErrRange)
	check(opts.PopKeep < opts.PopSize, "pop_keep", ErrKeepTooLarge)
	check(opts.Deadend >= 0, "gen_deadend", ErrRange)
	check(opts.MutateRate >= 0 && opts.MutateRate < 1, "mutate_rate", ErrRange)
	check(finite(opts.MinFloatConst) && finite(opts.MaxFloatConst) && opts.MinFloatConst <= opts.MaxFloatConst, "float_const", ErrRange)
	check(finite(opts.Epsilon) && opts.Epsilon >= 0, "epsilon", ErrRange)
	check(opts.MaxTier >= catalog.TIER_8086 && opts.MaxTier <= catalog.TIER_POPCNT, "max_tier", ErrRange)
	check(opts.Timeout >= 0, "timeout", ErrRange)
	check(opts.Ops.Int || opts.Ops.Float, "ops", ErrNoOps)
	check(!opts.Ops.Branches || opts.Timeout > 0, "branches", ErrBranchTimeout)

	switch opts.Kind {
	case FUNC_INT:
		check(opts.Score == fitness.SCORE_BITS || opts.Score == fitness.SCORE_ALG, "score", ErrKindScore)
	case FUNC_FLOAT:
		check(opts.Score == fitness.SCORE_FLOAT, "score", ErrKindScore)
	default:
		check(false, "kind", ErrRange)
	}

	return errors.Join(errs...)
}

// Catalog returns the catalog filter of the options.
func (opts *Options) Catalog() catalog.Options {
	result := catalog.DOMAIN_INT
	if opts.Kind == FUNC_FLOAT {
		result = catalog.DOMAIN_FLOAT
	}

	return catalog.Options{
		Result:      result,
		Params:      opts.ParamCount,
		IntOps:      opts.Ops.Int,
		FloatOps:    opts.Ops.Float,
		AlgebraOps:  opts.Ops.Algebra,
		BitOps:      opts.Ops.Bit,
		RandomConst: opts.Ops.RandomConst,
		Branches:    opts.Ops.Branches,
		MaxTier:     opts.MaxTier,
	}
}

// ParseKind returns the function kind named by s.
func ParseKind(s string) (kind Kind, err error) {
	for kind = FUNC_INT; kind <= FUNC_FLOAT; kind++ {
		if kind.String() == s {
			return
		}
	}
	err = ErrOption{Name: "kind", Err: ErrRange}
	return
}

// MarshalText encodes the kind by name.
func (kind Kind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}

// UnmarshalText decodes a kind name.
func (kind *Kind) UnmarshalText(text []byte) (err error) {
	*kind, err = ParseKind(string(text))
	return
}
