package problem

import (
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/genx/catalog"
	"github.com/ezrec/genx/fitness"
)

// OpsOverrides replaces individual operation class flags.
type OpsOverrides struct {
	Int         *bool `toml:"int"`
	Float       *bool `toml:"float"`
	Algebra     *bool `toml:"algebra"`
	Bit         *bool `toml:"bit"`
	RandomConst *bool `toml:"random_const"`
	Branches    *bool `toml:"branches"`
}

// Overrides replaces the options it sets, typically from the [options]
// table of a run configuration file.
type Overrides struct {
	Kind          *Kind          `toml:"kind"`
	Score         *fitness.Mode  `toml:"score"`
	ParamCount    *int           `toml:"param_cnt"`
	ChromoMin     *int           `toml:"chromo_min"`
	ChromoMax     *int           `toml:"chromo_max"`
	PopSize       *int           `toml:"pop_size"`
	PopKeep       *int           `toml:"pop_keep"`
	Deadend       *int           `toml:"gen_deadend"`
	MutateRate    *float64       `toml:"mutate_rate"`
	MaxIntConst   *uint32        `toml:"max_const"`
	MinFloatConst *float32       `toml:"min_float_const"`
	MaxFloatConst *float32       `toml:"max_float_const"`
	Epsilon       *float32       `toml:"epsilon"`
	MaxTier       *catalog.Tier  `toml:"max_tier"`
	Timeout       *time.Duration `toml:"timeout"`
	Ops           OpsOverrides   `toml:"ops"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Apply returns opts with the overrides set in ov.
func (ov *Overrides) Apply(opts Options) Options {
	set(&opts.Kind, ov.Kind)
	set(&opts.Score, ov.Score)
	set(&opts.ParamCount, ov.ParamCount)
	set(&opts.ChromoMin, ov.ChromoMin)
	set(&opts.ChromoMax, ov.ChromoMax)
	set(&opts.PopSize, ov.PopSize)
	set(&opts.PopKeep, ov.PopKeep)
	set(&opts.Deadend, ov.Deadend)
	set(&opts.MutateRate, ov.MutateRate)
	set(&opts.MaxIntConst, ov.MaxIntConst)
	set(&opts.MinFloatConst, ov.MinFloatConst)
	set(&opts.MaxFloatConst, ov.MaxFloatConst)
	set(&opts.Epsilon, ov.Epsilon)
	set(&opts.MaxTier, ov.MaxTier)
	set(&opts.Timeout, ov.Timeout)

	set(&opts.Ops.Int, ov.Ops.Int)
	set(&opts.Ops.Float, ov.Ops.Float)
	set(&opts.Ops.Algebra, ov.Ops.Algebra)
	set(&opts.Ops.Bit, ov.Ops.Bit)
	set(&opts.Ops.RandomConst, ov.Ops.RandomConst)
	set(&opts.Ops.Branches, ov.Ops.Branches)

	return opts
}

// ParseOverrides decodes overrides from TOML text.
func ParseOverrides(text string) (ov Overrides, err error) {
	_, err = toml.Decode(text, &ov)
	return
}
