package problem

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/genx/catalog"
	"github.com/ezrec/genx/fitness"
	"github.com/ezrec/genx/genotype"
)

func TestValidate(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		modify func(opts *Options)
		err    error
	}){
		{"default", func(opts *Options) {}, nil},
		{"keep", func(opts *Options) { opts.PopKeep = opts.PopSize }, ErrKeepTooLarge},
		{"keep-zero", func(opts *Options) { opts.PopKeep = 0 }, ErrRange},
		{"params", func(opts *Options) { opts.ParamCount = 5 }, ErrRange},
		{"chromo", func(opts *Options) { opts.ChromoMin = 20 }, ErrRange},
		{"rate", func(opts *Options) { opts.MutateRate = 1 }, ErrRange},
		{"kind", func(opts *Options) { opts.Score = fitness.SCORE_FLOAT }, ErrKindScore},
		{"no-ops", func(opts *Options) { opts.Ops.Int = false }, ErrNoOps},
		{"branches", func(opts *Options) { opts.Ops.Branches = true }, ErrBranchTimeout},
		{"branches-timeout", func(opts *Options) { opts.Ops.Branches = true; opts.Timeout = time.Second }, nil},
		{"floats", func(opts *Options) { opts.MinFloatConst = float32(math.Inf(1)) }, ErrRange},
	}

	for _, entry := range table {
		opts := DefaultOptions()
		entry.modify(&opts)
		err := opts.Validate()
		if entry.err == nil {
			assert.NoError(err, entry.name)
		} else {
			assert.ErrorIs(err, entry.err, entry.name)
		}
	}

	opts := DefaultOptions()
	opts.PopKeep = 0
	opts.PopSize = 0
	var option ErrOption
	err := opts.Validate()
	assert.ErrorAs(err, &option)
	assert.Equal("pop_size", option.Name)
}

func TestCatalogOptions(t *testing.T) {
	assert := assert.New(t)

	opts := DefaultFloatOptions()
	opts.ParamCount = 2
	cat := opts.Catalog()
	assert.Equal(catalog.DOMAIN_FLOAT, cat.Result)
	assert.Equal(2, cat.Params)
	assert.True(cat.FloatOps)
	assert.False(cat.IntOps)
	assert.Equal(catalog.TIER_SSE2, cat.MaxTier)

	_, err := catalog.Build(cat)
	assert.NoError(err)
}

func TestBuiltins(t *testing.T) {
	assert := assert.New(t)

	names := Names()
	for _, name := range []string{"identity", "int-sqrt", "int-perfect-square", "int-square-digits",
		"int-xor-const", "int-add2", "float-half", "float-vostok"} {
		assert.Contains(names, name)
	}
	assert.True(slices.IsSorted(names))

	for p := range Builtins() {
		opts := p.Options()
		assert.NoError(opts.Validate(), p.Name())
		vecs, err := p.Vectors()
		assert.NoError(err, p.Name())
		assert.NotEmpty(vecs, p.Name())
	}

	p, err := Lookup("int-perfect-square")
	require.NoError(t, err)
	vecs, err := p.Vectors()
	require.NoError(t, err)
	squares := 0
	for _, vec := range vecs {
		if vec.Out == 1 {
			squares++
		}
	}
	// 0x1000000 410881 10000 2500 100 36 25 16 9 4 1 0
	assert.Equal(12, squares)

	p, err = Lookup("float-half")
	require.NoError(t, err)
	vecs, err = p.Vectors()
	require.NoError(t, err)
	assert.Equal(float32(-1.5), math.Float32frombits(vecs[3].Out))
	assert.Equal(float32(-3), math.Float32frombits(vecs[3].In[0]))

	_, err = Lookup("int-fermat")
	assert.ErrorIs(err, ErrNotFound)

	assert.ErrorIs(Register(&Builtin{Title: "identity"}), ErrDuplicate)

	var all []string
	for p := range All(slices.Values([]Problem{&Builtin{Title: "extra"}})) {
		all = append(all, p.Name())
	}
	assert.Equal(append(names, "extra"), all)
}

func TestDefaultDone(t *testing.T) {
	assert := assert.New(t)

	opts := DefaultOptions()
	short := &genotype.Genotype{Len: catalog.PREFIX_LEN + 1 + catalog.SUFFIX_LEN}
	long := &genotype.Genotype{Len: catalog.PREFIX_LEN + 2 + catalog.SUFFIX_LEN}
	match := fitness.Score{Mode: fitness.SCORE_ALG}
	miss := fitness.Score{Mode: fitness.SCORE_ALG, Bits: 1}

	assert.True(DefaultDone(opts, fitness.Genoscore{Geno: short, Score: match}))
	assert.False(DefaultDone(opts, fitness.Genoscore{Geno: long, Score: match}))
	assert.False(DefaultDone(opts, fitness.Genoscore{Geno: short, Score: miss}))
	assert.False(DefaultDone(opts, fitness.Genoscore{}))

	opts.ChromoMin = 2
	p := WithOptions(&Builtin{Title: "x", Opts: DefaultOptions()}, opts)
	assert.Equal(2, p.Options().ChromoMin)
	assert.True(p.Done(p.Options(), fitness.Genoscore{Geno: long, Score: match}))
}

func TestOverrides(t *testing.T) {
	assert := assert.New(t)

	ov, err := ParseOverrides(`
kind = "float"
score = "float"
pop_size = 100
pop_keep = 4
mutate_rate = 0.5
max_tier = "popcnt"
timeout = "250ms"

[ops]
int = false
float = true
branches = true
`)
	require.NoError(t, err)

	opts := ov.Apply(DefaultOptions())
	assert.Equal(FUNC_FLOAT, opts.Kind)
	assert.Equal(fitness.SCORE_FLOAT, opts.Score)
	assert.Equal(100, opts.PopSize)
	assert.Equal(4, opts.PopKeep)
	assert.Equal(0.5, opts.MutateRate)
	assert.Equal(catalog.TIER_POPCNT, opts.MaxTier)
	assert.Equal(250*time.Millisecond, opts.Timeout)
	assert.False(opts.Ops.Int)
	assert.True(opts.Ops.Float)
	assert.True(opts.Ops.Branches)
	assert.True(opts.Ops.Bit)
	assert.Equal(DEFAULT_CHROMO_MAX, opts.ChromoMax)
	assert.NoError(opts.Validate())

	_, err = ParseOverrides(`max_tier = "avx"`)
	assert.Error(err)
}
