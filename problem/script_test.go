package problem

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/genx/catalog"
	"github.com/ezrec/genx/fitness"
	"github.com/ezrec/genx/genotype"
)

const cubeScript = `
name = "int-cube"
options = {
    "chromo_max": 16,
    "pop_size": 1024,
    "pop_keep": 2,
    "score": "bits",
    "max_const": 0xffffffff,
    "max_tier": "p6",
}
inputs = [[n] for n in range(8)] + [[0x10000]]

def target(x):
    return u32(x * x * x)

def done(score, length):
    return score == 0 and length <= 3
`

func TestScriptTarget(t *testing.T) {
	assert := assert.New(t)

	s, err := ParseScript("cube.star", cubeScript)
	require.NoError(t, err)

	assert.Equal("int-cube", s.Name())
	opts := s.Options()
	assert.Equal(16, opts.ChromoMax)
	assert.Equal(1024, opts.PopSize)
	assert.Equal(2, opts.PopKeep)
	assert.Equal(fitness.SCORE_BITS, opts.Score)
	assert.Equal(uint32(0xffffffff), opts.MaxIntConst)
	assert.Equal(catalog.TIER_P6, opts.MaxTier)

	vecs, err := s.Vectors()
	require.NoError(t, err)
	assert.Len(vecs, 9)
	assert.Equal(uint32(27), vecs[3].Out)
	assert.Equal(uint32(0), vecs[8].Out)

	g := &genotype.Genotype{Len: catalog.PREFIX_LEN + 3 + catalog.SUFFIX_LEN}
	assert.True(s.Done(opts, fitness.Genoscore{Geno: g, Score: fitness.Score{Mode: fitness.SCORE_BITS}}))
	g.Len++
	assert.False(s.Done(opts, fitness.Genoscore{Geno: g, Score: fitness.Score{Mode: fitness.SCORE_BITS}}))
}

func TestScriptVectors(t *testing.T) {
	assert := assert.New(t)

	s, err := ParseScript("third.star", `
name = "float-third"
options = {"kind": "float", "epsilon": 0.001}
vectors = [([3.0], 1.0), ([1.5], 0.5), ([sqrt(9)], 1)]
`)
	require.NoError(t, err)

	opts := s.Options()
	assert.Equal(FUNC_FLOAT, opts.Kind)
	assert.Equal(fitness.SCORE_FLOAT, opts.Score)
	assert.True(opts.Ops.Float)
	assert.Equal(float32(0.001), opts.Epsilon)

	vecs, err := s.Vectors()
	require.NoError(t, err)
	assert.Equal(float32(0.5), math.Float32frombits(vecs[1].Out))
	assert.Equal(float32(3), math.Float32frombits(vecs[2].In[0]))
	assert.Equal(float32(1), math.Float32frombits(vecs[2].Out))
}

func TestScriptErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		script string
		err    error
	}){
		{"syntax", "name = (", nil},
		{"no-name", "vectors = []", ErrScriptName},
		{"no-vectors", `name = "x"`, ErrScriptVectors},
		{"no-target", "name = \"x\"\ninputs = [[1]]", ErrScriptVectors},
		{"option", "name = \"x\"\noptions = {\"colour\": 1}\nvectors = [([1], 1)]", ErrScriptOption},
		{"option-type", "name = \"x\"\noptions = {\"int_ops\": 1}\nvectors = [([1], 1)]", ErrScriptType},
		{"inputs", "name = \"x\"\nvectors = [([1, 2, 3, 4, 5], 1)]", ErrTooManyInputs},
		{"validate", "name = \"x\"\noptions = {\"pop_keep\": 9000}\nvectors = [([1], 1)]", ErrKeepTooLarge},
	}

	for _, entry := range table {
		_, err := ParseScript(entry.name+".star", entry.script)
		var script ErrScript
		if assert.ErrorAs(err, &script, entry.name) {
			assert.Equal(entry.name+".star", script.Path)
		}
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.name)
		}
	}

	s, err := ParseScript("fail.star", "name = \"x\"\ninputs = [[1]]\ndef target(x):\n    return x // 0\n")
	require.NoError(t, err)
	_, err = s.Vectors()
	assert.ErrorIs(err, ErrScriptFunction)
}

func TestScanScripts(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	assert.NoError(os.WriteFile(filepath.Join(dir, "cube.star"), []byte(cubeScript), 0o644))
	assert.NoError(os.WriteFile(filepath.Join(dir, "broken.star"), []byte("name = ("), 0o644))
	assert.NoError(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("name = 1"), 0o644))

	var names []string
	for p := range ScanScripts(dir) {
		names = append(names, p.Name())
	}
	assert.Equal([]string{"int-cube"}, names)

	_, err := LoadScript(filepath.Join(dir, "missing.star"))
	assert.ErrorIs(err, os.ErrNotExist)
}
