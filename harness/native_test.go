//go:build linux && amd64

package harness

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/genx/catalog"
	"github.com/ezrec/genx/fitness"
	"github.com/ezrec/genx/genotype"
	"github.com/ezrec/genx/problem"
)

func TestMain(m *testing.M) {
	if os.Getenv("GENX_TEST_WORKER") == "1" {
		if err := Serve(os.Stdin, os.Stdout); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func workerCommand() *exec.Cmd {
	cmd := exec.Command(os.Args[0], "-test.run=^$")
	cmd.Env = append(os.Environ(), "GENX_TEST_WORKER=1")
	return cmd
}

func identity(timeout time.Duration) problem.Problem {
	opts := problem.DefaultOptions()
	opts.ChromoMax = 4
	opts.Timeout = timeout

	var tests []problem.Vector
	for n := range uint32(10) {
		tests = append(tests, problem.IntVector(n, n))
	}

	return &problem.Builtin{Title: "identity", Opts: opts, Tests: tests}
}

func testCatalog(t *testing.T, p problem.Problem) *catalog.Catalog {
	opts := p.Options()
	cat, err := catalog.Build(opts.Catalog())
	require.NoError(t, err)
	return cat
}

func listing(t *testing.T, cat *catalog.Catalog, text string) *genotype.Genotype {
	g, err := genotype.Load(strings.NewReader(text), cat, 4)
	require.NoError(t, err)
	return g
}

func TestNative(t *testing.T) {
	assert := assert.New(t)

	p := identity(0)
	cat := testCatalog(t, p)

	scorer, err := New(p, cat, nil)
	require.NoError(t, err)
	defer scorer.Close()
	assert.IsType(&Native{}, scorer)

	table := [](struct {
		name    string
		listing string
		bits    uint32
	}){
		{"identity", "", 0},
		{"double", "2 01 c0 add %eax,%eax", 45},
		{"negate", "2 f7 d8 neg %eax", 0xffffffff},
	}

	for _, entry := range table {
		g := listing(t, cat, entry.listing)
		score := scorer.Score(g)
		assert.Equal(fitness.SCORE_ALG, score.Mode, entry.name)
		assert.Equal(entry.bits, score.Bits, entry.name)
	}
}

func TestNativeReport(t *testing.T) {
	assert := assert.New(t)

	p := identity(0)
	cat := testCatalog(t, p)

	scorer, err := NewNative(p, cat)
	require.NoError(t, err)
	defer scorer.Close()

	var out bytes.Buffer
	score, err := scorer.Report(&out, listing(t, cat, ""))
	assert.NoError(err)
	assert.True(score.Match(0))
	assert.Contains(out.String(), "          9           9           9           0           0\n")
	assert.True(strings.HasSuffix(out.String(), "score=0x00000000\n"))
}

func TestIsolated(t *testing.T) {
	assert := assert.New(t)

	p := identity(time.Second)
	cat := testCatalog(t, p)

	scorer, err := New(p, cat, workerCommand)
	require.NoError(t, err)
	defer scorer.Close()

	iso, ok := scorer.(*Isolated)
	require.True(t, ok)

	double := listing(t, cat, "2 01 c0 add %eax,%eax")
	assert.Equal(uint32(45), iso.Score(double).Bits)
	assert.Equal(0, iso.Restarts)

	// A tight loop is killed by the watchdog.
	iso.Timeout = 100 * time.Millisecond
	spin := []byte{0xc8, 0x00, 0x00, 0x00, 0xeb, 0xfe}
	assert.True(iso.scoreCode(spin).IsMax())
	assert.Equal(1, iso.Restarts)

	// An illegal instruction kills the worker.
	crash := []byte{0xc8, 0x00, 0x00, 0x00, 0x0f, 0x0b}
	assert.True(iso.scoreCode(crash).IsMax())
	assert.Equal(2, iso.Restarts)

	// The replacement worker scores as before.
	iso.Timeout = time.Second
	assert.Equal(uint32(45), iso.Score(double).Bits)
	assert.Equal(2, iso.Restarts)
}

func TestIsolatedReport(t *testing.T) {
	assert := assert.New(t)

	p := identity(time.Second)
	cat := testCatalog(t, p)

	iso, err := NewIsolated(p, cat, workerCommand)
	require.NoError(t, err)
	defer iso.Close()

	local, err := NewNative(p, cat)
	require.NoError(t, err)
	defer local.Close()

	g := listing(t, cat, "2 f7 d8 neg %eax")

	var want, got bytes.Buffer
	wantScore, err := local.Report(&want, g)
	assert.NoError(err)
	gotScore, err := iso.Report(&got, g)
	assert.NoError(err)

	assert.Equal(wantScore, gotScore)
	assert.Equal(want.String(), got.String())
}

func TestIsolatedNoCommand(t *testing.T) {
	_, err := NewIsolated(identity(time.Second), testCatalog(t, identity(time.Second)), nil)
	assert.ErrorIs(t, err, ErrNoWorker)
}
