// Package fitness scores candidate outputs against expected outputs and
// orders scored genotypes.
package fitness

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/ezrec/genx/genotype"
)

// Mode is a scoring function.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	SCORE_BITS  = Mode(0) // bits
	SCORE_ALG   = Mode(1) // alg
	SCORE_FLOAT = Mode(2) // float
)

// ParseMode returns the scoring mode named by s.
func ParseMode(s string) (mode Mode, err error) {
	for mode = SCORE_BITS; mode <= SCORE_FLOAT; mode++ {
		if mode.String() == s {
			return
		}
	}
	err = ErrModeUnknown(s)
	return
}

// MarshalText encodes the mode by name.
func (mode Mode) MarshalText() ([]byte, error) {
	return []byte(mode.String()), nil
}

// UnmarshalText decodes a mode name.
func (mode *Mode) UnmarshalText(text []byte) (err error) {
	*mode, err = ParseMode(string(text))
	return
}

// IsFloat reports whether the mode accumulates float scores.
func (mode Mode) IsFloat() bool {
	return mode == SCORE_FLOAT
}

// Score is an accumulated distance; lower is better. Integer modes use
// Bits, the float mode uses Float.
type Score struct {
	Mode  Mode
	Bits  uint32
	Float float32
}

// Max is the worst score of the mode.
func Max(mode Mode) Score {
	if mode.IsFloat() {
		return Score{Mode: mode, Float: math.MaxFloat32}
	}
	return Score{Mode: mode, Bits: math.MaxUint32}
}

// IsMax reports whether s is the worst score of its mode.
func (s Score) IsMax() bool {
	return s == Max(s.Mode)
}

// Cmp compares two scores of the same mode.
func (s Score) Cmp(o Score) int {
	if s.Mode.IsFloat() {
		switch {
		case s.Float < o.Float:
			return -1
		case s.Float > o.Float:
			return 1
		}
		return 0
	}

	switch {
	case s.Bits < o.Bits:
		return -1
	case s.Bits > o.Bits:
		return 1
	}
	return 0
}

// Match reports whether s counts as an exact solution.
func (s Score) Match(epsilon float32) bool {
	if s.Mode.IsFloat() {
		return s.Float <= epsilon
	}
	return s.Bits == 0
}

// Value is the score as a float, for metrics.
func (s Score) Value() float64 {
	if s.Mode.IsFloat() {
		return float64(s.Float)
	}
	return float64(s.Bits)
}

func (s Score) String() string {
	if s.Mode.IsFloat() {
		return fmt.Sprintf("%g", s.Float)
	}
	return fmt.Sprintf("0x%08x", s.Bits)
}

// Add accumulates the distance between a candidate output and the expected
// output. Once the sum overflows the score saturates at Max and ok is false.
func (s Score) Add(got, want uint32) (sum Score, ok bool) {
	sum = s
	if s.IsMax() {
		return
	}

	var delta uint32
	switch s.Mode {
	case SCORE_BITS:
		delta = uint32(bits.OnesCount32(got ^ want))
	case SCORE_ALG:
		if got > want {
			delta = got - want
		} else {
			delta = want - got
		}
	case SCORE_FLOAT:
		return s.addFloat(math.Float32frombits(got), math.Float32frombits(want))
	}

	if s.Bits > math.MaxUint32-delta {
		sum = Max(s.Mode)
		return
	}

	sum.Bits += delta
	ok = true
	return
}

func (s Score) addFloat(got, want float32) (sum Score, ok bool) {
	if math.IsNaN(float64(got)) || math.IsInf(float64(got), 0) {
		sum = Max(s.Mode)
		return
	}

	diff := float32(math.Abs(float64(got) - float64(want)))
	if math.IsInf(float64(diff), 0) || math.MaxFloat32-diff < s.Float {
		sum = Max(s.Mode)
		return
	}

	sum = s
	sum.Float += diff
	ok = true
	return
}

// Genoscore is a genotype paired with its score.
type Genoscore struct {
	Geno  *genotype.Genotype
	Score Score
}

// Cmp orders by score, then by shorter genotype.
func (gs Genoscore) Cmp(o Genoscore) int {
	if c := gs.Score.Cmp(o.Score); c != 0 {
		return c
	}
	switch {
	case gs.Geno.Len < o.Geno.Len:
		return -1
	case gs.Geno.Len > o.Geno.Len:
		return 1
	}
	return 0
}

// Less reports whether gs ranks strictly before o.
func (gs Genoscore) Less(o Genoscore) bool {
	return gs.Cmp(o) < 0
}

// Rank moves the keep best entries of pop, in order, to its front.
// The order of the remaining entries is unspecified.
func Rank(pop []Genoscore, keep int) {
	keep = min(keep, len(pop))
	for n := range keep {
		best := n
		for m := n + 1; m < len(pop); m++ {
			if pop[m].Less(pop[best]) {
				best = m
			}
		}
		pop[n], pop[best] = pop[best], pop[n]
	}
}
