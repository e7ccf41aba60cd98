package problem

import (
	"math"

	"github.com/ezrec/genx/fitness"
)

func intInputs(out []Vector, in ...uint32) []Vector {
	for _, v := range in {
		out = append(out, IntVector(0, v))
	}
	return out
}

func isPerfectSquare(in [MAX_PARAMS]uint32) uint32 {
	s := uint32(math.Sqrt(float64(in[0])) + 0.5)
	if s*s == in[0] {
		return 1
	}
	return 0
}

func init() {
	opts := DefaultOptions()
	mustRegister(&Builtin{
		Title:  "identity",
		Opts:   opts,
		Tests:  intInputs(nil, 0, 1, 2, 0x80000000, 0xffffffff, 12345),
		Target: func(in [MAX_PARAMS]uint32) uint32 { return in[0] },
	})

	opts = DefaultOptions()
	opts.ChromoMax = 128
	opts.PopSize = 64 * 1024
	opts.PopKeep = 2
	mustRegister(&Builtin{
		Title: "int-sqrt",
		Opts:  opts,
		Tests: []Vector{
			IntVector(0x10000, 0xffffffff),
			IntVector(0x3fff, 0xfffffff),
			IntVector(0x1000, 0x1000000),
			IntVector(100, 10000),
			IntVector(50, 2500),
			IntVector(10, 100),
			IntVector(3, 9),
			IntVector(2, 4),
			IntVector(1, 2),
			IntVector(1, 1),
			IntVector(0, 0),
		},
	})

	opts = DefaultOptions()
	opts.PopKeep = 1
	mustRegister(&Builtin{
		Title: "int-perfect-square",
		Opts:  opts,
		Tests: intInputs(nil,
			0xffffffff, 0xfffffff, 0x100000a, 0x1000001, 0x1000000,
			410887, 410886, 410885, 410884, 410883, 410882, 410881,
			10001, 10000, 9999, 2501, 2500, 2499, 101, 100, 99,
			38, 36, 34, 25, 19, 18, 17, 16, 15, 14, 13, 12, 11, 10,
			9, 8, 7, 6, 5, 4, 3, 2, 1, 0),
		Target: isPerfectSquare,
	})

	mustRegister(&Builtin{
		Title: "int-square-digits",
		Opts:  opts,
		Tests: intInputs(nil, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15),
		Target: func(in [MAX_PARAMS]uint32) uint32 {
			switch in[0] {
			case 0, 1, 4, 9:
				return 1
			}
			return 0
		},
	})

	opts = DefaultOptions()
	opts.Score = fitness.SCORE_BITS
	opts.MaxIntConst = math.MaxUint32
	mustRegister(&Builtin{
		Title:  "int-xor-const",
		Opts:   opts,
		Tests:  intInputs(nil, 0, 1, 0x55555555, 0xaaaaaaaa, 0xffffffff, 0x12345678, 0x0f0f0f0f),
		Target: func(in [MAX_PARAMS]uint32) uint32 { return in[0] ^ 0x55555555 },
	})

	opts = DefaultOptions()
	opts.ParamCount = 2
	opts.Ops.RandomConst = false
	mustRegister(&Builtin{
		Title: "int-add2",
		Opts:  opts,
		Tests: []Vector{
			IntVector(0, 0, 0),
			IntVector(0, 1, 2),
			IntVector(0, 100, 23),
			IntVector(0, 0xffffffff, 1),
			IntVector(0, 0x80000000, 0x80000000),
			IntVector(0, 7, 0xfffffff0),
		},
		Target: func(in [MAX_PARAMS]uint32) uint32 { return in[0] + in[1] },
	})

	opts = DefaultFloatOptions()
	mustRegister(&Builtin{
		Title: "float-half",
		Opts:  opts,
		Tests: []Vector{
			FloatVector(0, 0),
			FloatVector(0.5, 1),
			FloatVector(1, 2),
			FloatVector(-1.5, -3),
			FloatVector(50, 100),
			FloatVector(0.125, 0.25),
		},
	})

	// Air age (years) and CO2 (ppmv) to temperature variation (degrees C)
	// from the Vostok ice core.
	opts = DefaultFloatOptions()
	opts.ParamCount = 2
	opts.Epsilon = 0.01
	mustRegister(&Builtin{
		Title: "float-vostok",
		Opts:  opts,
		Tests: []Vector{
			FloatVector(-0.98, 2342, 284.7),
			FloatVector(-5.57, 50610, 189.3),
			FloatVector(-4.50, 103733, 225.9),
			FloatVector(-6.91, 151234, 197.0),
			FloatVector(-1.49, 201324, 226.4),
			FloatVector(-1.09, 401423, 277.1),
		},
	})
}
