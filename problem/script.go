package problem

import (
	"errors"
	"iter"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/genx/catalog"
	"github.com/ezrec/genx/fitness"
)

// SCRIPT_EXT is the file extension of problem scripts.
const SCRIPT_EXT = ".star"

// Script is a problem described by a Starlark script.
//
// The script defines `name`, an optional `options` dict, and either
// `vectors`, a list of (inputs, output) pairs, or `inputs`, a list of input
// lists, together with a `target` function that computes each output. An
// optional `done(score, length)` function replaces the default termination
// predicate; length is the interior length of the best genotype.
type Script struct {
	Verbose bool
	Path    string

	title  string
	opts   Options
	inputs []Vector
	given  bool // Outputs were given by the script.
	target starlark.Callable
	done   starlark.Callable
	thread *starlark.Thread

	once    sync.Once
	vectors []Vector
	err     error
}

var _ Problem = (*Script)(nil)

func builtinIsqrt(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n starlark.Int
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &n); err != nil {
		return nil, err
	}
	v, ok := n.Uint64()
	if !ok {
		return nil, ErrScriptType
	}
	return starlark.MakeUint64(uint64(math.Sqrt(float64(v)))), nil
}

func builtinSqrt(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	v, ok := starlark.AsFloat(x)
	if !ok {
		return nil, ErrScriptType
	}
	return starlark.Float(math.Sqrt(v)), nil
}

func builtinU32(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n starlark.Int
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &n); err != nil {
		return nil, err
	}
	return starlark.MakeUint64(uint64(wrap32(n))), nil
}

// wrap32 reduces n modulo 2^32.
func wrap32(n starlark.Int) uint32 {
	low := n.And(starlark.MakeUint64(math.MaxUint32))
	v, _ := low.Uint64()
	return uint32(v)
}

var predeclared = starlark.StringDict{
	"isqrt":  starlark.NewBuiltin("isqrt", builtinIsqrt),
	"sqrt":   starlark.NewBuiltin("sqrt", builtinSqrt),
	"u32":    starlark.NewBuiltin("u32", builtinU32),
	"MASK32": starlark.MakeUint64(math.MaxUint32),
}

// LoadScript reads a problem script from path.
func LoadScript(path string) (s *Script, err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		err = ErrScript{Path: path, Err: err}
		return
	}
	return ParseScript(path, src)
}

// ParseScript executes a problem script held in src.
func ParseScript(path string, src any) (s *Script, err error) {
	defer func() {
		if err != nil {
			err = ErrScript{Path: path, Err: err}
			s = nil
		}
	}()

	s = &Script{Path: path}
	s.thread = &starlark.Thread{
		Name: path,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", path, msg)
		},
	}

	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, s.thread, path, src, predeclared)
	if err != nil {
		return
	}

	name, ok := starlark.AsString(globals["name"])
	if !ok || name == "" {
		err = ErrScriptName
		return
	}
	s.title = name

	s.opts = DefaultOptions()
	if dict, ok := globals["options"].(*starlark.Dict); ok {
		err = s.parseOptions(dict)
		if err != nil {
			return
		}
	} else if globals["options"] != nil {
		err = ErrOption{Name: "options", Err: ErrScriptType}
		return
	}

	if fn, ok := globals["done"].(starlark.Callable); ok {
		s.done = fn
	}

	switch {
	case globals["vectors"] != nil:
		s.given = true
		err = s.parseVectors(globals["vectors"])
	case globals["inputs"] != nil:
		fn, ok := globals["target"].(starlark.Callable)
		if !ok {
			err = ErrScriptVectors
			return
		}
		s.target = fn
		err = s.parseInputs(globals["inputs"])
	default:
		err = ErrScriptVectors
	}
	if err != nil {
		return
	}

	err = s.opts.Validate()
	return
}

func toUint32(v starlark.Value) (u uint32, err error) {
	n, ok := v.(starlark.Int)
	if !ok {
		err = ErrScriptType
		return
	}
	u = wrap32(n)
	return
}

func toFloat32(v starlark.Value) (x float32, err error) {
	f, ok := starlark.AsFloat(v)
	if !ok {
		err = ErrScriptType
		return
	}
	x = float32(f)
	return
}

func (s *Script) word(v starlark.Value) (word uint32, err error) {
	if s.opts.Kind == FUNC_FLOAT {
		var x float32
		x, err = toFloat32(v)
		word = math.Float32bits(x)
		return
	}
	return toUint32(v)
}

func (s *Script) value(word uint32) starlark.Value {
	if s.opts.Kind == FUNC_FLOAT {
		return starlark.Float(math.Float32frombits(word))
	}
	return starlark.MakeUint64(uint64(word))
}

func (s *Script) parseInput(v starlark.Value) (vec Vector, err error) {
	list, ok := v.(starlark.Indexable)
	if !ok {
		err = ErrScriptType
		return
	}
	if list.Len() > MAX_PARAMS {
		err = ErrTooManyInputs
		return
	}
	for n := range list.Len() {
		vec.In[n], err = s.word(list.Index(n))
		if err != nil {
			return
		}
	}
	return
}

func (s *Script) parseInputs(v starlark.Value) (err error) {
	list, ok := v.(starlark.Indexable)
	if !ok {
		return ErrOption{Name: "inputs", Err: ErrScriptType}
	}
	for n := range list.Len() {
		var vec Vector
		vec, err = s.parseInput(list.Index(n))
		if err != nil {
			return ErrOption{Name: "inputs", Err: err}
		}
		s.inputs = append(s.inputs, vec)
	}
	return
}

func (s *Script) parseVectors(v starlark.Value) (err error) {
	list, ok := v.(starlark.Indexable)
	if !ok {
		return ErrOption{Name: "vectors", Err: ErrScriptType}
	}
	for n := range list.Len() {
		pair, ok := list.Index(n).(starlark.Tuple)
		if !ok || len(pair) != 2 {
			return ErrOption{Name: "vectors", Err: ErrScriptType}
		}
		var vec Vector
		vec, err = s.parseInput(pair[0])
		if err == nil {
			vec.Out, err = s.word(pair[1])
		}
		if err != nil {
			return ErrOption{Name: "vectors", Err: err}
		}
		s.inputs = append(s.inputs, vec)
	}
	return
}

// parseOptions applies an options dict over the defaults of its kind.
func (s *Script) parseOptions(dict *starlark.Dict) (err error) {
	if kind, found, _ := dict.Get(starlark.String("kind")); found {
		name, _ := starlark.AsString(kind)
		var k Kind
		k, err = ParseKind(name)
		if err != nil {
			return
		}
		if k == FUNC_FLOAT {
			s.opts = DefaultFloatOptions()
		}
	}

	opts := &s.opts
	var errs []error
	for _, item := range dict.Items() {
		key, _ := starlark.AsString(item[0])
		if err := applyOption(opts, key, item[1]); err != nil {
			errs = append(errs, ErrOption{Name: key, Err: err})
		}
	}

	return errors.Join(errs...)
}

func applyOption(opts *Options, key string, v starlark.Value) (err error) {
	asInt := func(ptr *int) {
		var u uint32
		u, err = toUint32(v)
		*ptr = int(int32(u))
	}
	asBool := func(ptr *bool) {
		b, ok := v.(starlark.Bool)
		if !ok {
			err = ErrScriptType
		}
		*ptr = bool(b)
	}
	asFloat := func(ptr *float32) {
		*ptr, err = toFloat32(v)
	}
	asString := func() (str string) {
		str, ok := starlark.AsString(v)
		if !ok {
			err = ErrScriptType
		}
		return
	}

	switch key {
	case "kind":
	case "score":
		if str := asString(); err == nil {
			opts.Score, err = fitness.ParseMode(str)
		}
	case "param_cnt":
		asInt(&opts.ParamCount)
	case "chromo_min":
		asInt(&opts.ChromoMin)
	case "chromo_max":
		asInt(&opts.ChromoMax)
	case "pop_size":
		asInt(&opts.PopSize)
	case "pop_keep":
		asInt(&opts.PopKeep)
	case "gen_deadend":
		asInt(&opts.Deadend)
	case "mutate_rate":
		rate, ok := starlark.AsFloat(v)
		if !ok {
			err = ErrScriptType
		}
		opts.MutateRate = rate
	case "int_ops":
		asBool(&opts.Ops.Int)
	case "float_ops":
		asBool(&opts.Ops.Float)
	case "algebra_ops":
		asBool(&opts.Ops.Algebra)
	case "bit_ops":
		asBool(&opts.Ops.Bit)
	case "random_const":
		asBool(&opts.Ops.RandomConst)
	case "branches":
		asBool(&opts.Ops.Branches)
	case "max_const":
		opts.MaxIntConst, err = toUint32(v)
	case "min_float_const":
		asFloat(&opts.MinFloatConst)
	case "max_float_const":
		asFloat(&opts.MaxFloatConst)
	case "epsilon":
		asFloat(&opts.Epsilon)
	case "max_tier":
		if str := asString(); err == nil {
			opts.MaxTier, err = catalog.ParseTier(str)
		}
	case "timeout":
		if str := asString(); err == nil {
			opts.Timeout, err = time.ParseDuration(str)
		}
	default:
		err = ErrScriptOption
	}

	return
}

func (s *Script) Name() string {
	return s.title
}

func (s *Script) Options() Options {
	return s.opts
}

// Vectors returns the test vectors, calling the script target once for
// each input on first use.
func (s *Script) Vectors() ([]Vector, error) {
	s.once.Do(func() {
		if len(s.inputs) == 0 {
			s.err = ErrNoVectors
			return
		}

		vecs := make([]Vector, len(s.inputs))
		copy(vecs, s.inputs)

		if !s.given {
			args := make(starlark.Tuple, s.opts.ParamCount)
			for n := range vecs {
				for i := range args {
					args[i] = s.value(vecs[n].In[i])
				}
				rc, err := starlark.Call(s.thread, s.target, args, nil)
				if err == nil {
					vecs[n].Out, err = s.word(rc)
				}
				if err != nil {
					s.err = ErrScript{Path: s.Path, Err: errors.Join(ErrScriptFunction, err)}
					return
				}
			}
		}

		s.vectors = vecs
	})

	if s.err != nil {
		return nil, s.err
	}

	vecs := make([]Vector, len(s.vectors))
	copy(vecs, s.vectors)
	return vecs, nil
}

// Done calls the script done function when defined.
func (s *Script) Done(opts Options, best fitness.Genoscore) bool {
	if s.done == nil || best.Geno == nil {
		return DefaultDone(opts, best)
	}

	var score starlark.Value = starlark.MakeUint64(uint64(best.Score.Bits))
	if best.Score.Mode.IsFloat() {
		score = starlark.Float(best.Score.Float)
	}

	args := starlark.Tuple{score, starlark.MakeInt(best.Geno.Interior())}
	rc, err := starlark.Call(s.thread, s.done, args, nil)
	if err != nil {
		if s.Verbose {
			log.Printf("%v: done: %v", s.Path, err)
		}
		return DefaultDone(opts, best)
	}

	return bool(rc.Truth())
}

// ScanScripts iterates over the problem scripts of dir. Scripts that fail
// to load are logged and skipped.
func ScanScripts(dir string) iter.Seq[Problem] {
	return func(yield func(Problem) bool) {
		paths, _ := filepath.Glob(filepath.Join(dir, "*"+SCRIPT_EXT))
		for _, path := range paths {
			s, err := LoadScript(path)
			if err != nil {
				log.Printf("%v", err)
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}
