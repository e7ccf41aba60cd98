package problem

import (
	"iter"
	"maps"
	"slices"
	"sync"

	"github.com/ezrec/genx/internal"
)

var (
	registryLock sync.RWMutex
	registry     = map[string]Problem{}
)

// Register adds p to the compiled-in problems.
func Register(p Problem) error {
	registryLock.Lock()
	defer registryLock.Unlock()

	if _, ok := registry[p.Name()]; ok {
		return ErrOption{Name: p.Name(), Err: ErrDuplicate}
	}
	registry[p.Name()] = p
	return nil
}

func mustRegister(p Problem) {
	if err := Register(p); err != nil {
		panic(err)
	}
}

// Lookup returns the registered problem named name.
func Lookup(name string) (p Problem, err error) {
	registryLock.RLock()
	defer registryLock.RUnlock()

	p, ok := registry[name]
	if !ok {
		err = ErrProblemMissing(name)
	}
	return
}

// Names returns the registered problem names in order.
func Names() []string {
	registryLock.RLock()
	defer registryLock.RUnlock()

	return slices.Sorted(maps.Keys(registry))
}

// Builtins iterates over the registered problems in name order.
func Builtins() iter.Seq[Problem] {
	return func(yield func(Problem) bool) {
		for _, name := range Names() {
			p, err := Lookup(name)
			if err != nil {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// All iterates over the registered problems followed by each extra sequence.
func All(extra ...iter.Seq[Problem]) iter.Seq[Problem] {
	return internal.IterSeqConcat(append([]iter.Seq[Problem]{Builtins()}, extra...)...)
}
