package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps records for the life of the process.
type MemoryStore struct {
	mu           sync.RWMutex
	initialized  bool
	runs         map[string]Run
	improvements map[string][]Improvement
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]Run)
	s.improvements = make(map[string][]Improvement)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	run.Version = CURRENT_VERSION
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return Run{}, false, ErrNotInitialized
	}
	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) Runs(_ context.Context) (runs []Run, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		err = ErrNotInitialized
		return
	}
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	slices.SortFunc(runs, func(a, b Run) int {
		return a.Start.Compare(b.Start)
	})
	return
}

func (s *MemoryStore) SaveImprovement(_ context.Context, imp Improvement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}

	imp.Version = CURRENT_VERSION
	list := s.improvements[imp.RunID]
	n, found := slices.BinarySearchFunc(list, imp.Generation, func(have Improvement, gen int) int {
		return have.Generation - gen
	})
	if found {
		list[n] = imp
	} else {
		list = slices.Insert(list, n, imp)
	}
	s.improvements[imp.RunID] = list
	return nil
}

func (s *MemoryStore) Improvements(_ context.Context, runID string) ([]Improvement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	return slices.Clone(s.improvements[runID]), nil
}
