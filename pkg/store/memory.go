package store

import (
	"context"
	"sort"
	"sync"

	"github.com/ecotrust/arbcarbon/pkg/errors"
)

// MemoryStore keeps runs in memory. Used in tests and when the CLI runs
// without a configured MongoDB.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]Run
}

// NewMemoryStore creates an empty in-memory run store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: map[string]Run{}}
}

func (s *MemoryStore) SaveRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "run has no ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = *run
	return nil
}

func (s *MemoryStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "run %s not found", id)
	}
	return &run, nil
}

func (s *MemoryStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
