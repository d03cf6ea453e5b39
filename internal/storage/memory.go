package storage

import (
	"context"
	"sync"

	"expense-tracker/internal/core"
)

// MemoryStore keeps the collection in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	items core.Collection
	saves int
}

func NewMemoryStore(seed ...core.Expense) *MemoryStore {
	return &MemoryStore{items: core.Collection(seed).Clone()}
}

// Load returns a copy so callers cannot mutate stored state without Save.
func (s *MemoryStore) Load(_ context.Context) (core.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.items.Clone()
	if out == nil {
		out = core.Collection{}
	}
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, c core.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = c.Clone()
	s.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
