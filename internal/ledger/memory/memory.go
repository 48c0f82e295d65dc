package memory

import (
	"context"
	"sync"

	"tasca/internal/core"
)

// Store keeps the record list in memory. Used as the dev backend and
// as the store under test doubles.
type Store struct {
	mu      sync.Mutex
	records []core.Expense
}

func New() *Store {
	return &Store{}
}

func (s *Store) Save(_ context.Context, records []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]core.Expense(nil), records...)
	return nil
}

func (s *Store) Load(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.records...), nil
}
