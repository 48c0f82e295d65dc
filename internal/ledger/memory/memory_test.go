package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"tasca/internal/core"
)

func TestSaveLoadCopies(t *testing.T) {
	s := New()
	records := []core.Expense{{
		ID:     uuid.New(),
		Amount: core.Money{Cents: 100},
		Tags:   []string{"x"},
		Date:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
	if err := s.Save(context.Background(), records); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(context.Background())
	if err != nil || len(got) != 1 || !got[0].Equal(records[0]) {
		t.Fatalf("unexpected load: %v, %v", got, err)
	}

	// Mutating the loaded slice must not affect the store
	got[0].Amount.Cents = 999
	again, _ := s.Load(context.Background())
	if again[0].Amount.Cents != 100 {
		t.Fatalf("store mutated through loaded copy")
	}
}

func TestLoadEmpty(t *testing.T) {
	got, err := New().Load(context.Background())
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %v, %v", got, err)
	}
}
