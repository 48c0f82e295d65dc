package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"tasca/internal/core"
	"tasca/internal/ledger/memory"
)

var testDate = time.Date(2025, 8, 20, 14, 30, 0, 0, time.UTC)

func TestAddPersistsWholesale(t *testing.T) {
	store := memory.New()
	l := NewLedger(context.Background(), store, nil)

	first, err := l.Add(context.Background(), "12.34", []string{"food"}, testDate)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := l.Add(context.Background(), "5", []string{"transport"}, testDate); err != nil {
		t.Fatalf("add: %v", err)
	}

	stored, _ := store.Load(context.Background())
	if len(stored) != 2 || !stored[0].Equal(first) {
		t.Fatalf("unexpected stored records: %+v", stored)
	}
}

func TestAddRejectsInvalidAmount(t *testing.T) {
	store := memory.New()
	l := NewLedger(context.Background(), store, nil)

	for _, amount := range []string{"", "abc", "0", "-3"} {
		if _, err := l.Add(context.Background(), amount, nil, testDate); !errors.Is(err, core.ErrInvalidAmount) {
			t.Fatalf("amount %q: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if l.Count() != 0 {
		t.Fatalf("rejected input must not change state, got %d records", l.Count())
	}
	if stored, _ := store.Load(context.Background()); len(stored) != 0 {
		t.Fatalf("rejected input must not persist, got %d records", len(stored))
	}
}

func TestDelete(t *testing.T) {
	store := memory.New()
	l := NewLedger(context.Background(), store, nil)

	e, err := l.Add(context.Background(), "9.99", []string{"books"}, testDate)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := l.Delete(context.Background(), e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if l.Count() != 0 {
		t.Fatalf("expected empty ledger after delete")
	}
	if stored, _ := store.Load(context.Background()); len(stored) != 0 {
		t.Fatalf("delete must persist, got %d records", len(stored))
	}

	if err := l.Delete(context.Background(), uuid.New()); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNewLedgerLoadsExisting(t *testing.T) {
	store := memory.New()
	seed := core.Expense{ID: uuid.New(), Amount: core.Money{Cents: 700}, Tags: []string{"x"}, Date: testDate}
	if err := store.Save(context.Background(), []core.Expense{seed}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	l := NewLedger(context.Background(), store, nil)
	got := l.List(context.Background())
	if len(got) != 1 || !got[0].Equal(seed) {
		t.Fatalf("expected seeded record, got %+v", got)
	}
}

type failingStore struct {
	loadErr error
	saveErr error
}

func (f *failingStore) Save(context.Context, []core.Expense) error { return f.saveErr }
func (f *failingStore) Load(context.Context) ([]core.Expense, error) {
	return nil, f.loadErr
}

func TestLoadFailureYieldsEmptyLedger(t *testing.T) {
	l := NewLedger(context.Background(), &failingStore{loadErr: errors.New("disk gone")}, nil)
	if l.Count() != 0 {
		t.Fatalf("expected empty ledger on load failure")
	}
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	l := NewLedger(context.Background(), &failingStore{saveErr: errors.New("disk full")}, nil)

	if _, err := l.Add(context.Background(), "1.00", nil, testDate); err != nil {
		t.Fatalf("add must not surface persist errors, got %v", err)
	}
	if l.Count() != 1 {
		t.Fatalf("in-memory state must survive a failed save")
	}
}

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) PublishRecordEvent(_ context.Context, event, _ string, _ int) error {
	p.events = append(p.events, event)
	return nil
}

func TestEventsPublished(t *testing.T) {
	pub := &recordingPublisher{}
	l := NewLedger(context.Background(), memory.New(), pub)

	e, err := l.Add(context.Background(), "2.50", nil, testDate)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := l.Delete(context.Background(), e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(pub.events) != 2 || pub.events[0] != "record.created" || pub.events[1] != "record.deleted" {
		t.Fatalf("unexpected events: %v", pub.events)
	}
}

func TestPublishFailureIsNonFatal(t *testing.T) {
	failing := publisherFunc(func(context.Context, string, string, int) error {
		return errors.New("broker down")
	})
	l := NewLedger(context.Background(), memory.New(), failing)
	if _, err := l.Add(context.Background(), "2.50", nil, testDate); err != nil {
		t.Fatalf("publish failure must not fail the add: %v", err)
	}
}

type publisherFunc func(context.Context, string, string, int) error

func (f publisherFunc) PublishRecordEvent(ctx context.Context, event, id string, count int) error {
	return f(ctx, event, id, count)
}
