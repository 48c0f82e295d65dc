// Package service holds the in-memory record collection and drives
// persistence: the full list is written through the store on every
// mutation and loaded wholesale at startup.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tasca/internal/core"
	"tasca/internal/ledger"
	"tasca/internal/log"
)

// EventPublisher notifies downstream consumers of ledger changes.
// Publishing is best-effort; the ledger never fails an operation over it.
type EventPublisher interface {
	PublishRecordEvent(ctx context.Context, event, recordID string, count int) error
}

const (
	eventCreated = "record.created"
	eventDeleted = "record.deleted"
)

type Ledger struct {
	mu      sync.Mutex
	store   ledger.Store
	events  EventPublisher // optional
	records []core.Expense
}

// NewLedger loads the stored records and returns a ready ledger. A
// load failure is treated as "no data yet": the user gets an empty
// ledger instead of a dead process.
func NewLedger(ctx context.Context, store ledger.Store, events EventPublisher) *Ledger {
	l := &Ledger{store: store, events: events}
	records, err := store.Load(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load records, starting empty", log.FieldError, err)
		records = nil
	}
	l.records = records
	slog.InfoContext(ctx, "Ledger loaded", log.FieldCount, len(records))
	return l
}

// Add validates input, mints a record and persists the collection.
// A persist failure is logged but does not fail the call: the record
// stays in memory and the previous on-disk state is untouched.
func (l *Ledger) Add(ctx context.Context, amount string, tags []string, date time.Time) (core.Expense, error) {
	cents, err := core.ParseDecimalToCents(amount)
	if err != nil {
		return core.Expense{}, err
	}
	e, err := core.NewExpense(core.Money{Cents: cents}, tags, date)
	if err != nil {
		return core.Expense{}, err
	}

	l.mu.Lock()
	l.records = append(l.records, e)
	snapshot := append([]core.Expense(nil), l.records...)
	count := len(l.records)
	l.mu.Unlock()

	l.persist(ctx, snapshot)
	l.publish(ctx, eventCreated, e.ID.String(), count)

	slog.InfoContext(ctx, "Expense recorded",
		log.FieldRecordID, e.ID,
		"amount_cents", e.Amount.Cents,
		"tags", e.Tags)
	return e, nil
}

// Delete removes a record by id and persists the collection. Deletion
// and re-creation is the only mutation path besides insertion.
func (l *Ledger) Delete(ctx context.Context, id uuid.UUID) error {
	l.mu.Lock()
	idx := -1
	for i, e := range l.records {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		l.mu.Unlock()
		return core.ErrNotFound
	}
	l.records = append(l.records[:idx], l.records[idx+1:]...)
	snapshot := append([]core.Expense(nil), l.records...)
	count := len(l.records)
	l.mu.Unlock()

	l.persist(ctx, snapshot)
	l.publish(ctx, eventDeleted, id.String(), count)

	slog.InfoContext(ctx, "Expense deleted", log.FieldRecordID, id, "remaining", count)
	return nil
}

// List returns a copy of the collection in insertion order.
func (l *Ledger) List(_ context.Context) []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Expense(nil), l.records...)
}

func (l *Ledger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

func (l *Ledger) persist(ctx context.Context, snapshot []core.Expense) {
	if err := l.store.Save(ctx, snapshot); err != nil {
		// In-memory state is kept; prior on-disk state is unchanged
		slog.ErrorContext(ctx, "Failed to persist records", log.FieldError, err, log.FieldCount, len(snapshot))
	}
}

func (l *Ledger) publish(ctx context.Context, event, recordID string, count int) {
	if l.events == nil {
		return
	}
	if err := l.events.PublishRecordEvent(ctx, event, recordID, count); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record event",
			"event", event, log.FieldRecordID, recordID, log.FieldError, err)
	}
}
