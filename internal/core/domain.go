package core

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type (
	Money struct {
		Cents int64
	}

	// Expense is a single recorded outgoing. ID is assigned once at
	// creation and never changes; the only mutations of a collection
	// are insertion and deletion, there is no update-in-place.
	Expense struct {
		ID     uuid.UUID
		Amount Money
		Tags   []string
		Date   time.Time
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrNotFound      = errors.New("expense not found")
)

// NewExpense mints an expense with a fresh ID. Tags are normalized;
// an empty tag list is allowed.
func NewExpense(amount Money, tags []string, date time.Time) (Expense, error) {
	e := Expense{
		ID:     uuid.New(),
		Amount: amount,
		Tags:   NormalizeTags(tags),
		Date:   date,
	}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate enforces creation-time rules only. Records loaded from disk
// are not re-validated, so decoders must not call this.
func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Equal reports whether two expenses carry the same data. Dates are
// compared as instants, so the same moment in different zones matches.
func (e Expense) Equal(other Expense) bool {
	if e.ID != other.ID || e.Amount != other.Amount || !e.Date.Equal(other.Date) {
		return false
	}
	if len(e.Tags) != len(other.Tags) {
		return false
	}
	for i := range e.Tags {
		if e.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return true
}
