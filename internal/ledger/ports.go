package ledger

import (
	"context"

	"tasca/internal/core"
)

// Ports for outbound record storage.
type (
	// RecordSaver overwrites the stored record list wholesale. There is
	// no append path: every mutation persists the full collection.
	RecordSaver interface {
		Save(ctx context.Context, records []core.Expense) error
	}

	// RecordLoader returns the full stored record list. A backend with
	// nothing stored yet returns an empty list, not an error.
	RecordLoader interface {
		Load(ctx context.Context) ([]core.Expense, error)
	}

	Store interface {
		RecordSaver
		RecordLoader
	}
)
