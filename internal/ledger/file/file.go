// Package file persists the record list as a single CSV file in the
// application data directory, overwritten wholesale on every save.
package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tasca/internal/codec"
	"tasca/internal/core"
)

const DefaultFileName = "expenses.csv"

type Store struct {
	path string
}

// New returns a store writing to path, creating parent directories on
// first save. The file itself is not touched until a save happens.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Save(ctx context.Context, records []core.Expense) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(s.path, codec.Encode(records), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	slog.DebugContext(ctx, "Records written", "path", s.path, "count", len(records))
	return nil
}

// Load returns the decoded record list. A missing file means no data
// yet; a read failure degrades to an empty list rather than blocking
// startup, so a corrupt disk never strands the user without a ledger.
func (s *Store) Load(ctx context.Context) ([]core.Expense, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		slog.WarnContext(ctx, "Read failed, starting with empty ledger", "path", s.path, "error", err)
		return nil, nil
	}
	records, skipped := codec.Decode(data)
	if skipped > 0 {
		slog.WarnContext(ctx, "Skipped malformed lines on load", "path", s.path, "skipped", skipped, "loaded", len(records))
	}
	return records, nil
}
