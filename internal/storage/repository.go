package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tasca/internal/codec"
	"tasca/internal/core"
)

const dateLayout = time.RFC3339Nano

// SQLiteRepository implements ledger.Store on a local SQLite file.
// Tags are stored in the same escaped ";;"-joined form as the CSV
// Tags column, so a row is directly comparable to a CSV line.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Save implements ledger.RecordSaver: the table is replaced wholesale
// inside one transaction, mirroring the overwrite semantics of the
// CSV file backend.
func (r *SQLiteRepository) Save(ctx context.Context, records []core.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (id, amount_cents, tags, recorded_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range records {
		_, err := stmt.ExecContext(ctx,
			e.ID.String(),
			e.Amount.Cents,
			codec.EncodeTags(e.Tags),
			e.Date.Format(dateLayout),
		)
		if err != nil {
			return fmt.Errorf("insert expense %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.DebugContext(ctx, "Records saved to SQLite", "count", len(records))
	return nil
}

// Load implements ledger.RecordLoader. Rows that fail to parse are
// skipped with a warning, matching the tolerant CSV decode policy.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, tags, recorded_at FROM expenses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}
	defer rows.Close()

	var records []core.Expense
	for rows.Next() {
		var (
			idStr      string
			cents      int64
			tagsBlob   string
			recordedAt string
		)
		if err := rows.Scan(&idStr, &cents, &tagsBlob, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			slog.WarnContext(ctx, "Skipping row with invalid id", "id", idStr, "error", err)
			continue
		}
		date, err := time.Parse(dateLayout, recordedAt)
		if err != nil {
			slog.WarnContext(ctx, "Skipping row with invalid date", "id", idStr, "error", err)
			continue
		}
		records = append(records, core.Expense{
			ID:     id,
			Amount: core.Money{Cents: cents},
			Tags:   codec.DecodeTags(tagsBlob),
			Date:   date,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return records, nil
}
