// Package backend selects and constructs the record store named by
// configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"tasca/internal/amqp"
	"tasca/internal/config"
	"tasca/internal/ledger"
	"tasca/internal/ledger/file"
	"tasca/internal/ledger/memory"
	"tasca/internal/log"
	"tasca/internal/sheets"
	"tasca/internal/storage"
)

// Type identifies a concrete store implementation.
type Type string

const (
	FileBackend   Type = "file"
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
	SheetsBackend Type = "sheets"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case FileBackend, MemoryBackend, SQLiteBackend, SheetsBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result bundles the constructed store with its optional cleanup and
// the optional AMQP event publisher.
type Result struct {
	Store   ledger.Store
	Events  *amqp.Client
	Cleanup CleanupFunc
}

// Factory creates stores based on configuration
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds the store named by cfg.DataBackend. The AMQP client is
// optional for every backend: a broker that is down only costs events,
// never the ledger.
func (f *Factory) Create(ctx context.Context, cfg *config.Config) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	result := &Result{}

	if cfg.AMQPURL != "" {
		events, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without events",
				log.FieldError, err, log.FieldBackend, t.String())
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
			result.Events = events
		}
	}

	switch t {
	case FileBackend:
		path, err := cfg.ResolveCSVPath()
		if err != nil {
			return nil, err
		}
		result.Store = file.New(path)
		f.logger.Info("Initialized file backend", "path", path)

	case MemoryBackend:
		result.Store = memory.New()
		f.logger.Info("Initialized memory backend")

	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		result.Store = repo
		result.Cleanup = repo.Close
		f.logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)

	case SheetsBackend:
		cli, err := sheets.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
		}
		result.Store = cli
		f.logger.Info("Initialized Google Sheets backend", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	}

	if result.Events != nil {
		prevCleanup := result.Cleanup
		events := result.Events
		result.Cleanup = func() error {
			if prevCleanup != nil {
				if err := prevCleanup(); err != nil {
					events.Close()
					return err
				}
			}
			return events.Close()
		}
	}

	return result, nil
}
