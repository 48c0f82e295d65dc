package backend

import (
	"context"
	"path/filepath"
	"testing"

	"tasca/internal/config"
)

func TestTypeIsValid(t *testing.T) {
	for _, valid := range []Type{FileBackend, MemoryBackend, SQLiteBackend, SheetsBackend} {
		if !valid.IsValid() {
			t.Fatalf("%s should be valid", valid)
		}
	}
	if Type("postgres").IsValid() {
		t.Fatalf("unknown type should be invalid")
	}
}

func TestCreateMemoryBackend(t *testing.T) {
	f := NewFactory(nil)
	result, err := f.Create(context.Background(), &config.Config{DataBackend: "memory"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.Store == nil {
		t.Fatalf("expected a store")
	}
	if result.Events != nil || result.Cleanup != nil {
		t.Fatalf("memory backend needs no events or cleanup")
	}
}

func TestCreateFileBackend(t *testing.T) {
	f := NewFactory(nil)
	cfg := &config.Config{
		DataBackend: "file",
		CSVPath:     filepath.Join(t.TempDir(), "expenses.csv"),
	}
	result, err := f.Create(context.Background(), cfg)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.Store == nil {
		t.Fatalf("expected a store")
	}
}

func TestCreateInvalidBackend(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.Create(context.Background(), &config.Config{DataBackend: "postgres"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
