package config

import (
	"os"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid file backend config",
			config:  Config{Port: "8082", DataBackend: "file"},
			wantErr: false,
		},
		{
			name:    "valid sqlite backend config",
			config:  Config{Port: "8082", DataBackend: "sqlite", SQLiteDBPath: "./test.db"},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			config:      Config{Port: "abc", DataBackend: "file"},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			config:      Config{Port: "70000", DataBackend: "file"},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			config:      Config{Port: "8082", DataBackend: "postgres"},
			wantErr:     true,
			errorString: "invalid data backend 'postgres'",
		},
		{
			name:        "sqlite backend missing database path",
			config:      Config{Port: "8082", DataBackend: "sqlite", SQLiteDBPath: ""},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name:        "sheets backend missing spreadsheet ID",
			config:      Config{Port: "8082", DataBackend: "sheets"},
			wantErr:     true,
			errorString: "Google Spreadsheet ID is required",
		},
		{
			name:        "invalid AMQP URL scheme",
			config:      Config{Port: "8082", DataBackend: "file", AMQPURL: "http://localhost:5672/", AMQPExchange: "x", AMQPQueue: "q"},
			wantErr:     true,
			errorString: "invalid AMQP URL scheme 'http': must be 'amqp' or 'amqps'",
		},
		{
			name:        "AMQP URL without exchange",
			config:      Config{Port: "8082", DataBackend: "file", AMQPURL: "amqp://localhost:5672/", AMQPExchange: "", AMQPQueue: "q"},
			wantErr:     true,
			errorString: "AMQP exchange name cannot be empty when AMQP URL is provided",
		},
		{
			name:        "AMQP URL without queue",
			config:      Config{Port: "8082", DataBackend: "file", AMQPURL: "amqp://localhost:5672/", AMQPExchange: "x", AMQPQueue: ""},
			wantErr:     true,
			errorString: "AMQP queue name cannot be empty when AMQP URL is provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Config.Validate() error = nil, wantErr true")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err, tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Config.Validate() error = %v, wantErr false", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	keys := []string{"PORT", "DATA_BACKEND", "CSV_PATH", "SQLITE_DB_PATH", "AMQP_URL"}
	original := map[string]string{}
	for _, key := range keys {
		original[key] = os.Getenv(key)
		os.Unsetenv(key)
	}
	defer func() {
		for key, value := range original {
			if value != "" {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	t.Run("default values", func(t *testing.T) {
		cfg := Load()
		if cfg.Port != "8082" {
			t.Errorf("Load() Port = %v, want 8082", cfg.Port)
		}
		if cfg.DataBackend != "file" {
			t.Errorf("Load() DataBackend = %v, want file", cfg.DataBackend)
		}
		if cfg.CSVPath != "" {
			t.Errorf("Load() CSVPath = %v, want empty (resolved lazily)", cfg.CSVPath)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		os.Setenv("PORT", "9090")
		os.Setenv("DATA_BACKEND", "sqlite")
		os.Setenv("CSV_PATH", "/tmp/expenses.csv")

		cfg := Load()
		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.DataBackend != "sqlite" {
			t.Errorf("Load() DataBackend = %v, want sqlite", cfg.DataBackend)
		}
		if cfg.CSVPath != "/tmp/expenses.csv" {
			t.Errorf("Load() CSVPath = %v, want /tmp/expenses.csv", cfg.CSVPath)
		}
	})
}

func TestResolveCSVPath(t *testing.T) {
	explicit := Config{CSVPath: "/tmp/ledger.csv"}
	path, err := explicit.ResolveCSVPath()
	if err != nil || path != "/tmp/ledger.csv" {
		t.Fatalf("explicit path: got %q, %v", path, err)
	}

	derived := Config{}
	path, err = derived.ResolveCSVPath()
	if err != nil {
		t.Skipf("no user config dir in this environment: %v", err)
	}
	if !strings.HasSuffix(path, "expenses.csv") {
		t.Fatalf("derived path should end in expenses.csv, got %q", path)
	}
}
