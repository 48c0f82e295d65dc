// Command tasca-export dumps the configured backend's records to
// stdout in the CSV wire format, for backups and migrations between
// backends.
package main

import (
	"context"
	"log/slog"
	"os"

	"tasca/internal/backend"
	"tasca/internal/cli"
	"tasca/internal/codec"
	"tasca/internal/log"
)

func main() {
	cli.LoadEnvFile()

	// Logs go to stderr so stdout carries only the CSV payload
	logger := log.New(log.Config{
		Level:     slog.LevelInfo,
		Component: log.ComponentApp,
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}),
	})
	log.SetDefault(logger)

	cfg := cli.LoadAndValidateConfig(logger)

	// Export never publishes events
	cfg.AMQPURL = ""

	ctx := context.Background()

	factory := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Logger)
	result, err := factory.Create(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", log.FieldError, err)
			}
		}
	}()

	records, err := result.Store.Load(ctx)
	if err != nil {
		logger.Error("Failed to load records", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}

	if _, err := os.Stdout.Write(codec.Encode(records)); err != nil {
		logger.Error("Failed to write export", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Exported records", log.FieldCount, len(records), log.FieldBackend, cfg.DataBackend)
}
