// Package backend selects and assembles the operations source the process
// reads from.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"moneyview/internal/config"
	applog "moneyview/internal/log"
	"moneyview/internal/source"
	"moneyview/internal/source/file"
	"moneyview/internal/source/google"
	"moneyview/internal/storage"
)

// Result bundles the chosen source with its cleanup. Cleanup is never nil.
type Result struct {
	Source  source.Source
	Cleanup func() error
}

// NewSource builds the operations source named by cfg.DataSource.
func NewSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.DataSource {
	case "sqlite":
		repo, err := storage.NewRepository(cfg.SQLiteDBPath,
			applog.ForComponent(logger, applog.ComponentStorage))
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite source: %w", err)
		}
		logger.Info("initialized sqlite operations source", "db_path", cfg.SQLiteDBPath)
		return &Result{Source: repo, Cleanup: repo.Close}, nil

	case "sheets":
		cli, err := google.NewFromEnv(ctx, applog.ForComponent(logger, applog.ComponentSource))
		if err != nil {
			return nil, fmt.Errorf("initialize sheets source: %w", err)
		}
		logger.Info("initialized spreadsheet operations source")
		return &Result{Source: cli, Cleanup: func() error { return nil }}, nil

	case "file":
		loader := file.NewLoader(cfg.OperationsPath,
			applog.ForComponent(logger, applog.ComponentSource))
		logger.Info("initialized file operations source", "path", cfg.OperationsPath)
		return &Result{Source: loader, Cleanup: func() error { return nil }}, nil

	default:
		return nil, fmt.Errorf("unsupported data source: %s", cfg.DataSource)
	}
}
