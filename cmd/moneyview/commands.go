package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"moneyview/internal/backend"
	"moneyview/internal/config"
	"moneyview/internal/core"
	applog "moneyview/internal/log"
	"moneyview/internal/prices"
	"moneyview/internal/services"
	"moneyview/internal/source/file"
	"moneyview/internal/storage"
)

type eventsCmd struct {
	Date   string `help:"Reference date in DD.MM.YYYY form." default:""`
	Period string `help:"Reporting period: M, W, Y or ALL." default:"M"`
}

func (c *eventsCmd) Run(rc *runContext) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ref := time.Now()
	if c.Date != "" {
		parsed, err := time.Parse(core.ReferenceDateLayout, c.Date)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", c.Date, err)
		}
		ref = parsed
	}
	window, err := core.ParseWindow(c.Period)
	if err != nil {
		return err
	}

	ctx := context.Background()
	src, err := backend.NewSource(ctx, cfg, rc.logger)
	if err != nil {
		return err
	}
	defer closeLogged(rc, "operations source", src.Cleanup)

	lookup := prices.NewClient(prices.Config{
		CurrencyBaseURL: cfg.CurrencyAPIURL,
		StockBaseURL:    cfg.StockAPIURL,
		StockAPIKey:     cfg.StockAPIKey,
		BaseCurrency:    cfg.BaseCurrency,
		Timeout:         cfg.LookupTimeout,
		CacheSize:       cfg.QuoteCacheSize,
		CacheTTL:        cfg.QuoteCacheTTL,
	}, applog.ForComponent(rc.logger, applog.ComponentPrices))

	svc := services.NewReportService(src.Source, lookup,
		services.FileSettings(cfg.UserSettingsPath), nil,
		applog.ForComponent(rc.logger, applog.ComponentReport))

	report, err := svc.Events(ctx, ref, window)
	if err != nil {
		return err
	}
	return printJSON(report)
}

type spendingCmd struct {
	Category string `arg:"" help:"Exact category name to report on."`
	Date     string `help:"Reference date in DD.MM.YYYY form; defaults to today." default:""`
}

func (c *spendingCmd) Run(rc *runContext) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ref := time.Now()
	if c.Date != "" {
		parsed, err := time.Parse(core.ReferenceDateLayout, c.Date)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", c.Date, err)
		}
		ref = parsed
	}

	ctx := context.Background()
	src, err := backend.NewSource(ctx, cfg, rc.logger)
	if err != nil {
		return err
	}
	defer closeLogged(rc, "operations source", src.Cleanup)

	// No quote lookup or publisher here; the spending report only reads
	// operations.
	svc := services.NewReportService(src.Source, nil,
		services.FileSettings(cfg.UserSettingsPath), nil,
		applog.ForComponent(rc.logger, applog.ComponentReport))

	records, err := svc.SpendingByCategory(ctx, c.Category, ref)
	if err != nil {
		return err
	}
	return printJSON(records)
}

type searchCmd struct {
	Query string `arg:"" help:"Substring to search for in category or description."`
}

func (c *searchCmd) Run(rc *runContext) error {
	svc, cleanup, err := newSearchService(rc)
	if err != nil {
		return err
	}
	defer closeLogged(rc, "operations source", cleanup)

	records, err := svc.Search(context.Background(), c.Query)
	if err != nil {
		return err
	}
	return printJSON(records)
}

type personsCmd struct{}

func (c *personsCmd) Run(rc *runContext) error {
	svc, cleanup, err := newSearchService(rc)
	if err != nil {
		return err
	}
	defer closeLogged(rc, "operations source", cleanup)

	records, err := svc.PersonTransfers(context.Background())
	if err != nil {
		return err
	}
	return printJSON(records)
}

type importCmd struct {
	File string `arg:"" help:"Operations file (.csv or .json) to import."`
	DB   string `help:"SQLite archive path; defaults to SQLITE_DB_PATH." default:""`
}

func (c *importCmd) Run(rc *runContext) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	dbPath := c.DB
	if dbPath == "" {
		dbPath = cfg.SQLiteDBPath
	}

	ctx := context.Background()

	loader := file.NewLoader(c.File, applog.ForComponent(rc.logger, applog.ComponentSource))
	records, err := loader.Operations(ctx)
	if err != nil {
		return err
	}

	repo, err := storage.NewRepository(dbPath, applog.ForComponent(rc.logger, applog.ComponentStorage))
	if err != nil {
		return err
	}
	defer closeLogged(rc, "archive", repo.Close)

	n, err := repo.Import(ctx, records)
	if err != nil {
		return err
	}

	fmt.Printf("imported %d operations into %s\n", n, dbPath)
	return nil
}

func newSearchService(rc *runContext) (*services.SearchService, func() error, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	src, err := backend.NewSource(context.Background(), cfg, rc.logger)
	if err != nil {
		return nil, nil, err
	}

	svc := services.NewSearchService(src.Source,
		applog.ForComponent(rc.logger, applog.ComponentSearch))
	return svc, src.Cleanup, nil
}

// closeLogged runs a deferred cleanup and logs a failure instead of
// dropping it.
func closeLogged(rc *runContext, what string, close func() error) {
	if err := close(); err != nil {
		rc.logger.Warn("cleanup failed", "what", what, "error", err)
	}
}

// printJSON writes indented JSON without escaping non-ASCII text.
func printJSON(payload any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(payload)
}
