// Package services orchestrates the report pipeline: load operations,
// filter to the requested window, aggregate by category, merge in market
// quotes. No business logic of its own beyond composition.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"moneyview/internal/core"
	"moneyview/internal/prices"
	"moneyview/internal/settings"
)

// SettingsReader lets tests feed symbol lists without a file.
type SettingsReader func() (settings.UserSettings, error)

// FileSettings reads user settings from path on every request.
func FileSettings(path string) SettingsReader {
	return func() (settings.UserSettings, error) {
		return settings.Load(path)
	}
}

// EventsPublisher emits report lifecycle events. Implemented by the AMQP
// client; nil means events are disabled.
type EventsPublisher interface {
	PublishReportGenerated(ctx context.Context, date, window string) error
}

type ReportService struct {
	operations   OperationsSource
	lookup       prices.Lookup
	readSettings SettingsReader
	publisher    EventsPublisher
	logger       *slog.Logger
}

// OperationsSource matches source.Source; declared here so the service
// depends on behavior, not on a concrete loader.
type OperationsSource interface {
	Operations(ctx context.Context) ([]core.Record, error)
}

func NewReportService(ops OperationsSource, lookup prices.Lookup, readSettings SettingsReader, publisher EventsPublisher, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		operations:   ops,
		lookup:       lookup,
		readSettings: readSettings,
		publisher:    publisher,
		logger:       logger,
	}
}

// Events assembles the full report for the window ending at ref. Loader
// and settings failures are fatal; quote failures degrade to null prices.
// Everything is computed within this call, nothing is persisted.
func (s *ReportService) Events(ctx context.Context, ref time.Time, window core.Window) (core.Report, error) {
	records, err := s.operations.Operations(ctx)
	if err != nil {
		return core.Report{}, fmt.Errorf("load operations: %w", err)
	}

	userSettings, err := s.readSettings()
	if err != nil {
		return core.Report{}, fmt.Errorf("load user settings: %w", err)
	}

	start, end := window.Range(ref)
	filtered := core.FilterByRange(records, start, end, s.logger)

	expenseTotals, incomeTotals := core.SumByCategory(filtered)

	rates, stocks := prices.FetchQuotes(ctx, s.lookup,
		userSettings.UserCurrencies, userSettings.UserStocks)

	report := core.Report{
		Expenses:      core.BuildExpenseSummary(expenseTotals),
		Income:        core.BuildIncomeSummary(incomeTotals),
		CurrencyRates: rates,
		StockPrices:   stocks,
	}

	s.logger.Info("events report assembled",
		"window", string(window),
		"records", len(records),
		"in_range", len(filtered),
		"expense_total", report.Expenses.TotalAmount,
		"income_total", report.Income.TotalAmount)

	s.publishGenerated(ctx, ref, window)

	return report, nil
}

// SpendingByCategory returns the raw records of one category over the
// three months up to ref. Only the operations source can fail; no quotes
// or user settings are involved.
func (s *ReportService) SpendingByCategory(ctx context.Context, category string, ref time.Time) ([]core.Record, error) {
	records, err := s.operations.Operations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load operations: %w", err)
	}

	matched := core.SpendingByCategory(records, category, ref, s.logger)

	s.logger.Info("spending report assembled",
		"category", category,
		"records", len(records),
		"matched", len(matched))
	return matched, nil
}

// publishGenerated emits the report.generated event without ever failing
// the request.
func (s *ReportService) publishGenerated(ctx context.Context, ref time.Time, window core.Window) {
	if s.publisher == nil {
		return
	}
	date := ref.Format("02.01.2006")
	if err := s.publisher.PublishReportGenerated(ctx, date, string(window)); err != nil {
		s.logger.Error("failed to publish report event",
			"date", date, "window", string(window), "error", err)
	}
}
