/* One-shot CLI for reports, searches and archive imports. */
package main

import (
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	applog "moneyview/internal/log"
)

// cli commands / args available
var cli struct {
	Events   eventsCmd   `cmd:"" help:"Print the events report for a date and period."`
	Spending spendingCmd `cmd:"" help:"Print the spending report for one category over the last three months."`
	Search   searchCmd   `cmd:"" help:"Search operations by substring in category or description."`
	Persons  personsCmd  `cmd:"" help:"List transfers to persons."`
	Import   importCmd   `cmd:"" help:"Import an operations file into the SQLite archive."`
}

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Level: slog.LevelWarn})
	slog.SetDefault(logger)

	ctx := kong.Parse(&cli,
		kong.Name("moneyview"),
		kong.Description("Personal bank operations reporting."))
	err := ctx.Run(&runContext{logger: logger})
	ctx.FatalIfErrorf(err)
}

// runContext holds what every command needs.
type runContext struct {
	logger *slog.Logger
}
