// Package log wraps slog with a component attribute so every line can be
// traced to the part of the pipeline that wrote it. Loggers are explicit
// handles constructed at process start and passed into components.
package log

import (
	"log/slog"
	"os"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentReport  = "report"
	ComponentSearch  = "search"
	ComponentSource  = "source"
	ComponentPrices  = "prices"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
)

// Config holds logger configuration.
type Config struct {
	Level   slog.Level
	Handler slog.Handler
}

// New creates the root logger. A nil Handler means text output on stdout
// at the configured level.
func New(config Config) *slog.Logger {
	handler := config.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: config.Level,
		})
	}
	return slog.New(handler)
}

// ForComponent derives a component-scoped logger.
func ForComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", component)
}
