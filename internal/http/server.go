// Package http exposes the events report and the two search operations as
// a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"moneyview/internal/core"
)

// ReportProvider is the report surface the API publishes; implemented by
// services.ReportService.
type ReportProvider interface {
	Events(ctx context.Context, ref time.Time, window core.Window) (core.Report, error)
	SpendingByCategory(ctx context.Context, category string, ref time.Time) ([]core.Record, error)
}

// SearchProvider is the search surface; implemented by
// services.SearchService.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]core.Record, error)
	PersonTransfers(ctx context.Context) ([]core.Record, error)
}

type Server struct {
	http.Server
	reports  ReportProvider
	searches SearchProvider
	logger   *slog.Logger
	started  time.Time
}

func NewServer(addr string, reports ReportProvider, searches SearchProvider, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		Server:   http.Server{Addr: addr},
		reports:  reports,
		searches: searches,
		logger:   logger,
		started:  time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/reports/spending", s.handleSpending)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/search/persons", s.handleSearchPersons)
	s.Handler = s.withRequestLogging(mux)

	return s
}

// withRequestLogging logs method, path and duration of every request.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(begin).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
