package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"moneyview/internal/core"
	"moneyview/internal/source"
)

const handlerTimeout = 15 * time.Second

// handleHealth performs a basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

// handleEvents serves GET /api/events?date=DD.MM.YYYY&period=M|W|Y|ALL.
// The date defaults to today, the period to a monthly view.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	ref := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse(core.ReferenceDateLayout, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be in DD.MM.YYYY form")
			return
		}
		ref = parsed
	}

	window, err := core.ParseWindow(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	report, err := s.reports.Events(ctx, ref, window)
	if err != nil {
		s.writeSourceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// handleSpending serves GET /api/reports/spending?category=...&date=DD.MM.YYYY.
// It returns the raw records of one category over the three months up to
// the date, which defaults to today.
func (s *Server) handleSpending(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, "category parameter is required")
		return
	}

	ref := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse(core.ReferenceDateLayout, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be in DD.MM.YYYY form")
			return
		}
		ref = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	records, err := s.reports.SpendingByCategory(ctx, category, ref)
	if err != nil {
		s.writeSourceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// handleSearch serves GET /api/search?query=...
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	records, err := s.searches.Search(ctx, query)
	if err != nil {
		s.writeSourceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// handleSearchPersons serves GET /api/search/persons.
func (s *Server) handleSearchPersons(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	records, err := s.searches.PersonTransfers(ctx)
	if err != nil {
		s.writeSourceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// writeSourceError maps pipeline failures onto HTTP statuses. All loader
// failures are server-side configuration problems from the API consumer's
// point of view.
func (s *Server) writeSourceError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)

	switch {
	case errors.Is(err, source.ErrNotFound),
		errors.Is(err, source.ErrUnsupportedFormat),
		errors.Is(err, source.ErrParse):
		writeError(w, http.StatusInternalServerError, "operations source unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
