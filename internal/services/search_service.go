package services

import (
	"context"
	"fmt"
	"log/slog"

	"moneyview/internal/core"
)

// SearchService runs the two search operations over the complete,
// unfiltered record set. Results are the original records, all fields
// intact, in source order.
type SearchService struct {
	operations OperationsSource
	logger     *slog.Logger
}

func NewSearchService(ops OperationsSource, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{operations: ops, logger: logger}
}

// Search returns records whose category or description contains query,
// case-insensitively.
func (s *SearchService) Search(ctx context.Context, query string) ([]core.Record, error) {
	records, err := s.operations.Operations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load operations: %w", err)
	}

	matched := core.SearchSubstring(records, query)
	s.logger.Info("substring search finished", "query", query, "matches", len(matched))
	return matched, nil
}

// PersonTransfers returns transfer records whose description names a
// person.
func (s *SearchService) PersonTransfers(ctx context.Context) ([]core.Record, error) {
	records, err := s.operations.Operations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load operations: %w", err)
	}

	matched := core.SearchPersonTransfers(records)
	s.logger.Info("person transfer search finished", "matches", len(matched))
	return matched, nil
}
