package source

import (
	"context"
	"errors"

	"moneyview/internal/core"
)

// Source delivers the complete set of bank operation records. Loading is
// request-scoped; implementations must not cache across calls.
type Source interface {
	Operations(ctx context.Context) ([]core.Record, error)
}

// Loader failures are fatal to report generation and surface unchanged to
// the caller. Wrap with context, match with errors.Is.
var (
	ErrNotFound          = errors.New("operations file not found")
	ErrUnsupportedFormat = errors.New("unsupported operations format")
	ErrParse             = errors.New("malformed operations content")
)
