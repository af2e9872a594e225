package repositories

import (
	"context"

	"github.com/ODInternational04/aboi-backend/internal/core/domain"
)

// PriceUpdateRunReader defines read operations for update run records
type PriceUpdateRunReader interface {
	// FindLatestRun retrieves the most recent run record.
	FindLatestRun(ctx context.Context) (*domain.PriceUpdateRun, error)

	// ListRuns retrieves run records, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.PriceUpdateRun, error)
}

// PriceUpdateRunWriter defines write operations for update run records
type PriceUpdateRunWriter interface {
	// SavePriceUpdateRun appends one run record.
	SavePriceUpdateRun(ctx context.Context, run domain.PriceUpdateRun) error
}

// PriceUpdateRunRepository combines run record repository interfaces
type PriceUpdateRunRepository interface {
	PriceUpdateRunReader
	PriceUpdateRunWriter
}
