package repositories

import (
	"context"
	"time"

	"github.com/ODInternational04/aboi-backend/internal/core/domain"
)

// CurrentPriceReader defines read operations for current price snapshots
type CurrentPriceReader interface {
	// FindCurrentPrice retrieves the latest snapshot for a commodity.
	FindCurrentPrice(ctx context.Context, commodityID string) (*domain.CurrentPrice, error)

	// CountCurrentPrices returns the number of commodities with a snapshot.
	CountCurrentPrices(ctx context.Context) (int, error)

	// FindTopMovers returns the snapshots with the highest and lowest 24h
	// change. Either may be nil when no snapshots exist.
	FindTopMovers(ctx context.Context) (gainer, loser *domain.CurrentPrice, err error)
}

// CurrentPriceWriter defines write operations for current price snapshots
type CurrentPriceWriter interface {
	// UpsertCurrentPrice inserts or replaces the snapshot for a commodity.
	UpsertCurrentPrice(ctx context.Context, price domain.CurrentPrice) error
}

// PriceHistoryReader defines read operations for the price history ledger
type PriceHistoryReader interface {
	// ListPriceHistory retrieves history rows for a commodity, newest first.
	ListPriceHistory(ctx context.Context, commodityID string, limit int) ([]domain.PriceHistory, error)

	// AggregateHistory summarizes history rows recorded since the given time.
	AggregateHistory(ctx context.Context, commodityID string, since time.Time) (*domain.HistoryAggregate, error)
}

// PriceHistoryWriter defines write operations for the price history ledger
type PriceHistoryWriter interface {
	// InsertPriceHistory appends one history row. History is never mutated.
	InsertPriceHistory(ctx context.Context, history domain.PriceHistory) error
}

// PriceRepository combines current price and history repository interfaces
type PriceRepository interface {
	CurrentPriceReader
	CurrentPriceWriter
	PriceHistoryReader
	PriceHistoryWriter
}
