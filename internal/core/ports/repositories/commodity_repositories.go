package repositories

import (
	"context"

	"github.com/ODInternational04/aboi-backend/internal/core/domain"
)

// CommodityReader defines read operations for commodity data
type CommodityReader interface {
	// FindCommodityByID retrieves a commodity by its ID.
	FindCommodityByID(ctx context.Context, commodityID string) (*domain.Commodity, error)

	// CountActiveCommodities returns the number of active commodities.
	CountActiveCommodities(ctx context.Context) (int, error)
}

// PriceRangeReader defines read operations for configured price ranges
type PriceRangeReader interface {
	// ListActivePriceRanges retrieves active ranges whose owning commodity is
	// also active, with the commodity attached. Ranges owned by inactive
	// commodities are excluded, not reported.
	ListActivePriceRanges(ctx context.Context) ([]domain.CommodityRange, error)

	// FindPriceRange retrieves the range configured for one commodity.
	FindPriceRange(ctx context.Context, commodityID string) (*domain.PriceRange, error)
}

// PriceRangeWriter defines write operations for configured price ranges
type PriceRangeWriter interface {
	// UpsertPriceRange inserts or replaces the range for a commodity.
	UpsertPriceRange(ctx context.Context, priceRange domain.PriceRange) error
}

// CommodityRepository combines commodity and price range repository interfaces
type CommodityRepository interface {
	CommodityReader
	PriceRangeReader
	PriceRangeWriter
}
