package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRange mirrors a row of the price_ranges table. Bound columns are
// nullable; only the pair that was authoritative at last write is guaranteed.
type PriceRange struct {
	CommodityID string           `json:"commodityID"`
	MinPriceZAR *decimal.Decimal `json:"minPriceZAR"`
	MaxPriceZAR *decimal.Decimal `json:"maxPriceZAR"`
	MinPriceUSD *decimal.Decimal `json:"minPriceUSD"`
	MaxPriceUSD *decimal.Decimal `json:"maxPriceUSD"`
	IsActive    bool             `json:"isActive"`
	UpdatedBy   string           `json:"updatedBy"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CurrentPrice mirrors a row of the current_prices table (one row per
// commodity, upsert target).
type CurrentPrice struct {
	CommodityID      string          `json:"commodityID"`
	PriceZAR         decimal.Decimal `json:"priceZAR"`
	PriceUSD         decimal.Decimal `json:"priceUSD"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	Change24hPercent decimal.Decimal `json:"change24hPercent"`
	LastUpdated      time.Time       `json:"lastUpdated"`
}

// PriceHistory mirrors a row of the append-only price_history table.
type PriceHistory struct {
	PriceHistoryID string          `json:"priceHistoryID"`
	CommodityID    string          `json:"commodityID"`
	PriceZAR       decimal.Decimal `json:"priceZAR"`
	PriceUSD       decimal.Decimal `json:"priceUSD"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	RecordedAt     time.Time       `json:"recordedAt"`
}
