package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRange holds the configured synthesis band for one commodity. A commodity
// owns at most one range. Either currency pair may be authoritative at write
// time; the other pair is derived via the rate in effect and may drift from the
// authoritative pair over time. That drift is an accepted approximation.
type PriceRange struct {
	CommodityID string           `json:"commodityID"`
	MinPriceZAR *decimal.Decimal `json:"minPriceZAR,omitempty"`
	MaxPriceZAR *decimal.Decimal `json:"maxPriceZAR,omitempty"`
	MinPriceUSD *decimal.Decimal `json:"minPriceUSD,omitempty"`
	MaxPriceUSD *decimal.Decimal `json:"maxPriceUSD,omitempty"`
	IsActive    bool             `json:"isActive"`
	UpdatedBy   string           `json:"updatedBy"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// HasUSDBounds reports whether both USD bounds are present.
func (r PriceRange) HasUSDBounds() bool {
	return r.MinPriceUSD != nil && r.MaxPriceUSD != nil
}

// HasZARBounds reports whether both ZAR bounds are present.
func (r PriceRange) HasZARBounds() bool {
	return r.MinPriceZAR != nil && r.MaxPriceZAR != nil
}

// CommodityRange pairs an active commodity with its configured price range,
// as loaded at the start of an update cycle.
type CommodityRange struct {
	Commodity Commodity  `json:"commodity"`
	Range     PriceRange `json:"range"`
}

// CurrentPrice is the latest price snapshot for a commodity, overwritten on
// every update cycle.
type CurrentPrice struct {
	CommodityID      string          `json:"commodityID"`
	PriceZAR         decimal.Decimal `json:"priceZAR"`
	PriceUSD         decimal.Decimal `json:"priceUSD"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"` // ZAR->USD rate used at write time
	Change24hPercent decimal.Decimal `json:"change24hPercent"`
	LastUpdated      time.Time       `json:"lastUpdated"`
}

// PriceHistory is one append-only ledger entry per commodity per update event.
type PriceHistory struct {
	PriceHistoryID string          `json:"priceHistoryID"`
	CommodityID    string          `json:"commodityID"`
	PriceZAR       decimal.Decimal `json:"priceZAR"`
	PriceUSD       decimal.Decimal `json:"priceUSD"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	RecordedAt     time.Time       `json:"recordedAt"`
}
