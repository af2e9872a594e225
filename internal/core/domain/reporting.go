package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommodityStats aggregates the pricing picture for one commodity.
type CommodityStats struct {
	Commodity    Commodity        `json:"commodity"`
	CurrentPrice *CurrentPrice    `json:"currentPrice,omitempty"`
	Range        *PriceRange      `json:"range,omitempty"`
	MinPriceZAR  *decimal.Decimal `json:"minPriceZAR,omitempty"` // over the stats window
	MaxPriceZAR  *decimal.Decimal `json:"maxPriceZAR,omitempty"`
	AvgPriceZAR  *decimal.Decimal `json:"avgPriceZAR,omitempty"`
	SampleCount  int              `json:"sampleCount"`
	WindowDays   int              `json:"windowDays"`
}

// HistoryAggregate summarizes price history rows over a time window.
type HistoryAggregate struct {
	MinPriceZAR decimal.Decimal `json:"minPriceZAR"`
	MaxPriceZAR decimal.Decimal `json:"maxPriceZAR"`
	AvgPriceZAR decimal.Decimal `json:"avgPriceZAR"`
	SampleCount int             `json:"sampleCount"`
}

// DashboardSummary is the operator-facing overview of the pricing engine.
type DashboardSummary struct {
	ActiveCommodities int             `json:"activeCommodities"`
	PricedCommodities int             `json:"pricedCommodities"`
	LatestRate        *ExchangeRate   `json:"latestRate,omitempty"` // ZAR->USD
	LastRun           *PriceUpdateRun `json:"lastRun,omitempty"`
	TopGainer         *CurrentPrice   `json:"topGainer,omitempty"`
	TopLoser          *CurrentPrice   `json:"topLoser,omitempty"`
	GeneratedAt       time.Time       `json:"generatedAt"`
}
