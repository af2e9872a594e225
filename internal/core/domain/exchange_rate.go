package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource tags the provenance of a persisted exchange rate row.
type RateSource string

const (
	RateSourceAPI         RateSource = "api"
	RateSourceAPIBatch    RateSource = "api_batch"
	RateSourceFallback    RateSource = "fallback"
	RateSourceDailyUpdate RateSource = "daily_update"
)

// ExchangeRate is one observation of a conversion rate between two currencies.
// Rows are append-only; the current rate for a pair is the most recent row.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	FromCurrency   string          `json:"fromCurrency"` // normalized uppercase code
	ToCurrency     string          `json:"toCurrency"`
	Rate           decimal.Decimal `json:"rate"` // invariant: rate > 0
	Source         RateSource      `json:"source"`
	RecordedAt     time.Time       `json:"recordedAt"`
}
