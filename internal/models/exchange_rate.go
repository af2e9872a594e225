package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate mirrors a row of the append-only exchange_rates table.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	Source         string          `json:"source"`
	RecordedAt     time.Time       `json:"recordedAt"`
}
