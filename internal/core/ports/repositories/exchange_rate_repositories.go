package repositories

import (
	"context"
	"time"

	"github.com/ODInternational04/aboi-backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindLatestRate retrieves the most recent persisted rate for a currency
	// pair. A positive maxAge restricts the lookup to rows younger than that
	// bound; zero means no age restriction.
	FindLatestRate(ctx context.Context, fromCurrency, toCurrency string, maxAge time.Duration) (*domain.ExchangeRate, error)

	// ListRateHistory retrieves persisted rates for a pair, newest first.
	ListRateHistory(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate appends a new exchange rate observation.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepository combines all exchange rate repository interfaces
type ExchangeRateRepository interface {
	ExchangeRateReader
	ExchangeRateWriter
}
