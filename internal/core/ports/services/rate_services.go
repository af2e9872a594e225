package services

import (
	"context"

	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateResolverSvc resolves exchange rates through the fallback chain. GetRate
// and GetRates cannot fail: they always return positive, usable rates.
type RateResolverSvc interface {
	// GetRate resolves one pair. It never returns a non-positive rate.
	GetRate(ctx context.Context, fromCurrency, toCurrency string) decimal.Decimal

	// GetRates resolves many targets against one base currency.
	GetRates(ctx context.Context, baseCurrency string, targetCurrencies []string) map[string]decimal.Decimal
}

// RateSvcFacade combines rate resolution with the read operations exposed to
// the HTTP layer.
type RateSvcFacade interface {
	RateResolverSvc

	// ConvertCurrency converts an amount between currencies using the
	// resolved current rate. Returns the converted amount and the rate used.
	ConvertCurrency(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (decimal.Decimal, decimal.Decimal, error)

	// GetLatestExchangeRate retrieves the most recent persisted rate row.
	GetLatestExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error)

	// GetExchangeRateHistory retrieves persisted rate rows, newest first.
	GetExchangeRateHistory(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error)
}
