package dto

import (
	"time"

	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertCurrencyRequest defines the structure for a conversion request.
type ConvertCurrencyRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	FromCurrency string          `json:"fromCurrency" binding:"required,len=3"`
	ToCurrency   string          `json:"toCurrency" binding:"required,len=3"`
}

// ConvertCurrencyResponse carries a completed conversion.
type ConvertCurrencyResponse struct {
	Amount          decimal.Decimal `json:"amount"`
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	Rate            decimal.Decimal `json:"rate"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
}

// ExchangeRateResponse defines the structure for API responses containing
// exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	Source         string          `json:"source"`
	RecordedAt     time.Time       `json:"recordedAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its response DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		FromCurrency:   rate.FromCurrency,
		ToCurrency:     rate.ToCurrency,
		Rate:           rate.Rate,
		Source:         string(rate.Source),
		RecordedAt:     rate.RecordedAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain rates to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

// RateTableResponse carries a batch rate resolution result.
type RateTableResponse struct {
	BaseCurrency string                     `json:"baseCurrency"`
	Rates        map[string]decimal.Decimal `json:"rates"`
}
