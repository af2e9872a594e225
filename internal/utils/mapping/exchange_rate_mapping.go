package mapping

import (
	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	"github.com/ODInternational04/aboi-backend/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		FromCurrency:   d.FromCurrency,
		ToCurrency:     d.ToCurrency,
		Rate:           d.Rate,
		Source:         string(d.Source),
		RecordedAt:     d.RecordedAt,
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		FromCurrency:   m.FromCurrency,
		ToCurrency:     m.ToCurrency,
		Rate:           m.Rate,
		Source:         domain.RateSource(m.Source),
		RecordedAt:     m.RecordedAt,
	}
}
