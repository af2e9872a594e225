package mapping

import (
	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	"github.com/ODInternational04/aboi-backend/internal/models"
)

// ToModelPriceRange converts a domain PriceRange to a model PriceRange
func ToModelPriceRange(d domain.PriceRange) models.PriceRange {
	return models.PriceRange{
		CommodityID: d.CommodityID,
		MinPriceZAR: d.MinPriceZAR,
		MaxPriceZAR: d.MaxPriceZAR,
		MinPriceUSD: d.MinPriceUSD,
		MaxPriceUSD: d.MaxPriceUSD,
		IsActive:    d.IsActive,
		UpdatedBy:   d.UpdatedBy,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDomainPriceRange converts a model PriceRange to a domain PriceRange
func ToDomainPriceRange(m models.PriceRange) domain.PriceRange {
	return domain.PriceRange{
		CommodityID: m.CommodityID,
		MinPriceZAR: m.MinPriceZAR,
		MaxPriceZAR: m.MaxPriceZAR,
		MinPriceUSD: m.MinPriceUSD,
		MaxPriceUSD: m.MaxPriceUSD,
		IsActive:    m.IsActive,
		UpdatedBy:   m.UpdatedBy,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToModelCurrentPrice converts a domain CurrentPrice to a model CurrentPrice
func ToModelCurrentPrice(d domain.CurrentPrice) models.CurrentPrice {
	return models.CurrentPrice{
		CommodityID:      d.CommodityID,
		PriceZAR:         d.PriceZAR,
		PriceUSD:         d.PriceUSD,
		ExchangeRate:     d.ExchangeRate,
		Change24hPercent: d.Change24hPercent,
		LastUpdated:      d.LastUpdated,
	}
}

// ToDomainCurrentPrice converts a model CurrentPrice to a domain CurrentPrice
func ToDomainCurrentPrice(m models.CurrentPrice) domain.CurrentPrice {
	return domain.CurrentPrice{
		CommodityID:      m.CommodityID,
		PriceZAR:         m.PriceZAR,
		PriceUSD:         m.PriceUSD,
		ExchangeRate:     m.ExchangeRate,
		Change24hPercent: m.Change24hPercent,
		LastUpdated:      m.LastUpdated,
	}
}

// ToModelPriceHistory converts a domain PriceHistory to a model PriceHistory
func ToModelPriceHistory(d domain.PriceHistory) models.PriceHistory {
	return models.PriceHistory{
		PriceHistoryID: d.PriceHistoryID,
		CommodityID:    d.CommodityID,
		PriceZAR:       d.PriceZAR,
		PriceUSD:       d.PriceUSD,
		ExchangeRate:   d.ExchangeRate,
		RecordedAt:     d.RecordedAt,
	}
}

// ToDomainPriceHistory converts a model PriceHistory to a domain PriceHistory
func ToDomainPriceHistory(m models.PriceHistory) domain.PriceHistory {
	return domain.PriceHistory{
		PriceHistoryID: m.PriceHistoryID,
		CommodityID:    m.CommodityID,
		PriceZAR:       m.PriceZAR,
		PriceUSD:       m.PriceUSD,
		ExchangeRate:   m.ExchangeRate,
		RecordedAt:     m.RecordedAt,
	}
}
