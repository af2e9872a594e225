package dto

import (
	"time"

	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateCommodityPriceRequest sets a commodity price by hand. Exactly one of
// the two prices must be supplied; the other is derived via the current rate.
type UpdateCommodityPriceRequest struct {
	PriceUSD *decimal.Decimal `json:"priceUsd,omitempty"`
	PriceZAR *decimal.Decimal `json:"priceZar,omitempty"`
}

// UpdatePriceRangeRequest replaces the synthesis band for a commodity. Either
// currency pair may be supplied; the other is derived via the current rate.
type UpdatePriceRangeRequest struct {
	MinPriceUSD *decimal.Decimal `json:"minPriceUsd,omitempty"`
	MaxPriceUSD *decimal.Decimal `json:"maxPriceUsd,omitempty"`
	MinPriceZAR *decimal.Decimal `json:"minPriceZar,omitempty"`
	MaxPriceZAR *decimal.Decimal `json:"maxPriceZar,omitempty"`
}

// CurrentPriceResponse carries the latest price snapshot for a commodity.
type CurrentPriceResponse struct {
	CommodityID      string          `json:"commodityID"`
	PriceZAR         decimal.Decimal `json:"priceZar"`
	PriceUSD         decimal.Decimal `json:"priceUsd"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	Change24hPercent decimal.Decimal `json:"change24hPercent"`
	LastUpdated      time.Time       `json:"lastUpdated"`
}

// ToCurrentPriceResponse converts a domain.CurrentPrice to its response DTO
func ToCurrentPriceResponse(p *domain.CurrentPrice) CurrentPriceResponse {
	return CurrentPriceResponse{
		CommodityID:      p.CommodityID,
		PriceZAR:         p.PriceZAR,
		PriceUSD:         p.PriceUSD,
		ExchangeRate:     p.ExchangeRate,
		Change24hPercent: p.Change24hPercent,
		LastUpdated:      p.LastUpdated,
	}
}

// PriceRangeResponse carries the configured synthesis band for a commodity.
type PriceRangeResponse struct {
	CommodityID string           `json:"commodityID"`
	MinPriceZAR *decimal.Decimal `json:"minPriceZar,omitempty"`
	MaxPriceZAR *decimal.Decimal `json:"maxPriceZar,omitempty"`
	MinPriceUSD *decimal.Decimal `json:"minPriceUsd,omitempty"`
	MaxPriceUSD *decimal.Decimal `json:"maxPriceUsd,omitempty"`
	IsActive    bool             `json:"isActive"`
	UpdatedBy   string           `json:"updatedBy"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ToPriceRangeResponse converts a domain.PriceRange to its response DTO
func ToPriceRangeResponse(r *domain.PriceRange) PriceRangeResponse {
	return PriceRangeResponse{
		CommodityID: r.CommodityID,
		MinPriceZAR: r.MinPriceZAR,
		MaxPriceZAR: r.MaxPriceZAR,
		MinPriceUSD: r.MinPriceUSD,
		MaxPriceUSD: r.MaxPriceUSD,
		IsActive:    r.IsActive,
		UpdatedBy:   r.UpdatedBy,
		UpdatedAt:   r.UpdatedAt,
	}
}

// PriceUpdateResponse summarizes a completed update cycle for API callers. A
// degraded cycle still reports success=true; inspect skipped and failures.
type PriceUpdateResponse struct {
	Success      bool                      `json:"success"`
	Updated      int                       `json:"updated"`
	Total        int                       `json:"total"`
	ExchangeRate decimal.Decimal           `json:"exchangeRate"`
	Skipped      []domain.SkippedCommodity `json:"skipped"`
	Failures     []domain.FailedCommodity  `json:"failures"`
}

// ToPriceUpdateResponse converts a domain result to its response DTO
func ToPriceUpdateResponse(r *domain.PriceUpdateResult) PriceUpdateResponse {
	return PriceUpdateResponse{
		Success:      true,
		Updated:      r.Updated,
		Total:        r.Total,
		ExchangeRate: r.ExchangeRate,
		Skipped:      r.Skipped,
		Failures:     r.Failures,
	}
}
