package services

import (
	"context"

	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	"github.com/ODInternational04/aboi-backend/internal/dto"
)

// PriceUpdateSvcFacade drives the daily synthesis cycle and the operator
// write paths.
type PriceUpdateSvcFacade interface {
	// UpdateDailyPrices runs one full update cycle. Per-commodity failures
	// are reported inside the result, not as an error; only rate-resolution
	// hard failures and overlapping cycles return an error.
	UpdateDailyPrices(ctx context.Context, triggeredBy *string, source domain.TriggerSource) (*domain.PriceUpdateResult, error)

	// UpdateCommodityPrice writes one commodity's price through the same
	// persistence path as the daily cycle.
	UpdateCommodityPrice(ctx context.Context, commodityID string, req dto.UpdateCommodityPriceRequest, operator string) (*domain.CurrentPrice, error)

	// UpdatePriceRange replaces the synthesis band for a commodity.
	UpdatePriceRange(ctx context.Context, commodityID string, req dto.UpdatePriceRangeRequest, operator string) (*domain.PriceRange, error)
}

// StatsSvcFacade serves aggregated read models for the HTTP layer.
type StatsSvcFacade interface {
	GetCommodityStats(ctx context.Context, commodityID string) (*domain.CommodityStats, error)
	GetDashboardSummary(ctx context.Context) (*domain.DashboardSummary, error)
	GetPriceHistory(ctx context.Context, commodityID string, limit int) ([]domain.PriceHistory, error)
	ListUpdateRuns(ctx context.Context, limit int) ([]domain.PriceUpdateRun, error)
}

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Rate        RateSvcFacade
	PriceUpdate PriceUpdateSvcFacade
	Stats       StatsSvcFacade
}
