package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ODInternational04/aboi-backend/internal/apperrors"
	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	portsrepo "github.com/ODInternational04/aboi-backend/internal/core/ports/repositories"
)

// StatsService serves the aggregated read models backing the stats endpoints.
type StatsService struct {
	commodityRepo portsrepo.CommodityRepository
	priceRepo     portsrepo.PriceRepository
	runRepo       portsrepo.PriceUpdateRunRepository
	rateRepo      portsrepo.ExchangeRateReader
	windowDays    int
}

// NewStatsService creates a StatsService.
func NewStatsService(
	commodityRepo portsrepo.CommodityRepository,
	priceRepo portsrepo.PriceRepository,
	runRepo portsrepo.PriceUpdateRunRepository,
	rateRepo portsrepo.ExchangeRateReader,
	windowDays int,
) *StatsService {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &StatsService{
		commodityRepo: commodityRepo,
		priceRepo:     priceRepo,
		runRepo:       runRepo,
		rateRepo:      rateRepo,
		windowDays:    windowDays,
	}
}

// GetCommodityStats aggregates the pricing picture for one commodity. Missing
// snapshot, range or history reduce the result; a missing commodity is an
// error.
func (s *StatsService) GetCommodityStats(ctx context.Context, commodityID string) (*domain.CommodityStats, error) {
	commodity, err := s.commodityRepo.FindCommodityByID(ctx, commodityID)
	if err != nil {
		return nil, err
	}

	stats := &domain.CommodityStats{
		Commodity:  *commodity,
		WindowDays: s.windowDays,
	}

	current, err := s.priceRepo.FindCurrentPrice(ctx, commodityID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read current price: %w", err)
	}
	stats.CurrentPrice = current

	priceRange, err := s.commodityRepo.FindPriceRange(ctx, commodityID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read price range: %w", err)
	}
	stats.Range = priceRange

	since := time.Now().UTC().AddDate(0, 0, -s.windowDays)
	agg, err := s.priceRepo.AggregateHistory(ctx, commodityID, since)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to aggregate price history: %w", err)
	}
	if agg != nil && agg.SampleCount > 0 {
		stats.MinPriceZAR = &agg.MinPriceZAR
		stats.MaxPriceZAR = &agg.MaxPriceZAR
		stats.AvgPriceZAR = &agg.AvgPriceZAR
		stats.SampleCount = agg.SampleCount
	}

	return stats, nil
}

// GetPriceHistory retrieves persisted price history for a commodity, newest
// first. The limit defaults to 30 and is capped at 365.
func (s *StatsService) GetPriceHistory(ctx context.Context, commodityID string, limit int) ([]domain.PriceHistory, error) {
	if _, err := s.commodityRepo.FindCommodityByID(ctx, commodityID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 30
	}
	if limit > 365 {
		limit = 365
	}
	return s.priceRepo.ListPriceHistory(ctx, commodityID, limit)
}

// ListUpdateRuns retrieves update run records, newest first. The limit
// defaults to 30 and is capped at 365.
func (s *StatsService) ListUpdateRuns(ctx context.Context, limit int) ([]domain.PriceUpdateRun, error) {
	if limit <= 0 {
		limit = 30
	}
	if limit > 365 {
		limit = 365
	}
	return s.runRepo.ListRuns(ctx, limit)
}

// GetDashboardSummary builds the operator overview. Absent pieces (no runs
// yet, no rates yet) are omitted rather than failing the summary.
func (s *StatsService) GetDashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	summary := &domain.DashboardSummary{GeneratedAt: time.Now().UTC()}

	active, err := s.commodityRepo.CountActiveCommodities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active commodities: %w", err)
	}
	summary.ActiveCommodities = active

	priced, err := s.priceRepo.CountCurrentPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count current prices: %w", err)
	}
	summary.PricedCommodities = priced

	latestRate, err := s.rateRepo.FindLatestRate(ctx, currencyZAR, currencyUSD, 0)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read latest exchange rate: %w", err)
	}
	summary.LatestRate = latestRate

	lastRun, err := s.runRepo.FindLatestRun(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read latest update run: %w", err)
	}
	summary.LastRun = lastRun

	gainer, loser, err := s.priceRepo.FindTopMovers(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read top movers: %w", err)
	}
	summary.TopGainer = gainer
	summary.TopLoser = loser

	return summary, nil
}
