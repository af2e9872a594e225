package services

import (
	"log/slog"

	portsrepo "github.com/ODInternational04/aboi-backend/internal/core/ports/repositories"
	portssvc "github.com/ODInternational04/aboi-backend/internal/core/ports/services"
	"github.com/ODInternational04/aboi-backend/pkg/config"
)

// NewServiceContainer creates a service container with properly initialized
// dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, fetcher TableFetcher, logger *slog.Logger) *portssvc.ServiceContainer {
	resolver := NewRateResolverService(repos.ExchangeRateRepo, fetcher, RateResolverConfig{
		FallbackRate:             cfg.FallbackRate,
		FallbackFromCurrency:     cfg.FallbackFromCurrency,
		FallbackToCurrency:       cfg.FallbackToCurrency,
		FallbackInversePrecision: cfg.FallbackInversePrecision,
		PersistedMaxAge:          cfg.RateCacheMaxAge,
		TableCacheTTL:            cfg.RateTableCacheTTL,
	}, logger)

	updateService := NewPriceUpdateService(
		resolver,
		NewPriceSynthesizer(),
		repos.CommodityRepo,
		repos.PriceRepo,
		repos.RunRepo,
		repos.ExchangeRateRepo,
		logger,
	)

	return &portssvc.ServiceContainer{
		Rate:        resolver,
		PriceUpdate: updateService,
		Stats:       NewStatsService(repos.CommodityRepo, repos.PriceRepo, repos.RunRepo, repos.ExchangeRateRepo, cfg.StatsWindowDays),
	}
}

// Compile-time interface checks
var (
	_ portssvc.RateSvcFacade        = (*RateResolverService)(nil)
	_ portssvc.PriceUpdateSvcFacade = (*PriceUpdateService)(nil)
	_ portssvc.StatsSvcFacade       = (*StatsService)(nil)
)
