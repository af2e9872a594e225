package pgsql

import (
	portsrepo "github.com/ODInternational04/aboi-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider bundles all pgx-backed repositories.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeRateRepo: NewPgxExchangeRateRepository(pool),
		CommodityRepo:    NewPgxCommodityRepository(pool),
		PriceRepo:        NewPgxPriceRepository(pool),
		RunRepo:          NewPgxPriceUpdateRunRepository(pool),
	}
}
