package repositories

// RepositoryProvider bundles the repository implementations handed to the
// service layer.
type RepositoryProvider struct {
	ExchangeRateRepo ExchangeRateRepository
	CommodityRepo    CommodityRepository
	PriceRepo        PriceRepository
	RunRepo          PriceUpdateRunRepository
}
