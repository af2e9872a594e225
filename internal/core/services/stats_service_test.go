package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ODInternational04/aboi-backend/internal/apperrors"
	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	"github.com/ODInternational04/aboi-backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type StatsServiceTestSuite struct {
	suite.Suite
	mockCommodityRepo *MockCommodityRepository
	mockPriceRepo     *MockPriceRepository
	mockRunRepo       *MockPriceUpdateRunRepository
	mockRateRepo      *MockExchangeRateRepository
	service           *services.StatsService
}

func (suite *StatsServiceTestSuite) SetupTest() {
	suite.mockCommodityRepo = new(MockCommodityRepository)
	suite.mockPriceRepo = new(MockPriceRepository)
	suite.mockRunRepo = new(MockPriceUpdateRunRepository)
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewStatsService(
		suite.mockCommodityRepo,
		suite.mockPriceRepo,
		suite.mockRunRepo,
		suite.mockRateRepo,
		30,
	)
}

func (suite *StatsServiceTestSuite) TestGetCommodityStats_UnknownCommodity() {
	ctx := context.Background()
	suite.mockCommodityRepo.On("FindCommodityByID", ctx, "nope").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetCommodityStats(ctx, "nope")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StatsServiceTestSuite) TestGetCommodityStats_ToleratesMissingPieces() {
	ctx := context.Background()
	suite.mockCommodityRepo.On("FindCommodityByID", ctx, "c1").Return(&domain.Commodity{
		CommodityID: "c1", Symbol: "AU", IsActive: true,
	}, nil).Once()
	suite.mockPriceRepo.On("FindCurrentPrice", ctx, "c1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCommodityRepo.On("FindPriceRange", ctx, "c1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPriceRepo.On("AggregateHistory", ctx, "c1", mock.AnythingOfType("time.Time")).Return(&domain.HistoryAggregate{}, nil).Once()

	stats, err := suite.service.GetCommodityStats(ctx, "c1")

	suite.Require().NoError(err)
	suite.Nil(stats.CurrentPrice)
	suite.Nil(stats.Range)
	suite.Nil(stats.MinPriceZAR)
	suite.Equal(0, stats.SampleCount)
	suite.Equal(30, stats.WindowDays)
}

func (suite *StatsServiceTestSuite) TestGetCommodityStats_FullPicture() {
	ctx := context.Background()
	suite.mockCommodityRepo.On("FindCommodityByID", ctx, "c1").Return(&domain.Commodity{
		CommodityID: "c1", Symbol: "AU", IsActive: true,
	}, nil).Once()
	suite.mockPriceRepo.On("FindCurrentPrice", ctx, "c1").Return(&domain.CurrentPrice{
		CommodityID: "c1", PriceZAR: decimal.NewFromInt(35000),
	}, nil).Once()
	min := decimal.NewFromInt(30000)
	max := decimal.NewFromInt(40000)
	suite.mockCommodityRepo.On("FindPriceRange", ctx, "c1").Return(&domain.PriceRange{
		CommodityID: "c1", MinPriceZAR: &min, MaxPriceZAR: &max, IsActive: true,
	}, nil).Once()
	suite.mockPriceRepo.On("AggregateHistory", ctx, "c1", mock.AnythingOfType("time.Time")).Return(&domain.HistoryAggregate{
		MinPriceZAR: decimal.NewFromInt(31000),
		MaxPriceZAR: decimal.NewFromInt(39000),
		AvgPriceZAR: decimal.NewFromInt(34500),
		SampleCount: 28,
	}, nil).Once()

	stats, err := suite.service.GetCommodityStats(ctx, "c1")

	suite.Require().NoError(err)
	suite.Require().NotNil(stats.CurrentPrice)
	suite.Require().NotNil(stats.Range)
	suite.Equal(28, stats.SampleCount)
	suite.True(stats.AvgPriceZAR.Equal(decimal.NewFromInt(34500)))
}

func (suite *StatsServiceTestSuite) TestGetDashboardSummary_ToleratesEmptySystem() {
	ctx := context.Background()
	suite.mockCommodityRepo.On("CountActiveCommodities", ctx).Return(0, nil).Once()
	suite.mockPriceRepo.On("CountCurrentPrices", ctx).Return(0, nil).Once()
	suite.mockRateRepo.On("FindLatestRate", ctx, "ZAR", "USD", time.Duration(0)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRunRepo.On("FindLatestRun", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPriceRepo.On("FindTopMovers", ctx).Return(nil, nil, nil).Once()

	summary, err := suite.service.GetDashboardSummary(ctx)

	suite.Require().NoError(err)
	suite.Equal(0, summary.ActiveCommodities)
	suite.Nil(summary.LatestRate)
	suite.Nil(summary.LastRun)
	suite.Nil(summary.TopGainer)
	suite.False(summary.GeneratedAt.IsZero())
}

func (suite *StatsServiceTestSuite) TestGetDashboardSummary_FullPicture() {
	ctx := context.Background()
	suite.mockCommodityRepo.On("CountActiveCommodities", ctx).Return(12, nil).Once()
	suite.mockPriceRepo.On("CountCurrentPrices", ctx).Return(11, nil).Once()
	suite.mockRateRepo.On("FindLatestRate", ctx, "ZAR", "USD", time.Duration(0)).Return(&domain.ExchangeRate{
		FromCurrency: "ZAR", ToCurrency: "USD", Rate: decimal.NewFromFloat(0.054),
	}, nil).Once()
	suite.mockRunRepo.On("FindLatestRun", ctx).Return(&domain.PriceUpdateRun{
		RunID: "r1", Status: domain.RunStatusSuccess,
	}, nil).Once()
	gainer := &domain.CurrentPrice{CommodityID: "c1", Change24hPercent: decimal.NewFromFloat(4.2)}
	loser := &domain.CurrentPrice{CommodityID: "c2", Change24hPercent: decimal.NewFromFloat(-3.1)}
	suite.mockPriceRepo.On("FindTopMovers", ctx).Return(gainer, loser, nil).Once()

	summary, err := suite.service.GetDashboardSummary(ctx)

	suite.Require().NoError(err)
	suite.Equal(12, summary.ActiveCommodities)
	suite.Equal(11, summary.PricedCommodities)
	suite.Equal("c1", summary.TopGainer.CommodityID)
	suite.Equal("c2", summary.TopLoser.CommodityID)
	suite.Equal("r1", summary.LastRun.RunID)
}

func (suite *StatsServiceTestSuite) TestGetPriceHistory_ChecksCommodityAndCapsLimit() {
	ctx := context.Background()
	suite.mockCommodityRepo.On("FindCommodityByID", ctx, "c1").Return(&domain.Commodity{
		CommodityID: "c1", Symbol: "AU", IsActive: true,
	}, nil).Twice()
	suite.mockPriceRepo.On("ListPriceHistory", ctx, "c1", 30).Return([]domain.PriceHistory{}, nil).Once()
	suite.mockPriceRepo.On("ListPriceHistory", ctx, "c1", 365).Return([]domain.PriceHistory{}, nil).Once()

	_, err := suite.service.GetPriceHistory(ctx, "c1", 0)
	suite.Require().NoError(err)
	_, err = suite.service.GetPriceHistory(ctx, "c1", 1000)
	suite.Require().NoError(err)

	suite.mockPriceRepo.AssertExpectations(suite.T())
}

func TestStatsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatsServiceTestSuite))
}
