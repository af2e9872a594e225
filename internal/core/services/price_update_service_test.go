package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ODInternational04/aboi-backend/internal/apperrors"
	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	"github.com/ODInternational04/aboi-backend/internal/core/services"
	"github.com/ODInternational04/aboi-backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CommodityRepository ---
type MockCommodityRepository struct {
	mock.Mock
}

func (m *MockCommodityRepository) FindCommodityByID(ctx context.Context, commodityID string) (*domain.Commodity, error) {
	args := m.Called(ctx, commodityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commodity), args.Error(1)
}

func (m *MockCommodityRepository) CountActiveCommodities(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCommodityRepository) ListActivePriceRanges(ctx context.Context) ([]domain.CommodityRange, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommodityRange), args.Error(1)
}

func (m *MockCommodityRepository) FindPriceRange(ctx context.Context, commodityID string) (*domain.PriceRange, error) {
	args := m.Called(ctx, commodityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceRange), args.Error(1)
}

func (m *MockCommodityRepository) UpsertPriceRange(ctx context.Context, priceRange domain.PriceRange) error {
	args := m.Called(ctx, priceRange)
	return args.Error(0)
}

// --- Mock PriceRepository ---
type MockPriceRepository struct {
	mock.Mock
}

func (m *MockPriceRepository) FindCurrentPrice(ctx context.Context, commodityID string) (*domain.CurrentPrice, error) {
	args := m.Called(ctx, commodityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrentPrice), args.Error(1)
}

func (m *MockPriceRepository) CountCurrentPrices(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPriceRepository) FindTopMovers(ctx context.Context) (*domain.CurrentPrice, *domain.CurrentPrice, error) {
	args := m.Called(ctx)
	var gainer, loser *domain.CurrentPrice
	if args.Get(0) != nil {
		gainer = args.Get(0).(*domain.CurrentPrice)
	}
	if args.Get(1) != nil {
		loser = args.Get(1).(*domain.CurrentPrice)
	}
	return gainer, loser, args.Error(2)
}

func (m *MockPriceRepository) UpsertCurrentPrice(ctx context.Context, price domain.CurrentPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockPriceRepository) ListPriceHistory(ctx context.Context, commodityID string, limit int) ([]domain.PriceHistory, error) {
	args := m.Called(ctx, commodityID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceHistory), args.Error(1)
}

func (m *MockPriceRepository) AggregateHistory(ctx context.Context, commodityID string, since time.Time) (*domain.HistoryAggregate, error) {
	args := m.Called(ctx, commodityID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HistoryAggregate), args.Error(1)
}

func (m *MockPriceRepository) InsertPriceHistory(ctx context.Context, history domain.PriceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

// --- Mock PriceUpdateRunRepository ---
type MockPriceUpdateRunRepository struct {
	mock.Mock
}

func (m *MockPriceUpdateRunRepository) SavePriceUpdateRun(ctx context.Context, run domain.PriceUpdateRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockPriceUpdateRunRepository) FindLatestRun(ctx context.Context) (*domain.PriceUpdateRun, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceUpdateRun), args.Error(1)
}

func (m *MockPriceUpdateRunRepository) ListRuns(ctx context.Context, limit int) ([]domain.PriceUpdateRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceUpdateRun), args.Error(1)
}

// --- Test Suite ---
type PriceUpdateServiceTestSuite struct {
	suite.Suite
	mockRateRepo      *MockExchangeRateRepository
	mockCommodityRepo *MockCommodityRepository
	mockPriceRepo     *MockPriceRepository
	mockRunRepo       *MockPriceUpdateRunRepository
	service           *services.PriceUpdateService
}

func (suite *PriceUpdateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCommodityRepo = new(MockCommodityRepository)
	suite.mockPriceRepo = new(MockPriceRepository)
	suite.mockRunRepo = new(MockPriceUpdateRunRepository)

	resolver := services.NewRateResolverService(suite.mockRateRepo, nil, services.RateResolverConfig{
		FallbackRate:             decimal.NewFromFloat(0.054),
		FallbackFromCurrency:     "ZAR",
		FallbackToCurrency:       "USD",
		FallbackInversePrecision: 6,
		PersistedMaxAge:          4 * time.Hour,
	}, nil)

	suite.service = services.NewPriceUpdateService(
		resolver,
		services.NewSeededPriceSynthesizer(42),
		suite.mockCommodityRepo,
		suite.mockPriceRepo,
		suite.mockRunRepo,
		suite.mockRateRepo,
		nil,
	)
}

// expectFreshRate makes the resolver see a fresh persisted ZAR->USD row so no
// provider access happens during the cycle.
func (suite *PriceUpdateServiceTestSuite) expectFreshRate(rate decimal.Decimal) {
	suite.mockRateRepo.On("FindLatestRate", mock.Anything, "ZAR", "USD", 4*time.Hour).Return(&domain.ExchangeRate{
		FromCurrency: "ZAR",
		ToCurrency:   "USD",
		Rate:         rate,
		Source:       domain.RateSourceAPI,
		RecordedAt:   time.Now().UTC(),
	}, nil)
}

func usdRange(commodityID, symbol string, minUSD, maxUSD float64) domain.CommodityRange {
	min := decimal.NewFromFloat(minUSD)
	max := decimal.NewFromFloat(maxUSD)
	return domain.CommodityRange{
		Commodity: domain.Commodity{CommodityID: commodityID, Symbol: symbol, IsActive: true},
		Range: domain.PriceRange{
			CommodityID: commodityID,
			MinPriceUSD: &min,
			MaxPriceUSD: &max,
			IsActive:    true,
		},
	}
}

func (suite *PriceUpdateServiceTestSuite) TestUpdateDailyPrices_SkipsIncompleteRanges() {
	ctx := context.Background()
	suite.expectFreshRate(decimal.NewFromFloat(0.054))

	incomplete := domain.CommodityRange{
		Commodity: domain.Commodity{CommodityID: "c3", Symbol: "PLT", IsActive: true},
		Range:     domain.PriceRange{CommodityID: "c3", IsActive: true},
	}
	suite.mockCommodityRepo.On("ListActivePriceRanges", ctx).Return([]domain.CommodityRange{
		usdRange("c1", "AU", 1800, 2000),
		usdRange("c2", "AG", 20, 30),
		incomplete,
	}, nil).Once()

	suite.mockPriceRepo.On("FindCurrentPrice", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	suite.mockPriceRepo.On("UpsertCurrentPrice", mock.Anything, mock.Anything).Return(nil)
	suite.mockPriceRepo.On("InsertPriceHistory", mock.Anything, mock.Anything).Return(nil)
	suite.mockRateRepo.On("SaveExchangeRate", mock.Anything, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.Source == domain.RateSourceDailyUpdate
	})).Return(nil).Once()
	suite.mockRunRepo.On("SavePriceUpdateRun", mock.Anything, mock.MatchedBy(func(r domain.PriceUpdateRun) bool {
		return r.TotalCommodities == 2 && r.UpdatedCommodities == 2 && r.Status == domain.RunStatusSuccess
	})).Return(nil).Once()

	result, err := suite.service.UpdateDailyPrices(ctx, nil, domain.TriggerSourceCron)

	suite.Require().NoError(err)
	suite.Equal(2, result.Total)
	suite.Equal(2, result.Updated)
	suite.Len(result.Skipped, 1)
	suite.Equal("c3", result.Skipped[0].CommodityID)
	suite.Empty(result.Failures)
	suite.mockRunRepo.AssertExpectations(suite.T())
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *PriceUpdateServiceTestSuite) TestUpdateDailyPrices_IsolatesSingleFailure() {
	ctx := context.Background()
	suite.expectFreshRate(decimal.NewFromFloat(0.054))

	ranges := []domain.CommodityRange{
		usdRange("c1", "AU", 1800, 2000),
		usdRange("c2", "AG", 20, 30),
		usdRange("c3", "PT", 900, 1100),
		usdRange("c4", "PD", 1200, 1500),
		usdRange("c5", "CU", 3, 5),
	}
	suite.mockCommodityRepo.On("ListActivePriceRanges", ctx).Return(ranges, nil).Once()

	suite.mockPriceRepo.On("FindCurrentPrice", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	suite.mockPriceRepo.On("UpsertCurrentPrice", mock.Anything, mock.MatchedBy(func(p domain.CurrentPrice) bool {
		return p.CommodityID == "c3"
	})).Return(errors.New("row lock timeout"))
	suite.mockPriceRepo.On("UpsertCurrentPrice", mock.Anything, mock.Anything).Return(nil)
	suite.mockPriceRepo.On("InsertPriceHistory", mock.Anything, mock.Anything).Return(nil)
	suite.mockRateRepo.On("SaveExchangeRate", mock.Anything, mock.Anything).Return(nil)
	suite.mockRunRepo.On("SavePriceUpdateRun", mock.Anything, mock.MatchedBy(func(r domain.PriceUpdateRun) bool {
		return r.TotalCommodities == 5 && r.UpdatedCommodities == 4
	})).Return(nil).Once()

	result, err := suite.service.UpdateDailyPrices(ctx, nil, domain.TriggerSourceCron)

	suite.Require().NoError(err)
	suite.Equal(5, result.Total)
	suite.Equal(4, result.Updated)
	suite.Require().Len(result.Failures, 1)
	suite.Equal("c3", result.Failures[0].CommodityID)
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *PriceUpdateServiceTestSuite) TestUpdateDailyPrices_RejectsOverlappingCycle() {
	ctx := context.Background()
	suite.expectFreshRate(decimal.NewFromFloat(0.054))

	started := make(chan struct{})
	release := make(chan struct{})
	suite.mockCommodityRepo.On("ListActivePriceRanges", ctx).Return([]domain.CommodityRange{}, nil).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Once()
	suite.mockRateRepo.On("SaveExchangeRate", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockRunRepo.On("SavePriceUpdateRun", mock.Anything, mock.Anything).Return(nil).Maybe()

	firstDone := make(chan error, 1)
	go func() {
		_, err := suite.service.UpdateDailyPrices(ctx, nil, domain.TriggerSourceCron)
		firstDone <- err
	}()
	<-started

	_, err := suite.service.UpdateDailyPrices(ctx, nil, domain.TriggerSourceManual)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)

	close(release)
	suite.Require().NoError(<-firstDone)
}

func (suite *PriceUpdateServiceTestSuite) TestUpdateDailyPrices_EmptyRunRecordsNoUpdates() {
	ctx := context.Background()
	suite.expectFreshRate(decimal.NewFromFloat(0.054))

	suite.mockCommodityRepo.On("ListActivePriceRanges", ctx).Return([]domain.CommodityRange{}, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockRunRepo.On("SavePriceUpdateRun", mock.Anything, mock.MatchedBy(func(r domain.PriceUpdateRun) bool {
		return r.Status == domain.RunStatusNoUpdates && r.TotalCommodities == 0
	})).Return(nil).Once()

	result, err := suite.service.UpdateDailyPrices(ctx, nil, domain.TriggerSourceCron)

	suite.Require().NoError(err)
	suite.Equal(0, result.Updated)
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *PriceUpdateServiceTestSuite) TestUpdateCommodityPrice_RequiresExactlyOnePrice() {
	ctx := context.Background()
	price := decimal.NewFromInt(100)

	_, err := suite.service.UpdateCommodityPrice(ctx, "c1", dto.UpdateCommodityPriceRequest{}, "ops")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.UpdateCommodityPrice(ctx, "c1", dto.UpdateCommodityPriceRequest{PriceUSD: &price, PriceZAR: &price}, "ops")
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockCommodityRepo.AssertNotCalled(suite.T(), "FindCommodityByID", mock.Anything, mock.Anything)
}

func (suite *PriceUpdateServiceTestSuite) TestUpdateCommodityPrice_DerivesCounterpartFromZAR() {
	ctx := context.Background()
	suite.expectFreshRate(decimal.NewFromFloat(0.054))

	suite.mockCommodityRepo.On("FindCommodityByID", ctx, "c1").Return(&domain.Commodity{
		CommodityID: "c1", Symbol: "AU", IsActive: true,
	}, nil).Once()

	previous := &domain.CurrentPrice{CommodityID: "c1", PriceZAR: decimal.NewFromInt(900)}
	suite.mockPriceRepo.On("FindCurrentPrice", ctx, "c1").Return(previous, nil).Once()

	suite.mockPriceRepo.On("UpsertCurrentPrice", ctx, mock.MatchedBy(func(p domain.CurrentPrice) bool {
		return p.PriceZAR.Equal(decimal.NewFromInt(1000)) &&
			p.PriceUSD.Equal(decimal.NewFromInt(54)) &&
			p.Change24hPercent.Equal(decimal.RequireFromString("11.11"))
	})).Return(nil).Once()
	suite.mockPriceRepo.On("InsertPriceHistory", ctx, mock.Anything).Return(nil).Once()
	suite.mockRunRepo.On("SavePriceUpdateRun", ctx, mock.MatchedBy(func(r domain.PriceUpdateRun) bool {
		return r.TriggerSource == domain.TriggerSourceManualSingle && r.TriggeredBy != nil && *r.TriggeredBy == "ops"
	})).Return(nil).Once()

	updated := &domain.CurrentPrice{CommodityID: "c1", PriceZAR: decimal.NewFromInt(1000), PriceUSD: decimal.NewFromInt(54)}
	suite.mockPriceRepo.On("FindCurrentPrice", ctx, "c1").Return(updated, nil).Once()

	zar := decimal.NewFromInt(1000)
	current, err := suite.service.UpdateCommodityPrice(ctx, "c1", dto.UpdateCommodityPriceRequest{PriceZAR: &zar}, "ops")

	suite.Require().NoError(err)
	suite.True(current.PriceUSD.Equal(decimal.NewFromInt(54)))
	suite.mockPriceRepo.AssertExpectations(suite.T())
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *PriceUpdateServiceTestSuite) TestUpdateCommodityPrice_RejectsInactiveCommodity() {
	ctx := context.Background()
	suite.mockCommodityRepo.On("FindCommodityByID", ctx, "c1").Return(&domain.Commodity{
		CommodityID: "c1", Symbol: "AU", IsActive: false,
	}, nil).Once()

	usd := decimal.NewFromInt(54)
	_, err := suite.service.UpdateCommodityPrice(ctx, "c1", dto.UpdateCommodityPriceRequest{PriceUSD: &usd}, "ops")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPriceRepo.AssertNotCalled(suite.T(), "UpsertCurrentPrice", mock.Anything, mock.Anything)
}

func (suite *PriceUpdateServiceTestSuite) TestUpdatePriceRange_RejectsInvertedBounds() {
	ctx := context.Background()
	suite.expectFreshRate(decimal.NewFromFloat(0.054))
	suite.mockCommodityRepo.On("FindCommodityByID", ctx, "c1").Return(&domain.Commodity{
		CommodityID: "c1", Symbol: "AU", IsActive: true,
	}, nil).Once()

	min := decimal.NewFromInt(2000)
	max := decimal.NewFromInt(1800)
	_, err := suite.service.UpdatePriceRange(ctx, "c1", dto.UpdatePriceRangeRequest{
		MinPriceUSD: &min, MaxPriceUSD: &max,
	}, "ops")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCommodityRepo.AssertNotCalled(suite.T(), "UpsertPriceRange", mock.Anything, mock.Anything)
}

func (suite *PriceUpdateServiceTestSuite) TestUpdatePriceRange_DerivesUSDFromZAR() {
	ctx := context.Background()
	suite.expectFreshRate(decimal.NewFromFloat(0.054))
	suite.mockCommodityRepo.On("FindCommodityByID", ctx, "c1").Return(&domain.Commodity{
		CommodityID: "c1", Symbol: "AU", IsActive: true,
	}, nil).Once()
	suite.mockCommodityRepo.On("UpsertPriceRange", ctx, mock.MatchedBy(func(r domain.PriceRange) bool {
		return r.IsActive && r.UpdatedBy == "ops" &&
			r.MinPriceUSD.Equal(decimal.NewFromInt(54)) &&
			r.MaxPriceUSD.Equal(decimal.RequireFromString("108"))
	})).Return(nil).Once()

	minZAR := decimal.NewFromInt(1000)
	maxZAR := decimal.NewFromInt(2000)
	priceRange, err := suite.service.UpdatePriceRange(ctx, "c1", dto.UpdatePriceRangeRequest{
		MinPriceZAR: &minZAR, MaxPriceZAR: &maxZAR,
	}, "ops")

	suite.Require().NoError(err)
	suite.True(priceRange.MinPriceUSD.Equal(decimal.NewFromInt(54)), "got %s", priceRange.MinPriceUSD)
	suite.mockCommodityRepo.AssertExpectations(suite.T())
}

func (suite *PriceUpdateServiceTestSuite) TestUpdatePriceRange_RequiresCompletePair() {
	ctx := context.Background()
	suite.mockCommodityRepo.On("FindCommodityByID", ctx, "c1").Return(&domain.Commodity{
		CommodityID: "c1", Symbol: "AU", IsActive: true,
	}, nil).Once()

	min := decimal.NewFromInt(1000)
	_, err := suite.service.UpdatePriceRange(ctx, "c1", dto.UpdatePriceRangeRequest{MinPriceZAR: &min}, "ops")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PriceUpdateServiceTestSuite) TestUpdateDailyPrices_RunRecordFailureDoesNotFailCycle() {
	ctx := context.Background()
	suite.expectFreshRate(decimal.NewFromFloat(0.054))

	suite.mockCommodityRepo.On("ListActivePriceRanges", ctx).Return([]domain.CommodityRange{
		usdRange("c1", "AU", 1800, 2000),
	}, nil).Once()
	suite.mockPriceRepo.On("FindCurrentPrice", mock.Anything, "c1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPriceRepo.On("UpsertCurrentPrice", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockPriceRepo.On("InsertPriceHistory", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", mock.Anything, mock.Anything).Return(fmt.Errorf("db down")).Once()
	suite.mockRunRepo.On("SavePriceUpdateRun", mock.Anything, mock.Anything).Return(fmt.Errorf("db down")).Once()

	result, err := suite.service.UpdateDailyPrices(ctx, nil, domain.TriggerSourceCron)

	suite.Require().NoError(err)
	suite.Equal(1, result.Updated)
}

func TestPriceUpdateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PriceUpdateServiceTestSuite))
}
