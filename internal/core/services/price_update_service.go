package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ODInternational04/aboi-backend/internal/apperrors"
	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	portsrepo "github.com/ODInternational04/aboi-backend/internal/core/ports/repositories"
	"github.com/ODInternational04/aboi-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceUpdateService runs the daily synthesis cycle and the operator-driven
// single-commodity write paths. Overlapping daily cycles are rejected with a
// run-level try-lock; concurrent upserts of the same current-price row would
// otherwise only be safe because the store's upsert is atomic per row.
type PriceUpdateService struct {
	resolver      *RateResolverService
	synthesizer   *PriceSynthesizer
	commodityRepo portsrepo.CommodityRepository
	priceRepo     portsrepo.PriceRepository
	runRepo       portsrepo.PriceUpdateRunRepository
	rateWriter    portsrepo.ExchangeRateWriter
	logger        *slog.Logger

	runMu sync.Mutex
}

// NewPriceUpdateService wires the orchestrator.
func NewPriceUpdateService(
	resolver *RateResolverService,
	synthesizer *PriceSynthesizer,
	commodityRepo portsrepo.CommodityRepository,
	priceRepo portsrepo.PriceRepository,
	runRepo portsrepo.PriceUpdateRunRepository,
	rateWriter portsrepo.ExchangeRateWriter,
	logger *slog.Logger,
) *PriceUpdateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PriceUpdateService{
		resolver:      resolver,
		synthesizer:   synthesizer,
		commodityRepo: commodityRepo,
		priceRepo:     priceRepo,
		runRepo:       runRepo,
		rateWriter:    rateWriter,
		logger:        logger,
	}
}

// attemptItem is one commodity that cleared bounds resolution and will be
// priced concurrently.
type attemptItem struct {
	commodity domain.Commodity
	minUSD    decimal.Decimal
	maxUSD    decimal.Decimal
}

// UpdateDailyPrices runs one full update cycle: resolve the ZAR->USD rate
// once, fan out every active commodity concurrently, and record the run after
// every per-commodity task has settled. Per-commodity failures land in the
// result's failure list; the cycle itself still succeeds.
func (s *PriceUpdateService) UpdateDailyPrices(ctx context.Context, triggeredBy *string, source domain.TriggerSource) (*domain.PriceUpdateResult, error) {
	if !s.runMu.TryLock() {
		return nil, fmt.Errorf("%w: a price update cycle is already running", apperrors.ErrConflict)
	}
	defer s.runMu.Unlock()

	rate := s.resolver.GetRate(ctx, currencyZAR, currencyUSD)
	if !rate.IsPositive() {
		// The resolver contract makes this unreachable, but a broken rate
		// must abort before any write.
		return nil, fmt.Errorf("%w: resolved %s->%s rate is not positive", apperrors.ErrRateUnavailable, currencyZAR, currencyUSD)
	}

	ranges, err := s.commodityRepo.ListActivePriceRanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active price ranges: %w", err)
	}

	result := &domain.PriceUpdateResult{
		ExchangeRate: rate,
		Skipped:      []domain.SkippedCommodity{},
		Failures:     []domain.FailedCommodity{},
	}

	var attempts []attemptItem
	for _, cr := range ranges {
		minUSD, maxUSD, ok := usdBounds(cr.Range, rate)
		if !ok {
			result.Skipped = append(result.Skipped, domain.SkippedCommodity{
				CommodityID: cr.Commodity.CommodityID,
				Symbol:      cr.Commodity.Symbol,
				Reason:      "incomplete price range",
			})
			continue
		}
		attempts = append(attempts, attemptItem{commodity: cr.Commodity, minUSD: minUSD, maxUSD: maxUSD})
	}
	result.Total = len(attempts)

	now := time.Now().UTC()
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, item := range attempts {
		wg.Add(1)
		go func(item attemptItem) {
			defer wg.Done()
			priceUSD := s.synthesizer.GeneratePrice(item.minUSD, item.maxUSD)
			priceZAR := ZARFromUSD(priceUSD, rate)
			if err := s.applyPrice(ctx, item.commodity.CommodityID, priceZAR, priceUSD, rate, now); err != nil {
				mu.Lock()
				result.Failures = append(result.Failures, domain.FailedCommodity{
					CommodityID: item.commodity.CommodityID,
					Symbol:      item.commodity.Symbol,
					Message:     err.Error(),
				})
				mu.Unlock()
				return
			}
			mu.Lock()
			result.Updated++
			mu.Unlock()
		}(item)
	}
	// All-settled barrier: no rate row or run record is written until every
	// per-commodity task has reached a terminal state.
	wg.Wait()

	s.recordCycleRate(ctx, rate, now)
	s.recordRun(ctx, triggeredBy, source, result, now)

	s.logger.Info("daily price update completed",
		slog.Int("updated", result.Updated),
		slog.Int("total", result.Total),
		slog.Int("skipped", len(result.Skipped)),
		slog.Int("failures", len(result.Failures)),
		slog.String("trigger", string(source)))
	return result, nil
}

// usdBounds resolves the USD band for a range: the stored USD pair when
// complete, otherwise derived from the ZAR pair via the cycle rate.
func usdBounds(r domain.PriceRange, rate decimal.Decimal) (decimal.Decimal, decimal.Decimal, bool) {
	if r.HasUSDBounds() {
		return *r.MinPriceUSD, *r.MaxPriceUSD, true
	}
	if r.HasZARBounds() {
		return USDFromZAR(*r.MinPriceZAR, rate), USDFromZAR(*r.MaxPriceZAR, rate), true
	}
	return decimal.Zero, decimal.Zero, false
}

// applyPrice is the shared persistence path for daily and manual updates:
// read the previous snapshot, compute the 24h change, upsert the current
// price and append a history row.
func (s *PriceUpdateService) applyPrice(ctx context.Context, commodityID string, priceZAR, priceUSD, rate decimal.Decimal, at time.Time) error {
	var previousZAR *decimal.Decimal
	previous, err := s.priceRepo.FindCurrentPrice(ctx, commodityID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to read current price: %w", err)
	}
	if previous != nil {
		previousZAR = &previous.PriceZAR
	}

	current := domain.CurrentPrice{
		CommodityID:      commodityID,
		PriceZAR:         priceZAR,
		PriceUSD:         priceUSD,
		ExchangeRate:     rate,
		Change24hPercent: ChangePercent(previousZAR, priceZAR),
		LastUpdated:      at,
	}
	if err := s.priceRepo.UpsertCurrentPrice(ctx, current); err != nil {
		return fmt.Errorf("failed to upsert current price: %w", err)
	}

	history := domain.PriceHistory{
		PriceHistoryID: uuid.NewString(),
		CommodityID:    commodityID,
		PriceZAR:       priceZAR,
		PriceUSD:       priceUSD,
		ExchangeRate:   rate,
		RecordedAt:     at,
	}
	if err := s.priceRepo.InsertPriceHistory(ctx, history); err != nil {
		return fmt.Errorf("failed to insert price history: %w", err)
	}
	return nil
}

// recordCycleRate persists the cycle's rate with source daily_update. Failure
// is logged and never changes the cycle's outcome.
func (s *PriceUpdateService) recordCycleRate(ctx context.Context, rate decimal.Decimal, at time.Time) {
	row := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		FromCurrency:   currencyZAR,
		ToCurrency:     currencyUSD,
		Rate:           rate,
		Source:         domain.RateSourceDailyUpdate,
		RecordedAt:     at,
	}
	if err := s.rateWriter.SaveExchangeRate(ctx, row); err != nil {
		s.logger.Warn("failed to persist daily update rate", slog.String("error", err.Error()))
	}
}

// recordRun persists the audit record for a cycle. Failure is logged and
// never changes the cycle's outcome.
func (s *PriceUpdateService) recordRun(ctx context.Context, triggeredBy *string, source domain.TriggerSource, result *domain.PriceUpdateResult, at time.Time) {
	status := domain.RunStatusSuccess
	if result.Updated == 0 {
		status = domain.RunStatusNoUpdates
	}
	run := domain.PriceUpdateRun{
		RunID:              uuid.NewString(),
		ExecutedAt:         at,
		TriggeredBy:        triggeredBy,
		TriggerSource:      source,
		TotalCommodities:   result.Total,
		UpdatedCommodities: result.Updated,
		Status:             status,
		Notes:              fmt.Sprintf("skipped=%d failures=%d", len(result.Skipped), len(result.Failures)),
	}
	if err := s.runRepo.SavePriceUpdateRun(ctx, run); err != nil {
		s.logger.Warn("failed to persist price update run", slog.String("error", err.Error()))
	}
}

// UpdateCommodityPrice writes one commodity's price from operator input.
// Exactly one of the two prices must be supplied; the counterpart is derived
// via the current resolved rate.
func (s *PriceUpdateService) UpdateCommodityPrice(ctx context.Context, commodityID string, req dto.UpdateCommodityPriceRequest, operator string) (*domain.CurrentPrice, error) {
	if (req.PriceUSD == nil) == (req.PriceZAR == nil) {
		return nil, fmt.Errorf("%w: exactly one of priceUsd or priceZar must be supplied", apperrors.ErrValidation)
	}

	commodity, err := s.commodityRepo.FindCommodityByID(ctx, commodityID)
	if err != nil {
		return nil, err
	}
	if !commodity.IsActive {
		return nil, fmt.Errorf("%w: commodity %s is not active", apperrors.ErrValidation, commodity.Symbol)
	}

	rate := s.resolver.GetRate(ctx, currencyZAR, currencyUSD)

	var priceUSD, priceZAR decimal.Decimal
	switch {
	case req.PriceUSD != nil:
		if !req.PriceUSD.IsPositive() {
			return nil, fmt.Errorf("%w: priceUsd must be positive", apperrors.ErrValidation)
		}
		priceUSD = req.PriceUSD.Round(4)
		priceZAR = ZARFromUSD(priceUSD, rate)
	default:
		if !req.PriceZAR.IsPositive() {
			return nil, fmt.Errorf("%w: priceZar must be positive", apperrors.ErrValidation)
		}
		priceZAR = req.PriceZAR.Round(4)
		priceUSD = USDFromZAR(priceZAR, rate)
	}

	now := time.Now().UTC()
	if err := s.applyPrice(ctx, commodityID, priceZAR, priceUSD, rate, now); err != nil {
		return nil, err
	}

	result := &domain.PriceUpdateResult{Updated: 1, Total: 1, ExchangeRate: rate,
		Skipped: []domain.SkippedCommodity{}, Failures: []domain.FailedCommodity{}}
	s.recordRun(ctx, &operator, domain.TriggerSourceManualSingle, result, now)

	current, err := s.priceRepo.FindCurrentPrice(ctx, commodityID)
	if err != nil {
		return nil, fmt.Errorf("failed to read updated price: %w", err)
	}
	return current, nil
}

// UpdatePriceRange replaces the synthesis band for a commodity. Either
// currency pair may be supplied; the other is derived via the current rate.
// min < max must hold in both currencies or nothing is written.
func (s *PriceUpdateService) UpdatePriceRange(ctx context.Context, commodityID string, req dto.UpdatePriceRangeRequest, operator string) (*domain.PriceRange, error) {
	commodity, err := s.commodityRepo.FindCommodityByID(ctx, commodityID)
	if err != nil {
		return nil, err
	}

	hasUSD := req.MinPriceUSD != nil && req.MaxPriceUSD != nil
	hasZAR := req.MinPriceZAR != nil && req.MaxPriceZAR != nil
	if !hasUSD && !hasZAR {
		return nil, fmt.Errorf("%w: a complete min/max pair in USD or ZAR is required", apperrors.ErrValidation)
	}

	rate := s.resolver.GetRate(ctx, currencyZAR, currencyUSD)

	var minUSD, maxUSD, minZAR, maxZAR decimal.Decimal
	switch {
	case hasUSD:
		minUSD, maxUSD = req.MinPriceUSD.Round(4), req.MaxPriceUSD.Round(4)
		if hasZAR {
			minZAR, maxZAR = req.MinPriceZAR.Round(4), req.MaxPriceZAR.Round(4)
		} else {
			minZAR, maxZAR = ZARFromUSD(minUSD, rate), ZARFromUSD(maxUSD, rate)
		}
	default:
		minZAR, maxZAR = req.MinPriceZAR.Round(4), req.MaxPriceZAR.Round(4)
		minUSD, maxUSD = USDFromZAR(minZAR, rate), USDFromZAR(maxZAR, rate)
	}

	if minUSD.GreaterThanOrEqual(maxUSD) {
		return nil, fmt.Errorf("%w: minPriceUsd must be less than maxPriceUsd", apperrors.ErrValidation)
	}
	if minZAR.GreaterThanOrEqual(maxZAR) {
		return nil, fmt.Errorf("%w: minPriceZar must be less than maxPriceZar", apperrors.ErrValidation)
	}
	if !minUSD.IsPositive() || !minZAR.IsPositive() {
		return nil, fmt.Errorf("%w: price bounds must be positive", apperrors.ErrValidation)
	}

	priceRange := domain.PriceRange{
		CommodityID: commodity.CommodityID,
		MinPriceZAR: &minZAR,
		MaxPriceZAR: &maxZAR,
		MinPriceUSD: &minUSD,
		MaxPriceUSD: &maxUSD,
		IsActive:    true,
		UpdatedBy:   operator,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.commodityRepo.UpsertPriceRange(ctx, priceRange); err != nil {
		return nil, fmt.Errorf("failed to upsert price range: %w", err)
	}
	return &priceRange, nil
}
