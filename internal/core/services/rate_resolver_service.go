package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ODInternational04/aboi-backend/internal/apperrors"
	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	portsrepo "github.com/ODInternational04/aboi-backend/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	currencyZAR = "ZAR"
	currencyUSD = "USD"
)

// TableFetcher retrieves a full currency->rate mapping for a base currency
// from the external provider.
type TableFetcher interface {
	FetchRateTable(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error)
}

// RateResolverConfig carries the tunables of the fallback chain.
type RateResolverConfig struct {
	FallbackRate             decimal.Decimal
	FallbackFromCurrency     string
	FallbackToCurrency       string
	FallbackInversePrecision int32
	PersistedMaxAge          time.Duration // freshness bound for tier 2
	TableCacheTTL            time.Duration
}

func (c *RateResolverConfig) applyDefaults() {
	if !c.FallbackRate.IsPositive() {
		c.FallbackRate = decimal.NewFromFloat(0.054)
	}
	if c.FallbackFromCurrency == "" || c.FallbackToCurrency == "" {
		c.FallbackFromCurrency = currencyZAR
		c.FallbackToCurrency = currencyUSD
	}
	if c.FallbackInversePrecision <= 0 {
		c.FallbackInversePrecision = 6
	}
	if c.PersistedMaxAge <= 0 {
		c.PersistedMaxAge = 4 * time.Hour
	}
}

// RateResolverService resolves exchange rates through an ordered chain of
// strategies: identity, fresh persisted row, live provider fetch, stale
// persisted row, static fallback. GetRate cannot fail; every tier error is
// logged and the chain moves on, terminating at the static fallback.
type RateResolverService struct {
	rateRepo portsrepo.ExchangeRateRepository
	fetcher  TableFetcher
	cache    *rateTableCache
	cfg      RateResolverConfig
	logger   *slog.Logger
}

// NewRateResolverService creates a resolver owning its own table cache.
func NewRateResolverService(rateRepo portsrepo.ExchangeRateRepository, fetcher TableFetcher, cfg RateResolverConfig, logger *slog.Logger) *RateResolverService {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &RateResolverService{
		rateRepo: rateRepo,
		fetcher:  fetcher,
		cache:    newRateTableCache(cfg.TableCacheTTL),
		cfg:      cfg,
		logger:   logger,
	}
}

// resolvedRate is the outcome of one strategy. persistAs is empty when the
// result is already persisted (or needs no persistence).
type resolvedRate struct {
	rate      decimal.Decimal
	persistAs domain.RateSource
}

type rateStrategy struct {
	name    string
	resolve func(ctx context.Context, fromCurrency, toCurrency string) (*resolvedRate, error)
}

func (s *RateResolverService) strategies() []rateStrategy {
	return []rateStrategy{
		{name: "identity", resolve: s.resolveIdentity},
		{name: "persisted_fresh", resolve: s.resolvePersistedFresh},
		{name: "live_fetch", resolve: s.resolveLiveFetch},
		{name: "persisted_stale", resolve: s.resolvePersistedStale},
		{name: "static_fallback", resolve: s.resolveStaticFallback},
	}
}

// GetRate resolves a single currency pair. It never returns a non-positive
// value: the static fallback strategy always yields.
func (s *RateResolverService) GetRate(ctx context.Context, fromCurrency, toCurrency string) decimal.Decimal {
	from := normalizeCurrency(fromCurrency)
	to := normalizeCurrency(toCurrency)

	for _, strategy := range s.strategies() {
		resolved, err := strategy.resolve(ctx, from, to)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrRateUnavailable) {
				s.logger.Warn("rate resolution tier failed",
					slog.String("tier", strategy.name),
					slog.String("from", from),
					slog.String("to", to),
					slog.String("error", err.Error()))
			}
			continue
		}
		if resolved == nil {
			continue
		}
		if resolved.persistAs != "" {
			s.persistRate(ctx, from, to, resolved.rate, resolved.persistAs)
		}
		return resolved.rate
	}

	// Unreachable: the static fallback strategy never errors. Kept so the
	// no-fail contract holds even if the strategy list is edited.
	return s.fallbackRateFor(from, to)
}

func (s *RateResolverService) resolveIdentity(_ context.Context, fromCurrency, toCurrency string) (*resolvedRate, error) {
	if fromCurrency != toCurrency {
		return nil, nil
	}
	return &resolvedRate{rate: decimal.NewFromInt(1)}, nil
}

func (s *RateResolverService) resolvePersistedFresh(ctx context.Context, fromCurrency, toCurrency string) (*resolvedRate, error) {
	rate, err := s.rateRepo.FindLatestRate(ctx, fromCurrency, toCurrency, s.cfg.PersistedMaxAge)
	if err != nil {
		return nil, err
	}
	return &resolvedRate{rate: rate.Rate}, nil
}

func (s *RateResolverService) resolveLiveFetch(ctx context.Context, fromCurrency, toCurrency string) (*resolvedRate, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: no rate provider configured", apperrors.ErrRateUnavailable)
	}
	table, err := s.fetcher.FetchRateTable(ctx, fromCurrency)
	if err != nil {
		return nil, err
	}
	rate, ok := table[toCurrency]
	if !ok || !rate.IsPositive() {
		return nil, fmt.Errorf("%w: provider table for %s has no rate for %s", apperrors.ErrRateUnavailable, fromCurrency, toCurrency)
	}
	s.cache.put(fromCurrency, table)
	return &resolvedRate{rate: rate, persistAs: domain.RateSourceAPI}, nil
}

func (s *RateResolverService) resolvePersistedStale(ctx context.Context, fromCurrency, toCurrency string) (*resolvedRate, error) {
	rate, err := s.rateRepo.FindLatestRate(ctx, fromCurrency, toCurrency, 0)
	if err != nil {
		return nil, err
	}
	return &resolvedRate{rate: rate.Rate}, nil
}

func (s *RateResolverService) resolveStaticFallback(_ context.Context, fromCurrency, toCurrency string) (*resolvedRate, error) {
	return &resolvedRate{
		rate:      s.fallbackRateFor(fromCurrency, toCurrency),
		persistAs: domain.RateSourceFallback,
	}, nil
}

// fallbackRateFor maps a pair onto the configured static constant: the base
// pair gets the constant, the inverse pair gets the rounded reciprocal, an
// identity pair gets 1, and any unrelated pair gets the raw constant as a
// last resort.
func (s *RateResolverService) fallbackRateFor(fromCurrency, toCurrency string) decimal.Decimal {
	switch {
	case fromCurrency == toCurrency:
		return decimal.NewFromInt(1)
	case fromCurrency == s.cfg.FallbackFromCurrency && toCurrency == s.cfg.FallbackToCurrency:
		return s.cfg.FallbackRate
	case fromCurrency == s.cfg.FallbackToCurrency && toCurrency == s.cfg.FallbackFromCurrency:
		return decimal.NewFromInt(1).Div(s.cfg.FallbackRate).Round(s.cfg.FallbackInversePrecision)
	default:
		return s.cfg.FallbackRate
	}
}

// GetRates resolves many targets against one base. Persisted fresh rows are
// checked per target in parallel; misses are served from a single table fetch
// (cached in memory for the TTL window) and persisted in the background;
// anything still unresolved goes through the full single-pair chain.
func (s *RateResolverService) GetRates(ctx context.Context, baseCurrency string, targetCurrencies []string) map[string]decimal.Decimal {
	base := normalizeCurrency(baseCurrency)

	targets := make([]string, 0, len(targetCurrencies))
	seen := make(map[string]struct{}, len(targetCurrencies))
	for _, target := range targetCurrencies {
		normalized := normalizeCurrency(target)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		targets = append(targets, normalized)
	}

	result := make(map[string]decimal.Decimal, len(targets))
	if len(targets) == 0 {
		return result
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	var misses []string

	for _, target := range targets {
		wg.Add(1)
		go func(target string) {
			defer wg.Done()
			if target == base {
				mu.Lock()
				result[target] = decimal.NewFromInt(1)
				mu.Unlock()
				return
			}
			row, err := s.rateRepo.FindLatestRate(ctx, base, target, s.cfg.PersistedMaxAge)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				misses = append(misses, target)
				return
			}
			result[target] = row.Rate
		}(target)
	}
	wg.Wait()

	if len(misses) > 0 {
		misses = s.resolveFromTable(ctx, base, misses, result)
	}

	for _, target := range misses {
		wg.Add(1)
		go func(target string) {
			defer wg.Done()
			rate := s.GetRate(ctx, base, target)
			mu.Lock()
			result[target] = rate
			mu.Unlock()
		}(target)
	}
	wg.Wait()

	return result
}

// resolveFromTable satisfies as many misses as possible from one table fetch
// and returns the targets that remain unresolved. Satisfied rates are
// persisted by background goroutines as best-effort api_batch rows that never
// affect the batch result.
func (s *RateResolverService) resolveFromTable(ctx context.Context, base string, misses []string, result map[string]decimal.Decimal) []string {
	table, ok := s.cache.get(base)
	if !ok {
		if s.fetcher == nil {
			return misses
		}
		fetched, err := s.fetcher.FetchRateTable(ctx, base)
		if err != nil {
			s.logger.Warn("batch rate table fetch failed",
				slog.String("base", base),
				slog.String("error", err.Error()))
			return misses
		}
		s.cache.put(base, fetched)
		table = fetched
	}

	remaining := misses[:0]
	for _, target := range misses {
		rate, found := table[target]
		if !found || !rate.IsPositive() {
			remaining = append(remaining, target)
			continue
		}
		result[target] = rate

		go func(target string, rate decimal.Decimal) {
			// Detached from the caller: batch persistence is best effort.
			bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			s.persistRate(bgCtx, base, target, rate, domain.RateSourceAPIBatch)
		}(target, rate)
	}
	return remaining
}

// ConvertCurrency converts an amount using the resolved current rate.
func (s *RateResolverService) ConvertCurrency(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (decimal.Decimal, decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	from := normalizeCurrency(fromCurrency)
	to := normalizeCurrency(toCurrency)
	if len(from) != 3 || len(to) != 3 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate := s.GetRate(ctx, from, to)
	return amount.Mul(rate).Round(4), rate, nil
}

// GetLatestExchangeRate retrieves the most recent persisted rate row for a
// pair, regardless of age.
func (s *RateResolverService) GetLatestExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	from := normalizeCurrency(fromCurrency)
	to := normalizeCurrency(toCurrency)
	if len(from) != 3 || len(to) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindLatestRate(ctx, from, to, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest exchange rate: %w", err)
	}
	return rate, nil
}

// GetExchangeRateHistory retrieves persisted rate rows for a pair, newest
// first.
func (s *RateResolverService) GetExchangeRateHistory(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error) {
	from := normalizeCurrency(fromCurrency)
	to := normalizeCurrency(toCurrency)
	if len(from) != 3 || len(to) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if limit <= 0 {
		limit = 30
	}
	if limit > 365 {
		limit = 365
	}

	history, err := s.rateRepo.ListRateHistory(ctx, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rate history: %w", err)
	}
	return history, nil
}

func (s *RateResolverService) persistRate(ctx context.Context, fromCurrency, toCurrency string, rate decimal.Decimal, source domain.RateSource) {
	row := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		FromCurrency:   fromCurrency,
		ToCurrency:     toCurrency,
		Rate:           rate,
		Source:         source,
		RecordedAt:     time.Now().UTC(),
	}
	if err := s.rateRepo.SaveExchangeRate(ctx, row); err != nil {
		s.logger.Warn("failed to persist resolved rate",
			slog.String("from", fromCurrency),
			slog.String("to", toCurrency),
			slog.String("source", string(source)),
			slog.String("error", err.Error()))
	}
}

func normalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
