package services

import (
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// PriceSynthesizer produces bounded pseudo-random prices and the derived
// quantities written alongside them. Prices are simulated, not sourced from a
// market feed, and the randomness is not cryptographically secure.
type PriceSynthesizer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPriceSynthesizer creates a synthesizer seeded from the wall clock.
func NewPriceSynthesizer() *PriceSynthesizer {
	return NewSeededPriceSynthesizer(time.Now().UnixNano())
}

// NewSeededPriceSynthesizer creates a synthesizer with a fixed seed, used by
// tests that need reproducible sequences.
func NewSeededPriceSynthesizer(seed int64) *PriceSynthesizer {
	return &PriceSynthesizer{rnd: rand.New(rand.NewSource(seed))}
}

// GeneratePrice samples uniformly from [min, max) and rounds to 4 decimal
// places. Rounding can nudge a sample up to the open bound, so the result is
// clamped one tick below max.
func (s *PriceSynthesizer) GeneratePrice(min, max decimal.Decimal) decimal.Decimal {
	minF, _ := min.Float64()
	maxF, _ := max.Float64()
	if maxF <= minF {
		return min.Round(4)
	}

	s.mu.Lock()
	u := s.rnd.Float64()
	s.mu.Unlock()

	price := decimal.NewFromFloat(minF + (maxF-minF)*u).Round(4)
	if price.GreaterThanOrEqual(max) {
		price = max.Sub(decimal.New(1, -4))
	}
	if price.LessThan(min) {
		price = min.Round(4)
	}
	return price
}

// ChangePercent returns the percentage change from previous to next, rounded
// to 2 decimal places. A missing or non-positive previous price reports a
// flat change of zero rather than failing.
func ChangePercent(previous *decimal.Decimal, next decimal.Decimal) decimal.Decimal {
	if previous == nil || !previous.IsPositive() {
		return decimal.Zero
	}
	return next.Sub(*previous).Div(*previous).Mul(decimal.NewFromInt(100)).Round(2)
}

// USDFromZAR derives the USD counterpart of a ZAR price using the ZAR->USD
// rate in effect, rounded to 4 decimal places.
func USDFromZAR(priceZAR, rate decimal.Decimal) decimal.Decimal {
	return priceZAR.Mul(rate).Round(4)
}

// ZARFromUSD derives the ZAR counterpart of a USD price using the ZAR->USD
// rate in effect, rounded to 4 decimal places.
func ZARFromUSD(priceUSD, rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return priceUSD
	}
	return priceUSD.Div(rate).Round(4)
}
