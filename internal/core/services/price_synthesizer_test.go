package services_test

import (
	"testing"

	"github.com/ODInternational04/aboi-backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePrice_StaysWithinBounds(t *testing.T) {
	synth := services.NewSeededPriceSynthesizer(1)
	min := decimal.NewFromFloat(1800.50)
	max := decimal.NewFromFloat(2000.25)

	for i := 0; i < 1000; i++ {
		price := synth.GeneratePrice(min, max)
		require.True(t, price.GreaterThanOrEqual(min), "price %s below min %s", price, min)
		require.True(t, price.LessThan(max), "price %s reached open bound %s", price, max)
		require.LessOrEqual(t, int32(-price.Exponent()), int32(4), "price %s has more than 4 decimal places", price)
	}
}

func TestGeneratePrice_DegenerateRangeReturnsMin(t *testing.T) {
	synth := services.NewSeededPriceSynthesizer(1)
	min := decimal.NewFromFloat(20.5)

	price := synth.GeneratePrice(min, min)

	assert.True(t, price.Equal(min))
}

func TestGeneratePrice_SeededSequencesAreReproducible(t *testing.T) {
	min := decimal.NewFromInt(10)
	max := decimal.NewFromInt(20)

	a := services.NewSeededPriceSynthesizer(7)
	b := services.NewSeededPriceSynthesizer(7)
	for i := 0; i < 50; i++ {
		assert.True(t, a.GeneratePrice(min, max).Equal(b.GeneratePrice(min, max)))
	}
}

func TestChangePercent(t *testing.T) {
	prev100 := decimal.NewFromInt(100)
	prevZero := decimal.Zero

	tests := []struct {
		name     string
		previous *decimal.Decimal
		next     decimal.Decimal
		want     string
	}{
		{"ten percent up", &prev100, decimal.NewFromInt(110), "10"},
		{"ten percent down", &prev100, decimal.NewFromInt(90), "-10"},
		{"no previous price", nil, decimal.NewFromInt(50), "0"},
		{"zero previous price", &prevZero, decimal.NewFromInt(50), "0"},
		{"rounded to two places", &prev100, decimal.RequireFromString("100.126"), "0.13"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.ChangePercent(tt.previous, tt.next)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestCurrencyDerivation(t *testing.T) {
	rate := decimal.NewFromFloat(0.054)

	usd := services.USDFromZAR(decimal.NewFromInt(1000), rate)
	assert.True(t, usd.Equal(decimal.NewFromInt(54)), "got %s", usd)

	zar := services.ZARFromUSD(decimal.NewFromInt(54), rate)
	assert.True(t, zar.Equal(decimal.NewFromInt(1000)), "got %s", zar)

	// A non-positive rate cannot divide; the USD price passes through.
	same := services.ZARFromUSD(decimal.NewFromInt(54), decimal.Zero)
	assert.True(t, same.Equal(decimal.NewFromInt(54)))
}
