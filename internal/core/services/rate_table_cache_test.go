package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRateTableCache_MissAndHit(t *testing.T) {
	cache := newRateTableCache(time.Minute)

	_, ok := cache.get("ZAR")
	assert.False(t, ok)

	cache.put("ZAR", map[string]decimal.Decimal{"USD": decimal.NewFromFloat(0.054)})

	table, ok := cache.get("ZAR")
	assert.True(t, ok)
	assert.True(t, table["USD"].Equal(decimal.NewFromFloat(0.054)))
}

func TestRateTableCache_ExpiredEntryIsIgnored(t *testing.T) {
	cache := newRateTableCache(10 * time.Millisecond)
	cache.put("ZAR", map[string]decimal.Decimal{"USD": decimal.NewFromFloat(0.054)})

	time.Sleep(20 * time.Millisecond)

	_, ok := cache.get("ZAR")
	assert.False(t, ok)
}

func TestRateTableCache_LastWriteWins(t *testing.T) {
	cache := newRateTableCache(time.Minute)
	cache.put("ZAR", map[string]decimal.Decimal{"USD": decimal.NewFromFloat(0.054)})
	cache.put("ZAR", map[string]decimal.Decimal{"USD": decimal.NewFromFloat(0.055)})

	table, ok := cache.get("ZAR")
	assert.True(t, ok)
	assert.True(t, table["USD"].Equal(decimal.NewFromFloat(0.055)))
}
