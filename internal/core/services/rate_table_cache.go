package services

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// rateTableCache holds full provider rate tables in memory, keyed by base
// currency. Entries use last-write-wins overwrite semantics; entries older
// than the TTL are ignored on read rather than actively evicted. The cache is
// owned by a resolver instance so separate resolvers never share state.
type rateTableCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]rateTableEntry
}

type rateTableEntry struct {
	fetchedAt time.Time
	rates     map[string]decimal.Decimal
}

func newRateTableCache(ttl time.Duration) *rateTableCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &rateTableCache{
		ttl:     ttl,
		entries: make(map[string]rateTableEntry),
	}
}

// get returns the cached table for a base currency if it is still inside the
// TTL window.
func (c *rateTableCache) get(baseCurrency string) (map[string]decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[baseCurrency]
	if !ok || time.Since(entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	return entry.rates, true
}

func (c *rateTableCache) put(baseCurrency string, rates map[string]decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[baseCurrency] = rateTableEntry{
		fetchedAt: time.Now(),
		rates:     rates,
	}
}
