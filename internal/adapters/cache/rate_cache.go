package cache

import (
	"fmt"

	"currencymonitor/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoRateCache keeps the latest stored rate of a pair in memory.
type RistrettoRateCache struct {
	cache *ristretto.Cache
}

func NewRateCache(maxItems int64) (*RistrettoRateCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate cache failed: %w", err)
	}
	return &RistrettoRateCache{cache: c}, nil
}

func (c *RistrettoRateCache) Get(pair domain.ExchangePair) (domain.ExchangeRate, bool) {
	if v, ok := c.cache.Get(toKey(pair)); ok {
		rate, ok := v.(domain.ExchangeRate)
		return rate, ok
	}
	return domain.ExchangeRate{}, false
}

func (c *RistrettoRateCache) Set(rate domain.ExchangeRate) {
	c.cache.Set(toKey(rate.Pair()), rate, 1)
}

func (c *RistrettoRateCache) CleanBatch(pairs []domain.ExchangePair) {
	for _, pair := range pairs {
		c.cache.Del(toKey(pair))
	}
}

func (c *RistrettoRateCache) Close() { c.cache.Close() }

func toKey(p domain.ExchangePair) string { return p.String() }
