// Package cache defines the currency snapshot cache consumed by the
// conversion engine.
package cache

import (
	"context"
	"time"

	"github.com/amirasaad/banking/pkg/domain/currency"
)

// CurrencyCache caches currency snapshots for a short TTL. Entries are
// accelerators, not authority: balance mutation always re-reads persistent
// state, the cache only serves read-only conversion lookups.
//
// Get returns (nil, nil) on a miss or an expired entry.
type CurrencyCache interface {
	Get(ctx context.Context, key string) (*currency.Currency, error)
	Set(ctx context.Context, key string, c *currency.Currency, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
