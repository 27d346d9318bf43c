package conversion

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/banking/pkg/cache"
	"github.com/amirasaad/banking/pkg/domain/currency"
	"github.com/amirasaad/banking/pkg/repository"
	"github.com/google/uuid"
)

// DefaultCacheTTL is how long a currency snapshot stays valid in the cache.
const DefaultCacheTTL = 5 * time.Minute

// Lookup loads currency records by id or code, serving repeated reads within
// a burst from a short-TTL cache. Cached records are snapshots, not
// authority; the movement engine re-reads accounts under its own transaction.
type Lookup struct {
	currencies repository.CurrencyRepository
	cache      cache.CurrencyCache
	ttl        time.Duration
	logger     *slog.Logger
}

// NewLookup builds a cached currency lookup. A zero ttl falls back to
// DefaultCacheTTL.
func NewLookup(
	currencies repository.CurrencyRepository,
	c cache.CurrencyCache,
	ttl time.Duration,
	logger *slog.Logger,
) *Lookup {
	if currencies == nil {
		panic("conversion: currency repository is required")
	}
	if c == nil {
		panic("conversion: currency cache is required")
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Lookup{currencies: currencies, cache: c, ttl: ttl, logger: logger}
}

// ByID returns the currency with the given id.
func (l *Lookup) ByID(ctx context.Context, id uuid.UUID) (*currency.Currency, error) {
	key := "currency:id:" + id.String()
	if cur := l.cached(ctx, key); cur != nil {
		return cur, nil
	}
	cur, err := l.currencies.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	l.store(ctx, cur)
	return cur, nil
}

// ByCode returns the currency with the given (case-insensitive) code.
func (l *Lookup) ByCode(ctx context.Context, code string) (*currency.Currency, error) {
	key := "currency:code:" + currency.NormalizeCode(code)
	if cur := l.cached(ctx, key); cur != nil {
		return cur, nil
	}
	cur, err := l.currencies.GetByCode(ctx, currency.NormalizeCode(code))
	if err != nil {
		return nil, err
	}
	l.store(ctx, cur)
	return cur, nil
}

func (l *Lookup) cached(ctx context.Context, key string) *currency.Currency {
	cur, err := l.cache.Get(ctx, key)
	if err != nil {
		// Cache trouble must never fail a conversion; fall through to storage.
		l.logger.Warn("currency cache read failed", "key", key, "error", err)
		return nil
	}
	return cur
}

func (l *Lookup) store(ctx context.Context, cur *currency.Currency) {
	for _, key := range []string{
		"currency:id:" + cur.ID.String(),
		"currency:code:" + currency.NormalizeCode(cur.Code),
	} {
		if err := l.cache.Set(ctx, key, cur, l.ttl); err != nil {
			l.logger.Warn("currency cache write failed", "key", key, "error", err)
		}
	}
}
