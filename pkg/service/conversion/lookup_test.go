package conversion_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/pkg/domain/currency"
	"github.com/amirasaad/banking/pkg/service/conversion"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCurrencyRepo struct {
	byID   map[uuid.UUID]*currency.Currency
	byCode map[string]*currency.Currency
	reads  int
}

func newStubCurrencyRepo(curs ...*currency.Currency) *stubCurrencyRepo {
	r := &stubCurrencyRepo{
		byID:   map[uuid.UUID]*currency.Currency{},
		byCode: map[string]*currency.Currency{},
	}
	for _, c := range curs {
		r.byID[c.ID] = c
		r.byCode[currency.NormalizeCode(c.Code)] = c
	}
	return r
}

func (r *stubCurrencyRepo) Get(_ context.Context, id uuid.UUID) (*currency.Currency, error) {
	r.reads++
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubCurrencyRepo) GetByCode(_ context.Context, code string) (*currency.Currency, error) {
	r.reads++
	if c, ok := r.byCode[currency.NormalizeCode(code)]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]*currency.Currency
	fail    error
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string]*currency.Currency{}}
}

func (c *mapCache) Get(_ context.Context, key string) (*currency.Currency, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return nil, c.fail
	}
	return c.entries[key], nil
}

func (c *mapCache) Set(_ context.Context, key string, cur *currency.Currency, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	c.entries[key] = cur
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func TestLookupCachesBothKeys(t *testing.T) {
	t.Parallel()

	cur := eur()
	repo := newStubCurrencyRepo(cur)
	lookup := conversion.NewLookup(repo, newMapCache(), 0, nil)
	ctx := context.Background()

	got, err := lookup.ByID(ctx, cur.ID)
	require.NoError(t, err)
	assert.Equal(t, cur.ID, got.ID)
	assert.Equal(t, 1, repo.reads)

	// Both the id and code keys were populated by the first read.
	_, err = lookup.ByID(ctx, cur.ID)
	require.NoError(t, err)
	_, err = lookup.ByCode(ctx, "eur")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.reads, "repeat reads must be served from cache")
}

func TestLookupByCodeNormalizes(t *testing.T) {
	t.Parallel()

	cur := eur()
	repo := newStubCurrencyRepo(cur)
	lookup := conversion.NewLookup(repo, newMapCache(), time.Minute, nil)

	got, err := lookup.ByCode(context.Background(), "  eur ")
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Code)
}

func TestLookupCacheFailureFallsThrough(t *testing.T) {
	t.Parallel()

	cur := usd()
	repo := newStubCurrencyRepo(cur)
	broken := newMapCache()
	broken.fail = errors.New("redis down")
	lookup := conversion.NewLookup(repo, broken, time.Minute, nil)

	got, err := lookup.ByID(context.Background(), cur.ID)
	require.NoError(t, err, "cache trouble must never fail a lookup")
	assert.Equal(t, cur.ID, got.ID)

	_, err = lookup.ByID(context.Background(), cur.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.reads, "with a broken cache every read hits storage")
}

func TestLookupUnknownCurrency(t *testing.T) {
	t.Parallel()

	lookup := conversion.NewLookup(newStubCurrencyRepo(), newMapCache(), time.Minute, nil)
	_, err := lookup.ByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
