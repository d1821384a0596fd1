package currency

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/planwise/procure/pkg/domain/entities"
)

// RateProvider supplies a directional FX rate valid on or before the given
// date. Implementations must return *MissingRateError when no rate exists,
// never a default.
type RateProvider interface {
	Rate(ctx context.Context, from, to entities.Currency, asOf time.Time) (decimal.Decimal, error)
}

// TableProvider serves rates from a static in-memory table
type TableProvider struct {
	table *RateTable
}

var _ RateProvider = (*TableProvider)(nil)

// NewTableProvider creates a provider backed by the given table
func NewTableProvider(table *RateTable) *TableProvider {
	return &TableProvider{table: table}
}

// Rate looks up the most recent rate on or before asOf
func (p *TableProvider) Rate(_ context.Context, from, to entities.Currency, asOf time.Time) (decimal.Decimal, error) {
	return p.table.Lookup(from, to, asOf)
}

// CacheConfig controls the cached provider's freshness policy
type CacheConfig struct {
	// TTL is how long a fetched rate is considered fresh
	TTL time.Duration
	// StaleFor bounds how long past expiry a stale entry may be served when
	// the underlying provider fails. Zero disables stale serving.
	StaleFor time.Duration
}

// DefaultCacheConfig returns the standard freshness policy: 15 minute TTL,
// stale entries served for at most 24 hours after a provider failure.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:      15 * time.Minute,
		StaleFor: 24 * time.Hour,
	}
}

type cacheEntry struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

// CachedProvider wraps another provider with a TTL cache. Concurrent requests
// for the same pair/date collapse into a single upstream call. When the
// upstream fails, a stale entry within the StaleFor window is served with a
// warning; beyond that the upstream error propagates. A *MissingRateError from
// upstream always propagates: absence of a rate is authoritative, not an outage.
type CachedProvider struct {
	upstream RateProvider
	config   CacheConfig
	group    singleflight.Group
	now      func() time.Time

	mu    sync.RWMutex
	cache map[string]cacheEntry

	// Warn is called when a stale rate is served. Defaults to a no-op so the
	// provider carries no logging dependency; the engine installs slog.
	Warn func(from, to entities.Currency, age time.Duration)
}

var _ RateProvider = (*CachedProvider)(nil)

// NewCachedProvider wraps upstream with the given freshness policy
func NewCachedProvider(upstream RateProvider, config CacheConfig) *CachedProvider {
	return &CachedProvider{
		upstream: upstream,
		config:   config,
		now:      time.Now,
		cache:    make(map[string]cacheEntry),
		Warn:     func(entities.Currency, entities.Currency, time.Duration) {},
	}
}

// Rate returns a fresh cached rate, fetches from upstream on miss or expiry,
// and falls back to a bounded-stale entry only on upstream failure
func (p *CachedProvider) Rate(ctx context.Context, from, to entities.Currency, asOf time.Time) (decimal.Decimal, error) {
	key := fmt.Sprintf("%s|%s|%s", from, to, asOf.Format("2006-01-02"))
	now := p.now()

	p.mu.RLock()
	entry, ok := p.cache[key]
	p.mu.RUnlock()

	if ok && now.Sub(entry.fetchedAt) <= p.config.TTL {
		return entry.rate, nil
	}

	v, err, _ := p.group.Do(key, func() (interface{}, error) {
		rate, err := p.upstream.Rate(ctx, from, to, asOf)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.cache[key] = cacheEntry{rate: rate, fetchedAt: p.now()}
		p.mu.Unlock()
		return rate, nil
	})
	if err == nil {
		return v.(decimal.Decimal), nil
	}

	var missing *MissingRateError
	if errors.As(err, &missing) {
		return decimal.Zero, err
	}

	// Upstream outage: serve stale within the allowed window.
	if ok && p.config.StaleFor > 0 {
		age := now.Sub(entry.fetchedAt)
		if age <= p.config.TTL+p.config.StaleFor {
			p.Warn(from, to, age)
			return entry.rate, nil
		}
	}
	return decimal.Zero, fmt.Errorf("fetching rate %s->%s: %w", from, to, err)
}
