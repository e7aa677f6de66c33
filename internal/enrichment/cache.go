package enrichment

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/classify"
)

// Cache is the subset of caching operations the cached enricher needs.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedEnricher caches fact-finder results per normalized counterparty.
// Industry guesses are stable, so a hit saves a collaborator round trip for
// every recurring counterparty in a batch. Mapper calls pass through: they
// depend on the amount and the candidate list.
type CachedEnricher struct {
	inner classify.Enricher
	cache Cache
	ttl   time.Duration
}

// NewCachedEnricher wraps an enricher with a fact-find cache.
func NewCachedEnricher(inner classify.Enricher, cache Cache, ttl time.Duration) *CachedEnricher {
	return &CachedEnricher{inner: inner, cache: cache, ttl: ttl}
}

// FactFind returns a cached industry guess when available.
func (e *CachedEnricher) FactFind(ctx context.Context, query string) (string, error) {
	key := "factfind:" + strings.ToLower(strings.Join(strings.Fields(query), " "))

	if cached, err := e.cache.Get(ctx, key); err == nil && len(cached) > 0 {
		return string(cached), nil
	}

	industry, err := e.inner.FactFind(ctx, query)
	if err != nil {
		return "", err
	}

	if industry != "" {
		// Cache failures are invisible: the next call just asks again.
		_ = e.cache.Set(ctx, key, []byte(industry), e.ttl)
	}
	return industry, nil
}

// MapCategory passes through to the wrapped enricher.
func (e *CachedEnricher) MapCategory(ctx context.Context, industry string, amount decimal.Decimal, candidates []classify.CandidateAccount) (string, error) {
	return e.inner.MapCategory(ctx, industry, amount, candidates)
}
