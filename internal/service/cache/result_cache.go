package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"AstroCalc/internal/domain/models"
	domrepo "AstroCalc/internal/domain/repository"
	pkgcache "AstroCalc/pkg/cache"
)

// Tier groups analyses by how fast their inputs move. Natal-only
// derivations stay valid far longer than transit-dependent ones.
type Tier string

const (
	TierFast   Tier = "fast"   // depends on current positions
	TierSlow   Tier = "slow"   // depends on the natal instant and as-of date
	TierStatic Tier = "static" // fixed once the subject is resolved
)

// DefaultTTLs per tier. Overridable with WithTTL.
var DefaultTTLs = map[Tier]time.Duration{
	TierFast:   time.Hour,
	TierSlow:   24 * time.Hour,
	TierStatic: 7 * 24 * time.Hour,
}

// ResultCache memoizes analysis results. A cached result is always
// byte-identical to a fresh recomputation, so eviction is purely a
// performance concern.
type ResultCache struct {
	c       pkgcache.Service
	ttls    map[Tier]time.Duration
	metrics domrepo.Metrics
}

// Option configures a ResultCache.
type Option func(*ResultCache)

// WithTTL overrides one tier's lifetime.
func WithTTL(tier Tier, d time.Duration) Option {
	return func(r *ResultCache) { r.ttls[tier] = d }
}

// WithMetrics records hit/miss outcomes.
func WithMetrics(m domrepo.Metrics) Option {
	return func(r *ResultCache) { r.metrics = m }
}

// NewResultCache wraps a cache service with analysis-result keying
// and TTL tiers.
func NewResultCache(c pkgcache.Service, opts ...Option) *ResultCache {
	r := &ResultCache{c: c, ttls: make(map[Tier]time.Duration, len(DefaultTTLs))}
	for t, d := range DefaultTTLs {
		r.ttls[t] = d
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key derives the cache key from everything the result depends on:
// subject (and partner) fingerprint, analysis id, as-of instant and
// the extra params in sorted order. The variable tail is hashed so
// keys stay bounded no matter how many params arrive.
func Key(req models.AnalysisRequest) string {
	parts := []interface{}{req.Subject.Fingerprint()}
	if req.Partner != nil {
		parts = append(parts, req.Partner.Fingerprint())
	}
	if req.AsOf != nil {
		parts = append(parts, fmt.Sprintf("asof=%d", req.AsOf.UTC().Unix()))
	}
	if len(req.Params) > 0 {
		keys := make([]string, 0, len(req.Params))
		for k := range req.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", k, req.Params[k]))
		}
	}
	prefix := pkgcache.GenerateKey("analysis", req.AnalysisID)
	return pkgcache.GenerateKey(prefix, pkgcache.HashKey(pkgcache.GenerateKeyWithParams(prefix, parts...)))
}

// Get loads a cached result into dest, reporting whether it was
// found. Lookup errors count as misses.
func (r *ResultCache) Get(ctx context.Context, key string, dest *models.AnalysisResult) bool {
	err := r.c.Get(ctx, key, dest)
	hit := err == nil
	if r.metrics != nil {
		r.metrics.RecordCacheHit(hit)
	}
	if err != nil && !errors.Is(err, pkgcache.ErrCacheMiss) {
		return false
	}
	return hit
}

// Set stores a result under its tier's TTL. Failures are swallowed:
// the cache is an optimization, never a source of truth.
func (r *ResultCache) Set(ctx context.Context, key string, res *models.AnalysisResult, tier Tier) {
	ttl, ok := r.ttls[tier]
	if !ok {
		ttl = r.ttls[TierSlow]
	}
	_ = r.c.Set(ctx, key, res, ttl)
}

// Invalidate drops every cached result of one analysis, regardless of
// subject. Useful after an ephemeris table reload.
func (r *ResultCache) Invalidate(ctx context.Context, analysisID string) error {
	return r.c.DeleteByPattern(ctx, pkgcache.BuildPattern(pkgcache.GenerateKey("analysis", analysisID)+":"))
}
