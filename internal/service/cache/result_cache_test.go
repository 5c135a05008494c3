package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"AstroCalc/internal/domain/models"
	pkgcache "AstroCalc/pkg/cache"
)

type countingMetrics struct {
	hits, misses int
}

func (m *countingMetrics) RecordAnalysis(string)         {}
func (m *countingMetrics) RecordError(string)            {}
func (m *countingMetrics) RecordLatency(string, float64) {}

func (m *countingMetrics) RecordCacheHit(hit bool) {
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

func testRequest() models.AnalysisRequest {
	birth := time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC)
	return models.AnalysisRequest{
		AnalysisID: "natal-chart",
		Subject:    models.NewSubject("test", birth, 0, 28.6139, 77.2090, 216),
		Params:     map[string]string{"house_system": "placidus", "zodiac": "sidereal"},
	}
}

func TestKeyDeterministic(t *testing.T) {
	req := testRequest()
	require.Equal(t, Key(req), Key(req))

	// map iteration order must not leak into the key
	other := testRequest()
	other.Params = map[string]string{"zodiac": "sidereal", "house_system": "placidus"}
	require.Equal(t, Key(req), Key(other))
}

func TestKeyDiscriminates(t *testing.T) {
	base := testRequest()

	byID := testRequest()
	byID.AnalysisID = "strength"
	require.NotEqual(t, Key(base), Key(byID))

	asOf := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	byAsOf := testRequest()
	byAsOf.AsOf = &asOf
	require.NotEqual(t, Key(base), Key(byAsOf))

	partner := models.NewSubject("p", time.Date(1985, 3, 20, 6, 30, 0, 0, time.UTC), 0, 51.5, -0.13, 11)
	byPartner := testRequest()
	byPartner.Partner = &partner
	require.NotEqual(t, Key(base), Key(byPartner))
}

func TestKeyShape(t *testing.T) {
	key := Key(testRequest())
	require.True(t, strings.HasPrefix(key, "analysis:natal-chart:"))
	// the hashed tail keeps keys fixed-length
	require.Len(t, strings.TrimPrefix(key, "analysis:natal-chart:"), 32)
}

func TestInvalidateDropsCachedResults(t *testing.T) {
	ctx := context.Background()
	rc := NewResultCache(pkgcache.NewMemoryCache())

	req := testRequest()
	key := Key(req)
	rc.Set(ctx, key, &models.AnalysisResult{AnalysisID: req.AnalysisID}, TierStatic)

	require.NoError(t, rc.Invalidate(ctx, req.AnalysisID))
	var got models.AnalysisResult
	require.False(t, rc.Get(ctx, key, &got))
}

func TestResultCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := &countingMetrics{}
	rc := NewResultCache(pkgcache.NewMemoryCache(), WithMetrics(m))

	req := testRequest()
	key := Key(req)

	var got models.AnalysisResult
	require.False(t, rc.Get(ctx, key, &got))
	require.Equal(t, 1, m.misses)

	res := &models.AnalysisResult{AnalysisID: req.AnalysisID, Payload: map[string]any{"ok": true}}
	rc.Set(ctx, key, res, TierStatic)

	require.True(t, rc.Get(ctx, key, &got))
	require.Equal(t, 1, m.hits)
	require.Equal(t, req.AnalysisID, got.AnalysisID)
}

func TestResultCacheTierTTL(t *testing.T) {
	ctx := context.Background()
	rc := NewResultCache(pkgcache.NewMemoryCache(), WithTTL(TierFast, time.Millisecond))

	req := testRequest()
	key := Key(req)
	rc.Set(ctx, key, &models.AnalysisResult{AnalysisID: req.AnalysisID}, TierFast)

	time.Sleep(5 * time.Millisecond)
	var got models.AnalysisResult
	require.False(t, rc.Get(ctx, key, &got), "fast tier entry should expire")
}
