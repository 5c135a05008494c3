package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"time"

	"AstroCalc/internal/domain/models"
	domrepo "AstroCalc/internal/domain/repository"
	applogger "AstroCalc/pkg/logger"
	"AstroCalc/pkg/util"
)

// Gateway fronts an EphemerisSource with date-bound enforcement and
// a single retry with backoff. Charts batch all their bodies through
// one Positions call so sources can amortize lookups.
type Gateway struct {
	src     domrepo.EphemerisSource
	minJD   float64
	maxJD   float64
	backoff time.Duration
	l       *applogger.Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithYearBounds restricts queries to [minYear, maxYear].
func WithYearBounds(minYear, maxYear int) GatewayOption {
	return func(g *Gateway) {
		g.minJD = util.JulianDay(time.Date(minYear, 1, 1, 0, 0, 0, 0, time.UTC))
		g.maxJD = util.JulianDay(time.Date(maxYear, 12, 31, 23, 59, 59, 0, time.UTC))
	}
}

// WithRetryBackoff sets the delay before the single retry.
func WithRetryBackoff(d time.Duration) GatewayOption {
	return func(g *Gateway) { g.backoff = d }
}

// WithLogger injects a structured logger.
func WithLogger(l *applogger.Logger) GatewayOption {
	return func(g *Gateway) { g.l = l }
}

// NewGateway wraps src with default 1900-2100 bounds.
func NewGateway(src domrepo.EphemerisSource, opts ...GatewayOption) *Gateway {
	g := &Gateway{src: src, backoff: 100 * time.Millisecond}
	WithYearBounds(1900, 2100)(g)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Positions returns positions for all requested bodies at jd.
func (g *Gateway) Positions(ctx context.Context, bodies []models.Body, jd float64) ([]models.BodyPosition, error) {
	if jd < g.minJD || jd > g.maxJD {
		return nil, fmt.Errorf("%w: jd %.2f outside [%.2f, %.2f]",
			models.ErrEphemerisUnavailable, jd, g.minJD, g.maxJD)
	}

	pos, err := g.src.Positions(ctx, bodies, jd)
	if err == nil {
		return pos, nil
	}
	if errors.Is(err, models.ErrUnsupportedParameter) {
		return nil, err // fatal, retrying cannot help
	}

	if g.l != nil {
		g.l.Warn("ephemeris source error, retrying", applogger.Error(err))
	}
	select {
	case <-time.After(g.backoff):
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", models.ErrEphemerisUnavailable, ctx.Err())
	}

	pos, err = g.src.Positions(ctx, bodies, jd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrEphemerisUnavailable, err)
	}
	return pos, nil
}

var _ domrepo.EphemerisSource = (*Gateway)(nil)
