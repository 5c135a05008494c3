package chart

import (
	"context"
	"fmt"
	"time"

	"AstroCalc/internal/domain/models"
	domrepo "AstroCalc/internal/domain/repository"
	domservice "AstroCalc/internal/domain/service"
	"AstroCalc/internal/services/ephemeris"
	applogger "AstroCalc/pkg/logger"
	"AstroCalc/pkg/util"
)

// Builder assembles charts from a single batched ephemeris call plus
// the house computation. Zodiac frame is fixed per builder; sidereal
// charts subtract the Lahiri ayanamsa from every longitude.
type Builder struct {
	eph    domrepo.EphemerisSource
	zodiac models.Zodiac
	l      *applogger.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithZodiac overrides the default sidereal frame.
func WithZodiac(z models.Zodiac) BuilderOption {
	return func(b *Builder) { b.zodiac = z }
}

// WithLogger injects a structured logger.
func WithLogger(l *applogger.Logger) BuilderOption {
	return func(b *Builder) { b.l = l }
}

// NewBuilder returns a sidereal builder over the given source.
func NewBuilder(eph domrepo.EphemerisSource, opts ...BuilderOption) *Builder {
	b := &Builder{eph: eph, zodiac: models.Sidereal}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build computes the chart for subject at asOf. All bodies go through
// one Positions call; houses and angles derive from sidereal time at
// the subject's location.
func (b *Builder) Build(ctx context.Context, subject models.Subject, asOf time.Time, hs models.HouseSystem) (*models.Chart, error) {
	if subject.Latitude < -90 || subject.Latitude > 90 {
		return nil, fmt.Errorf("%w: %.4f", models.ErrInvalidLatitude, subject.Latitude)
	}
	if !models.IsValidHouseSystem(hs) {
		return nil, fmt.Errorf("%w: house system %q", models.ErrUnsupportedParameter, hs)
	}

	jd := util.JulianDay(asOf.UTC())
	positions, err := b.eph.Positions(ctx, models.AllBodies, jd)
	if err != nil {
		return nil, fmt.Errorf("build chart: %w", err)
	}

	eps := ephemeris.MeanObliquity(jd)
	ramc := util.Norm360(ephemeris.GMST(jd) + subject.Longitude)
	asc, mc := Angles(ramc, eps, subject.Latitude)

	var ayanamsa float64
	if b.zodiac == models.Sidereal {
		ayanamsa = ephemeris.Ayanamsa(jd)
	}
	asc = util.Norm360(asc - ayanamsa)
	mc = util.Norm360(mc - ayanamsa)
	for i := range positions {
		positions[i].Longitude = util.Norm360(positions[i].Longitude - ayanamsa)
	}

	var cusps [12]float64
	switch hs {
	case models.Placidus:
		cusps, err = PlacidusCusps(ramc, eps, subject.Latitude)
		if err != nil {
			return nil, err
		}
		for i := range cusps {
			cusps[i] = util.Norm360(cusps[i] - ayanamsa)
		}
	case models.WholeSign:
		cusps = WholeSignCusps(asc)
	}

	for i := range positions {
		positions[i].House = HouseOf(positions[i].Longitude, cusps)
	}

	if b.l != nil {
		b.l.Debug("chart built",
			applogger.String("subject", subject.Fingerprint()),
			applogger.Any("jd", jd),
			applogger.String("houses", string(hs)))
	}

	return &models.Chart{
		Subject:     subject,
		AsOf:        asOf.UTC(),
		JulianDay:   jd,
		HouseSystem: hs,
		Zodiac:      b.zodiac,
		Ayanamsa:    ayanamsa,
		Positions:   positions,
		Cusps:       cusps,
		Asc:         asc,
		MC:          mc,
	}, nil
}

var _ domservice.ChartBuilder = (*Builder)(nil)
